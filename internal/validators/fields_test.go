package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonBlank(t *testing.T) {
	v, err := NonBlank("  Jane Doe ")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", v)

	_, err = NonBlank(" \t ")
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestISODate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-01-01", "2024-01-01", true},
		{" 2024-02-29 ", "2024-02-29", true},
		{"2023-02-29", "", false},
		{"2024-1-1", "", false},
		{"01/02/2024", "", false},
		{"2024-01-01T00:00:00Z", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := ISODate(tt.in)
			if !tt.ok {
				assert.ErrorIs(t, err, ErrNotDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestNonNegativeFloat(t *testing.T) {
	v, err := NonNegativeFloat("6500")
	require.NoError(t, err)
	assert.Equal(t, 6500.0, v)

	v, err = NonNegativeFloat("0")
	require.NoError(t, err)
	assert.Zero(t, v)

	for _, bad := range []string{"-1", "abc", "", "NaN", "Inf"} {
		_, err := NonNegativeFloat(bad)
		assert.ErrorIs(t, err, ErrNotFloat, bad)
	}
}

func TestNonNegativeInt(t *testing.T) {
	v, err := NonNegativeInt("15")
	require.NoError(t, err)
	assert.Equal(t, 15, v)

	v, err = NonNegativeInt("20.0")
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	for _, bad := range []string{"-3", "1.5", "x", ""} {
		_, err := NonNegativeInt(bad)
		assert.ErrorIs(t, err, ErrNotInt, bad)
	}
}
