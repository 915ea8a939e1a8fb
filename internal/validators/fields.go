package validators

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/staff-manager/internal/models"
)

var (
	ErrEmpty    = errors.New("value is empty")
	ErrNotDate  = errors.New("value is not a YYYY-MM-DD date")
	ErrNotFloat = errors.New("value is not a non-negative number")
	ErrNotInt   = errors.New("value is not a non-negative integer")
)

// NonBlank trims s and rejects the empty result.
func NonBlank(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmpty
	}
	return s, nil
}

// ISODate parses a strict YYYY-MM-DD calendar date.
func ISODate(s string) (models.Date, error) {
	s = strings.TrimSpace(s)
	if len(s) != len(models.DateLayout) {
		return models.Date{}, ErrNotDate
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return models.Date{}, ErrNotDate
	}
	return models.DateOf(t), nil
}

func NonNegativeFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrNotFloat
	}
	return v, nil
}

// NonNegativeInt accepts integral values only; "15.0" is accepted, "15.5" is not.
func NonNegativeInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		if v < 0 {
			return 0, ErrNotInt
		}
		return v, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, ErrNotInt
	}
	return int(f), nil
}
