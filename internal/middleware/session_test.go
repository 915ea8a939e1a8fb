package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/staff-manager/internal/domain/policy"
	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/infra/session"
	"github.com/BruksfildServices01/staff-manager/internal/models"
)

type stubResolver struct {
	err error
}

func (r stubResolver) Execute(_ context.Context, userID uint) (*policy.Principal, error) {
	if r.err != nil {
		return nil, r.err
	}
	return &policy.Principal{UserID: userID, Username: "tester", Role: models.RoleAdmin}, nil
}

func sessionEngine(store session.Store, resolver PrincipalResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware(store, "sid", time.Hour, resolver))
	r.GET("/page", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/flash", func(c *gin.Context) {
		Flash(c, "info", "hello")
		c.Status(http.StatusOK)
	})
	r.GET("/whoami", func(c *gin.Context) {
		if p := Principal(c); p != nil {
			c.String(http.StatusOK, p.Username)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	return nil
}

func TestAnonymousRequestsAreNotStored(t *testing.T) {
	store := session.NewMemoryStore()
	r := sessionEngine(store, stubResolver{})

	for i := 0; i < 100; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, sessionCookie(w))
	}
	assert.Zero(t, store.Len())
}

func TestFlashStartsStoredSession(t *testing.T) {
	store := session.NewMemoryStore()
	r := sessionEngine(store, stubResolver{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/flash", nil))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, 1, store.Len())

	s, err := store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, []session.Flash{{Category: "info", Message: "hello"}}, s.Flashes)
}

func TestSessionPrincipalResolution(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		err      error
		wantBody string
		wantUser uint
	}{
		{"resolved", nil, "tester", 7},
		{"unknown user logs out", httperr.Authentication("invalid_token", "Authentication required."), "", 0},
		{"store failure keeps login", errors.New("connection refused"), "", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewMemoryStore()
			s := session.New(time.Hour)
			s.UserID = 7
			require.NoError(t, store.Save(ctx, s))

			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.AddCookie(&http.Cookie{Name: "sid", Value: s.ID})
			w := httptest.NewRecorder()
			sessionEngine(store, stubResolver{err: tt.err}).ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.wantBody, w.Body.String())

			stored, err := store.Get(ctx, s.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, stored.UserID)
		})
	}
}
