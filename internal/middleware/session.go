package middleware

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/staff-manager/internal/httperr"
	"github.com/BruksfildServices01/staff-manager/internal/infra/session"
)

const contextSession = "session"

type sessionState struct {
	store  session.Store
	cookie string
	ttl    time.Duration
	secure bool

	current   *session.Session
	loaded    bool
	cookieSet bool
}

// SessionMiddleware loads or starts the web session, resolves its user into
// the request principal and saves the session once the handler returns.
// A fresh session is only stored, and only gets a cookie, once it holds a
// user or a flash.
func SessionMiddleware(
	store session.Store,
	cookieName string,
	ttl time.Duration,
	resolver PrincipalResolver,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		st := &sessionState{
			store:  store,
			cookie: cookieName,
			ttl:    ttl,
			secure: c.Request.TLS != nil,
		}

		if id, err := c.Cookie(cookieName); err == nil && id != "" {
			s, err := store.Get(ctx, id)
			switch {
			case err == nil:
				st.current = s
				st.loaded = true
			case !errors.Is(err, session.ErrNotFound):
				log.Printf("session load: %v", err)
			}
		}
		if st.current == nil {
			st.current = session.New(ttl)
		}
		originalID := st.current.ID
		if st.loaded {
			st.setCookie(c)
		}

		if st.current.UserID != 0 {
			p, err := resolver.Execute(ctx, st.current.UserID)
			switch {
			case err == nil:
				c.Set(ContextPrincipal, p)
			case httperr.IsKind(err, httperr.KindAuthentication):
				st.current.UserID = 0
			default:
				log.Printf("session principal: %v", err)
			}
		}

		c.Set(contextSession, st)
		c.Next()

		if st.loaded && st.current.ID != originalID {
			if err := store.Delete(ctx, originalID); err != nil {
				log.Printf("session delete: %v", err)
			}
		}
		if !st.dirty(originalID) {
			return
		}
		if err := store.Save(ctx, st.current); err != nil {
			log.Printf("session save: %v", err)
		}
	}
}

func (st *sessionState) dirty(originalID string) bool {
	if st.loaded && st.current.ID == originalID {
		return true
	}
	return st.current.UserID != 0 || len(st.current.Flashes) > 0
}

func (st *sessionState) setCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(st.cookie, st.current.ID, int(st.ttl.Seconds()), "/", "", st.secure, true)
	st.cookieSet = true
}

// Session returns the current web session, or nil outside SessionMiddleware.
func Session(c *gin.Context) *session.Session {
	v, ok := c.Get(contextSession)
	if !ok {
		return nil
	}
	return v.(*sessionState).current
}

// ReplaceSession starts a fresh session bound to userID (0 for logged out)
// and rotates the cookie. Pending flashes carry over.
func ReplaceSession(c *gin.Context, userID uint) *session.Session {
	v, ok := c.Get(contextSession)
	if !ok {
		return nil
	}
	st := v.(*sessionState)

	next := session.New(st.ttl)
	next.UserID = userID
	next.Flashes = st.current.Flashes
	st.current = next
	st.setCookie(c)

	if userID == 0 {
		c.Set(ContextPrincipal, nil)
	}
	return next
}

// Flash queues a message for the next rendered page.
func Flash(c *gin.Context, category, message string) {
	v, ok := c.Get(contextSession)
	if !ok {
		return
	}
	st := v.(*sessionState)
	st.current.AddFlash(category, message)
	if !st.cookieSet {
		st.setCookie(c)
	}
}
