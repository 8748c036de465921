package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/auth"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/util"
)

// SessionCookieName is the only credential the client ever holds.
const SessionCookieName = "session_token"

// Context keys set by RequireSession.
const (
	ContextUserKey  = "currentUser"
	ContextTokenKey = "sessionToken"
)

// noStore stamps no-cache headers so browser back/forward navigation
// cannot replay authenticated content after logout.
func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}

// RequireSession resolves the session cookie and puts the current user
// into the context. Requests without a live session get a 401.
func RequireSession(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		noStore(c)

		token, _ := c.Cookie(SessionCookieName)
		if token == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized - Please log in")
			c.Abort()
			return
		}

		sess, err := svc.Resolve(c.Request.Context(), token)
		if err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
			c.Abort()
			return
		}
		if sess == nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized - Please log in")
			c.Abort()
			return
		}

		user := sess.User
		c.Set(ContextUserKey, &user)
		c.Set(ContextTokenKey, token)
		c.Next()
	}
}

// CurrentUser pulls the authenticated user placed by RequireSession.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// CurrentToken pulls the raw session token of the current request.
func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}
