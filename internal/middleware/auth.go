package middleware

import (
	"net/http"

	"taskboard/backend/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	// ContextSession is the gin context key holding the resolved Session.
	ContextSession = "session"
	// ContextUserID is the gin context key holding the session's user id.
	ContextUserID = "user_id"
)

// RequireSession resolves the session cookie and aborts with 401 when
// there is none. The 401 stands in for the original app's
// redirect-to-login.
func RequireSession(store *session.Store, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "not_logged_in",
				"message": "Login is required",
			})
			return
		}

		sess, err := store.Resolve(c.Request.Context(), token)
		if err == session.ErrNotLoggedIn {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "not_logged_in",
				"message": "Session is missing or expired",
			})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "failed to resolve session",
			})
			return
		}

		c.Set(ContextSession, sess)
		c.Set(ContextUserID, sess.UserID)
		c.Next()
	}
}

// CurrentSession returns the session set by RequireSession. Handlers
// outside the protected group get an anonymous session.
func CurrentSession(c *gin.Context) session.Session {
	value, exists := c.Get(ContextSession)
	if !exists {
		return session.Anonymous()
	}
	sess, ok := value.(session.Session)
	if !ok {
		return session.Anonymous()
	}
	return sess
}
