// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "pos_session"

	sessionKey = "session_id"
)

var validSessionID = regexp.MustCompile(`^[A-Za-z0-9_-]{8,128}$`)

// Session identifies the till a request belongs to. The id comes from the
// X-Session-ID header or the pos_session cookie; a new one is issued when
// neither carries a usable value.
func Session(ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			sessionID, _ = c.Cookie(SessionCookie)
		}
		if !validSessionID.MatchString(sessionID) {
			sessionID = uuid.New().String()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, sessionID, int(ttl.Seconds()), "/", "", secure, true)
		c.Header(SessionHeader, sessionID)
		c.Set(sessionKey, sessionID)

		c.Next()
	}
}

// GetSessionID extracts the session id from gin context
func GetSessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
