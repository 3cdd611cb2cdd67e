package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID carries the caller-supplied or generated request id.
	HeaderRequestID = "X-Request-ID"

	contextUsernameKey = "username"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Header(HeaderRequestID, rid)
		c.Set("request_id", rid)
		c.Next()
	}
}

// AuthRequired resolves the session cookie to a customer and stores the
// username in the request context. Everything under /v1 except the auth
// routes runs behind it.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		sess, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUsernameKey, sess.Username)
		c.Next()
	}
}

func usernameFromContext(c *gin.Context) (string, bool) {
	username := c.GetString(contextUsernameKey)
	if username == "" {
		return "", false
	}
	return username, true
}
