package http

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskboard/internal/domain"
)

const principalKey = "principal"

var errMissingToken = domain.Unauthorized("missing or invalid token")

// requireAuth is the single authentication point for protected routes. On success the
// caller's user id is stored under principalKey; otherwise the chain stops with 401.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			h.respondError(c, errMissingToken)
			return
		}

		userID, err := h.auth.ValidateToken(c.Request.Context(), token)
		if err != nil {
			h.respondError(c, err)
			return
		}

		c.Set(principalKey, userID)
		c.Next()
	}
}

// principal returns the user id resolved by requireAuth.
func principal(c *gin.Context) int64 {
	return c.GetInt64(principalKey)
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		entry := logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		})
		if id, ok := c.Get(principalKey); ok {
			entry = entry.WithField("user_id", id)
		}
		entry.Info("request")
	}
}
