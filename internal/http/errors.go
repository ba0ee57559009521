package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"taskboard/internal/domain"
	"taskboard/internal/service"
)

// statusFor maps an error to a status code and a message that is safe to return.
func statusFor(err error) (int, string) {
	if errors.Is(err, service.ErrExportsDisabled) {
		return http.StatusServiceUnavailable, err.Error()
	}

	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError, "internal server error"
	}
	switch de.Kind {
	case domain.KindValidation:
		return http.StatusBadRequest, de.Message
	case domain.KindConflict:
		return http.StatusConflict, de.Message
	case domain.KindUnauthorized:
		return http.StatusUnauthorized, de.Message
	case domain.KindNotFound:
		return http.StatusNotFound, de.Message
	}
	return http.StatusInternalServerError, "internal server error"
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("request failed")
	}
	if domain.IsRetryable(err) {
		c.Header("Retry-After", "1")
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
