package middleware

import (
	"net/http"
	"time"

	"proassignment/pkg"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AccessLog writes one logrus entry per request.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(log.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
		if id := c.GetString(ContextUserID); id != "" {
			entry = entry.WithField("user_id", id)
		}
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("[http] request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("[http] request rejected")
		default:
			entry.Info("[http] request served")
		}
	}
}

// Recovery renders panics as the standard 500 error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.WithField("path", c.Request.URL.Path).Errorf("[http] recovered from panic: %v", recovered)
		appErr := pkg.NewDomainErrorSimple("INTERNAL_ERROR", "An internal error occurred", http.StatusInternalServerError)
		c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
	})
}
