package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"studiobooking/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs every request with latency and recovers from panics
// so one broken handler never takes the server down.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		defer func() {
			if recovered := recover(); recovered != nil {
				logger.Log.WithFields(logrus.Fields{
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
					"panic":  recovered,
					"stack":  string(debug.Stack()),
				}).Error("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "INTERNAL_ERROR",
						"message": "Internal server error",
					},
				})
				return
			}

			entry := logger.Log.WithFields(logrus.Fields{
				"method":    c.Request.Method,
				"path":      c.Request.URL.Path,
				"status":    c.Writer.Status(),
				"latency":   time.Since(start).String(),
				"client_ip": c.ClientIP(),
			})
			if userID := c.GetInt64("user_id"); userID != 0 {
				entry = entry.WithField("user_id", userID)
			}

			switch {
			case c.Writer.Status() >= http.StatusInternalServerError:
				entry.Error("request failed")
			case c.Writer.Status() >= http.StatusBadRequest:
				entry.Warn("request rejected")
			default:
				entry.Info("request")
			}
		}()

		c.Next()
	}
}
