package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const headerDashboardToken = "X-Dashboard-Token"

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http.access")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// TokenAuth gates the API behind a shared dashboard token. An empty configured
// token disables the check entirely.
func (s *Server) TokenAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.DashboardToken == "" {
			c.Next()
			return
		}
		if c.GetHeader(headerDashboardToken) != s.cfg.DashboardToken {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}
