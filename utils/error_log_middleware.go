package utils

import (
	"time"

	"valentine/logging"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorLogWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w errorLogWriter) Write(b []byte) (int, error) {
	status := w.gc.Writer.Status()
	if status >= 400 {
		logging.Log.Debug("Error response", zap.Int("status", status), zap.String("path", w.gc.Request.URL.Path), zap.ByteString("body", b))
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware doesn't work with GZIP
func ErrorLogMiddleware(c *gin.Context) {
	blw := &errorLogWriter{gc: c, ResponseWriter: c.Writer}
	c.Writer = blw
	c.Next()
}

// AccessLogMiddleware replaces gin's default logger
func AccessLogMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()
	logging.Log.Info("Request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Int("size", c.Writer.Size()),
		zap.Duration("latency", time.Since(start)),
		zap.String("ip", c.ClientIP()),
	)
}
