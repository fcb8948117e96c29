package util

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CorrelationIdKey = "correlationId"
	loggerKey        = "logger"
)

func NewUuid() string {
	return uuid.New().String()
}

// SetLogInCtx stores a logger scoped to the current request.
func SetLogInCtx(c *gin.Context, log *zap.Logger) {
	c.Set(loggerKey, log)
}

// GetLogFromCtx returns the request scoped logger, or a no-op logger when
// none was stored.
func GetLogFromCtx(c *gin.Context) *zap.Logger {
	if c != nil {
		if raw, exists := c.Get(loggerKey); exists {
			if log, ok := raw.(*zap.Logger); ok {
				return log
			}
		}
	}

	return zap.NewNop()
}
