package proxy

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/bricks-cloud/genrelay/internal/telemetry"
	"github.com/bricks-cloud/genrelay/internal/telemetry/metricname"
	"github.com/bricks-cloud/genrelay/internal/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const correlationIdHeader = "X-Correlation-Id"

type ErrorResponse struct {
	Error string `json:"error"`
}

func JSON(c *gin.Context, code int, message string) {
	c.JSON(code, &ErrorResponse{
		Error: message,
	})
}

func getMiddleware(log *zap.Logger, prod bool, maxBodyBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request == nil {
			JSON(c, http.StatusInternalServerError, "request is empty")
			c.Abort()
			return
		}

		cid := c.GetHeader(correlationIdHeader)
		if len(cid) == 0 {
			cid = util.NewUuid()
		}

		c.Set(util.CorrelationIdKey, cid)
		c.Header(correlationIdHeader, cid)
		util.SetLogInCtx(c, log.With(zap.String(correlationId, cid)))

		if c.Request.Body != nil && maxBodyBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)
		}

		start := time.Now()

		c.Next()

		dur := time.Since(start)
		latency := int(dur.Milliseconds())

		path := c.FullPath()
		if len(path) == 0 {
			path = "unmatched"
		}

		if !prod {
			log.Sugar().Infof("%s | %d | %s | %s | %dms", cid, c.Writer.Status(), c.Request.Method, path, latency)
		}

		if prod {
			log.Info("response to relay",
				zap.String(correlationId, cid),
				zap.Int("code", c.Writer.Status()),
				zap.String("method", c.Request.Method),
				zap.String("path", path),
				zap.Int("latencyInMs", latency),
			)
		}

		telemetry.Timing(metricname.HISTOGRAM_WEB_LATENCY, dur, []string{"path:" + path}, 1)
		telemetry.Incr(metricname.COUNTER_WEB_RESPONSES, []string{
			"status:" + strconv.Itoa(c.Writer.Status()),
			"path:" + path,
		}, 1)
	}
}

// detachedContext keeps request scoped values such as the trace span but
// is not cancelled when the client goes away, so an in-flight model call
// always runs to completion.
func detachedContext(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}

func logInfo(log *zap.Logger, msg string, prod bool) {
	if prod {
		log.Info(msg)
		return
	}

	log.Sugar().Infof("--- %s ---", msg)
}

func logError(log *zap.Logger, msg string, prod bool, err error) {
	if prod {
		log.Error(msg, zap.Error(err))
		return
	}

	log.Sugar().Errorf("%s | %v", msg, err)
}

// fail answers every relay error the same way: 500 with the error text.
func fail(c *gin.Context, log *zap.Logger, prod bool, msg string, err error) {
	logError(log, msg, prod, err)
	JSON(c, http.StatusInternalServerError, err.Error())
}
