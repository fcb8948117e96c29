package proxy

import (
	"bytes"
	"io"
	"net/http"

	internal_errors "github.com/bricks-cloud/genrelay/internal/errors"
	"github.com/bricks-cloud/genrelay/internal/relay"
	"github.com/bricks-cloud/genrelay/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

func getGenerateTextHandler(r relayer, prod bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := util.GetLogFromCtx(c)
		logInfo(log, "generate text start", prod)

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			fail(c, log, prod, "error when reading request body", err)
			return
		}

		if len(bytes.TrimSpace(body)) != 0 && !gjson.ValidBytes(body) {
			fail(c, log, prod, "error when parsing request body", internal_errors.NewValidationError("request body must be valid json"))
			return
		}

		// a missing prompt is forwarded as an empty one
		prompt := gjson.GetBytes(body, promptField).String()

		result, err := r.GenerateText(detachedContext(c), prompt)
		if err != nil {
			fail(c, log, prod, "error when generating text", err)
			return
		}

		c.JSON(http.StatusOK, &relay.Result{Result: result})
	}
}
