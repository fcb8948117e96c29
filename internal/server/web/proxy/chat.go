package proxy

import (
	"io"
	"net/http"

	"github.com/bricks-cloud/genrelay/internal/relay"
	"github.com/bricks-cloud/genrelay/internal/util"
	"github.com/gin-gonic/gin"
)

func getChatHandler(r relayer, prod bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := util.GetLogFromCtx(c)
		logInfo(log, "process api chat", prod)

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			fail(c, log, prod, "error when reading request body", err)
			return
		}

		result, err := r.Chat(detachedContext(c), body)
		if err != nil {
			fail(c, log, prod, "error when relaying chat", err)
			return
		}

		c.JSON(http.StatusOK, &relay.Result{Result: result})
	}
}
