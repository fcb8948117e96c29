package proxy

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/bricks-cloud/genrelay/internal/relay"
	"github.com/bricks-cloud/genrelay/internal/util"
	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
)

const genericMIMEType = "application/octet-stream"

// readAttachment loads the uploaded file under field into memory. A request
// without that file yields a nil attachment and no error; the relay decides
// how to reject it.
func readAttachment(c *gin.Context, field string) (*relay.Attachment, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}

		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	mimeType := fh.Header.Get("Content-Type")
	if len(mimeType) == 0 || mimeType == genericMIMEType {
		mimeType = mimetype.Detect(data).String()
	}

	// parameters such as charset are not part of an inline data type
	mimeType, _, _ = strings.Cut(mimeType, ";")

	return &relay.Attachment{
		MIMEType: strings.TrimSpace(mimeType),
		Data:     data,
	}, nil
}

func getGenerateFromImageHandler(r relayer, prod bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := util.GetLogFromCtx(c)
		logInfo(log, "generate from image start", prod)

		att, err := readAttachment(c, imageField)
		if err != nil {
			fail(c, log, prod, "error when reading uploaded image", err)
			return
		}

		result, err := r.GenerateFromImage(detachedContext(c), c.PostForm(promptField), att)
		if err != nil {
			fail(c, log, prod, "error when generating from image", err)
			return
		}

		c.JSON(http.StatusOK, &relay.Result{Result: result})
	}
}

func getGenerateFromDocumentHandler(r relayer, prod bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := util.GetLogFromCtx(c)
		logInfo(log, "generate from document start", prod)

		att, err := readAttachment(c, documentField)
		if err != nil {
			fail(c, log, prod, "error when reading uploaded document", err)
			return
		}

		result, err := r.GenerateFromDocument(detachedContext(c), c.PostForm(promptField), att)
		if err != nil {
			fail(c, log, prod, "error when generating from document", err)
			return
		}

		c.JSON(http.StatusOK, &relay.Result{Result: result})
	}
}
