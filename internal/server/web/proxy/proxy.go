package proxy

import (
	"context"
	"errors"
	"net/http"

	"github.com/bricks-cloud/genrelay/config"
	"github.com/bricks-cloud/genrelay/internal/relay"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

const (
	correlationId = "correlationId"
	imageField    = "image"
	documentField = "document"
	promptField   = "prompt"
)

type relayer interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateFromImage(ctx context.Context, prompt string, att *relay.Attachment) (string, error)
	GenerateFromDocument(ctx context.Context, prompt string, att *relay.Attachment) (string, error)
	Chat(ctx context.Context, body []byte) (string, error)
	ChatEnabled() bool
	Model() string
}

type corsConfig interface {
	Enabled() bool
	GetAllowedOrigins() []string
	GetAllowedCredentials() bool
}

type ProxyServer struct {
	server      *http.Server
	log         *zap.Logger
	port        string
	chatEnabled bool
	model       string
}

func NewProxyServer(log *zap.Logger, mode, port string, r relayer, variant *config.Variant, maxUploadSizeBytes int64) (*ProxyServer, error) {
	if r == nil {
		return nil, errors.New("relay is not configured")
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: newHandler(log, mode == "production", r, variant.GetCorsConfig(), maxUploadSizeBytes),
	}

	return &ProxyServer{
		server:      srv,
		log:         log,
		port:        port,
		chatEnabled: r.ChatEnabled(),
		model:       r.Model(),
	}, nil
}

func newHandler(log *zap.Logger, prod bool, r relayer, cc corsConfig, maxUploadSizeBytes int64) http.Handler {
	router := gin.New()
	router.MaxMultipartMemory = maxUploadSizeBytes

	router.Use(getOtelMiddlware())
	router.Use(getMiddleware(log, prod, maxUploadSizeBytes))

	router.GET("/api/health", getHealthCheckHandler())

	router.POST("/generate-text", getGenerateTextHandler(r, prod))
	router.POST("/generate-from-image", getGenerateFromImageHandler(r, prod))
	router.POST("/generate-from-document", getGenerateFromDocumentHandler(r, prod))

	if r.ChatEnabled() {
		router.POST("/api/chat", getChatHandler(r, prod))
	}

	if cc == nil || !cc.Enabled() {
		return router
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   cc.GetAllowedOrigins(),
		AllowCredentials: cc.GetAllowedCredentials(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{correlationIdHeader},
	})(router)
}

func getHealthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Status(http.StatusOK)
	}
}

func (ps *ProxyServer) Run() {
	go func() {
		ps.log.Sugar().Infof("relay server listening at %s", ps.port)
		ps.log.Sugar().Infof("PORT %s | POST  | /generate-text is ready for forwarding text prompts to %s", ps.port, ps.model)
		ps.log.Sugar().Infof("PORT %s | POST  | /generate-from-image is ready for forwarding images to %s", ps.port, ps.model)
		ps.log.Sugar().Infof("PORT %s | POST  | /generate-from-document is ready for forwarding documents to %s", ps.port, ps.model)
		if ps.chatEnabled {
			ps.log.Sugar().Infof("PORT %s | POST  | /api/chat is ready for forwarding conversations to %s", ps.port, ps.model)
		}

		if err := ps.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ps.log.Sugar().Fatalf("error relay server listening: %v", err)
			return
		}
	}()
}

func (ps *ProxyServer) Shutdown(ctx context.Context) error {
	if err := ps.server.Shutdown(ctx); err != nil {
		ps.log.Sugar().Infof("error shutting down relay server: %v", err)

		return err
	}

	return nil
}
