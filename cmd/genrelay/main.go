package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	variantConfig "github.com/bricks-cloud/genrelay/config"
	"github.com/bricks-cloud/genrelay/internal/config"
	"github.com/bricks-cloud/genrelay/internal/logger/zap"
	"github.com/bricks-cloud/genrelay/internal/provider/gemini"
	"github.com/bricks-cloud/genrelay/internal/provider/openai"
	"github.com/bricks-cloud/genrelay/internal/relay"
	"github.com/bricks-cloud/genrelay/internal/server/web/proxy"
	"github.com/bricks-cloud/genrelay/internal/telemetry"
	"github.com/gin-gonic/gin"
)

func main() {
	modePtr := flag.String("m", "dev", "select the mode that genrelay runs in")
	envPtr := flag.String("e", ".env", "dotenv file loaded before parsing environment variables")
	flag.Parse()

	log := zap.NewLogger(*modePtr)
	lg := log.Sugar()

	gin.SetMode(gin.ReleaseMode)

	if err := config.LoadDotEnv(*envPtr); err != nil {
		lg.Fatalf("cannot load dotenv file: %v", err)
	}

	cfg, err := config.ParseEnvVariables()
	if err != nil {
		lg.Fatalf("cannot parse environment variables: %v", err)
	}

	variant, err := variantConfig.NewVariant(cfg.VariantFile)
	if err != nil {
		lg.Fatalf("cannot load variant: %v", err)
	}

	otelShutdown, err := telemetry.SetupOTelSDK(context.Background(), cfg)
	if err != nil {
		lg.Fatalf("cannot set up open telemetry: %v", err)
	}

	if err := telemetry.Init(cfg, log); err != nil {
		lg.Fatalf("cannot initialize telemetry: %v", err)
	}

	var gen relay.Generator
	providerName := gemini.ProviderName

	switch cfg.ModelProvider {
	case config.OpenAiProvider:
		providerName = openai.ProviderName
		gen = openai.NewGenerator(openai.Config{
			ApiKey:     cfg.OpenAiKey,
			BaseUrl:    cfg.OpenAiBaseUrl,
			HttpClient: telemetry.NewHTTPClient(),
		})
	default:
		gen, err = gemini.NewGenerator(context.Background(), gemini.Config{
			ApiKey:     cfg.GeminiKey,
			BaseUrl:    cfg.GeminiBaseUrl,
			HttpClient: telemetry.NewHTTPClient(),
		})
		if err != nil {
			lg.Fatalf("cannot create gemini client: %v", err)
		}
	}

	r := relay.New(gen, providerName, cfg.Model(), variant, log)

	ps, err := proxy.NewProxyServer(log, *modePtr, cfg.Port, r, variant, cfg.MaxUploadSizeBytes)
	if err != nil {
		lg.Fatalf("cannot create relay server: %v", err)
	}

	ps.Run()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := ps.Shutdown(ctx); err != nil {
		lg.Debugf("relay server shutdown: %v", err)
	}

	if err := telemetry.Shutdown(ctx); err != nil {
		lg.Debugf("telemetry shutdown: %v", err)
	}

	if err := otelShutdown(ctx); err != nil {
		lg.Debugf("open telemetry shutdown: %v", err)
	}

	select {
	case <-ctx.Done():
		lg.Infof("timeout of %s", cfg.ShutdownTimeout)
	default:
	}

	lg.Info("server exited")
}
