package relay

import (
	"context"
	"time"

	"github.com/bricks-cloud/genrelay/config"
	internal_errors "github.com/bricks-cloud/genrelay/internal/errors"
	"github.com/bricks-cloud/genrelay/internal/telemetry"
	"github.com/bricks-cloud/genrelay/internal/telemetry/metricname"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	OperationText     = "text"
	OperationImage    = "image"
	OperationDocument = "document"
	OperationChat     = "chat"
)

// Generator is the model call every operation ends in. *genai.Models
// satisfies it directly.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Relay struct {
	gen      Generator
	provider string
	model    string
	variant  *config.Variant
	log      *zap.Logger
}

func New(gen Generator, provider, model string, variant *config.Variant, log *zap.Logger) *Relay {
	if log == nil {
		log = zap.NewNop()
	}

	return &Relay{
		gen:      gen,
		provider: provider,
		model:    model,
		variant:  variant,
		log:      log,
	}
}

func (r *Relay) Model() string {
	return r.model
}

func (r *Relay) ChatEnabled() bool {
	return r.variant.GetChatEnabled()
}

func (r *Relay) GenerateText(ctx context.Context, prompt string) (string, error) {
	return r.run(ctx, OperationText, func() ([]*genai.Content, error) {
		return TextContents(prompt), nil
	})
}

func (r *Relay) GenerateFromImage(ctx context.Context, prompt string, att *Attachment) (string, error) {
	return r.run(ctx, OperationImage, func() ([]*genai.Content, error) {
		if att == nil {
			return nil, internal_errors.NewValidationError("image file is required")
		}

		return AttachmentContents(r.ImagePrompt(prompt), att), nil
	})
}

func (r *Relay) GenerateFromDocument(ctx context.Context, prompt string, att *Attachment) (string, error) {
	return r.run(ctx, OperationDocument, func() ([]*genai.Content, error) {
		if att == nil {
			return nil, internal_errors.NewValidationError("document file is required")
		}

		return AttachmentContents(r.DocumentPrompt(prompt), att), nil
	})
}

// Chat relays the "messages" array of body. Anything other than an array
// is rejected before the model is called.
func (r *Relay) Chat(ctx context.Context, body []byte) (string, error) {
	return r.run(ctx, OperationChat, func() ([]*genai.Content, error) {
		messages, err := ParseChatMessages(body)
		if err != nil {
			return nil, err
		}

		return ChatContents(messages, r.variant.GetFormatSuffix()), nil
	})
}

func (r *Relay) ImagePrompt(prompt string) string {
	return prompt + r.variant.GetFormatSuffix()
}

// DocumentPrompt substitutes the default instruction for an empty prompt
// before the suffix is appended.
func (r *Relay) DocumentPrompt(prompt string) string {
	if len(prompt) == 0 {
		prompt = r.variant.GetDefaultDocumentPrompt()
	}

	return prompt + r.variant.GetFormatSuffix()
}

func (r *Relay) run(ctx context.Context, op string, build func() ([]*genai.Content, error)) (string, error) {
	tags := []string{"operation:" + op}
	telemetry.Incr(metricname.COUNTER_RELAY_REQUESTS, tags, 1)

	contents, err := build()
	if err != nil {
		telemetry.Incr(metricname.COUNTER_RELAY_ERRORS, append(tags, "kind:validation"), 1)
		return "", err
	}

	start := time.Now()
	resp, err := r.gen.GenerateContent(ctx, r.model, contents, nil)
	telemetry.Timing(metricname.HISTOGRAM_RELAY_MODEL_LATENCY, time.Since(start), tags, 1)

	if err != nil {
		telemetry.Incr(metricname.COUNTER_RELAY_ERRORS, append(tags, "kind:upstream"), 1)
		r.log.Debug("model call failed", zap.String("provider", r.provider), zap.String("operation", op), zap.Error(err))
		return "", internal_errors.NewUpstreamError(r.provider, err)
	}

	telemetry.Incr(metricname.COUNTER_RELAY_SUCCESS, tags, 1)

	return ExtractText(r.log, resp), nil
}
