package relay

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/bricks-cloud/genrelay/config"
	internal_errors "github.com/bricks-cloud/genrelay/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	calls    int
	model    string
	contents []*genai.Content
	resp     *genai.GenerateContentResponse
	err      error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.model = model
	f.contents = contents
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: genai.NewContentFromText(text, genai.RoleModel)},
		},
	}
}

func newTestVariant(t *testing.T, suffix string) *config.Variant {
	v := &config.Variant{FormatSuffix: &suffix}
	require.Nil(t, v.Validate())
	return v
}

func TestRelay_GenerateText(t *testing.T) {
	t.Run("when the model answers", func(t *testing.T) {
		gen := &fakeGenerator{resp: textResponse("halo")}
		r := New(gen, "gemini", "gemini-2.5-flash", newTestVariant(t, " [md]"), zap.NewNop())

		result, err := r.GenerateText(context.Background(), "hi")
		require.Nil(t, err)

		assert.Equal(t, "halo", result)
		assert.Equal(t, "gemini-2.5-flash", gen.model)
		require.Len(t, gen.contents, 1)
		assert.Equal(t, "hi", gen.contents[0].Parts[0].Text)
	})

	t.Run("when the prompt is empty it is still forwarded", func(t *testing.T) {
		gen := &fakeGenerator{resp: textResponse("?")}
		r := New(gen, "gemini", "gemini-2.5-flash", newTestVariant(t, " [md]"), zap.NewNop())

		_, err := r.GenerateText(context.Background(), "")
		require.Nil(t, err)

		assert.Equal(t, 1, gen.calls)
		assert.Equal(t, "", gen.contents[0].Parts[0].Text)
	})

	t.Run("when the model call fails", func(t *testing.T) {
		gen := &fakeGenerator{err: errors.New("API key not valid")}
		r := New(gen, "gemini", "gemini-2.5-flash", newTestVariant(t, ""), zap.NewNop())

		_, err := r.GenerateText(context.Background(), "hi")
		require.NotNil(t, err)

		assert.Equal(t, "API key not valid", err.Error())
		var ue *internal_errors.UpstreamError
		assert.True(t, errors.As(err, &ue))
	})

	t.Run("when the model returns no text", func(t *testing.T) {
		gen := &fakeGenerator{resp: &genai.GenerateContentResponse{}}
		r := New(gen, "gemini", "gemini-2.5-flash", newTestVariant(t, ""), zap.NewNop())

		result, err := r.GenerateText(context.Background(), "hi")
		require.Nil(t, err)
		assert.True(t, json.Valid([]byte(result)))
	})
}

func TestRelay_GenerateFromImage(t *testing.T) {
	t.Run("when an image is attached", func(t *testing.T) {
		gen := &fakeGenerator{resp: textResponse("a cat")}
		r := New(gen, "gemini", "gemini-2.5-flash", newTestVariant(t, " [md]"), zap.NewNop())

		att := &Attachment{MIMEType: "image/jpeg", Data: []byte("jpeg-bytes")}
		result, err := r.GenerateFromImage(context.Background(), "what is this?", att)
		require.Nil(t, err)

		assert.Equal(t, "a cat", result)
		require.Len(t, gen.contents, 1)
		require.Len(t, gen.contents[0].Parts, 2)
		assert.Equal(t, "what is this? [md]", gen.contents[0].Parts[0].Text)
		assert.Equal(t, "image/jpeg", gen.contents[0].Parts[1].InlineData.MIMEType)
		assert.Equal(t, []byte("jpeg-bytes"), gen.contents[0].Parts[1].InlineData.Data)
	})

	t.Run("when no image is attached", func(t *testing.T) {
		gen := &fakeGenerator{resp: textResponse("a cat")}
		r := New(gen, "gemini", "gemini-2.5-flash", newTestVariant(t, " [md]"), zap.NewNop())

		_, err := r.GenerateFromImage(context.Background(), "what is this?", nil)
		require.NotNil(t, err)

		assert.Equal(t, 0, gen.calls)
		var ve *internal_errors.ValidationError
		assert.True(t, errors.As(err, &ve))
	})
}

func TestRelay_GenerateFromDocument(t *testing.T) {
	att := &Attachment{MIMEType: "application/pdf", Data: []byte("%PDF-1.7")}

	t.Run("when the prompt is empty the default is used", func(t *testing.T) {
		gen := &fakeGenerator{resp: textResponse("ringkasan")}
		r := New(gen, "gemini", "gemini-2.5-flash", newTestVariant(t, " [md]"), zap.NewNop())

		_, err := r.GenerateFromDocument(context.Background(), "", att)
		require.Nil(t, err)

		assert.Equal(t, config.DefaultDocumentPrompt+" [md]", gen.contents[0].Parts[0].Text)
		assert.Equal(t, "application/pdf", gen.contents[0].Parts[1].InlineData.MIMEType)
	})

	t.Run("when the prompt is set it is forwarded", func(t *testing.T) {
		gen := &fakeGenerator{resp: textResponse("ringkasan")}
		r := New(gen, "gemini", "gemini-2.5-flash", newTestVariant(t, ""), zap.NewNop())

		_, err := r.GenerateFromDocument(context.Background(), "list the parties", att)
		require.Nil(t, err)

		assert.Equal(t, "list the parties", gen.contents[0].Parts[0].Text)
	})

	t.Run("when no document is attached", func(t *testing.T) {
		gen := &fakeGenerator{resp: textResponse("ringkasan")}
		r := New(gen, "gemini", "gemini-2.5-flash", newTestVariant(t, ""), zap.NewNop())

		_, err := r.GenerateFromDocument(context.Background(), "", nil)
		assert.NotNil(t, err)
		assert.Equal(t, 0, gen.calls)
	})
}

func TestRelay_DocumentPrompt(t *testing.T) {
	suffix := config.DefaultFormatSuffix
	r := New(&fakeGenerator{}, "gemini", "m", newTestVariant(t, suffix), nil)

	assert.Equal(t, config.DefaultDocumentPrompt+suffix, r.DocumentPrompt(""))
	assert.Equal(t, "summarize"+suffix, r.DocumentPrompt("summarize"))
	assert.Equal(t, "describe"+suffix, r.ImagePrompt("describe"))
}

func TestRelay_Chat(t *testing.T) {
	t.Run("when messages is an array", func(t *testing.T) {
		gen := &fakeGenerator{resp: textResponse("apa kabar")}
		r := New(gen, "gemini", "gemini-2.5-flash", newTestVariant(t, " [md]"), zap.NewNop())

		result, err := r.Chat(context.Background(), []byte(`{"messages":[{"role":"user","content":"hi"},{"role":"model","content":"hello"}]}`))
		require.Nil(t, err)

		assert.Equal(t, "apa kabar", result)
		require.Len(t, gen.contents, 2)
		assert.Equal(t, "user", gen.contents[0].Role)
		assert.Equal(t, "hi [md]", gen.contents[0].Parts[0].Text)
		assert.Equal(t, "model", gen.contents[1].Role)
		assert.Equal(t, "hello [md]", gen.contents[1].Parts[0].Text)
	})

	t.Run("when messages is not an array", func(t *testing.T) {
		gen := &fakeGenerator{resp: textResponse("apa kabar")}
		r := New(gen, "gemini", "gemini-2.5-flash", newTestVariant(t, " [md]"), zap.NewNop())

		for _, body := range []string{`{"messages":{"role":"user"}}`, `{"messages":"hi"}`, `{}`} {
			_, err := r.Chat(context.Background(), []byte(body))
			require.NotNil(t, err, body)
			assert.Equal(t, "messages must be an array", err.Error())
		}

		assert.Equal(t, 0, gen.calls)
	})
}
