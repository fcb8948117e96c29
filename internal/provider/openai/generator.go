package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

const ProviderName = "openai"

type Config struct {
	ApiKey     string
	BaseUrl    string
	HttpClient *http.Client
}

type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

// Generator serves relay payloads from an OpenAI compatible chat
// completions endpoint and reshapes the answer like a Gemini response.
type Generator struct {
	client chatCompleter
}

func NewGenerator(cfg Config) *Generator {
	oc := goopenai.DefaultConfig(cfg.ApiKey)
	if len(cfg.BaseUrl) != 0 {
		oc.BaseURL = cfg.BaseUrl
	}

	if cfg.HttpClient != nil {
		oc.HTTPClient = cfg.HttpClient
	}

	return &Generator{
		client: goopenai.NewClientWithConfig(oc),
	}
}

func (g *Generator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, _ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	messages, err := toChatMessages(contents)
	if err != nil {
		return nil, err
	}

	res, err := g.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    model,
		Messages: messages,
	})
	if err != nil {
		return nil, err
	}

	return toGenerateContentResponse(&res), nil
}

func toRole(role string) string {
	switch role {
	case "", string(genai.RoleUser):
		return goopenai.ChatMessageRoleUser
	case string(genai.RoleModel):
		return goopenai.ChatMessageRoleAssistant
	}

	return role
}

func toChatMessages(contents []*genai.Content) ([]goopenai.ChatCompletionMessage, error) {
	messages := make([]goopenai.ChatCompletionMessage, 0, len(contents))

	for _, content := range contents {
		if content == nil {
			continue
		}

		texts := []string{}
		parts := []goopenai.ChatMessagePart{}
		multi := false

		for _, part := range content.Parts {
			if part == nil {
				continue
			}

			if part.InlineData != nil {
				if !strings.HasPrefix(part.InlineData.MIMEType, "image/") {
					return nil, fmt.Errorf("openai provider does not accept inline %s data", part.InlineData.MIMEType)
				}

				multi = true
				parts = append(parts, goopenai.ChatMessagePart{
					Type: goopenai.ChatMessagePartTypeImageURL,
					ImageURL: &goopenai.ChatMessageImageURL{
						URL:    fmt.Sprintf("data:%s;base64,%s", part.InlineData.MIMEType, base64.StdEncoding.EncodeToString(part.InlineData.Data)),
						Detail: goopenai.ImageURLDetailAuto,
					},
				})
				continue
			}

			texts = append(texts, part.Text)
			parts = append(parts, goopenai.ChatMessagePart{
				Type: goopenai.ChatMessagePartTypeText,
				Text: part.Text,
			})
		}

		msg := goopenai.ChatCompletionMessage{
			Role: toRole(content.Role),
		}

		if multi {
			msg.MultiContent = parts
		} else {
			msg.Content = strings.Join(texts, "\n")
		}

		messages = append(messages, msg)
	}

	return messages, nil
}

func toFinishReason(reason goopenai.FinishReason) genai.FinishReason {
	switch reason {
	case goopenai.FinishReasonStop:
		return genai.FinishReasonStop
	case goopenai.FinishReasonLength:
		return genai.FinishReasonMaxTokens
	case goopenai.FinishReasonContentFilter:
		return genai.FinishReasonSafety
	case "":
		return ""
	}

	return genai.FinishReasonOther
}

func toGenerateContentResponse(res *goopenai.ChatCompletionResponse) *genai.GenerateContentResponse {
	resp := &genai.GenerateContentResponse{
		ModelVersion: res.Model,
	}

	for _, choice := range res.Choices {
		candidate := &genai.Candidate{
			FinishReason: toFinishReason(choice.FinishReason),
		}

		if len(choice.Message.Content) != 0 {
			candidate.Content = genai.NewContentFromText(choice.Message.Content, genai.RoleModel)
		}

		resp.Candidates = append(resp.Candidates, candidate)
	}

	return resp
}
