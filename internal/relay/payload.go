package relay

import (
	"bytes"
	"encoding/json"

	internal_errors "github.com/bricks-cloud/genrelay/internal/errors"
	"github.com/tidwall/gjson"
	"google.golang.org/genai"
)

type Attachment struct {
	MIMEType string
	Data     []byte
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Result struct {
	Result string `json:"result"`
}

// TextContents forwards prompt as is, empty or not.
func TextContents(prompt string) []*genai.Content {
	return genai.Text(prompt)
}

// AttachmentContents builds one user turn holding the prompt followed by the
// attachment as inline data. The SDK base64 encodes Data on the wire.
func AttachmentContents(prompt string, att *Attachment) []*genai.Content {
	return []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(att.Data, att.MIMEType),
		}, genai.RoleUser),
	}
}

// ChatContents maps messages to contents one to one, in order, keeping each
// role verbatim and appending suffix to each message text.
func ChatContents(messages []ChatMessage, suffix string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, msg := range messages {
		contents = append(contents, &genai.Content{
			Role: msg.Role,
			Parts: []*genai.Part{
				genai.NewPartFromText(msg.Content + suffix),
			},
		})
	}

	return contents
}

// ParseChatMessages reads the "messages" array of a chat request body.
func ParseChatMessages(body []byte) ([]ChatMessage, error) {
	if len(bytes.TrimSpace(body)) != 0 && !gjson.ValidBytes(body) {
		return nil, internal_errors.NewValidationError("request body must be valid json")
	}

	result := gjson.GetBytes(body, "messages")
	if !result.IsArray() {
		return nil, internal_errors.NewValidationError("messages must be an array")
	}

	messages := []ChatMessage{}
	err := json.Unmarshal([]byte(result.Raw), &messages)
	if err != nil {
		return nil, internal_errors.WrapValidationError("messages must be an array of {role, content} objects", err)
	}

	return messages, nil
}
