package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFormatSuffix   = "\n tolong jawab dalam format markdown, termasuk heading, bold, dan bullet points."
	DefaultDocumentPrompt = "Ringkas dokumen berikut:"
	defaultChatEnabled    = true
	wildcardOrigin        = "*"
)

type CorsConfig struct {
	AllowedOrgins      []string `yaml:"allowed_origins"`
	AllowedCredentials bool     `yaml:"allowed_credentials"`
}

func (cc *CorsConfig) Enabled() bool {
	return cc != nil
}

func (cc *CorsConfig) GetAllowedOrigins() []string {
	if cc == nil {
		return nil
	}

	return cc.AllowedOrgins
}

func (cc *CorsConfig) GetAllowedCredentials() bool {
	if cc == nil {
		return false
	}

	return cc.AllowedCredentials
}

// Variant selects the relay flavour: which prompt suffix is appended, what a
// document request falls back to without a prompt, whether /api/chat is
// served and whether cross-origin requests are allowed.
type Variant struct {
	FormatSuffix          *string     `yaml:"format_suffix"`
	DefaultDocumentPrompt string      `yaml:"default_document_prompt"`
	ChatEnabled           *bool       `yaml:"chat_enabled"`
	CorsDisabled          bool        `yaml:"cors_disabled"`
	CorsConfig            *CorsConfig `yaml:"cors"`
}

// NewVariant returns the built-in variant, optionally overridden by the YAML
// file at filePath. An empty path means no file.
func NewVariant(filePath string) (*Variant, error) {
	v := &Variant{}

	if len(filePath) != 0 {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("error reading variant file %s: %w", filePath, err)
		}

		err = yaml.Unmarshal(data, v)
		if err != nil {
			return nil, fmt.Errorf("error parsing variant file %s: %w", filePath, err)
		}
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	return v, nil
}

func (v *Variant) Validate() error {
	if v.FormatSuffix == nil {
		suffix := DefaultFormatSuffix
		v.FormatSuffix = &suffix
	}

	if len(v.DefaultDocumentPrompt) == 0 {
		v.DefaultDocumentPrompt = DefaultDocumentPrompt
	}

	if v.ChatEnabled == nil {
		enabled := defaultChatEnabled
		v.ChatEnabled = &enabled
	}

	if v.CorsDisabled {
		v.CorsConfig = nil
		return nil
	}

	if v.CorsConfig == nil {
		v.CorsConfig = &CorsConfig{
			AllowedOrgins: []string{wildcardOrigin},
		}
	}

	if len(v.CorsConfig.AllowedOrgins) == 0 {
		return errors.New("cors config is present but allowed_origins is not specified")
	}

	for _, origin := range v.CorsConfig.AllowedOrgins {
		if origin == wildcardOrigin && v.CorsConfig.AllowedCredentials {
			return errors.New("allowed_credentials cannot be combined with a wildcard origin")
		}
	}

	return nil
}

func (v *Variant) GetFormatSuffix() string {
	if v == nil || v.FormatSuffix == nil {
		return DefaultFormatSuffix
	}

	return *v.FormatSuffix
}

func (v *Variant) GetDefaultDocumentPrompt() string {
	if v == nil || len(v.DefaultDocumentPrompt) == 0 {
		return DefaultDocumentPrompt
	}

	return v.DefaultDocumentPrompt
}

func (v *Variant) GetChatEnabled() bool {
	if v == nil || v.ChatEnabled == nil {
		return defaultChatEnabled
	}

	return *v.ChatEnabled
}

func (v *Variant) GetCorsConfig() *CorsConfig {
	if v == nil {
		return nil
	}

	return v.CorsConfig
}
