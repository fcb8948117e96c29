package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnvVariables(t *testing.T) {
	t.Run("when only the gemini key is set", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")

		cfg, err := ParseEnvVariables()
		require.Nil(t, err)

		assert.Equal(t, "3000", cfg.Port)
		assert.Equal(t, GeminiProvider, cfg.ModelProvider)
		assert.Equal(t, "gemini-2.5-flash", cfg.Model())
		assert.Equal(t, int64(32<<20), cfg.MaxUploadSizeBytes)
		assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	})

	t.Run("when port is overridden", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("PORT", "8080")

		cfg, err := ParseEnvVariables()
		require.Nil(t, err)
		assert.Equal(t, "8080", cfg.Port)
	})

	t.Run("when the gemini key is missing", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "")

		_, err := ParseEnvVariables()
		assert.NotNil(t, err)
	})

	t.Run("when the provider is openai", func(t *testing.T) {
		t.Setenv("MODEL_PROVIDER", "openai")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("OPENAI_MODEL", "gpt-4o")

		cfg, err := ParseEnvVariables()
		require.Nil(t, err)
		assert.Equal(t, "gpt-4o", cfg.Model())
	})

	t.Run("when the provider is unknown", func(t *testing.T) {
		t.Setenv("MODEL_PROVIDER", "bedrock")
		t.Setenv("GEMINI_API_KEY", "test-key")

		_, err := ParseEnvVariables()
		assert.NotNil(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("when the file does not exist", func(t *testing.T) {
		err := LoadDotEnv(filepath.Join(t.TempDir(), ".env"))
		assert.Nil(t, err)
	})

	t.Run("when the file exists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.Nil(t, os.WriteFile(path, []byte("GENRELAY_DOTENV_TEST=loaded\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("GENRELAY_DOTENV_TEST") })

		require.Nil(t, LoadDotEnv(path))
		assert.Equal(t, "loaded", os.Getenv("GENRELAY_DOTENV_TEST"))
	})
}
