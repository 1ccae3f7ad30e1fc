package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trinhdvt/storefront/internal/config"
)

func TestLogFormatUnmarshalText(t *testing.T) {
	t.Run("Should parse known formats case-insensitively", func(t *testing.T) {
		var f config.LogFormat

		assert.NoError(t, f.UnmarshalText([]byte("text")))
		assert.Equal(t, config.LogFormatText, f)

		assert.NoError(t, f.UnmarshalText([]byte("JSON")))
		assert.Equal(t, config.LogFormatJSON, f)
	})

	t.Run("Should reject unknown format", func(t *testing.T) {
		var f config.LogFormat
		assert.Error(t, f.UnmarshalText([]byte("yaml")))
	})

	t.Run("Should round-trip through MarshalText", func(t *testing.T) {
		b, err := config.LogFormatText.MarshalText()
		assert.NoError(t, err)
		assert.Equal(t, "TEXT", string(b))
	})
}
