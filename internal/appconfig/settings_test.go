package appconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/C2SM/ethiopia/internal/logging"
)

func TestLoad(t *testing.T) {
	t.Run("Should resolve defaults when nothing else is set", func(t *testing.T) {
		s, err := Load(Overrides{})

		require.NoError(t, err)
		assert.Equal(t, logging.InfoLevel, s.LogLevel)
		assert.False(t, s.Strict)
	})

	t.Run("Should take environment variables over defaults", func(t *testing.T) {
		t.Setenv("ETHIOPIA_LOG_LEVEL", "debug")
		t.Setenv("ETHIOPIA_STRICT", "true")

		s, err := Load(Overrides{})

		require.NoError(t, err)
		assert.Equal(t, logging.DebugLevel, s.LogLevel)
		assert.True(t, s.Strict)
	})

	t.Run("Should take explicit overrides over environment variables", func(t *testing.T) {
		t.Setenv("ETHIOPIA_LOG_LEVEL", "debug")
		t.Setenv("ETHIOPIA_STRICT", "true")
		level := "error"
		strict := false

		s, err := Load(Overrides{LogLevel: &level, Strict: &strict})

		require.NoError(t, err)
		assert.Equal(t, logging.ErrorLevel, s.LogLevel)
		assert.False(t, s.Strict)
	})

	t.Run("Should leave unset overrides at their environment value", func(t *testing.T) {
		t.Setenv("ETHIOPIA_LOG_LEVEL", "warn")
		strict := true

		s, err := Load(Overrides{Strict: &strict})

		require.NoError(t, err)
		assert.Equal(t, logging.WarnLevel, s.LogLevel)
		assert.True(t, s.Strict)
	})
}
