package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHitLevelWriter(t *testing.T) {
	t.Run("rewrites marked warn entries to hit level", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewHitLevelWriter(&buf)
		w.markNextAsHit()

		_, err := w.Write([]byte(`{"level":"warn","_hit":true,"rule":"AWS Access Key ID","message":"HIT"}`))
		require.NoError(t, err)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hit", entry["level"])
		assert.NotContains(t, entry, "_hit")
		assert.Equal(t, "AWS Access Key ID", entry["rule"])
	})

	t.Run("unmarked entries pass through unchanged", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewHitLevelWriter(&buf)

		line := `{"level":"warn","message":"just a warning"}`
		_, err := w.Write([]byte(line))
		require.NoError(t, err)
		assert.Equal(t, line, buf.String())
	})

	t.Run("the hit mark only applies to the next entry", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewHitLevelWriter(&buf)
		w.markNextAsHit()

		_, err := w.Write([]byte(`{"level":"error","_hit":true,"message":"HIT"}`))
		require.NoError(t, err)
		buf.Reset()

		_, err = w.Write([]byte(`{"level":"error","message":"real error"}`))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), `"level":"error"`)
	})

	t.Run("non-json payloads pass through when marked", func(t *testing.T) {
		var buf bytes.Buffer
		w := NewHitLevelWriter(&buf)
		w.markNextAsHit()

		_, err := w.Write([]byte("plain text line"))
		require.NoError(t, err)
		assert.Equal(t, "plain text line", buf.String())
	})
}

func TestHit(t *testing.T) {
	t.Run("hit events carry fields and the hit level", func(t *testing.T) {
		var buf bytes.Buffer
		writer := NewHitLevelWriter(&buf)
		SetGlobalHitWriter(writer)

		logger := zerolog.New(writer)
		event := &HitEvent{event: logger.WithLevel(zerolog.ErrorLevel), writer: writer}
		event.Str("rule", "Generic Secret Assignment").Int("line", 3).Bool("verified", false).Msg("HIT")

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "hit", entry["level"])
		assert.Equal(t, "Generic Secret Assignment", entry["rule"])
		assert.Equal(t, float64(3), entry["line"])
		assert.Equal(t, "HIT", entry["message"])
	})
}
