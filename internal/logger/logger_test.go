package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlogJSONUsesRFC3339(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlog(SlogConfig{Level: "info", Format: "json", Output: &buf})

	log.Info("animal created", "id", 7)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "animal created", line["msg"])
	assert.EqualValues(t, 7, line["id"])

	_, err := time.Parse(time.RFC3339, line["time"].(string))
	assert.NoError(t, err)
}

func TestNewSlogLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlog(SlogConfig{Level: "warn", Format: "text", Output: &buf})

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNewFileSlogAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	for i := 0; i < 2; i++ {
		log, closer, err := NewFileSlog(path)
		require.NoError(t, err)
		log.Info("line")
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("\n")))
}
