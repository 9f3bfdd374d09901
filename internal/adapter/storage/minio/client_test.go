package minio

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMinioClientRequiresSettings(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewMinioClient(context.Background(), Config{Endpoint: "localhost:9000", Bucket: "audit"}, logger)
	assert.Error(t, err)
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9000", Config{Endpoint: "localhost:9000"}.endpointURL())
	assert.Equal(t, "https://s3.example.com", Config{Endpoint: "s3.example.com", UseSSL: true}.endpointURL())
}
