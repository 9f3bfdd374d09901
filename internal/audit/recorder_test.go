package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoArmGo/ShelterApp/internal/messaging/payloads"
)

var event = payloads.AuditEvent{
	Method:     "PUT",
	URL:        "/animals/7",
	CenterID:   1,
	EntityType: "animal",
	EntityID:   7,
	Timestamp:  time.Date(2024, 5, 1, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600)),
}

func TestLogRecorderWritesLine(t *testing.T) {
	var buf bytes.Buffer
	NewLogRecorder(slog.New(slog.NewJSONHandler(&buf, nil))).RecordAudit(context.Background(), event)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "method PUT - request_url /animals/7 - center_id 1 - entity_type animal - entity_id 7", line["msg"])
	assert.Equal(t, "animal", line["entity_type"])
}

type fakePublisher struct {
	events []payloads.AuditEvent
	err    error
}

func (p *fakePublisher) PublishAuditEvent(_ context.Context, e payloads.AuditEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func TestQueueRecorderSwallowsPublishErrors(t *testing.T) {
	var buf bytes.Buffer
	pub := &fakePublisher{err: errors.New("channel closed")}

	NewQueueRecorder(pub, slog.New(slog.NewTextHandler(&buf, nil))).RecordAudit(context.Background(), event)

	assert.Len(t, pub.events, 1)
	assert.Contains(t, buf.String(), "failed to publish audit event")
}

func TestArchiveKeyUsesUTCDate(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^audit/2024/05/02/[0-9a-f-]{36}\.json$`), ArchiveKey(event))
}

func TestArchiveKeyIsStablePerEvent(t *testing.T) {
	same := event
	same.Timestamp = event.Timestamp.UTC()
	assert.Equal(t, ArchiveKey(event), ArchiveKey(same))

	other := event
	other.EntityID = 8
	assert.NotEqual(t, ArchiveKey(event), ArchiveKey(other))

	later := event
	later.Timestamp = event.Timestamp.Add(time.Millisecond)
	assert.NotEqual(t, ArchiveKey(event), ArchiveKey(later))
}

type fakeArchive struct {
	keys   []string
	bodies [][]byte
	err    error
}

func (a *fakeArchive) PutObject(_ context.Context, key string, body []byte, _ string) error {
	a.keys = append(a.keys, key)
	a.bodies = append(a.bodies, body)
	return a.err
}

func TestWorkerHandlerArchives(t *testing.T) {
	archive := &fakeArchive{}
	handle := WorkerHandler(NewLogRecorder(slog.New(slog.NewTextHandler(io.Discard, nil))), archive)

	require.NoError(t, handle(context.Background(), event))
	require.Len(t, archive.keys, 1)
	assert.Regexp(t, regexp.MustCompile(`^audit/2024/05/02/[0-9a-f-]{36}\.json$`), archive.keys[0])

	var stored payloads.AuditEvent
	require.NoError(t, json.Unmarshal(archive.bodies[0], &stored))
	assert.Equal(t, event.EntityID, stored.EntityID)
	assert.True(t, event.Timestamp.Equal(stored.Timestamp))
}

func TestWorkerHandlerReportsArchiveFailure(t *testing.T) {
	var buf bytes.Buffer
	archive := &fakeArchive{err: errors.New("bucket gone")}
	handle := WorkerHandler(NewLogRecorder(slog.New(slog.NewTextHandler(&buf, nil))), archive)

	assert.Error(t, handle(context.Background(), event))
	assert.Empty(t, buf.String())
}

func TestWorkerHandlerRetryWritesOneObjectAndOneLine(t *testing.T) {
	var buf bytes.Buffer
	archive := &fakeArchive{err: errors.New("bucket gone")}
	handle := WorkerHandler(NewLogRecorder(slog.New(slog.NewTextHandler(&buf, nil))), archive)

	require.Error(t, handle(context.Background(), event))
	archive.err = nil
	require.NoError(t, handle(context.Background(), event))

	require.Len(t, archive.keys, 2)
	assert.Equal(t, archive.keys[0], archive.keys[1])
	assert.Equal(t, 1, strings.Count(buf.String(), "entity_type=animal"))
}

func TestWorkerHandlerWithoutArchive(t *testing.T) {
	handle := WorkerHandler(NewLogRecorder(slog.New(slog.NewTextHandler(io.Discard, nil))), nil)
	assert.NoError(t, handle(context.Background(), event))
}
