package rabbitmq

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"github.com/GoArmGo/ShelterApp/internal/messaging/payloads"
)

type recordingAcker struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *recordingAcker) Ack(uint64, bool) error { a.acked = true; return nil }

func (a *recordingAcker) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *recordingAcker) Reject(_ uint64, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func testClient() *Client {
	return &Client{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestHandleDeliveryAcksHandledEvent(t *testing.T) {
	acker := &recordingAcker{}
	msg := amqp.Delivery{
		Acknowledger: acker,
		Body:         []byte(`{"method":"POST","url":"/animals","center_id":1,"entity_type":"animal","entity_id":7,"timestamp":"2024-05-01T10:00:00Z"}`),
	}

	var got payloads.AuditEvent
	testClient().handleDelivery(context.Background(), msg, func(_ context.Context, e payloads.AuditEvent) error {
		got = e
		return nil
	})

	assert.True(t, acker.acked)
	assert.False(t, acker.nacked)
	assert.Equal(t, payloads.AuditEvent{
		Method:     "POST",
		URL:        "/animals",
		CenterID:   1,
		EntityType: "animal",
		EntityID:   7,
		Timestamp:  time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}, got)
}

func TestHandleDeliveryDropsMalformed(t *testing.T) {
	acker := &recordingAcker{}
	called := false

	testClient().handleDelivery(context.Background(), amqp.Delivery{Acknowledger: acker, Body: []byte("{")},
		func(context.Context, payloads.AuditEvent) error {
			called = true
			return nil
		})

	assert.False(t, called)
	assert.True(t, acker.nacked)
	assert.False(t, acker.requeue)
}

func TestHandleDeliveryRequeuesOnFailure(t *testing.T) {
	acker := &recordingAcker{}

	testClient().handleDelivery(context.Background(), amqp.Delivery{Acknowledger: acker, Body: []byte(`{"entity_id":1}`)},
		func(context.Context, payloads.AuditEvent) error {
			return errors.New("archive unavailable")
		})

	assert.False(t, acker.acked)
	assert.True(t, acker.nacked)
	assert.True(t, acker.requeue)
}

func TestHandleDeliveryDropsRedeliveredFailure(t *testing.T) {
	acker := &recordingAcker{}
	calls := 0

	testClient().handleDelivery(context.Background(),
		amqp.Delivery{Acknowledger: acker, Redelivered: true, Body: []byte(`{"entity_id":1}`)},
		func(context.Context, payloads.AuditEvent) error {
			calls++
			return errors.New("archive unavailable")
		})

	assert.Equal(t, 1, calls)
	assert.True(t, acker.nacked)
	assert.False(t, acker.requeue)
}
