package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockPublisher(t *testing.T) {
	m := NewMockPublisher()
	m.Publish(context.Background(), nil)
	m.Publish(context.Background(), &Event{EventType: EventTaskProgress, Recipients: []string{"u1"}})
	m.Publish(context.Background(), &Event{EventType: EventTaskCompleted, Recipients: []string{"u1"}})

	assert.Len(t, m.Events(), 2)
	assert.Len(t, m.EventsOfType(EventTaskCompleted), 1)

	m.Reset()
	assert.Empty(t, m.Events())
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	p := NewLogPublisher(zerolog.New(&buf))

	p.Publish(context.Background(), nil)
	assert.Zero(t, buf.Len())

	p.Publish(context.Background(), &Event{EventType: EventStockRequest, ResourceID: "m1", Recipients: []string{"worker"}})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, EventStockRequest, entry["event_type"])
	assert.Equal(t, "m1", entry["resource_id"])
	assert.Equal(t, "notify", entry["component"])
}

func TestNATSPublisher_Subject(t *testing.T) {
	assert.Equal(t, "notifications.workflow.task_progress", NewNATSPublisher(nil, "", zerolog.Nop()).Subject(EventTaskProgress))
	assert.Equal(t, "ledgerly.task_report", NewNATSPublisher(nil, "ledgerly", zerolog.Nop()).Subject(EventTaskReport))
}

func TestNATSPublisher_NilConnection(t *testing.T) {
	p := NewNATSPublisher(nil, "x", zerolog.Nop())
	assert.NotPanics(t, func() {
		p.Publish(context.Background(), &Event{EventType: EventTaskProgress, Recipients: []string{"u1"}})
	})
}

func TestNATSPublisher_Publish(t *testing.T) {
	url := os.Getenv("TEST_NATS_URL")
	if url == "" {
		t.Skip("TEST_NATS_URL not set")
	}

	conn, err := Connect(Config{URL: url, ClientName: "notify-test"})
	require.NoError(t, err)
	defer conn.Close()

	msgs := make(chan *nats.Msg, 1)
	sub, err := conn.ChanSubscribe("test.notify.>", msgs)
	require.NoError(t, err)
	defer func() { _ = sub.Unsubscribe() }()

	p := NewNATSPublisher(conn, "test.notify", zerolog.Nop())
	p.Publish(context.Background(), &Event{EventType: EventTaskCompleted, Recipients: []string{"u1"}, ResourceID: "3"})
	require.NoError(t, conn.Flush())

	select {
	case msg := <-msgs:
		assert.Equal(t, "test.notify.task_completed", msg.Subject)
		var ev Event
		require.NoError(t, json.Unmarshal(msg.Data, &ev))
		assert.Equal(t, "3", ev.ResourceID)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}
