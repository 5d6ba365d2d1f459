package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// Event subjects published by this service.
const (
	SubjectMemoryUploaded = "memories.uploaded"
	SubjectMemoryDeleted  = "memories.deleted"
)

const eventStream = "memory-events"

// MemoryEvent is the payload published after a successful upload or delete.
type MemoryEvent struct {
	Action     string `json:"action"`
	Filename   string `json:"filename"`
	Type       string `json:"type,omitempty"`
	Size       int64  `json:"size,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// Publisher emits gallery events over NATS JetStream. A nil Publisher is a
// valid no-op, so callers never have to check whether eventing is configured.
type Publisher struct {
	nc *nats.Conn
	js nats.JetStreamContext
}

// ConnectPublisher connects to NATS, initializes JetStream and ensures the
// event stream exists (idempotent).
func ConnectPublisher(url string) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name("memories-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("[NATS] disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("[NATS] reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Println("[NATS] connection closed")
		}),
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}

	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, err
	}

	p := &Publisher{nc: nc, js: js}
	if err := p.ensureStream(); err != nil {
		log.Printf("[NATS] warning: failed to ensure stream: %v", err)
	}

	log.Println("[NATS] connected and JetStream initialized")
	return p, nil
}

func (p *Publisher) ensureStream() error {
	if _, err := p.js.StreamInfo(eventStream); err == nil {
		return nil
	}
	_, err := p.js.AddStream(&nats.StreamConfig{
		Name:     eventStream,
		Subjects: []string{"memories.*"},
		Storage:  nats.FileStorage,
		MaxAge:   30 * 24 * time.Hour,
	})
	return err
}

// Publish emits one event. Failures are logged and swallowed: eventing is
// best-effort and must never affect the HTTP response.
func (p *Publisher) Publish(subject string, event MemoryEvent) {
	if p == nil || p.js == nil {
		return
	}
	event.OccurredAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("[NATS] failed to marshal event: %v", err)
		return
	}
	if _, err := p.js.Publish(subject, data, nats.MsgId(uuid.New().String())); err != nil {
		log.Printf("[NATS] publish failed subject=%s err=%v", subject, err)
	}
}

// Close drains the underlying connection.
func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	p.nc.Close()
}
