package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"resume-builder/internal/domain"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Topic carries serialized domain.AnalyticsEvent payloads.
const Topic = "analytics.events"

const metaKeyEventType = "event_type"

var ErrClosed = errors.New("analytics tracker closed")

// EventStore persists delivered events.
type EventStore interface {
	Insert(ctx context.Context, e domain.AnalyticsEvent) error
}

// Tracker publishes events onto an in-process channel. A single subscriber
// goroutine hands them to the store, so Track never waits on the database.
type Tracker struct {
	pubsub *gochannel.GoChannel
	store  EventStore
	log    zerolog.Logger

	mu      sync.RWMutex
	closed  bool
	pending sync.WaitGroup

	cancel context.CancelFunc
	done   chan struct{}
}

// NewTracker starts the subscriber. A nil store only logs events.
func NewTracker(store EventStore, log zerolog.Logger) (*Tracker, error) {
	goChannel := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)

	ctx, cancel := context.WithCancel(context.Background())
	messages, err := goChannel.Subscribe(ctx, Topic)
	if err != nil {
		cancel()
		return nil, err
	}

	t := &Tracker{
		pubsub: goChannel,
		store:  store,
		log:    log.With().Str("component", "analytics").Logger(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go t.consume(ctx, messages)
	return t, nil
}

// Track records eventType with the user and session carried by ctx.
func (t *Tracker) Track(ctx context.Context, eventType string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	ev := domain.AnalyticsEvent{
		ID:        uuid.New(),
		EventType: eventType,
		EventData: data,
		SessionID: SessionFrom(ctx),
		Timestamp: time.Now().UTC(),
	}
	if uid, ok := UserFrom(ctx); ok {
		ev.UserID = &uid
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(metaKeyEventType, eventType)

	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.closed {
		return ErrClosed
	}
	t.pending.Add(1)
	if err := t.pubsub.Publish(Topic, msg); err != nil {
		t.pending.Done()
		return err
	}
	return nil
}

func (t *Tracker) consume(ctx context.Context, messages <-chan *message.Message) {
	defer close(t.done)
	for msg := range messages {
		t.handle(ctx, msg)
		msg.Ack()
		t.pending.Done()
	}
	t.log.Debug().Msg("analytics subscriber stopped")
}

func (t *Tracker) handle(ctx context.Context, msg *message.Message) {
	var ev domain.AnalyticsEvent
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		t.log.Error().Err(err).Str("msg_id", msg.UUID).Msg("drop malformed analytics event")
		return
	}
	if t.store == nil {
		t.log.Info().Str("event_type", ev.EventType).Interface("data", ev.EventData).Msg("analytics not configured")
		return
	}
	if err := t.store.Insert(ctx, ev); err != nil {
		t.log.Error().Err(err).Str("event_type", ev.EventType).Msg("failed to track event")
	}
}

// Close stops accepting events and waits for queued ones to be handled.
func (t *Tracker) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()

	t.pending.Wait()
	err := t.pubsub.Close()
	<-t.done
	t.cancel()
	return err
}
