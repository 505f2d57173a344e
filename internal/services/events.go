package services

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// EventsExchange is the exchange activity events are published to.
const EventsExchange = "mesto"

// Activity event routing keys.
const (
	EventUserRegistered = "user.registered"
	EventCardCreated    = "card.created"
	EventCardDeleted    = "card.deleted"
	EventCardLiked      = "card.liked"
	EventCardUnliked    = "card.unliked"
)

// EventPublisher delivers an encoded event. *rabbitmq.Client implements it.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Event is the payload of an activity event.
type Event struct {
	Type       string    `json:"type"`
	UserID     string    `json:"userId"`
	CardID     string    `json:"cardId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Option configures the optional collaborators of a service.
type Option func(*base)

// WithEvents makes the service publish activity events to p.
func WithEvents(p EventPublisher) Option {
	return func(b *base) { b.events = p }
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *base) { b.log = l }
}

type base struct {
	events EventPublisher
	log    *zap.Logger
}

func newBase(opts []Option) base {
	b := base{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// publish sends an event without failing the request that caused it.
func (b base) publish(eventType, userID, cardID string) {
	if b.events == nil {
		return
	}
	body, err := json.Marshal(Event{
		Type:       eventType,
		UserID:     userID,
		CardID:     cardID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		b.log.Warn("failed to marshal event", zap.String("type", eventType), zap.Error(err))
		return
	}
	if err := b.events.Publish(EventsExchange, eventType, body); err != nil {
		b.log.Warn("failed to publish event", zap.String("type", eventType), zap.Error(err))
		return
	}
	b.log.Debug("published event", zap.String("type", eventType), zap.String("user_id", userID))
}
