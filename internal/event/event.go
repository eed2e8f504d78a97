// Package event defines the catalog change notifications published after every
// successful write, so downstream devices and services know to refetch.
package event

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/fekuna/omnipos-catalog-service/pkg/broker"
	"github.com/google/uuid"
	"go.uber.org/multierr"
)

type Type string

const (
	CategoryCreated      Type = "CategoryCreated"
	CategoryUpdated      Type = "CategoryUpdated"
	CategoryDeleted      Type = "CategoryDeleted"
	CategoriesReordered  Type = "CategoriesReordered"
	ProductCreated       Type = "ProductCreated"
	ProductUpdated       Type = "ProductUpdated"
	ProductDeleted       Type = "ProductDeleted"
	ProductMoved         Type = "ProductMoved"
	ProductsReordered    Type = "ProductsReordered"
	AvailabilityChanged  Type = "ProductAvailabilityChanged"
	ModifierGroupCreated Type = "ModifierGroupCreated"
	ModifierGroupUpdated Type = "ModifierGroupUpdated"
	ModifierGroupDeleted Type = "ModifierGroupDeleted"
)

type Event struct {
	EventID    string    `json:"event_id"`
	EventType  Type      `json:"event_type"`
	MerchantID string    `json:"merchant_id"`
	EntityID   string    `json:"entity_id"`
	Payload    any       `json:"payload,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

func New(t Type, merchantID, entityID string, payload any) Event {
	return Event{
		EventID:    uuid.New().String(),
		EventType:  t,
		MerchantID: merchantID,
		EntityID:   entityID,
		Payload:    payload,
		Timestamp:  time.Now().UTC(),
	}
}

// Removal is the payload of delete events that take other rows with them.
type Removal struct {
	CategoryIDs []string `json:"category_ids,omitempty"`
	ProductIDs  []string `json:"product_ids,omitempty"`
}

// Order is the payload of reorder events.
type Order struct {
	ScopeID    string   `json:"scope_id"`
	OrderedIDs []string `json:"ordered_ids"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// KafkaPublisher keys messages by merchant so one merchant's events stay ordered.
type KafkaPublisher struct {
	producer *broker.KafkaProducer
}

func NewKafkaPublisher(producer *broker.KafkaProducer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.producer.WriteMessage(ctx, []byte(ev.MerchantID), data)
}

// Fanout publishes to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, ev Event) error {
	var err error
	for _, p := range f {
		if p == nil {
			continue
		}
		err = multierr.Append(err, p.Publish(ctx, ev))
	}
	return err
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types lists the recorded event types in publish order.
func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Type, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.EventType
	}
	return out
}
