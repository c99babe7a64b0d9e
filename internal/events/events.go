// Package events publishes row-change events for every domain entity so
// subscribers can mirror state in real time. Delivery is at-least-once and
// may arrive out of order; payloads are full-row snapshots, not deltas.
package events

import "context"

// Actions of a row-change event.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Entities carried on the change feed.
const (
	EntityMenuItem = "menu_item"
	EntityTable    = "table"
	EntitySession  = "device_session"
	EntityOrder    = "order"
	EntityRequest  = "customer_request"
	EntityProfile  = "profile"
)

// Event is one row change.
type Event struct {
	Entity string `json:"entity"`
	Action string `json:"action"`
	Row    any    `json:"row"`
}

// RoutingKey returns the topic routing key for the event.
func (e Event) RoutingKey() string {
	return e.Entity + "." + e.Action
}

// Publisher pushes row-change events to subscribers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NopPublisher discards events. Used when the change feed is disabled and
// in tests.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
