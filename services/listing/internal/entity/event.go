package entity

import (
	"fmt"
	"time"
)

type EventType string

const (
	EventCreated  EventType = "created"
	EventApproved EventType = "approved"
	EventRejected EventType = "rejected"
	EventExpired  EventType = "expired"
	EventRenewed  EventType = "renewed"
	EventSold     EventType = "sold"
	EventPaused   EventType = "paused"
	EventResumed  EventType = "resumed"
)

type LifecycleEvent struct {
	Type           EventType `json:"type"`
	ListingID      uint      `json:"listing_id"`
	PreviousStatus Status    `json:"previous_status"`
	NewStatus      Status    `json:"new_status"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// RoutingKey is the broker routing key / subject for the event.
func (e LifecycleEvent) RoutingKey() string {
	return fmt.Sprintf("listing.%s", e.Type)
}
