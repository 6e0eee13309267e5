// Package events defines the topics, event types and payloads published by ShareHub.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Source is the CloudEvent source attribute of every ShareHub event.
const Source = "sharehub"

// Topics.
const (
	TopicBookingEvents = "booking.events"
	TopicItemEvents    = "item.events"
	TopicRequestEvents = "request.events"
)

// Event types.
const (
	BookingCreated  = "booking.created"
	BookingApproved = "booking.approved"
	BookingRejected = "booking.rejected"

	ItemCreated   = "item.created"
	ItemUpdated   = "item.updated"
	ItemCommented = "item.commented"

	RequestCreated = "request.created"
)

// BookingCreatedEvent is published when a renter books an item.
type BookingCreatedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingDecidedEvent is published for both approvals and rejections.
type BookingDecidedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ItemEvent is published when an item is listed or changed.
type ItemEvent struct {
	ItemID     uuid.UUID  `json:"item_id"`
	OwnerID    uuid.UUID  `json:"owner_id"`
	Name       string     `json:"name"`
	Available  bool       `json:"available"`
	RequestID  *uuid.UUID `json:"request_id,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}

// ItemCommentedEvent is published when a past renter leaves a comment.
type ItemCommentedEvent struct {
	CommentID  uuid.UUID `json:"comment_id"`
	ItemID     uuid.UUID `json:"item_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RequestCreatedEvent is published when a user asks for an item nobody lists yet.
type RequestCreatedEvent struct {
	RequestID   uuid.UUID `json:"request_id"`
	RequestorID uuid.UUID `json:"requestor_id"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
}
