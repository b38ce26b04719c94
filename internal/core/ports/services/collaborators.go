package services

import (
	"context"

	"github.com/magedShawky1972/transfigure-admin-sub004/internal/core/domain"
)

// CapabilityChecker is supplied by the authorization collaborator. The core
// only consumes a yes/no answer for a concrete state transition.
type CapabilityChecker interface {
	CanTransition(ctx context.Context, actorID string, entryID string, from, to domain.EntryStatus) (bool, error)
}

// EventType identifies a lifecycle event emitted after a committed transition.
type EventType string

const (
	EventEntrySubmitted EventType = "entry.submitted"
	EventEntryApproved  EventType = "entry.approved"
	EventEntryRejected  EventType = "entry.rejected"
	EventEntryPosted    EventType = "entry.posted"
	EventEntryVoided    EventType = "entry.voided"
)

// EventEmitter is supplied by the notification collaborator. Emission is
// at-least-once and happens only after the transaction commits; consumers
// dedupe by entry id plus target status.
type EventEmitter interface {
	Emit(ctx context.Context, eventType EventType, payload map[string]any)
}

// ReopenHook is invoked by the void engine when a voided entry carries a
// linked upstream request. Implementations transition that request back to
// approved. A nil hook is a no-op.
type ReopenHook interface {
	OnReopen(ctx context.Context, linkedRequestID string) error
}
