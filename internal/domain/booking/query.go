package booking

import (
	"time"

	"github.com/google/uuid"
)

// Role selects whose bookings a query returns.
type Role int

const (
	// RoleBooker scopes to bookings made by the actor.
	RoleBooker Role = iota + 1
	// RoleOwner scopes to bookings of items owned by the actor.
	RoleOwner
)

func (r Role) String() string {
	switch r {
	case RoleBooker:
		return "booker"
	case RoleOwner:
		return "owner"
	default:
		return "unknown"
	}
}

// Query is one retrieval request. Now is captured once by the caller and used for every
// time predicate.
type Query struct {
	ActorID uuid.UUID
	Role    Role
	State   State
	Now     time.Time
	Offset  int
	Limit   int
}

// Criteria is the predicate a Query resolves to. Nil fields are not applied; all set
// fields are combined with AND on top of the actor scope.
type Criteria struct {
	StartBefore *time.Time
	StartAfter  *time.Time
	EndBefore   *time.Time
	EndAfter    *time.Time
	Status      *BookingStatus
}

// NewQuery builds a query with now truncated to microseconds, the precision PostgreSQL keeps.
func NewQuery(actorID uuid.UUID, role Role, state State, now time.Time, offset, limit int) Query {
	return Query{
		ActorID: actorID,
		Role:    role,
		State:   state,
		Now:     now.UTC().Truncate(time.Microsecond),
		Offset:  offset,
		Limit:   limit,
	}
}

// Criteria maps the state filter to a predicate.
func (q Query) Criteria() (Criteria, error) {
	now := q.Now
	switch q.State {
	case StateAll:
		return Criteria{}, nil
	case StatePast:
		return Criteria{EndBefore: &now}, nil
	case StateFuture:
		return Criteria{StartAfter: &now}, nil
	case StateCurrent:
		return Criteria{StartBefore: &now, EndAfter: &now}, nil
	}
	if status, ok := q.State.Status(); ok {
		return Criteria{Status: &status}, nil
	}
	return Criteria{}, NewUnsupportedStatusError(string(q.State))
}
