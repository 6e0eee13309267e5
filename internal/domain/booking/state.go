package booking

import "strings"

// State is a retrieval filter. ALL, PAST, CURRENT and FUTURE are derived from the booking
// period; the remaining values match a persisted status.
type State string

const (
	StateAll      State = "ALL"
	StatePast     State = "PAST"
	StateCurrent  State = "CURRENT"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateApproved State = "APPROVED"
	StateRejected State = "REJECTED"
	StateCanceled State = "CANCELED"

	// StateUnsupported marks a filter that failed to parse. It is never persisted.
	StateUnsupported State = "UNSUPPORTED_STATUS"
)

var knownStates = map[State]struct{}{
	StateAll: {}, StatePast: {}, StateCurrent: {}, StateFuture: {},
	StateWaiting: {}, StateApproved: {}, StateRejected: {}, StateCanceled: {},
}

// ParseState resolves a query parameter. An empty value means ALL; matching is case-insensitive.
func ParseState(raw string) (State, error) {
	if strings.TrimSpace(raw) == "" {
		return StateAll, nil
	}
	s := State(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := knownStates[s]; !ok {
		return StateUnsupported, NewUnsupportedStatusError(raw)
	}
	return s, nil
}

// Status returns the persisted status a status-based filter matches.
func (s State) Status() (BookingStatus, bool) {
	switch s {
	case StateWaiting:
		return StatusWaiting, true
	case StateApproved:
		return StatusApproved, true
	case StateRejected:
		return StatusRejected, true
	case StateCanceled:
		return StatusCanceled, true
	default:
		return "", false
	}
}
