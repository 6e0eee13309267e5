package booking

import (
	"time"

	"github.com/google/uuid"
)

// Neighbours holds the bookings adjacent to now for one item.
type Neighbours struct {
	Last *Booking
	Next *Booking
}

// NeighboursByItem reduces a batch of bookings to the last and next booking per item.
// Last is the booking with the latest end among those started before now; Next is the one
// with the earliest start among those starting after now. REJECTED bookings never qualify.
func NeighboursByItem(bookings []*Booking, now time.Time) map[uuid.UUID]Neighbours {
	out := make(map[uuid.UUID]Neighbours)
	for _, b := range bookings {
		if b.status == StatusRejected {
			continue
		}
		n := out[b.itemID]
		switch {
		case b.start.Before(now):
			if n.Last == nil || b.end.After(n.Last.end) ||
				(b.end.Equal(n.Last.end) && b.start.After(n.Last.start)) {
				n.Last = b
			}
		case b.start.After(now):
			if n.Next == nil || b.start.Before(n.Next.start) {
				n.Next = b
			}
		}
		out[b.itemID] = n
	}
	return out
}
