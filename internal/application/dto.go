package application

import (
	"time"

	"github.com/google/uuid"

	bookingDomain "github.com/Excommunicode/ShareHub/internal/domain/booking"
	commentDomain "github.com/Excommunicode/ShareHub/internal/domain/comment"
	itemDomain "github.com/Excommunicode/ShareHub/internal/domain/item"
	requestDomain "github.com/Excommunicode/ShareHub/internal/domain/request"
	userDomain "github.com/Excommunicode/ShareHub/internal/domain/user"
)

// UserDTO is the response representation of a user.
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// UserSummary embeds a user into other resources.
type UserSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ItemSummary embeds an item into other resources.
type ItemSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID     uuid.UUID   `json:"id"`
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	Status string      `json:"status"`
	Item   ItemSummary `json:"item"`
	Booker UserSummary `json:"booker"`
}

// BookingShortDTO is a booking attached to an item view.
type BookingShortDTO struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// CommentDTO is the response representation of a comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	ItemID     uuid.UUID `json:"itemId"`
	AuthorID   uuid.UUID `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// ItemDTO is the response representation of an item. LastBooking and NextBooking are only
// filled for the owner.
type ItemDTO struct {
	ID          uuid.UUID        `json:"id"`
	OwnerID     uuid.UUID        `json:"ownerId"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	RequestID   *uuid.UUID       `json:"requestId,omitempty"`
	LastBooking *BookingShortDTO `json:"lastBooking,omitempty"`
	NextBooking *BookingShortDTO `json:"nextBooking,omitempty"`
	Comments    []CommentDTO     `json:"comments"`
}

// RequestDTO is the response representation of an item request with its answers.
type RequestDTO struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
	Items       []ItemDTO `json:"items"`
}

// --- Conversions ---

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{ID: u.ID(), Name: u.Name(), Email: u.Email()}
}

func toBookingDTO(bk *bookingDomain.Booking, it *itemDomain.Item, booker *userDomain.User) BookingDTO {
	dto := BookingDTO{
		ID:     bk.ID(),
		Start:  bk.Start(),
		End:    bk.End(),
		Status: string(bk.Status()),
		Item:   ItemSummary{ID: bk.ItemID()},
		Booker: UserSummary{ID: bk.BookerID()},
	}
	if it != nil {
		dto.Item.Name = it.Name()
	}
	if booker != nil {
		dto.Booker.Name = booker.Name()
	}
	return dto
}

func toBookingShortDTO(bk *bookingDomain.Booking) *BookingShortDTO {
	if bk == nil {
		return nil
	}
	return &BookingShortDTO{
		ID:       bk.ID(),
		BookerID: bk.BookerID(),
		Start:    bk.Start(),
		End:      bk.End(),
	}
}

func toCommentDTO(c *commentDomain.Comment, authorName string) CommentDTO {
	return CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		ItemID:     c.ItemID(),
		AuthorID:   c.AuthorID(),
		AuthorName: authorName,
		Created:    c.CreatedAt(),
	}
}

func toItemDTO(it *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.IsAvailable(),
		RequestID:   it.RequestID(),
		Comments:    []CommentDTO{},
	}
}

func toRequestDTO(r *requestDomain.ItemRequest, answers []*itemDomain.Item) RequestDTO {
	items := make([]ItemDTO, len(answers))
	for i, it := range answers {
		items[i] = toItemDTO(it)
	}
	return RequestDTO{
		ID:          r.ID(),
		Description: r.Description(),
		Created:     r.CreatedAt(),
		Items:       items,
	}
}

func usersByID(users []*userDomain.User) map[uuid.UUID]*userDomain.User {
	out := make(map[uuid.UUID]*userDomain.User, len(users))
	for _, u := range users {
		out[u.ID()] = u
	}
	return out
}

func itemsByID(items []*itemDomain.Item) map[uuid.UUID]*itemDomain.Item {
	out := make(map[uuid.UUID]*itemDomain.Item, len(items))
	for _, it := range items {
		out[it.ID()] = it
	}
	return out
}

// uniqueIDs returns ids without duplicates, keeping first-seen order.
func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
