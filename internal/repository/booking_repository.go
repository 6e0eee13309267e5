package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	bookingDomain "github.com/Excommunicode/ShareHub/internal/domain/booking"
	"github.com/Excommunicode/ShareHub/internal/platform/database"
	"github.com/Excommunicode/ShareHub/internal/platform/domain"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	BookerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	StartAt   time.Time `gorm:"type:timestamptz;not null;index"`
	EndAt     time.Time `gorm:"type:timestamptz;not null"`
	Status    string    `gorm:"type:varchar(20);not null;index"`
	Version   int64     `gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// searchOrder keeps pages stable when several bookings share a start time.
const searchOrder = "bookings.start_at DESC, bookings.id DESC"

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := conn(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		return nil, bookingLookupError(err, id, "failed to find booking by ID")
	}
	return toDomainBooking(&model)
}

// FindByIDForUpdate retrieves a booking with SELECT ... FOR UPDATE.
func (r *GormBookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		return nil, bookingLookupError(err, id, "failed to lock booking")
	}
	return toDomainBooking(&model)
}

// FindVisibleTo retrieves a booking if userID is its booker or the owner of its item.
func (r *GormBookingRepository) FindVisibleTo(ctx context.Context, id, userID uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := conn(ctx, r.db).
		Select("bookings.*").
		Joins("JOIN items ON items.id = bookings.item_id").
		Where("bookings.id = ? AND (bookings.booker_id = ? OR items.owner_id = ?)", id, userID, userID).
		First(&model).Error; err != nil {
		return nil, bookingLookupError(err, id, "failed to find booking")
	}
	return toDomainBooking(&model)
}

// Search executes a query scoped to the actor first, then filtered by the state criteria.
func (r *GormBookingRepository) Search(ctx context.Context, q bookingDomain.Query) ([]*bookingDomain.Booking, int64, error) {
	criteria, err := q.Criteria()
	if err != nil {
		return nil, 0, err
	}

	build := func() (*gorm.DB, error) {
		tx, err := scopeToActor(conn(ctx, r.db).Model(&BookingModel{}), q.ActorID, q.Role)
		if err != nil {
			return nil, err
		}
		return applyCriteria(tx, criteria), nil
	}

	countQuery, err := build()
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count %s bookings: %w", q.Role, err)
	}
	if total == 0 || int64(q.Offset) >= total {
		return []*bookingDomain.Booking{}, total, nil
	}

	pageQuery, err := build()
	if err != nil {
		return nil, 0, err
	}
	var models []BookingModel
	if err := pageQuery.
		Select("bookings.*").
		Order(searchOrder).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find %s bookings: %w", q.Role, err)
	}

	bookings, err := toDomainBookings(models)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// ExistsFinished reports whether a matching booking ended before endBefore.
func (r *GormBookingRepository) ExistsFinished(
	ctx context.Context,
	bookerID, itemID uuid.UUID,
	statuses []bookingDomain.BookingStatus,
	endBefore time.Time,
) (bool, error) {
	if len(statuses) == 0 {
		return false, nil
	}
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}

	var count int64
	if err := conn(ctx, r.db).
		Model(&BookingModel{}).
		Where("booker_id = ? AND item_id = ? AND status IN ? AND end_at < ?", bookerID, itemID, names, endBefore).
		Limit(1).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check finished bookings: %w", err)
	}
	return count > 0, nil
}

// FindByItemIDs loads bookings of several items in one query.
func (r *GormBookingRepository) FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID, excludeStatus bookingDomain.BookingStatus) ([]*bookingDomain.Booking, error) {
	if len(itemIDs) == 0 {
		return []*bookingDomain.Booking{}, nil
	}

	var models []BookingModel
	if err := conn(ctx, r.db).
		Where("item_id IN ? AND status <> ?", itemIDs, string(excludeStatus)).
		Order("start_at ASC, id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find bookings by items: %w", err)
	}
	return toDomainBookings(models)
}

// CountByStatus returns booking counts grouped by status.
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := conn(ctx, r.db).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", database.TranslateError(err))
	}
	return nil
}

// UpdateStatus writes the new status only if the row still holds expectedStatus and the
// version preceding the decision.
func (r *GormBookingRepository) UpdateStatus(ctx context.Context, bk *bookingDomain.Booking, expectedStatus bookingDomain.BookingStatus) error {
	expectedVersion := bk.Version() - 1
	result := conn(ctx, r.db).
		Model(&BookingModel{}).
		Where("id = ? AND status = ? AND version = ?", bk.ID(), string(expectedStatus), expectedVersion).
		Updates(map[string]interface{}{
			"status":     string(bk.Status()),
			"version":    bk.Version(),
			"updated_at": bk.UpdatedAt(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", database.TranslateError(result.Error))
	}
	if result.RowsAffected == 0 {
		return bookingDomain.ErrDecidedConcurrently
	}
	return nil
}

// --- Query building ---

func scopeToActor(tx *gorm.DB, actorID uuid.UUID, role bookingDomain.Role) (*gorm.DB, error) {
	switch role {
	case bookingDomain.RoleBooker:
		return tx.Where("bookings.booker_id = ?", actorID), nil
	case bookingDomain.RoleOwner:
		return tx.
			Joins("JOIN items ON items.id = bookings.item_id").
			Where("items.owner_id = ?", actorID), nil
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("unknown booking role: %d", role))
	}
}

func applyCriteria(tx *gorm.DB, c bookingDomain.Criteria) *gorm.DB {
	if c.StartBefore != nil {
		tx = tx.Where("bookings.start_at < ?", *c.StartBefore)
	}
	if c.StartAfter != nil {
		tx = tx.Where("bookings.start_at > ?", *c.StartAfter)
	}
	if c.EndBefore != nil {
		tx = tx.Where("bookings.end_at < ?", *c.EndBefore)
	}
	if c.EndAfter != nil {
		tx = tx.Where("bookings.end_at > ?", *c.EndAfter)
	}
	if c.Status != nil {
		tx = tx.Where("bookings.status = ?", string(*c.Status))
	}
	return tx
}

func bookingLookupError(err error, id uuid.UUID, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFoundError("Booking", id.String())
	}
	return fmt.Errorf("%s: %w", msg, database.TranslateError(err))
}

// --- Conversion Helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		ItemID:    bk.ItemID(),
		BookerID:  bk.BookerID(),
		StartAt:   bk.Start(),
		EndAt:     bk.End(),
		Status:    string(bk.Status()),
		Version:   bk.Version(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.ReconstructBooking(
		m.ID,
		m.ItemID,
		m.BookerID,
		m.StartAt.UTC(),
		m.EndAt.UTC(),
		status,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel) ([]*bookingDomain.Booking, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}
