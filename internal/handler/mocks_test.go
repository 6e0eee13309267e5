package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	bookingDomain "github.com/Excommunicode/ShareHub/internal/domain/booking"
	itemDomain "github.com/Excommunicode/ShareHub/internal/domain/item"
	userDomain "github.com/Excommunicode/ShareHub/internal/domain/user"
	"github.com/Excommunicode/ShareHub/internal/platform/kafka"
)

type passthroughTx struct{}

func (passthroughTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopPublisher struct{}

func (nopPublisher) PublishEvent(context.Context, string, kafka.CloudEvent) error { return nil }

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindVisibleTo(ctx context.Context, id, userID uuid.UUID) (*bookingDomain.Booking, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingDomain.Booking), args.Error(1)
}

func (m *mockBookingRepo) Search(ctx context.Context, q bookingDomain.Query) ([]*bookingDomain.Booking, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]*bookingDomain.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *mockBookingRepo) ExistsFinished(ctx context.Context, bookerID, itemID uuid.UUID, statuses []bookingDomain.BookingStatus, endBefore time.Time) (bool, error) {
	args := m.Called(ctx, bookerID, itemID, statuses, endBefore)
	return args.Bool(0), args.Error(1)
}

func (m *mockBookingRepo) FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID, excludeStatus bookingDomain.BookingStatus) ([]*bookingDomain.Booking, error) {
	args := m.Called(ctx, itemIDs, excludeStatus)
	return args.Get(0).([]*bookingDomain.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockBookingRepo) Save(ctx context.Context, bk *bookingDomain.Booking) error {
	return m.Called(ctx, bk).Error(0)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, bk *bookingDomain.Booking, expected bookingDomain.BookingStatus) error {
	return m.Called(ctx, bk, expected).Error(0)
}

type mockItemRepo struct {
	mock.Mock
}

func (m *mockItemRepo) FindByID(ctx context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*itemDomain.Item), args.Error(1)
}

func (m *mockItemRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*itemDomain.Item, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*itemDomain.Item), args.Error(1)
}

func (m *mockItemRepo) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*itemDomain.Item, int64, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	return args.Get(0).([]*itemDomain.Item), args.Get(1).(int64), args.Error(2)
}

func (m *mockItemRepo) Search(ctx context.Context, text string, offset, limit int) ([]*itemDomain.Item, int64, error) {
	args := m.Called(ctx, text, offset, limit)
	return args.Get(0).([]*itemDomain.Item), args.Get(1).(int64), args.Error(2)
}

func (m *mockItemRepo) FindByRequestIDs(ctx context.Context, requestIDs []uuid.UUID) ([]*itemDomain.Item, error) {
	args := m.Called(ctx, requestIDs)
	return args.Get(0).([]*itemDomain.Item), args.Error(1)
}

func (m *mockItemRepo) Save(ctx context.Context, it *itemDomain.Item) error {
	return m.Called(ctx, it).Error(0)
}

func (m *mockItemRepo) Update(ctx context.Context, it *itemDomain.Item) error {
	return m.Called(ctx, it).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

func (m *mockUserRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*userDomain.User, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*userDomain.User), args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context, offset, limit int) ([]*userDomain.User, int64, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]*userDomain.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) Save(ctx context.Context, u *userDomain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, u *userDomain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
