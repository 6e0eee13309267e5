//go:build integration

package main_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Excommunicode/ShareHub/internal/application"
	"github.com/Excommunicode/ShareHub/internal/events"
)

// TestBookingLifecycle drives the lending flow over HTTP against PostgreSQL and Kafka:
// listing, booking, deciding, visibility and state filtering.
func TestBookingLifecycle(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	api := setupAPI(t, infra.DB, infra.KafkaBrokers)
	defer api.CleanupProducer()

	owner := api.createUser(t, "owner")
	booker := api.createUser(t, "booker")
	stranger := api.createUser(t, "stranger")

	resp := api.call(t, http.MethodPost, "/items", owner, map[string]interface{}{
		"name":        "Drill",
		"description": "Cordless drill",
		"available":   true,
	})
	require.Equal(t, http.StatusCreated, resp.Status)
	item := decode[application.ItemDTO](t, resp)

	now := time.Now().UTC()

	// A renter books an available item.
	resp = api.call(t, http.MethodPost, "/bookings", booker, map[string]interface{}{
		"itemId": item.ID,
		"start":  now.Add(time.Hour),
		"end":    now.Add(2 * time.Hour),
	})
	require.Equal(t, http.StatusCreated, resp.Status)
	booking := decode[application.BookingDTO](t, resp)
	assert.Equal(t, "WAITING", booking.Status)
	assert.Equal(t, item.ID, booking.Item.ID)
	assert.Equal(t, booker, booking.Booker.ID)

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents,
		events.BookingCreated, booking.ID.String(), 15*time.Second)
	var created events.BookingCreatedEvent
	require.NoError(t, ce.ParseData(&created))
	assert.Equal(t, owner, created.OwnerID)
	assert.Equal(t, booker, created.BookerID)

	// The owner approves once; a second approval is rejected.
	path := "/bookings/" + booking.ID.String() + "?approved=true"
	resp = api.call(t, http.MethodPatch, path, owner, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, "APPROVED", decode[application.BookingDTO](t, resp).Status)

	resp = api.call(t, http.MethodPatch, path, owner, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "ALREADY_DECIDED", resp.Code)

	ce = consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents,
		events.BookingApproved, booking.ID.String(), 15*time.Second)
	var decided events.BookingDecidedEvent
	require.NoError(t, ce.ParseData(&decided))
	assert.Equal(t, "APPROVED", decided.Status)

	// Reads are stable for both parties and hidden from everyone else.
	first := api.call(t, http.MethodGet, "/bookings/"+booking.ID.String(), owner, nil)
	second := api.call(t, http.MethodGet, "/bookings/"+booking.ID.String(), owner, nil)
	require.Equal(t, http.StatusOK, first.Status)
	assert.JSONEq(t, string(first.Data), string(second.Data))

	resp = api.call(t, http.MethodGet, "/bookings/"+booking.ID.String(), booker, nil)
	assert.Equal(t, http.StatusOK, resp.Status)

	resp = api.call(t, http.MethodGet, "/bookings/"+booking.ID.String(), stranger, nil)
	assert.Equal(t, http.StatusNotFound, resp.Status)

	// Owners cannot book their own items.
	resp = api.call(t, http.MethodPost, "/bookings", owner, map[string]interface{}{
		"itemId": item.ID,
		"start":  now.Add(time.Hour),
		"end":    now.Add(2 * time.Hour),
	})
	assert.Equal(t, http.StatusNotFound, resp.Status)
	assert.Equal(t, "OWNER_CANNOT_BOOK", resp.Code)

	// Unknown state filters are rejected.
	resp = api.call(t, http.MethodGet, "/bookings?state=UNKNOWN_VALUE", booker, nil)
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "UNSUPPORTED_STATUS", resp.Code)

	// Scoping: the owner's list holds the booking, the stranger's is empty.
	resp = api.call(t, http.MethodGet, "/bookings/owner?state=APPROVED", owner, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	ownerList := decode[[]application.BookingDTO](t, resp)
	require.Len(t, ownerList, 1)
	assert.Equal(t, booking.ID, ownerList[0].ID)

	resp = api.call(t, http.MethodGet, "/bookings/owner", stranger, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, decode[[]application.BookingDTO](t, resp))

	// The owner view carries the upcoming booking.
	resp = api.call(t, http.MethodGet, "/items/"+item.ID.String(), owner, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	ownerView := decode[application.ItemDTO](t, resp)
	require.NotNil(t, ownerView.NextBooking)
	assert.Equal(t, booking.ID, ownerView.NextBooking.ID)

	resp = api.call(t, http.MethodGet, "/items/"+item.ID.String(), stranger, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Nil(t, decode[application.ItemDTO](t, resp).NextBooking)
}

// TestPastFilterAndComments checks that a booking only moves into PAST once its end has
// elapsed, and that a finished approved booking unlocks commenting.
func TestPastFilterAndComments(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	api := setupAPI(t, infra.DB, infra.KafkaBrokers)
	defer api.CleanupProducer()

	owner := api.createUser(t, "owner")
	booker := api.createUser(t, "booker")

	resp := api.call(t, http.MethodPost, "/items", owner, map[string]interface{}{
		"name":        "Ladder",
		"description": "Aluminium step ladder",
		"available":   true,
	})
	require.Equal(t, http.StatusCreated, resp.Status)
	item := decode[application.ItemDTO](t, resp)

	now := time.Now().UTC()
	end := now.Add(2 * time.Second)
	resp = api.call(t, http.MethodPost, "/bookings", booker, map[string]interface{}{
		"itemId": item.ID,
		"start":  now.Add(time.Second),
		"end":    end,
	})
	require.Equal(t, http.StatusCreated, resp.Status)
	booking := decode[application.BookingDTO](t, resp)

	resp = api.call(t, http.MethodPatch, "/bookings/"+booking.ID.String()+"?approved=true", owner, nil)
	require.Equal(t, http.StatusOK, resp.Status)

	resp = api.call(t, http.MethodGet, "/bookings?state=PAST", booker, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, decode[[]application.BookingDTO](t, resp))

	resp = api.call(t, http.MethodPost, "/items/"+item.ID.String()+"/comment", booker, map[string]string{"text": "Too early"})
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.Equal(t, "BOOKING_IN_PROGRESS_OR_ABSENT", resp.Code)

	time.Sleep(time.Until(end) + time.Second)

	resp = api.call(t, http.MethodGet, "/bookings?state=PAST", booker, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	past := decode[[]application.BookingDTO](t, resp)
	require.Len(t, past, 1)
	assert.Equal(t, booking.ID, past[0].ID)

	resp = api.call(t, http.MethodPost, "/items/"+item.ID.String()+"/comment", booker, map[string]string{"text": "Worked great"})
	require.Equal(t, http.StatusOK, resp.Status)
	comment := decode[application.CommentDTO](t, resp)
	assert.Equal(t, "booker", comment.AuthorName)
	assert.Equal(t, item.ID, comment.ItemID)

	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicItemEvents,
		events.ItemCommented, item.ID.String(), 15*time.Second)
	var commented events.ItemCommentedEvent
	require.NoError(t, ce.ParseData(&commented))
	assert.Equal(t, comment.ID, commented.CommentID)

	resp = api.call(t, http.MethodGet, "/items/"+item.ID.String(), owner, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	view := decode[application.ItemDTO](t, resp)
	require.Len(t, view.Comments, 1)
	require.NotNil(t, view.LastBooking)
	assert.Equal(t, booking.ID, view.LastBooking.ID)
}

// TestRequestsAndAnswers links an item to a request and checks that the request lists it.
func TestRequestsAndAnswers(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	api := setupAPI(t, infra.DB, infra.KafkaBrokers)
	defer api.CleanupProducer()

	requestor := api.createUser(t, "requestor")
	lender := api.createUser(t, "lender")

	resp := api.call(t, http.MethodPost, "/requests", requestor, map[string]string{"description": "Need a tent"})
	require.Equal(t, http.StatusCreated, resp.Status)
	request := decode[application.RequestDTO](t, resp)

	resp = api.call(t, http.MethodPost, "/items", lender, map[string]interface{}{
		"name":        "Tent",
		"description": "Two person tent",
		"available":   true,
		"requestId":   request.ID,
	})
	require.Equal(t, http.StatusCreated, resp.Status)

	resp = api.call(t, http.MethodGet, "/requests/"+request.ID.String(), lender, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	answered := decode[application.RequestDTO](t, resp)
	require.Len(t, answered.Items, 1)
	assert.Equal(t, "Tent", answered.Items[0].Name)

	resp = api.call(t, http.MethodGet, "/requests/all", lender, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, decode[[]application.RequestDTO](t, resp), 1)

	resp = api.call(t, http.MethodGet, "/requests/all", requestor, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Empty(t, decode[[]application.RequestDTO](t, resp))

	resp = api.call(t, http.MethodGet, "/items/search?text=TENT", requestor, nil)
	require.Equal(t, http.StatusOK, resp.Status)
	assert.Len(t, decode[[]application.ItemDTO](t, resp), 1)

	resp = api.call(t, http.MethodPost, "/requests", uuid.New(), map[string]string{"description": "Ghost"})
	assert.Equal(t, http.StatusNotFound, resp.Status)
}
