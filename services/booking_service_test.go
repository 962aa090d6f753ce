package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"booking-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	BookingStore
	creates int
	err     error
}

func (s *countingStore) Create(ctx context.Context, b *models.Booking) error {
	s.creates++
	if s.err != nil {
		return s.err
	}
	return s.BookingStore.Create(ctx, b)
}

func newTestService(store BookingStore) *BookingService {
	return NewBookingService(store, NewBookingValidator(true))
}

func strPtr(s string) *string { return &s }

func TestCreateStoresBooking(t *testing.T) {
	store := NewMemoryBookingStore()
	fixed := time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC)
	svc := newTestService(store).WithClock(func() time.Time { return fixed })

	req := validRequest()
	req.Plan = "Growth"
	req.BusinessName = strPtr("Acme")
	req.MissionBrief = strPtr("Answer every call")

	booking, err := svc.Create(context.Background(), &req)
	require.NoError(t, err)
	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, fixed, booking.CreatedAt)
	assert.Equal(t, fixed, booking.UpdatedAt)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)

	got := all[0]
	assert.Equal(t, booking.ID, got.ID)
	assert.Equal(t, "Growth", got.Plan)
	assert.Equal(t, "Jane Doe", got.FullName)
	assert.Equal(t, "jane@example.com", got.Email)
	assert.Equal(t, "14:00", got.AppointmentTime)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Time(got.AppointmentDate))
	require.NotNil(t, got.BusinessName)
	assert.Equal(t, "Acme", *got.BusinessName)
	assert.Nil(t, got.Phone)
	assert.Nil(t, got.Industry)
}

func TestCreateDefaultsPlan(t *testing.T) {
	for name, plan := range map[string]string{"omitted": "", "blank": "  "} {
		t.Run(name, func(t *testing.T) {
			svc := newTestService(NewMemoryBookingStore())
			req := validRequest()
			req.Plan = plan

			booking, err := svc.Create(context.Background(), &req)
			require.NoError(t, err)
			assert.Equal(t, models.DefaultPlan, booking.Plan)
		})
	}
}

func TestCreateParsesDateOnce(t *testing.T) {
	store := &countingStore{BookingStore: NewMemoryBookingStore()}
	svc := NewBookingService(store, NewBookingValidator(false))

	req := validRequest()
	req.AppointmentDate = "2025-06-01T23:30:00Z"
	booking, err := svc.Create(context.Background(), &req)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.Time(booking.AppointmentDate))

	req = validRequest()
	req.AppointmentDate = "June 1st"
	_, err = svc.Create(context.Background(), &req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "appointmentDate", verr.Issues[0].Field)
	assert.Equal(t, 1, store.creates)
}

func TestCreateValidationSkipsStore(t *testing.T) {
	store := &countingStore{BookingStore: NewMemoryBookingStore()}
	svc := newTestService(store)

	req := validRequest()
	req.Email = "not-an-email"

	_, err := svc.Create(context.Background(), &req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, store.creates)
}

func TestCreatePropagatesStoreError(t *testing.T) {
	storeErr := ClassifyStoreError("create booking", errors.New("disk full"))
	store := &countingStore{BookingStore: NewMemoryBookingStore(), err: storeErr}
	svc := newTestService(store)

	req := validRequest()
	_, err := svc.Create(context.Background(), &req)
	require.Error(t, err)

	var se *StoreError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, 1, store.creates)
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	svc := newTestService(NewMemoryBookingStore())
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		req := validRequest()
		b, err := svc.Create(context.Background(), &req)
		require.NoError(t, err)
		assert.False(t, seen[b.ID], "duplicate id %s", b.ID)
		seen[b.ID] = true
	}
}
