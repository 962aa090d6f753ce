package services

import (
	"context"
	"sort"
	"sync"

	"booking-backend/models"

	"gorm.io/gorm"
)

// BookingStore persists bookings. Implementations must insert a booking
// atomically and list bookings newest first.
type BookingStore interface {
	Create(ctx context.Context, booking *models.Booking) error
	ListAll(ctx context.Context) ([]models.Booking, error)
}

// GormBookingStore keeps bookings in the relational database behind *gorm.DB.
type GormBookingStore struct {
	DB *gorm.DB
}

func NewGormBookingStore(db *gorm.DB) *GormBookingStore {
	return &GormBookingStore{DB: db}
}

func (s *GormBookingStore) Create(ctx context.Context, booking *models.Booking) error {
	err := s.DB.WithContext(ctx).Create(booking).Error
	return ClassifyStoreError("create booking", err)
}

func (s *GormBookingStore) ListAll(ctx context.Context) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0)
	err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, ClassifyStoreError("list bookings", err)
	}
	return bookings, nil
}

// MemoryBookingStore is a process-local BookingStore.
type MemoryBookingStore struct {
	mu       sync.RWMutex
	bookings []models.Booking
}

func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{}
}

func (s *MemoryBookingStore) Create(_ context.Context, booking *models.Booking) error {
	if err := booking.BeforeCreate(nil); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.bookings {
		if existing.ID == booking.ID {
			return ClassifyStoreError("create booking", gorm.ErrDuplicatedKey)
		}
	}
	s.bookings = append(s.bookings, *booking)
	return nil
}

func (s *MemoryBookingStore) ListAll(_ context.Context) ([]models.Booking, error) {
	s.mu.RLock()
	out := make([]models.Booking, len(s.bookings))
	copy(out, s.bookings)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
