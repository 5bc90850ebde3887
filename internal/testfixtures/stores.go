package testfixtures

import (
	"context"
	"sort"
	"sync"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/internal/infra/storage"
)

// BookingStore in-memory booking store with the same contract as the real backends.
type BookingStore struct {
	mu       sync.Mutex
	bookings []domain.Booking

	// Calls counts every store method invocation.
	Calls int
	// ListErr, GetErr, CreateErr and PatchErr force failures when set.
	ListErr   error
	GetErr    error
	CreateErr error
	PatchErr  error
}

// NewBookingStore returns a store seeded with copies of bookings.
func NewBookingStore(bookings ...*domain.Booking) *BookingStore {
	s := &BookingStore{}
	for _, b := range bookings {
		s.bookings = append(s.bookings, *b)
	}
	return s
}

func (s *BookingStore) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.ListErr != nil {
		return nil, s.ListErr
	}

	result := make([]*domain.Booking, 0)
	for i := range s.bookings {
		if filter.Matches(&s.bookings[i]) {
			b := s.bookings[i]
			result = append(result, &b)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})
	return result, nil
}

func (s *BookingStore) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			b := s.bookings[i]
			return &b, nil
		}
	}
	return nil, storage.ErrBookingNotFound
}

func (s *BookingStore) Create(_ context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.bookings = append(s.bookings, *booking)
	return nil
}

func (s *BookingStore) Patch(_ context.Context, id string, patch domain.BookingPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	if s.PatchErr != nil {
		return s.PatchErr
	}
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i] = patch.Apply(s.bookings[i])
			return nil
		}
	}
	return storage.ErrBookingNotFound
}

// Get returns a copy of the stored booking or nil, without counting a call.
func (s *BookingStore) Get(id string) *domain.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			b := s.bookings[i]
			return &b
		}
	}
	return nil
}

// Len returns the number of stored bookings.
func (s *BookingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

// RoomStore in-memory room store.
type RoomStore struct {
	rooms []domain.Room

	Calls   int
	ListErr error
}

// NewRoomStore returns a store seeded with copies of rooms.
func NewRoomStore(rooms ...*domain.Room) *RoomStore {
	s := &RoomStore{}
	for _, r := range rooms {
		s.rooms = append(s.rooms, *r)
	}
	return s
}

func (s *RoomStore) List(_ context.Context) ([]*domain.Room, error) {
	s.Calls++
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	result := make([]*domain.Room, 0, len(s.rooms))
	for i := range s.rooms {
		r := s.rooms[i]
		result = append(result, &r)
	}
	return result, nil
}

func (s *RoomStore) GetByID(_ context.Context, id string) (*domain.Room, error) {
	s.Calls++
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	for i := range s.rooms {
		if s.rooms[i].ID == id {
			r := s.rooms[i]
			return &r, nil
		}
	}
	return nil, storage.ErrRoomNotFound
}
