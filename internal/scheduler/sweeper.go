package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
)

// ErrListBookings возвращается, когда не удалось получить бронирования для обхода
var ErrListBookings = errors.New("scheduler: failed to list bookings")

// Result итог одного обхода
type Result struct {
	CheckedOut int
	NoShows    int
	Failed     int
}

// Sweeper периодически выполняет автоматические переходы занятости:
// выписку по окончании брони и отметку неявки. Вызывает те же операции, что и пользователь.
type Sweeper struct {
	bookingRepo  BookingRepository
	checkOuter   CheckOuter
	noShows      NoShowMarker
	policy       domain.BookingPolicy
	interval     time.Duration
	timeProvider TimeProvider
	logger       Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSweeper создает обходчик с заданным интервалом
func NewSweeper(
	bookingRepo BookingRepository,
	checkOuter CheckOuter,
	noShows NoShowMarker,
	policy domain.BookingPolicy,
	interval time.Duration,
	logger Logger,
) *Sweeper {
	return &Sweeper{
		bookingRepo:  bookingRepo,
		checkOuter:   checkOuter,
		noShows:      noShows,
		policy:       policy,
		interval:     interval,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Start запускает обход в фоне. Повторный вызов без Stop ничего не делает.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.loop(ctx, s.done)

	s.logger.Info("Sweeper: started, interval=%s", s.interval)
}

// Stop останавливает обход и дожидается завершения текущего прохода
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("Sweeper: stopped")
}

func (s *Sweeper) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx); err != nil {
				s.logger.Error("Sweeper: %v", err)
			}
		}
	}
}

// RunOnce выполняет один обход бронирований за вчера и сегодня
func (s *Sweeper) RunOnce(ctx context.Context) (Result, error) {
	var result Result

	now := s.timeProvider.Now().In(s.policy.Location)
	today := domain.DateOnly(now)

	for _, day := range []time.Time{today.AddDate(0, 0, -1), today} {
		bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{Date: &day})
		if err != nil {
			return result, fmt.Errorf("%w: date=%s: %v", ErrListBookings, day.Format(domain.DateFormat), err)
		}

		for _, b := range bookings {
			if ctx.Err() != nil {
				return result, nil
			}
			s.sweep(ctx, b, now, &result)
		}
	}

	if result.CheckedOut > 0 || result.NoShows > 0 || result.Failed > 0 {
		s.logger.Info("Sweeper: checked out %d, no-shows %d, failed %d", result.CheckedOut, result.NoShows, result.Failed)
	}
	return result, nil
}

func (s *Sweeper) sweep(ctx context.Context, b *domain.Booking, now time.Time, result *Result) {
	switch {
	// 1. Участник не выписался, а время брони вышло
	case b.IsStillOccupied() && !now.Before(b.ScheduledEnd(s.policy.Location)):
		if _, err := s.checkOuter.AutoCheckOut(ctx, b.ID); err != nil {
			s.logger.Warn("Sweeper: auto check-out booking id=%s: %v", b.ID, err)
			result.Failed++
			return
		}
		result.CheckedOut++

	// 2. Никто не отметился в течение заданного времени после начала
	case b.IsActive() && !b.IsCheckedIn && !b.IsNoShow &&
		!now.Before(b.ScheduledStart(s.policy.Location).Add(s.policy.NoShowAfter())):
		if _, err := s.noShows.MarkNoShow(ctx, b.ID); err != nil {
			s.logger.Warn("Sweeper: mark no-show booking id=%s: %v", b.ID, err)
			result.Failed++
			return
		}
		result.NoShows++
	}
}
