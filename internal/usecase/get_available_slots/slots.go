package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

// generateTimeSlots генерирует кандидатов с шагом 30 минут: начала с 09:00 до 17:30 включительно.
// Интервалы, выходящие за пределы суток, пропускаются.
// Если дата сегодняшняя, интервалы, начинающиеся раньше текущего времени, отбрасываются.
func generateTimeSlots(durationMinutes int, requestDate, now time.Time) ([]domain.TimeSlot, error) {
	// Дата в прошлом: свободных интервалов нет
	if isDateInPast(requestDate, now) {
		return []domain.TimeSlot{}, nil
	}

	first, err := types.NewTimeStringFromString(fmt.Sprintf("%02d:00", domain.SuggestionFirstHour))
	if err != nil {
		return nil, err
	}
	lastStartMinutes := domain.SuggestionLastHour*60 + domain.SuggestionStepMinutes

	// Шаг 1: все кандидаты на день
	allSlots := make([]domain.TimeSlot, 0)
	for current := first; current.Minutes() <= lastStartMinutes; {
		end, err := current.AddMinutes(durationMinutes)
		if err == nil {
			allSlots = append(allSlots, domain.TimeSlot{Start: current, End: end})
		}

		next, err := current.AddMinutes(domain.SuggestionStepMinutes)
		if err != nil {
			break
		}
		current = next
	}

	// Шаг 2: не сегодня - возвращаем всё
	if !domain.SameDay(requestDate, now) {
		return allSlots, nil
	}

	// Шаг 3: сегодня - оставляем интервалы, которые ещё не начались
	currentTime := types.NewTimeString(now)
	available := make([]domain.TimeSlot, 0, len(allSlots))
	for _, slot := range allSlots {
		if !slot.Start.IsBefore(currentTime) {
			available = append(available, slot)
		}
	}
	return available, nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return domain.DateOnly(date).Before(domain.DateOnly(now))
}
