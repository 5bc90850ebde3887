package sheets

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
)

// BookingRepository хранилище бронирований на листе таблицы
type BookingRepository struct {
	client *Client
	sheet  string
}

// NewBookingRepository создает репозиторий бронирований для листа sheet
func NewBookingRepository(client *Client, sheet string) *BookingRepository {
	return &BookingRepository{client: client, sheet: sheet}
}

func (r *BookingRepository) dataRange() string {
	return fmt.Sprintf("%s!A%d:%s", r.sheet, headerRows+1, lastColumn(bookingColumns))
}

func (r *BookingRepository) rowRange(rowNumber int) string {
	return fmt.Sprintf("%s!A%d:%s%d", r.sheet, rowNumber, lastColumn(bookingColumns), rowNumber)
}

// List возвращает бронирования по фильтру, отсортированные по дате и времени начала
func (r *BookingRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	rows, err := r.client.get(ctx, "bookings.list", r.dataRange())
	if err != nil {
		return nil, err
	}

	bookings := make([]*domain.Booking, 0, len(rows))
	for _, row := range rows {
		b, ok := decodeBooking(row)
		if !ok || !filter.Matches(b) {
			continue
		}
		bookings = append(bookings, b)
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		if !bookings[i].Date.Equal(bookings[j].Date) {
			return bookings[i].Date.Before(bookings[j].Date)
		}
		return bookings[i].StartTime.IsBefore(bookings[j].StartTime)
	})
	return bookings, nil
}

// GetByID находит бронирование по id
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, _, _, err := r.find(ctx, "bookings.get", id)
	return b, err
}

// Create добавляет строку бронирования в конец листа
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.client.append(ctx, "bookings.append", r.dataRange(), [][]interface{}{encodeBooking(booking)})
}

// Patch перезаписывает строку бронирования, меняя только заданные поля.
// Ячейки вне патча пишутся обратно в исходном виде.
func (r *BookingRepository) Patch(ctx context.Context, id string, patch domain.BookingPatch) error {
	_, raw, rowNumber, err := r.find(ctx, "bookings.patch_lookup", id)
	if err != nil {
		return err
	}

	return r.client.update(ctx, "bookings.patch", r.rowRange(rowNumber), [][]interface{}{patchRow(raw, patch)})
}

// find возвращает бронирование, исходную строку и её номер на листе
func (r *BookingRepository) find(ctx context.Context, operation, id string) (*domain.Booking, []interface{}, int, error) {
	rows, err := r.client.get(ctx, operation, r.dataRange())
	if err != nil {
		return nil, nil, 0, err
	}

	for i, row := range rows {
		if cell(row, colID) != id {
			continue
		}
		b, ok := decodeBooking(row)
		if !ok {
			break
		}
		return b, row, i + headerRows + 1, nil
	}
	return nil, nil, 0, ErrBookingNotFound
}
