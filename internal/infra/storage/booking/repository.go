package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/dbmetrics"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"room_id",
	"room_name",
	"title",
	"booker_name",
	"employee_id",
	"booking_date",
	"start_time",
	"end_time",
	"status",
	"purpose",
	"participants",
	"created_at",
	"updated_at",
	"is_checked_in",
	"check_in_time",
	"check_out_time",
	"actual_start_time",
	"actual_end_time",
	"is_no_show",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(columns...).
		Values(
			booking.ID,
			booking.RoomID,
			booking.RoomName,
			booking.Title,
			booking.BookerName,
			booking.EmployeeID,
			booking.Date.Format(domain.DateFormat),
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.Purpose,
			booking.Participants,
			booking.CreatedAt,
			booking.UpdatedAt,
			booking.IsCheckedIn,
			booking.CheckInTime,
			booking.CheckOutTime,
			booking.ActualStartTime,
			booking.ActualEndTime,
			booking.IsNoShow,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}
	return booking, nil
}

// List возвращает бронирования по фильтру, отсортированные по дате и времени начала.
// Внутри транзакции выборка за один день блокируется (FOR UPDATE),
// чтобы проверка конфликтов и запись выполнялись атомарно.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(table)

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.RoomID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}
	if filter.EmployeeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"employee_id": *filter.EmployeeID})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	selectBuilder = selectBuilder.OrderBy("booking_date ASC", "start_time ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// Patch обновляет только заданные поля бронирования
func (r *Repository) Patch(ctx context.Context, id string, patch domain.BookingPatch) error {
	if patch.IsEmpty() {
		return ErrEmptyPatch
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updatedAt := patch.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	builder := psqlbuilder.Update(table).Set("updated_at", updatedAt)

	if patch.StartTime != nil {
		builder = builder.Set("start_time", *patch.StartTime)
	}
	if patch.EndTime != nil {
		builder = builder.Set("end_time", *patch.EndTime)
	}
	if patch.Title != nil {
		builder = builder.Set("title", *patch.Title)
	}
	if patch.Purpose != nil {
		builder = builder.Set("purpose", *patch.Purpose)
	}
	if patch.Participants != nil {
		builder = builder.Set("participants", *patch.Participants)
	}
	if patch.Status != nil {
		builder = builder.Set("status", *patch.Status)
	}
	if patch.IsCheckedIn != nil {
		builder = builder.Set("is_checked_in", *patch.IsCheckedIn)
	}
	if patch.CheckInTime != nil {
		builder = builder.Set("check_in_time", *patch.CheckInTime)
	}
	if patch.CheckOutTime != nil {
		builder = builder.Set("check_out_time", *patch.CheckOutTime)
	}
	if patch.ActualStartTime != nil {
		builder = builder.Set("actual_start_time", *patch.ActualStartTime)
	}
	if patch.ActualEndTime != nil {
		builder = builder.Set("actual_end_time", *patch.ActualEndTime)
	}
	if patch.IsNoShow != nil {
		builder = builder.Set("is_no_show", *patch.IsNoShow)
	}

	query, args, err := builder.Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Patch - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Patch - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Patch - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row scanner) (*domain.Booking, error) {
	var (
		booking                                   domain.Booking
		createdAt, updatedAt                      sql.NullTime
		checkIn, checkOut, actualStart, actualEnd sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.RoomName,
		&booking.Title,
		&booking.BookerName,
		&booking.EmployeeID,
		&booking.Date,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.Purpose,
		&booking.Participants,
		&createdAt,
		&updatedAt,
		&booking.IsCheckedIn,
		&checkIn,
		&checkOut,
		&actualStart,
		&actualEnd,
		&booking.IsNoShow,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = domain.DateOnly(booking.Date)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	booking.CheckInTime = nullTime(checkIn)
	booking.CheckOutTime = nullTime(checkOut)
	booking.ActualStartTime = nullTime(actualStart)
	booking.ActualEndTime = nullTime(actualEnd)

	return &booking, nil
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
