package bulk_bookings

import (
	"context"

	bulkBookings "github.com/m04kA/SMC-MeetingRoomService/internal/usecase/bulk_bookings"
)

type BulkUseCase interface {
	BulkCreate(ctx context.Context, req *bulkBookings.CreateRequest) (*bulkBookings.CreateResult, error)
	BulkCancel(ctx context.Context, ids []string) (*bulkBookings.ItemsResult, error)
	BulkUpdate(ctx context.Context, ids []string, fields bulkBookings.UpdateFields) (*bulkBookings.ItemsResult, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
