package sheets

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
)

// RoomRepository хранилище переговорных на листе таблицы
type RoomRepository struct {
	client *Client
	sheet  string
}

// NewRoomRepository создает репозиторий переговорных для листа sheet
func NewRoomRepository(client *Client, sheet string) *RoomRepository {
	return &RoomRepository{client: client, sheet: sheet}
}

func (r *RoomRepository) dataRange() string {
	return fmt.Sprintf("%s!A%d:%s", r.sheet, headerRows+1, lastColumn(roomColumns))
}

// List возвращает все переговорные в порядке строк листа
func (r *RoomRepository) List(ctx context.Context) ([]*domain.Room, error) {
	rows, err := r.client.get(ctx, "rooms.list", r.dataRange())
	if err != nil {
		return nil, err
	}

	rooms := make([]*domain.Room, 0, len(rows))
	for _, row := range rows {
		if room, ok := decodeRoom(row); ok {
			rooms = append(rooms, room)
		}
	}
	return rooms, nil
}

// GetByID находит переговорную по id
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	rooms, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, room := range rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return nil, ErrRoomNotFound
}
