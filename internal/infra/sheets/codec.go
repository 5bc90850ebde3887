package sheets

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SMC-MeetingRoomService/internal/domain"
	"github.com/m04kA/SMC-MeetingRoomService/pkg/types"
)

// Колонки листа бронирований (A..U)
const (
	colID = iota
	colRoomID
	colRoomName
	colTitle
	colBookerName
	colEmployeeID
	colStartTime
	colEndTime
	colDate
	colStatus
	colPurpose
	colParticipants
	colCreatedAt
	colUpdatedAt
	colCheckInTime
	colCheckOutTime
	colActualStartTime
	colActualEndTime
	colIsCheckedIn
	colIsNoShow
	colAutoReleaseTime // зарезервировано, переносится без изменений

	bookingColumns
)

// Колонки листа переговорных (A..F)
const (
	roomColID = iota
	roomColName
	roomColCapacity
	roomColLocation
	roomColEquipment
	roomColStatus

	roomColumns
)

// Первая строка листа - заголовок
const headerRows = 1

func cell(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(row[idx]))
}

func parseBool(s string) bool {
	return strings.EqualFold(s, "TRUE")
}

func formatBool(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func parseTimestamp(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// decodeBooking разбирает строку листа. ok=false для пустых строк и строк без id.
func decodeBooking(row []interface{}) (*domain.Booking, bool) {
	id := cell(row, colID)
	if id == "" {
		return nil, false
	}

	b := &domain.Booking{
		ID:          id,
		RoomID:      cell(row, colRoomID),
		RoomName:    cell(row, colRoomName),
		Title:       cell(row, colTitle),
		BookerName:  cell(row, colBookerName),
		EmployeeID:  cell(row, colEmployeeID),
		Purpose:     cell(row, colPurpose),
		IsCheckedIn: parseBool(cell(row, colIsCheckedIn)),
		IsNoShow:    parseBool(cell(row, colIsNoShow)),

		CheckInTime:     parseTimestamp(cell(row, colCheckInTime)),
		CheckOutTime:    parseTimestamp(cell(row, colCheckOutTime)),
		ActualStartTime: parseTimestamp(cell(row, colActualStartTime)),
		ActualEndTime:   parseTimestamp(cell(row, colActualEndTime)),
	}

	if ts, err := types.NewTimeStringFromString(cell(row, colStartTime)); err == nil {
		b.StartTime = ts
	}
	if ts, err := types.NewTimeStringFromString(cell(row, colEndTime)); err == nil {
		b.EndTime = ts
	}
	if d, err := time.Parse(domain.DateFormat, cell(row, colDate)); err == nil {
		b.Date = d
	}

	b.Status = domain.BookingStatus(strings.ToLower(cell(row, colStatus)))
	if !b.Status.IsValid() {
		b.Status = domain.StatusPending
	}

	b.Participants = domain.DefaultParticipants
	if n, err := strconv.Atoi(cell(row, colParticipants)); err == nil && n > 0 {
		b.Participants = n
	}

	if t := parseTimestamp(cell(row, colCreatedAt)); t != nil {
		b.CreatedAt = *t
	}
	if t := parseTimestamp(cell(row, colUpdatedAt)); t != nil {
		b.UpdatedAt = *t
	}

	return b, true
}

// encodeBooking собирает новую строку листа
func encodeBooking(b *domain.Booking) []interface{} {
	row := make([]interface{}, bookingColumns)
	row[colID] = b.ID
	row[colRoomID] = b.RoomID
	row[colRoomName] = b.RoomName
	row[colTitle] = b.Title
	row[colBookerName] = b.BookerName
	row[colEmployeeID] = b.EmployeeID
	row[colStartTime] = b.StartTime.String()
	row[colEndTime] = b.EndTime.String()
	row[colDate] = b.Date.Format(domain.DateFormat)
	row[colStatus] = string(b.Status)
	row[colPurpose] = b.Purpose
	row[colParticipants] = b.Participants
	row[colCreatedAt] = formatTimestamp(&b.CreatedAt)
	row[colUpdatedAt] = formatTimestamp(&b.UpdatedAt)
	row[colCheckInTime] = formatTimestamp(b.CheckInTime)
	row[colCheckOutTime] = formatTimestamp(b.CheckOutTime)
	row[colActualStartTime] = formatTimestamp(b.ActualStartTime)
	row[colActualEndTime] = formatTimestamp(b.ActualEndTime)
	row[colIsCheckedIn] = formatBool(b.IsCheckedIn)
	row[colIsNoShow] = formatBool(b.IsNoShow)
	row[colAutoReleaseTime] = ""
	return row
}

// patchRow переписывает в копии исходной строки только колонки, заданные патчем,
// и время обновления. Остальные ячейки переносятся как есть.
func patchRow(raw []interface{}, patch domain.BookingPatch) []interface{} {
	row := make([]interface{}, bookingColumns)
	for i := range row {
		if i < len(raw) && raw[i] != nil {
			row[i] = raw[i]
		} else {
			row[i] = ""
		}
	}

	if patch.StartTime != nil {
		row[colStartTime] = patch.StartTime.String()
	}
	if patch.EndTime != nil {
		row[colEndTime] = patch.EndTime.String()
	}
	if patch.Title != nil {
		row[colTitle] = *patch.Title
	}
	if patch.Purpose != nil {
		row[colPurpose] = *patch.Purpose
	}
	if patch.Participants != nil {
		row[colParticipants] = *patch.Participants
	}
	if patch.Status != nil {
		row[colStatus] = string(*patch.Status)
	}
	if patch.IsCheckedIn != nil {
		row[colIsCheckedIn] = formatBool(*patch.IsCheckedIn)
	}
	if patch.CheckInTime != nil {
		row[colCheckInTime] = formatTimestamp(patch.CheckInTime)
	}
	if patch.CheckOutTime != nil {
		row[colCheckOutTime] = formatTimestamp(patch.CheckOutTime)
	}
	if patch.ActualStartTime != nil {
		row[colActualStartTime] = formatTimestamp(patch.ActualStartTime)
	}
	if patch.ActualEndTime != nil {
		row[colActualEndTime] = formatTimestamp(patch.ActualEndTime)
	}
	if patch.IsNoShow != nil {
		row[colIsNoShow] = formatBool(*patch.IsNoShow)
	}
	if !patch.UpdatedAt.IsZero() {
		row[colUpdatedAt] = formatTimestamp(&patch.UpdatedAt)
	}
	return row
}

func decodeRoom(row []interface{}) (*domain.Room, bool) {
	id := cell(row, roomColID)
	if id == "" {
		return nil, false
	}

	room := &domain.Room{
		ID:       id,
		Name:     cell(row, roomColName),
		Location: cell(row, roomColLocation),
		Status:   domain.RoomStatus(strings.ToLower(cell(row, roomColStatus))),
	}
	if room.Status != domain.RoomStatusActive {
		room.Status = domain.RoomStatusInactive
	}
	if n, err := strconv.Atoi(cell(row, roomColCapacity)); err == nil {
		room.Capacity = n
	}

	room.Equipment = make([]string, 0)
	for _, item := range strings.Split(cell(row, roomColEquipment), ",") {
		if item = strings.TrimSpace(item); item != "" {
			room.Equipment = append(room.Equipment, item)
		}
	}
	return room, true
}

// lastColumn буква последней колонки для n колонок (n <= 26)
func lastColumn(n int) string {
	return string(rune('A' + n - 1))
}
