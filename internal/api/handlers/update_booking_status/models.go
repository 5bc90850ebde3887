package update_booking_status

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status     string `json:"status"`     // pending, confirmed, cancelled
	EmployeeID string `json:"employeeId"` // табельный номер владельца или код администратора
}
