package check_in

// CheckInRequest HTTP request model
type CheckInRequest struct {
	EmployeeID string `json:"employeeId"` // табельный номер владельца или код администратора
}
