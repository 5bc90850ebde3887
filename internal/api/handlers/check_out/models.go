package check_out

// CheckOutRequest HTTP request model
type CheckOutRequest struct {
	EmployeeID string `json:"employeeId"`
}
