package extend_booking

// defaultExtendMinutes продление по умолчанию, если клиент не указал длительность
const defaultExtendMinutes = 30

// ExtendRequest HTTP request model
type ExtendRequest struct {
	EmployeeID    string `json:"employeeId"`
	ExtendMinutes *int   `json:"extendMinutes,omitempty"` // 30 или 60
	Minutes       *int   `json:"minutes,omitempty"`       // синоним extendMinutes
}

// ExtendBy возвращает длительность продления: extendMinutes, затем minutes, затем 30
func (r ExtendRequest) ExtendBy() int {
	switch {
	case r.ExtendMinutes != nil:
		return *r.ExtendMinutes
	case r.Minutes != nil:
		return *r.Minutes
	default:
		return defaultExtendMinutes
	}
}
