package sheets

import "time"

// MetricsCollector интерфейс для сбора метрик обращений к хранилищу
type MetricsCollector interface {
	ObserveStoreCall(backend, operation string, d time.Duration, err error)
}
