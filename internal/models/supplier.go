package models

// Performance is the free rating attached to a supplier.
type Performance string

const (
	PerformanceExcellent Performance = "Excellent"
	PerformanceGood      Performance = "Good"
	PerformanceAverage   Performance = "Average"
	PerformancePoor      Performance = "Poor"
)

// Valid reports whether p is one of the known ratings.
func (p Performance) Valid() bool {
	switch p {
	case PerformanceExcellent, PerformanceGood, PerformanceAverage, PerformancePoor:
		return true
	}
	return false
}

type Supplier struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Contact     string      `json:"contact"`
	Email       string      `json:"email"`
	Terms       string      `json:"terms"` // free-form, e.g. "Net 30"
	Performance Performance `json:"performance"`
}
