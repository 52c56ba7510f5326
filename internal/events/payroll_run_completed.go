package events

import "time"

const (
	PayrollRunCompletedTopic = "payroll.run.completed.v1"
	PayrollRunCompletedType  = "payroll_run_completed"
	PayrollRunAggregateType  = "payroll_run"
)

type PayrollRunCompletedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id,omitempty"`
	RunID         string    `json:"run_id"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	EmployeeCount int       `json:"employee_count"`
	TotalNet      string    `json:"total_net"`
	Rerun         bool      `json:"rerun"`
	OccurredAt    time.Time `json:"occurred_at"`
}
