// audit/model.go
package audit

import "time"

// PanelLoad is the audit record of one list load.
type PanelLoad struct {
	ID             string        `json:"id"`
	Timestamp      time.Time     `json:"timestamp"`
	Panel          string        `json:"panel"`
	Generation     uint64        `json:"generation"`
	Outcome        string        `json:"outcome"`
	Items          int           `json:"items"`
	ItemsAvailable int           `json:"items_available"`
	FailedOrigins  []string      `json:"failed_origins,omitempty"`
	Error          string        `json:"error,omitempty"`
	Duration       time.Duration `json:"duration"`
}

// Outcome values recorded for a load.
const (
	OutcomeLoaded  = "loaded"
	OutcomePartial = "partial"
	OutcomeFailed  = "failed"
	OutcomeStale   = "stale"
)
