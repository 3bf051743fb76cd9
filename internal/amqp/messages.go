package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"fintrack/internal/core"
)

// Refresh reasons carried by RefreshMessage.
const (
	ReasonTransactionCreated = "transaction_created"
	ReasonTransactionUpdated = "transaction_updated"
	ReasonTransactionDeleted = "transaction_deleted"
	ReasonBudgetSaved        = "budget_saved"
	ReasonBudgetDeleted      = "budget_deleted"
)

// RefreshMessage asks the worker to recompute the report of one month.
// It carries only the period; the worker reads the records from storage.
type RefreshMessage struct {
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRefreshMessage(year, month int, reason string) *RefreshMessage {
	return &RefreshMessage{
		Year:      year,
		Month:     month,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// Period returns a time inside the message's month, usable as a reference time.
func (m *RefreshMessage) Period() time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 12, 0, 0, 0, time.UTC)
}

func (m *RefreshMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RefreshMessageFromJSON decodes a message and rejects impossible periods.
func RefreshMessageFromJSON(data []byte) (*RefreshMessage, error) {
	var msg RefreshMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := core.ValidateMonth(msg.Month); err != nil {
		return nil, fmt.Errorf("refresh message: %w", err)
	}
	if msg.Year <= 0 {
		return nil, fmt.Errorf("refresh message: %w", core.ErrInvalidYear)
	}
	return &msg, nil
}
