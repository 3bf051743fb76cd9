package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const maxDescriptionLen = 200

type (
	// Money is an amount in integer cents of a single currency.
	Money struct {
		Cents int64
	}

	// Transaction is a single recorded expense.
	Transaction struct {
		ID          string
		Amount      Money
		Date        time.Time
		Category    string // Category id, resolved through the analytics registry
		Description string
	}

	// Budget caps spending for one category in one calendar month.
	Budget struct {
		ID       string
		Category string
		Amount   Money
		Month    int // 1-12
		Year     int
	}

	// ValidationError reports a caller-fixable problem with a single field.
	ValidationError struct {
		Field  string
		Reason string
	}
)

// ErrValidation matches every *ValidationError through errors.Is.
var ErrValidation = errors.New("validation failed")

var (
	ErrInvalidAmount    = &ValidationError{Field: "amount", Reason: "must be a non-negative finite number"}
	ErrInvalidMonth     = &ValidationError{Field: "month", Reason: "must be between 1 and 12"}
	ErrInvalidYear      = &ValidationError{Field: "year", Reason: "must be positive"}
	ErrInvalidDate      = &ValidationError{Field: "date", Reason: "cannot be zero"}
	ErrEmptyDescription = &ValidationError{Field: "description", Reason: "cannot be empty"}
	ErrEmptyCategory    = &ValidationError{Field: "category", Reason: "cannot be empty"}
)

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	t, ok := target.(*ValidationError)
	return ok && t.Field == e.Field && t.Reason == e.Reason
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// ValidateMonth checks that month lies in 1-12.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

func (t Transaction) Validate() error {
	if t.Amount.Cents <= 0 {
		return NewValidationError("amount", "must be greater than zero")
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > maxDescriptionLen {
		return NewValidationError("description", fmt.Sprintf("too long (max %d characters)", maxDescriptionLen))
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if err := ValidateMonth(b.Month); err != nil {
		return err
	}
	if b.Year <= 0 {
		return ErrInvalidYear
	}
	return nil
}

// Period returns the budget's calendar month as a time at midnight UTC on the first.
func (b Budget) Period() time.Time {
	return time.Date(b.Year, time.Month(b.Month), 1, 0, 0, 0, 0, time.UTC)
}
