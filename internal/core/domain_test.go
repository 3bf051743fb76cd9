package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Amount:      Money{Cents: 100},
		Date:        day(2024, 3, 5),
		Category:    "food",
		Description: "lunch",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		tx    Transaction
		field string
	}{
		{Transaction{Amount: Money{Cents: 0}, Date: day(2024, 1, 1), Category: "food", Description: "a"}, "amount"},
		{Transaction{Amount: Money{Cents: -5}, Date: day(2024, 1, 1), Category: "food", Description: "a"}, "amount"},
		{Transaction{Amount: Money{Cents: 1}, Category: "food", Description: "a"}, "date"},
		{Transaction{Amount: Money{Cents: 1}, Date: day(2024, 1, 1), Category: "food", Description: "  "}, "description"},
		{Transaction{Amount: Money{Cents: 1}, Date: day(2024, 1, 1), Category: "food", Description: strings.Repeat("x", 201)}, "description"},
		{Transaction{Amount: Money{Cents: 1}, Date: day(2024, 1, 1), Category: "", Description: "a"}, "category"},
	}
	for i, tc := range cases {
		err := tc.tx.Validate()
		if err == nil {
			t.Fatalf("case %d expected error", i)
		}
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("case %d expected ValidationError, got %T", i, err)
		}
		if ve.Field != tc.field {
			t.Fatalf("case %d expected field %q, got %q", i, tc.field, ve.Field)
		}
		if !IsValidation(err) {
			t.Fatalf("case %d expected errors.Is(err, ErrValidation)", i)
		}
	}
}

func TestTransactionValidateUnknownCategoryAccepted(t *testing.T) {
	tx := Transaction{Amount: Money{Cents: 1}, Date: day(2024, 1, 1), Category: "crypto-mining", Description: "a"}
	if err := tx.Validate(); err != nil {
		t.Fatalf("unknown categories must not be rejected, got %v", err)
	}
}

func TestBudgetValidate(t *testing.T) {
	cases := []struct {
		b  Budget
		ok bool
	}{
		{Budget{Category: "food", Amount: Money{Cents: 10000}, Month: 3, Year: 2024}, true},
		{Budget{Category: "food", Amount: Money{Cents: 0}, Month: 12, Year: 2024}, true},
		{Budget{Category: "food", Amount: Money{Cents: -1}, Month: 3, Year: 2024}, false},
		{Budget{Category: "food", Amount: Money{Cents: 1}, Month: 0, Year: 2024}, false},
		{Budget{Category: "food", Amount: Money{Cents: 1}, Month: 13, Year: 2024}, false},
		{Budget{Category: "food", Amount: Money{Cents: 1}, Month: 1, Year: 0}, false},
		{Budget{Category: "", Amount: Money{Cents: 1}, Month: 1, Year: 2024}, false},
	}
	for i, tc := range cases {
		err := tc.b.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("month", "must be between 1 and 12")
	if got := err.Error(); got != "invalid month: must be between 1 and 12" {
		t.Fatalf("unexpected message %q", got)
	}
	if !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected equal field and reason to match ErrInvalidMonth")
	}
}
