package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestValidateBalancedAcceptsBalancedLines(t *testing.T) {
	lines := []CreateEntryLine{
		{AccountID: uuid.New(), Direction: Debit, Amount: decimal.NewFromInt(100)},
		{AccountID: uuid.New(), Direction: Credit, Amount: decimal.NewFromInt(100)},
	}
	if err := ValidateBalanced(lines); err != nil {
		t.Fatalf("expected balanced lines to validate, got %v", err)
	}
}

func TestValidateBalancedRejectsUnbalancedLines(t *testing.T) {
	lines := []CreateEntryLine{
		{AccountID: uuid.New(), Direction: Debit, Amount: decimal.NewFromInt(100)},
		{AccountID: uuid.New(), Direction: Credit, Amount: decimal.NewFromInt(50)},
	}
	if err := ValidateBalanced(lines); err == nil {
		t.Fatal("expected unbalanced lines to be rejected")
	}
}

func TestValidateBalancedRejectsFewerThanTwoLines(t *testing.T) {
	lines := []CreateEntryLine{
		{AccountID: uuid.New(), Direction: Debit, Amount: decimal.NewFromInt(100)},
	}
	if err := ValidateBalanced(lines); err == nil {
		t.Fatal("expected single-line entry to be rejected")
	}
}

func TestValidateBalancedRejectsNonPositiveAmount(t *testing.T) {
	lines := []CreateEntryLine{
		{AccountID: uuid.New(), Direction: Debit, Amount: decimal.NewFromInt(0)},
		{AccountID: uuid.New(), Direction: Credit, Amount: decimal.NewFromInt(0)},
	}
	if err := ValidateBalanced(lines); err == nil {
		t.Fatal("expected zero-amount line to be rejected")
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := []Status{StatusPosted, StatusCancelled}
	for _, s := range terminal {
		if !isTerminal(s) {
			t.Errorf("expected %s to be terminal", s)
		}
	}
	nonTerminal := []Status{StatusDraft, StatusPendingApproval, StatusApproved}
	for _, s := range nonTerminal {
		if isTerminal(s) {
			t.Errorf("expected %s to not be terminal", s)
		}
	}
}

func TestAllowedTransitions(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusPendingApproval, true},
		{StatusDraft, StatusPosted, false},
		{StatusPendingApproval, StatusDraft, true},
		{StatusPendingApproval, StatusApproved, true},
		{StatusApproved, StatusPosted, true},
		{StatusApproved, StatusDraft, false},
	}
	for _, tc := range cases {
		if got := allowedTransitions[tc.from][tc.to]; got != tc.allowed {
			t.Errorf("transition %s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}
