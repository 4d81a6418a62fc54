package Stock

import (
	"errors"
	"testing"
	"time"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCurrentStock(t *testing.T) {
	records := []SummaryRecord{
		{ItemID: 1, Date: day("2024-01-01"), ClosingMain: 5, ClosingSub: 2, ClosingTotal: 7},
		{ItemID: 2, Date: day("2024-03-01"), ClosingMain: 100, ClosingSub: 0, ClosingTotal: 100},
		{ItemID: 1, Date: day("2024-02-01"), ClosingMain: 8, ClosingSub: 1, ClosingTotal: 9},
	}

	tests := []struct {
		name   string
		itemID uint
		want   Quantities
	}{
		{"Latest record wins", 1, Quantities{Main: 8, Sub: 1, Total: 9}},
		{"Single record", 2, Quantities{Main: 100, Sub: 0, Total: 100}},
		{"No records resolves to zero", 3, Quantities{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CurrentStock(tt.itemID, records); got != tt.want {
				t.Errorf("CurrentStock(%d) = %+v, want %+v", tt.itemID, got, tt.want)
			}
		})
	}
}

func TestCurrentStockTieKeepsFirst(t *testing.T) {
	records := []SummaryRecord{
		{ItemID: 1, Date: day("2024-02-01"), ClosingMain: 8, ClosingSub: 1, ClosingTotal: 9},
		{ItemID: 1, Date: day("2024-02-01"), ClosingMain: 3, ClosingSub: 3, ClosingTotal: 6},
	}

	got := CurrentStock(1, records)
	want := Quantities{Main: 8, Sub: 1, Total: 9}
	if got != want {
		t.Errorf("tie should keep the first record: got %+v, want %+v", got, want)
	}
}

func TestCurrentStockAll(t *testing.T) {
	records := []SummaryRecord{
		{ItemID: 1, Date: day("2024-01-01"), ClosingMain: 5, ClosingSub: 2, ClosingTotal: 7},
		{ItemID: 1, Date: day("2024-02-01"), ClosingMain: 8, ClosingSub: 1, ClosingTotal: 9},
		{ItemID: 2, Date: day("2024-01-15"), ClosingMain: 4, ClosingSub: 4, ClosingTotal: 8},
	}

	got := CurrentStockAll(records)
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[1] != (Quantities{Main: 8, Sub: 1, Total: 9}) {
		t.Errorf("item 1 = %+v", got[1])
	}
	if got[2] != (Quantities{Main: 4, Sub: 4, Total: 8}) {
		t.Errorf("item 2 = %+v", got[2])
	}

	// Per-item resolution must agree with the single-pass map.
	for itemID, want := range got {
		if single := CurrentStock(itemID, records); single != want {
			t.Errorf("CurrentStock(%d) = %+v disagrees with CurrentStockAll %+v", itemID, single, want)
		}
	}
}

func TestValidateIssueQuantity(t *testing.T) {
	tests := []struct {
		name      string
		requested float64
		available float64
		wantErr   error
	}{
		{"Within available", 5, 10, nil},
		{"Exactly available", 10, 10, nil},
		{"Exceeds available", 11, 10, ErrInsufficientStock},
		{"Zero requested", 0, 10, ErrInvalidQuantity},
		{"Negative requested", -2, 10, ErrInvalidQuantity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIssueQuantity(tt.requested, tt.available)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInsufficientStockErrorDetails(t *testing.T) {
	err := ValidateIssueQuantity(12, 4.5)

	var insufficient *InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected *InsufficientStockError, got %T", err)
	}
	if insufficient.Requested != 12 || insufficient.Available != 4.5 {
		t.Errorf("unexpected quantities: %+v", insufficient)
	}
}
