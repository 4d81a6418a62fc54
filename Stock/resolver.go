package Stock

import (
	"errors"
	"fmt"
	"time"
)

// SummaryRecord is one snapshot of an item's stock on a given date.
// Records are append-only; the latest record by date is the current truth.
type SummaryRecord struct {
	ItemID       uint      `json:"item_id"`
	Date         time.Time `json:"date"`
	ClosingMain  float64   `json:"closing_main"`
	ClosingSub   float64   `json:"closing_sub"`
	ClosingTotal float64   `json:"closing_total"`
}

// Quantities is the resolved current stock for an item across both stores.
type Quantities struct {
	Main  float64 `json:"main"`
	Sub   float64 `json:"sub"`
	Total float64 `json:"total"`
}

var (
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")
	ErrInvalidQuantity   = errors.New("requested quantity must be greater than zero")
)

// InsufficientStockError carries the quantities so callers can show the
// shortfall to the user. Unwraps to ErrInsufficientStock.
type InsufficientStockError struct {
	Requested float64
	Available float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("requested %.2f but only %.2f available", e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// CurrentStock resolves the current quantities for one item from the full
// record set. The record with the latest date wins; on equal dates the
// earlier record in the slice is kept. No matching records resolves to
// all-zero quantities, not an error.
func CurrentStock(itemID uint, records []SummaryRecord) Quantities {
	var latest *SummaryRecord
	for i := range records {
		if records[i].ItemID != itemID {
			continue
		}
		if latest == nil || records[i].Date.After(latest.Date) {
			latest = &records[i]
		}
	}
	if latest == nil {
		return Quantities{}
	}
	return Quantities{
		Main:  latest.ClosingMain,
		Sub:   latest.ClosingSub,
		Total: latest.ClosingTotal,
	}
}

// CurrentStockAll resolves current quantities for every item in one pass.
// Use this instead of calling CurrentStock per item when populating
// dropdowns or dashboards over a large record set.
func CurrentStockAll(records []SummaryRecord) map[uint]Quantities {
	latest := make(map[uint]SummaryRecord)
	for _, rec := range records {
		prev, seen := latest[rec.ItemID]
		if !seen || rec.Date.After(prev.Date) {
			latest[rec.ItemID] = rec
		}
	}

	result := make(map[uint]Quantities, len(latest))
	for itemID, rec := range latest {
		result[itemID] = Quantities{
			Main:  rec.ClosingMain,
			Sub:   rec.ClosingSub,
			Total: rec.ClosingTotal,
		}
	}
	return result
}

// ValidateIssueQuantity checks a requested issue quantity against the
// available quantity in the source store. Returns a recoverable validation
// error for the caller to surface; the form state is the caller's to keep.
func ValidateIssueQuantity(requested, available float64) error {
	if requested <= 0 {
		return ErrInvalidQuantity
	}
	if requested > available {
		return &InsufficientStockError{Requested: requested, Available: available}
	}
	return nil
}
