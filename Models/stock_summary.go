package Models

import (
	"time"

	"gorm.io/gorm"

	"Inventra/Stock"
)

// StockSummary is an append-only daily snapshot of an item's closing stock
// per store. ClosingTotal is main + sub by construction in the rollup job;
// summaries are never edited in place.
type StockSummary struct {
	gorm.Model
	ItemID       uint      `json:"item_id" gorm:"not null;index:idx_stock_item_date"`
	Date         time.Time `json:"date" gorm:"not null;index:idx_stock_item_date"`
	ClosingMain  float64   `json:"closing_main" gorm:"not null;default:0"`
	ClosingSub   float64   `json:"closing_sub" gorm:"not null;default:0"`
	ClosingTotal float64   `json:"closing_total" gorm:"not null;default:0"`

	Item Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
}

// ResolverRecord maps a summary row into the resolver's input shape.
func (s StockSummary) ResolverRecord() Stock.SummaryRecord {
	return Stock.SummaryRecord{
		ItemID:       s.ItemID,
		Date:         s.Date,
		ClosingMain:  s.ClosingMain,
		ClosingSub:   s.ClosingSub,
		ClosingTotal: s.ClosingTotal,
	}
}

// ResolverRecords converts a query result for handing to the Stock package.
func ResolverRecords(summaries []StockSummary) []Stock.SummaryRecord {
	records := make([]Stock.SummaryRecord, 0, len(summaries))
	for _, s := range summaries {
		records = append(records, s.ResolverRecord())
	}
	return records
}
