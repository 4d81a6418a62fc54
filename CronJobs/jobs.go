package CronJobs

import (
	"fmt"
	"log"
	"time"

	"Inventra/Models"
	"Inventra/Stock"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StockRoller rolls daily stock movements into the append-only summary table
type StockRoller struct {
	db             *gorm.DB
	cronScheduler  *cron.Cron
	runImmediately bool
	jobID          cron.EntryID
}

// NewStockRoller creates a new stock roller with the given configuration
func NewStockRoller(db *gorm.DB, runImmediately bool) *StockRoller {
	return &StockRoller{
		db:             db,
		cronScheduler:  cron.New(cron.WithSeconds()),
		runImmediately: runImmediately,
	}
}

// Start initiates the stock rollup cron job
func (s *StockRoller) Start() error {
	// Add the scheduled task
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 0 1 * * *", func() {
		log.Println("Running scheduled daily stock rollup")
		s.runRollup(time.Now().AddDate(0, 0, -1))
	})

	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	// Start the scheduler
	s.cronScheduler.Start()
	fmt.Println("Stock rollup scheduler started - will run daily at 1:00 AM")

	// Run immediately if requested
	if s.runImmediately {
		fmt.Println("Running initial stock rollup")
		s.runRollup(time.Now().AddDate(0, 0, -1))
	}

	return nil
}

// Stop terminates the stock roller
func (s *StockRoller) Stop() {
	if s.cronScheduler != nil {
		s.cronScheduler.Stop()
		log.Println("Stock rollup scheduler stopped")
	}
}

// UpdateSchedule changes the schedule of the stock roller
// Format: "0 0 1 * * *" = At 01:00:00 AM every day
func (s *StockRoller) UpdateSchedule(schedule string) error {
	// Remove existing job
	s.cronScheduler.Remove(s.jobID)

	// Add with new schedule
	var err error
	s.jobID, err = s.cronScheduler.AddFunc(schedule, func() {
		log.Println("Running scheduled stock rollup")
		s.runRollup(time.Now().AddDate(0, 0, -1))
	})

	if err != nil {
		return fmt.Errorf("error updating schedule: %w", err)
	}

	log.Printf("Stock rollup schedule updated to: %s\n", schedule)
	return nil
}

// RunManualRollup executes a rollup for the given day outside the schedule
func (s *StockRoller) RunManualRollup(day time.Time) error {
	log.Printf("Running manual stock rollup for %s\n", day.Format("2006-01-02"))
	return s.runRollup(day)
}

type stockDelta struct {
	main float64
	sub  float64
}

// runRollup writes one StockSummary row per item that moved on the given day.
// Closing quantities are the latest summary before the day plus purchases into
// the main store minus issues from their bill's store. Items without movement
// keep carrying their older summary row.
func (s *StockRoller) runRollup(day time.Time) error {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var previous []Models.StockSummary
	if err := s.db.Where("date < ?", dayStart).Find(&previous).Error; err != nil {
		log.Printf("Error loading stock summaries: %v\n", err)
		return err
	}
	current := Stock.CurrentStockAll(Models.ResolverRecords(previous))

	deltas := make(map[uint]stockDelta)

	var invoices []Models.PurchaseInvoice
	if err := s.db.Preload("Items").
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Find(&invoices).Error; err != nil {
		log.Printf("Error loading purchase invoices: %v\n", err)
		return err
	}
	for _, invoice := range invoices {
		for _, item := range invoice.Items {
			d := deltas[item.ItemID]
			d.main += item.SubQuantity.InexactFloat64()
			deltas[item.ItemID] = d
		}
	}

	var bills []Models.IssueBill
	if err := s.db.Preload("Items").
		Where("date >= ? AND date < ?", dayStart, dayEnd).
		Find(&bills).Error; err != nil {
		log.Printf("Error loading issue bills: %v\n", err)
		return err
	}
	for _, bill := range bills {
		for _, item := range bill.Items {
			d := deltas[item.ItemID]
			qty := item.SubQuantity.InexactFloat64()
			if bill.FromStore == Models.StoreSub {
				d.sub -= qty
			} else {
				d.main -= qty
			}
			// Transfers credit the other store; the total is unchanged
			if bill.IssueType == Models.IssueTypeTransfer {
				if bill.FromStore == Models.StoreSub {
					d.main += qty
				} else {
					d.sub += qty
				}
			}
			deltas[item.ItemID] = d
		}
	}

	if len(deltas) == 0 {
		log.Printf("No stock movement on %s, nothing to roll up\n", dayStart.Format("2006-01-02"))
		return nil
	}

	rows := make([]Models.StockSummary, 0, len(deltas))
	for itemID, delta := range deltas {
		opening := current[itemID]
		closingMain := opening.Main + delta.main
		closingSub := opening.Sub + delta.sub
		rows = append(rows, Models.StockSummary{
			ItemID:       itemID,
			Date:         dayStart,
			ClosingMain:  closingMain,
			ClosingSub:   closingSub,
			ClosingTotal: closingMain + closingSub,
		})
	}

	// Replace any earlier rollup of the same day so reruns stay idempotent
	tx := s.db.Begin()
	if err := tx.Where("date = ?", dayStart).Delete(&Models.StockSummary{}).Error; err != nil {
		tx.Rollback()
		log.Printf("Error clearing existing rollup rows: %v\n", err)
		return err
	}
	if err := tx.Create(&rows).Error; err != nil {
		tx.Rollback()
		log.Printf("Error writing rollup rows: %v\n", err)
		return err
	}
	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing rollup: %v\n", err)
		return err
	}

	log.Printf("Stock rollup for %s wrote %d summary rows\n", dayStart.Format("2006-01-02"), len(rows))
	return nil
}
