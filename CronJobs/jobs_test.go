package CronJobs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"Inventra/Models"
)

func setupRollupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "rollup.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	err = db.AutoMigrate(
		&Models.Vendor{}, &Models.Item{},
		&Models.PurchaseInvoice{}, &Models.PurchaseInvoiceItem{},
		&Models.IssueBill{}, &Models.IssueBillItem{},
		&Models.StockSummary{},
	)
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func rollupRow(t *testing.T, db *gorm.DB, itemID uint, day time.Time) Models.StockSummary {
	t.Helper()

	var row Models.StockSummary
	if err := db.Where("item_id = ? AND date = ?", itemID, day).First(&row).Error; err != nil {
		t.Fatalf("loading rollup row: %v", err)
	}
	return row
}

func TestRollupTransferMovesStockBetweenStores(t *testing.T) {
	db := setupRollupDB(t)

	item := Models.Item{Name: "Air Filter", Code: "AF-01"}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("creating item: %v", err)
	}

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	db.Create(&Models.StockSummary{
		ItemID: item.ID, Date: day.AddDate(0, 0, -1),
		ClosingMain: 10, ClosingSub: 0, ClosingTotal: 10,
	})

	bill := Models.IssueBill{
		BillNo: "TR-1", Date: day,
		IssueType: Models.IssueTypeTransfer, FromStore: Models.StoreMain,
	}
	if err := db.Create(&bill).Error; err != nil {
		t.Fatalf("creating bill: %v", err)
	}
	db.Create(&Models.IssueBillItem{
		IssueBillID: bill.ID, ItemID: item.ID,
		SubQuantity: decimal.NewFromInt(4), ItemOrder: 1,
	})

	roller := NewStockRoller(db, false)
	if err := roller.runRollup(day); err != nil {
		t.Fatalf("rollup: %v", err)
	}

	row := rollupRow(t, db, item.ID, day)
	if row.ClosingMain != 6 || row.ClosingSub != 4 {
		t.Errorf("closing = main %v sub %v, want 6/4", row.ClosingMain, row.ClosingSub)
	}
	if row.ClosingTotal != 10 {
		t.Errorf("closing total = %v, a transfer must not change it", row.ClosingTotal)
	}
}

func TestRollupPurchasesAndConsumption(t *testing.T) {
	db := setupRollupDB(t)

	vendor := Models.Vendor{Name: "Test Supplies"}
	if err := db.Create(&vendor).Error; err != nil {
		t.Fatalf("creating vendor: %v", err)
	}
	item := Models.Item{Name: "Grease", Code: "GR-01"}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("creating item: %v", err)
	}

	day := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	db.Create(&Models.StockSummary{
		ItemID: item.ID, Date: day.AddDate(0, 0, -2),
		ClosingMain: 3, ClosingSub: 2, ClosingTotal: 5,
	})

	invoice := Models.PurchaseInvoice{InvoiceNo: "PI-1", Date: day, VendorID: vendor.ID}
	if err := db.Create(&invoice).Error; err != nil {
		t.Fatalf("creating invoice: %v", err)
	}
	db.Create(&Models.PurchaseInvoiceItem{
		PurchaseInvoiceID: invoice.ID, ItemID: item.ID,
		SubQuantity: decimal.NewFromInt(6), ItemOrder: 1,
	})

	bill := Models.IssueBill{
		BillNo: "IB-1", Date: day,
		IssueType: Models.IssueTypeConsumption, FromStore: Models.StoreSub,
	}
	if err := db.Create(&bill).Error; err != nil {
		t.Fatalf("creating bill: %v", err)
	}
	db.Create(&Models.IssueBillItem{
		IssueBillID: bill.ID, ItemID: item.ID,
		SubQuantity: decimal.NewFromInt(1), ItemOrder: 1,
	})

	roller := NewStockRoller(db, false)
	if err := roller.runRollup(day); err != nil {
		t.Fatalf("rollup: %v", err)
	}

	row := rollupRow(t, db, item.ID, day)
	if row.ClosingMain != 9 || row.ClosingSub != 1 || row.ClosingTotal != 10 {
		t.Errorf("closing = main %v sub %v total %v, want 9/1/10", row.ClosingMain, row.ClosingSub, row.ClosingTotal)
	}

	// Rerunning the same day replaces the rows instead of compounding
	if err := roller.runRollup(day); err != nil {
		t.Fatalf("rerun rollup: %v", err)
	}
	var count int64
	db.Model(&Models.StockSummary{}).Where("item_id = ? AND date = ?", item.ID, day).Count(&count)
	if count != 1 {
		t.Errorf("rollup rows after rerun = %d, want 1", count)
	}
	if row = rollupRow(t, db, item.ID, day); row.ClosingTotal != 10 {
		t.Errorf("closing total after rerun = %v, want 10", row.ClosingTotal)
	}
}
