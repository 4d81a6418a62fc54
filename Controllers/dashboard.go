package Controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Inventra/Models"
	"Inventra/Stock"
)

// DashboardController handles dashboard aggregate endpoints
type DashboardController struct {
	DB *gorm.DB
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// Summary returns the counts and totals the dashboard cards display
func (c *DashboardController) Summary(ctx *fiber.Ctx) error {
	var itemCount, vendorCount, busCount, invoiceCount, issueCount int64
	c.DB.Model(&Models.Item{}).Count(&itemCount)
	c.DB.Model(&Models.Vendor{}).Count(&vendorCount)
	c.DB.Model(&Models.Bus{}).Count(&busCount)
	c.DB.Model(&Models.PurchaseInvoice{}).Count(&invoiceCount)
	c.DB.Model(&Models.IssueBill{}).Count(&issueCount)

	var purchaseTotal float64
	c.DB.Model(&Models.PurchaseInvoice{}).Select("COALESCE(SUM(total_invoice_value), 0)").Scan(&purchaseTotal)

	return ctx.JSON(fiber.Map{
		"items":            itemCount,
		"vendors":          vendorCount,
		"buses":            busCount,
		"purchaseInvoices": invoiceCount,
		"issueBills":       issueCount,
		"purchaseTotal":    purchaseTotal,
	})
}

// MonthlyPurchases returns invoice value summed by month over the last year
func (c *DashboardController) MonthlyPurchases(ctx *fiber.Ctx) error {
	type MonthlyData struct {
		Month    string  `json:"month"`
		Value    float64 `json:"value"`
		Invoices int     `json:"invoices"`
	}

	endDate := time.Now()
	startDate := endDate.AddDate(-1, 0, 0)

	var invoices []Models.PurchaseInvoice
	result := c.DB.Where("date BETWEEN ? AND ?", startDate, endDate).Find(&invoices)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to retrieve invoices"})
	}

	// Group in Go rather than fighting SQL date formatting differences
	monthlySummary := make(map[string]*MonthlyData)
	for i := 0; i < 12; i++ {
		date := endDate.AddDate(0, -i, 0)
		monthlySummary[date.Format("2006-01")] = &MonthlyData{
			Month: date.Format("Jan 2006"),
		}
	}

	for _, invoice := range invoices {
		if data, exists := monthlySummary[invoice.Date.Format("2006-01")]; exists {
			data.Value += invoice.TotalInvoiceValue.InexactFloat64()
			data.Invoices++
		}
	}

	var response []MonthlyData
	for i := 11; i >= 0; i-- {
		date := endDate.AddDate(0, -i, 0)
		if data, exists := monthlySummary[date.Format("2006-01")]; exists {
			response = append(response, *data)
		}
	}

	return ctx.JSON(response)
}

// LowStock lists items whose current total stock is at or below their
// minimum level
func (c *DashboardController) LowStock(ctx *fiber.Ctx) error {
	var items []Models.Item
	if err := c.DB.Where("min_stock > 0").Find(&items).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve items"})
	}

	var summaries []Models.StockSummary
	if err := c.DB.Find(&summaries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve stock summaries"})
	}
	current := Stock.CurrentStockAll(Models.ResolverRecords(summaries))

	type lowStockItem struct {
		Models.Item
		CurrentStock Stock.Quantities `json:"current_stock"`
	}
	low := []lowStockItem{}
	for _, item := range items {
		quantities := current[item.ID]
		if quantities.Total <= item.MinStock {
			low = append(low, lowStockItem{Item: item, CurrentStock: quantities})
		}
	}

	return ctx.JSON(low)
}

// RecentActivity returns the latest invoices and issue bills
func (c *DashboardController) RecentActivity(ctx *fiber.Ctx) error {
	var invoices []Models.PurchaseInvoice
	c.DB.Preload("Vendor").Order("created_at DESC").Limit(5).Find(&invoices)

	var bills []Models.IssueBill
	c.DB.Order("created_at DESC").Limit(5).Find(&bills)

	return ctx.JSON(fiber.Map{
		"purchaseInvoices": invoices,
		"issueBills":       bills,
	})
}
