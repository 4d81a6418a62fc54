package Controllers

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"Inventra/Billing"
	"Inventra/Models"
	"Inventra/Stock"
)

func newReportSheet(sheetName string, headers []string) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	// Set headers in the first row
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	// Style the header row
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for i := 0; i < len(headers); i++ {
		f.SetColWidth(sheetName, string('A'+rune(i)), string('A'+rune(i)), 18)
	}

	if f.GetSheetName(0) != sheetName {
		f.DeleteSheet("Sheet1")
	}

	return f, nil
}

func sendWorkbook(c *fiber.Ctx, f *excelize.File, prefix string) error {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("Failed to write workbook: %v", err),
		})
	}

	filename := fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102_150405"))
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}

// ExportStockReport downloads the current stock position of every item
// GET /api/reports/stock
func ExportStockReport(c *fiber.Ctx) error {
	var items []Models.Item
	if err := Models.DB.Order("code ASC").Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve items"})
	}

	var summaries []Models.StockSummary
	if err := Models.DB.Find(&summaries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve stock summaries"})
	}
	current := Stock.CurrentStockAll(Models.ResolverRecords(summaries))

	sheetName := "Stock"
	headers := []string{
		"Item Code", "Item Name", "Head Unit", "Sub Unit",
		"Main Store", "Sub Store", "Total", "Min Stock",
	}
	f, err := newReportSheet(sheetName, headers)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	for rowIndex, item := range items {
		row := rowIndex + 2
		quantities := current[item.ID]

		values := []interface{}{
			item.Code,
			item.Name,
			item.HeadUnit,
			item.SubUnit,
			quantities.Main,
			quantities.Sub,
			quantities.Total,
			item.MinStock,
		}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	return sendWorkbook(c, f, "stock_report")
}

// ExportInvoiceRegister downloads the purchase invoice register for a
// date range (defaults to the current month)
// GET /api/reports/invoices?from=2024-01-01&to=2024-01-31
func ExportInvoiceRegister(c *fiber.Ctx) error {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := now

	if q := c.Query("from"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid from date"})
		}
		from = parsed
	}
	if q := c.Query("to"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid to date"})
		}
		to = parsed
	}

	var invoices []Models.PurchaseInvoice
	err := Models.DB.Preload("Vendor").
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&invoices).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve invoices"})
	}

	sheetName := "Invoices"
	headers := []string{
		"Invoice No", "Date", "Vendor", "GSTIN",
		"Taxable Value", "GST", "Invoice Value",
	}
	f, err := newReportSheet(sheetName, headers)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	for rowIndex, invoice := range invoices {
		row := rowIndex + 2

		// Values round to two places at this presentation boundary only
		values := []interface{}{
			invoice.InvoiceNo,
			invoice.Date.Format("2006-01-02"),
			invoice.Vendor.Name,
			invoice.Vendor.Gstin,
			Billing.Round2(invoice.TotalTaxableValue).InexactFloat64(),
			Billing.Round2(invoice.GstTotal).InexactFloat64(),
			Billing.Round2(invoice.TotalInvoiceValue).InexactFloat64(),
		}
		for colIndex, value := range values {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	return sendWorkbook(c, f, "invoice_register")
}
