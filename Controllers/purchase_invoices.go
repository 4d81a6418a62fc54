package Controllers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Inventra/Billing"
	"Inventra/Models"
	"Inventra/Validation"
)

// buildInvoiceItems runs every request row through the calculator and
// returns the persisted line shape. Client-sent derived fields never reach
// this path; the calculator's output is the only source of amounts.
func buildInvoiceItems(rows []Models.InvoiceItemRequest) ([]Models.PurchaseInvoiceItem, []Billing.Line) {
	items := make([]Models.PurchaseInvoiceItem, 0, len(rows))
	lines := make([]Billing.Line, 0, len(rows))

	for i, row := range rows {
		line := Billing.RecomputeLine(row.BillingLine())
		lines = append(lines, line)

		items = append(items, Models.PurchaseInvoiceItem{
			ItemID:       row.ItemID,
			HeadQuantity: Billing.ParseAmount(row.HeadQuantity),
			HeadUnit:     row.HeadUnit,
			SubQuantity:  Billing.ParseAmount(row.SubQuantity),
			SubUnit:      row.SubUnit,
			Rate:         Billing.ParseAmount(row.Rate),
			GstRate:      Billing.ParseAmount(row.GstRate),
			Amount:       line.Amount,
			GstAmount:    line.GstAmount,
			Total:        line.Total,
			ItemOrder:    i + 1,
		})
	}
	return items, lines
}

// CreatePurchaseInvoice creates a new purchase invoice
// POST /api/purchase-invoices
func CreatePurchaseInvoice(c *fiber.Ctx) error {
	var req Models.PurchaseInvoiceRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}
	if messages := Validation.Struct(req); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid date format",
			"message": "Date must be in YYYY-MM-DD format",
		})
	}

	// Check if vendor exists
	var vendor Models.Vendor
	if err := Models.DB.First(&vendor, req.VendorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Vendor not found",
				"message": "The specified vendor does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	items, lines := buildInvoiceItems(req.Items)
	totals := Billing.RecomputeInvoice(lines, req.Charges())

	invoice := &Models.PurchaseInvoice{
		InvoiceNo:            req.InvoiceNo,
		Date:                 date,
		VendorID:             req.VendorID,
		BeforeTaxAmount:      Billing.ParseAmount(req.BeforeTaxAmount),
		BeforeTaxPercent:     Billing.ParseAmount(req.BeforeTaxPercent),
		BeforeTaxGstRate:     Billing.ParseAmount(req.BeforeTaxGstRate),
		OtherChargesAfterTax: Billing.ParseAmount(req.OtherChargesAfterTax),
		TotalTaxableValue:    totals.TotalTaxableValue,
		GstTotal:             totals.GstTotal,
		TotalInvoiceValue:    totals.TotalInvoiceValue,
	}

	tx := Models.DB.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Transaction error",
			"message": tx.Error.Error(),
		})
	}

	if err := tx.Create(invoice).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create purchase invoice",
			"message": err.Error(),
		})
	}

	for i := range items {
		items[i].PurchaseInvoiceID = invoice.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create invoice items",
				"message": err.Error(),
			})
		}
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to commit transaction",
			"message": err.Error(),
		})
	}

	// Reload with relationships
	Models.DB.Preload("Vendor").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).Preload("Items.Item").First(invoice, invoice.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Purchase invoice created successfully",
		"data":    invoice,
	})
}

// GetPurchaseInvoice retrieves a purchase invoice by ID
// GET /api/purchase-invoices/:id
func GetPurchaseInvoice(c *fiber.Ctx) error {
	id := c.Params("id")
	invoiceID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var invoice Models.PurchaseInvoice
	err = Models.DB.Preload("Vendor").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).Preload("Items.Item").First(&invoice, uint(invoiceID)).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Purchase invoice not found",
				"message": "The specified purchase invoice does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Purchase invoice retrieved successfully",
		"data":    invoice,
	})
}

// GetAllPurchaseInvoices retrieves all purchase invoices with pagination
// GET /api/purchase-invoices?page=1&limit=10
func GetAllPurchaseInvoices(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	offset := (page - 1) * limit

	var invoices []Models.PurchaseInvoice
	var total int64

	query := Models.DB.Model(&Models.PurchaseInvoice{})
	if vendorID := c.Query("vendor_id"); vendorID != "" {
		query = query.Where("vendor_id = ?", vendorID)
	}
	query.Count(&total)

	err := query.Preload("Vendor").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).Order("date DESC").Offset(offset).Limit(limit).Find(&invoices).Error

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Purchase invoices retrieved successfully",
		"data":    invoices,
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// UpdatePurchaseInvoice updates an existing purchase invoice
// PUT /api/purchase-invoices/:id
func UpdatePurchaseInvoice(c *fiber.Ctx) error {
	id := c.Params("id")
	invoiceID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var req Models.PurchaseInvoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}
	if messages := Validation.Struct(req); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	var invoice Models.PurchaseInvoice
	if err := Models.DB.First(&invoice, uint(invoiceID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Purchase invoice not found",
				"message": "The specified purchase invoice does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid date format",
			"message": "Date must be in YYYY-MM-DD format",
		})
	}

	items, lines := buildInvoiceItems(req.Items)
	totals := Billing.RecomputeInvoice(lines, req.Charges())

	tx := Models.DB.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Transaction error",
			"message": tx.Error.Error(),
		})
	}

	invoice.InvoiceNo = req.InvoiceNo
	invoice.Date = date
	invoice.VendorID = req.VendorID
	invoice.BeforeTaxAmount = Billing.ParseAmount(req.BeforeTaxAmount)
	invoice.BeforeTaxPercent = Billing.ParseAmount(req.BeforeTaxPercent)
	invoice.BeforeTaxGstRate = Billing.ParseAmount(req.BeforeTaxGstRate)
	invoice.OtherChargesAfterTax = Billing.ParseAmount(req.OtherChargesAfterTax)
	invoice.TotalTaxableValue = totals.TotalTaxableValue
	invoice.GstTotal = totals.GstTotal
	invoice.TotalInvoiceValue = totals.TotalInvoiceValue

	if err := tx.Save(&invoice).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to update purchase invoice",
			"message": err.Error(),
		})
	}

	// Replace existing line items
	if err := tx.Where("purchase_invoice_id = ?", invoice.ID).Delete(&Models.PurchaseInvoiceItem{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete existing invoice items",
			"message": err.Error(),
		})
	}

	for i := range items {
		items[i].PurchaseInvoiceID = invoice.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create invoice items",
				"message": err.Error(),
			})
		}
	}

	if err := tx.Commit().Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to commit transaction",
			"message": err.Error(),
		})
	}

	Models.DB.Preload("Vendor").Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).Preload("Items.Item").First(&invoice, invoice.ID)

	return c.JSON(fiber.Map{
		"message": "Purchase invoice updated successfully",
		"data":    invoice,
	})
}

// DeletePurchaseInvoice deletes a purchase invoice
// DELETE /api/purchase-invoices/:id
func DeletePurchaseInvoice(c *fiber.Ctx) error {
	id := c.Params("id")
	invoiceID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var invoice Models.PurchaseInvoice
	if err := Models.DB.First(&invoice, uint(invoiceID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Purchase invoice not found",
				"message": "The specified purchase invoice does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	// Line items are removed by the CASCADE constraint
	if err := Models.DB.Delete(&invoice).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete purchase invoice",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Purchase invoice deleted successfully",
	})
}
