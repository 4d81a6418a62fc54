package Controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Inventra/Billing"
	"Inventra/Models"
	"Inventra/Stock"
	"Inventra/Validation"
)

// buildIssueItems mirrors buildInvoiceItems for issue bill rows.
func buildIssueItems(rows []Models.InvoiceItemRequest) ([]Models.IssueBillItem, []Billing.Line) {
	items := make([]Models.IssueBillItem, 0, len(rows))
	lines := make([]Billing.Line, 0, len(rows))

	for i, row := range rows {
		line := Billing.RecomputeLine(row.BillingLine())
		lines = append(lines, line)

		items = append(items, Models.IssueBillItem{
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

// checkIssueAvailability validates every requested line quantity against
// the current stock in the source store. The over-issue check used to live
// only in what the UI happened to display; here it is enforced before
// anything is written.
func checkIssueAvailability(rows []Models.InvoiceItemRequest, fromStore string) []fiber.Map {
	var summaries []Models.StockSummary
	if err := Models.DB.Find(&summaries).Error; err != nil {
		return []fiber.Map{{"error": "Failed to retrieve stock summaries"}}
	}
	current := Stock.CurrentStockAll(Models.ResolverRecords(summaries))

	var failures []fiber.Map
	issued := make(map[uint]float64)
	for _, row := range rows {
		quantities := current[row.ItemID]
		available := quantities.Main
		if fromStore == Models.StoreSub {
			available = quantities.Sub
		}
		// Rows for the same item draw from one pool, so a repeated item
		// cannot pass line by line while jointly over-issuing.
		remaining := available - issued[row.ItemID]

		requested := Billing.ParseAmount(row.SubQuantity).InexactFloat64()
		if err := Stock.ValidateIssueQuantity(requested, remaining); err != nil {
			failure := fiber.Map{
				"item_id": row.ItemID,
				"error":   err.Error(),
			}
			if errors.Is(err, Stock.ErrInsufficientStock) {
				failure["requested"] = requested
				failure["available"] = remaining
			}
			failures = append(failures, failure)
			continue
		}
		issued[row.ItemID] += requested
	}
	return failures
}

// CreateIssueBill creates a new issue bill
// POST /api/issue-bills
func CreateIssueBill(c *fiber.Ctx) error {
	var req Models.IssueBillRequest

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

	if failures := checkIssueAvailability(req.Items, req.FromStore); failures != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":    "Insufficient stock",
			"failures": failures,
		})
	}

	items, lines := buildIssueItems(req.Items)
	totals := Billing.RecomputeInvoice(lines, req.Charges())

	bill := &Models.IssueBill{
		BillNo:            req.BillNo,
		Date:              date,
		IssueType:         req.IssueType,
		FromStore:         req.FromStore,
		IssuedTo:          req.IssuedTo,
		TotalTaxableValue: totals.TotalTaxableValue,
		GstTotal:          totals.GstTotal,
		TotalBillValue:    totals.TotalInvoiceValue,
	}

	tx := Models.DB.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Transaction error",
			"message": tx.Error.Error(),
		})
	}

	if err := tx.Create(bill).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to create issue bill",
			"message": err.Error(),
		})
	}

	for i := range items {
		items[i].IssueBillID = bill.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create issue bill items",
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

	Models.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).Preload("Items.Item").First(bill, bill.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Issue bill created successfully",
		"data":    bill,
	})
}

// GetIssueBill retrieves an issue bill by ID
// GET /api/issue-bills/:id
func GetIssueBill(c *fiber.Ctx) error {
	id := c.Params("id")
	billID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var bill Models.IssueBill
	err = Models.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).Preload("Items.Item").First(&bill, uint(billID)).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Issue bill not found",
				"message": "The specified issue bill does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Issue bill retrieved successfully",
		"data":    bill,
	})
}

// UpdateIssueBill updates an issue bill and replaces its line items
// PUT /api/issue-bills/:id
func UpdateIssueBill(c *fiber.Ctx) error {
	id := c.Params("id")
	billID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var req Models.IssueBillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
	}
	if messages := Validation.Struct(req); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	var bill Models.IssueBill
	if err := Models.DB.First(&bill, uint(billID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Issue bill not found",
				"message": "The specified issue bill does not exist",
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

	if failures := checkIssueAvailability(req.Items, req.FromStore); failures != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":    "Insufficient stock",
			"failures": failures,
		})
	}

	items, lines := buildIssueItems(req.Items)
	totals := Billing.RecomputeInvoice(lines, req.Charges())

	tx := Models.DB.Begin()
	if tx.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Transaction error",
			"message": tx.Error.Error(),
		})
	}

	bill.BillNo = req.BillNo
	bill.Date = date
	bill.IssueType = req.IssueType
	bill.FromStore = req.FromStore
	bill.IssuedTo = req.IssuedTo
	bill.TotalTaxableValue = totals.TotalTaxableValue
	bill.GstTotal = totals.GstTotal
	bill.TotalBillValue = totals.TotalInvoiceValue

	if err := tx.Save(&bill).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to update issue bill",
			"message": err.Error(),
		})
	}

	// Replace existing line items
	if err := tx.Where("issue_bill_id = ?", bill.ID).Delete(&Models.IssueBillItem{}).Error; err != nil {
		tx.Rollback()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete existing issue bill items",
			"message": err.Error(),
		})
	}

	for i := range items {
		items[i].IssueBillID = bill.ID
		if err := tx.Create(&items[i]).Error; err != nil {
			tx.Rollback()
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create issue bill items",
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

	Models.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).Preload("Items.Item").First(&bill, bill.ID)

	return c.JSON(fiber.Map{
		"message": "Issue bill updated successfully",
		"data":    bill,
	})
}

// GetAllIssueBills retrieves all issue bills with pagination
// GET /api/issue-bills?page=1&limit=10
func GetAllIssueBills(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	offset := (page - 1) * limit

	var bills []Models.IssueBill
	var total int64

	query := Models.DB.Model(&Models.IssueBill{})
	if issueType := c.Query("issue_type"); issueType != "" {
		query = query.Where("issue_type = ?", issueType)
	}
	query.Count(&total)

	err := query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("item_order ASC")
	}).Order("date DESC").Offset(offset).Limit(limit).Find(&bills).Error

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Issue bills retrieved successfully",
		"data":    bills,
		"pagination": fiber.Map{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// DeleteIssueBill deletes an issue bill
// DELETE /api/issue-bills/:id
func DeleteIssueBill(c *fiber.Ctx) error {
	id := c.Params("id")
	billID, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid ID",
			"message": "ID must be a valid number",
		})
	}

	var bill Models.IssueBill
	if err := Models.DB.First(&bill, uint(billID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error":   "Issue bill not found",
				"message": "The specified issue bill does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Database error",
			"message": err.Error(),
		})
	}

	if err := Models.DB.Delete(&bill).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Failed to delete issue bill",
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Issue bill deleted successfully",
	})
}
