package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Inventra/Models"
	"Inventra/Stock"
)

// StockController handles stock summary API endpoints
type StockController struct {
	DB *gorm.DB
}

// NewStockController creates a new StockController
func NewStockController(db *gorm.DB) *StockController {
	return &StockController{DB: db}
}

// GetItemSummaries lists the summary history for one item, newest first
func (c *StockController) GetItemSummaries(ctx *fiber.Ctx) error {
	itemID, err := strconv.Atoi(ctx.Params("item_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var item Models.Item
	if err := c.DB.First(&item, itemID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	var summaries []Models.StockSummary
	if err := c.DB.Where("item_id = ?", itemID).Order("date DESC").Find(&summaries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve stock summaries"})
	}

	return ctx.JSON(fiber.Map{
		"item": item,
		"data": summaries,
	})
}

// GetCurrentStock resolves the current quantities for one item
func (c *StockController) GetCurrentStock(ctx *fiber.Ctx) error {
	itemID, err := strconv.Atoi(ctx.Params("item_id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var summaries []Models.StockSummary
	if err := c.DB.Where("item_id = ?", itemID).Find(&summaries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve stock summaries"})
	}

	current := Stock.CurrentStock(uint(itemID), Models.ResolverRecords(summaries))

	return ctx.JSON(fiber.Map{
		"item_id": itemID,
		"main":    current.Main,
		"sub":     current.Sub,
		"total":   current.Total,
	})
}

// GetCurrentStockAll resolves current quantities for every item in one pass
func (c *StockController) GetCurrentStockAll(ctx *fiber.Ctx) error {
	var summaries []Models.StockSummary
	if err := c.DB.Find(&summaries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve stock summaries"})
	}

	return ctx.JSON(Stock.CurrentStockAll(Models.ResolverRecords(summaries)))
}
