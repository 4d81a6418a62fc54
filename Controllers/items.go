package Controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Inventra/Billing"
	"Inventra/Models"
	"Inventra/Stock"
	"Inventra/Validation"
)

// ItemController handles catalog item API endpoints
type ItemController struct {
	DB *gorm.DB
}

// NewItemController creates a new ItemController
func NewItemController(db *gorm.DB) *ItemController {
	return &ItemController{DB: db}
}

// GetItems retrieves all catalog items. With ?with_stock=true each item is
// annotated with its current quantities, resolved in one pass over the
// summaries rather than per item.
func (c *ItemController) GetItems(ctx *fiber.Ctx) error {
	var items []Models.Item
	if err := c.DB.Preload("Vendor").Find(&items).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve items"})
	}

	if ctx.Query("with_stock") != "true" {
		return ctx.JSON(items)
	}

	var summaries []Models.StockSummary
	if err := c.DB.Find(&summaries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve stock summaries"})
	}
	current := Stock.CurrentStockAll(Models.ResolverRecords(summaries))

	type itemWithStock struct {
		Models.Item
		CurrentStock Stock.Quantities `json:"current_stock"`
	}
	response := make([]itemWithStock, 0, len(items))
	for _, item := range items {
		response = append(response, itemWithStock{Item: item, CurrentStock: current[item.ID]})
	}

	return ctx.JSON(response)
}

// GetItem retrieves a single item by ID
func (c *ItemController) GetItem(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var item Models.Item
	if err := c.DB.Preload("Vendor").First(&item, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	return ctx.JSON(item)
}

// CreateItem creates a new catalog item
func (c *ItemController) CreateItem(ctx *fiber.Ctx) error {
	var input Models.ItemRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	item := Models.Item{
		Name:         input.Name,
		Code:         input.Code,
		HeadUnit:     input.HeadUnit,
		SubUnit:      input.SubUnit,
		UnitsPerHead: input.UnitsPerHead,
		GstRate:      Billing.ParseAmount(input.GstRate),
		MinStock:     input.MinStock,
		VendorID:     input.VendorID,
		Specs:        input.Specs,
	}

	if err := c.DB.Create(&item).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "An item with this code already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create item"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(item)
}

// UpdateItem updates an existing catalog item
func (c *ItemController) UpdateItem(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var item Models.Item
	if err := c.DB.First(&item, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	var input Models.ItemRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	item.Name = input.Name
	item.Code = input.Code
	item.HeadUnit = input.HeadUnit
	item.SubUnit = input.SubUnit
	item.UnitsPerHead = input.UnitsPerHead
	item.GstRate = Billing.ParseAmount(input.GstRate)
	item.MinStock = input.MinStock
	item.VendorID = input.VendorID
	item.Specs = input.Specs

	if err := c.DB.Save(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update item"})
	}

	return ctx.JSON(item)
}

// DeleteItem soft deletes a catalog item
func (c *ItemController) DeleteItem(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid item ID"})
	}

	var item Models.Item
	if err := c.DB.First(&item, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
	}

	c.DB.Delete(&item)

	return ctx.JSON(fiber.Map{"message": "Item deleted successfully"})
}
