package Controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Inventra/Models"
	"Inventra/Validation"
)

// VendorController handles vendor-related API endpoints
type VendorController struct {
	DB *gorm.DB
}

// NewVendorController creates a new VendorController
func NewVendorController(db *gorm.DB) *VendorController {
	return &VendorController{DB: db}
}

// GetVendors retrieves all vendors
func (c *VendorController) GetVendors(ctx *fiber.Ctx) error {
	var vendors []Models.Vendor
	result := c.DB.Find(&vendors)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve vendors"})
	}

	return ctx.JSON(vendors)
}

// GetVendor retrieves a single vendor by ID
func (c *VendorController) GetVendor(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	result := c.DB.First(&vendor, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	return ctx.JSON(vendor)
}

// CreateVendor creates a new vendor
func (c *VendorController) CreateVendor(ctx *fiber.Ctx) error {
	var input Models.VendorRequest

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	vendor := Models.Vendor{
		Name:    input.Name,
		Contact: input.Contact,
		Gstin:   input.Gstin,
		Address: input.Address,
		Notes:   input.Notes,
	}

	result := c.DB.Create(&vendor)
	if result.Error != nil {
		// Check if it's a unique constraint error
		if strings.Contains(result.Error.Error(), "UNIQUE constraint") ||
			strings.Contains(result.Error.Error(), "unique constraint") {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A vendor with this name already exists",
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create vendor",
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(vendor)
}

// UpdateVendor updates an existing vendor
func (c *VendorController) UpdateVendor(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	result := c.DB.First(&vendor, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	var input Models.VendorRequest
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	// Update fields
	c.DB.Model(&vendor).Updates(Models.Vendor{
		Name:    input.Name,
		Contact: input.Contact,
		Gstin:   input.Gstin,
		Address: input.Address,
		Notes:   input.Notes,
	})

	return ctx.JSON(vendor)
}

// DeleteVendor soft deletes a vendor
func (c *VendorController) DeleteVendor(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	result := c.DB.First(&vendor, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	// Block deletion while purchase invoices still reference the vendor
	var invoiceCount int64
	c.DB.Model(&Models.PurchaseInvoice{}).Where("vendor_id = ?", id).Count(&invoiceCount)
	if invoiceCount > 0 {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Vendor has purchase invoices and cannot be deleted",
		})
	}

	c.DB.Delete(&vendor)

	return ctx.JSON(fiber.Map{"message": "Vendor deleted successfully"})
}

// GetVendorPurchases totals the invoice value recorded against a vendor
func (c *VendorController) GetVendorPurchases(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid vendor ID"})
	}

	var vendor Models.Vendor
	result := c.DB.First(&vendor, id)
	if result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Vendor not found"})
	}

	var total float64
	c.DB.Model(&Models.PurchaseInvoice{}).Where("vendor_id = ?", id).
		Select("COALESCE(SUM(total_invoice_value), 0)").Scan(&total)

	var count int64
	c.DB.Model(&Models.PurchaseInvoice{}).Where("vendor_id = ?", id).Count(&count)

	return ctx.JSON(fiber.Map{
		"vendor_id":     id,
		"name":          vendor.Name,
		"invoice_count": count,
		"total_value":   total,
	})
}
