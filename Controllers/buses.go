package Controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"Inventra/Fleet"
	"Inventra/Models"
	"Inventra/Validation"
)

// GetBuses retrieves all buses
// GET /api/buses
func GetBuses(c *fiber.Ctx) error {
	var buses []Models.Bus
	if err := Models.DB.Find(&buses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve buses"})
	}
	return c.JSON(buses)
}

// GetBus retrieves a single bus by ID
// GET /api/buses/:id
func GetBus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid bus ID"})
	}

	var bus Models.Bus
	if err := Models.DB.First(&bus, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bus not found"})
	}

	return c.JSON(bus)
}

// CreateBus registers a new bus. The bus code is derived from the three
// fragments here; any code in the request body is ignored.
// POST /api/buses
func CreateBus(c *fiber.Ctx) error {
	var input Models.BusRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	bus := Models.Bus{
		ModelPrefix:    input.ModelPrefix,
		ChassisNo:      input.ChassisNo,
		SerialNo:       input.SerialNo,
		BusCode:        Fleet.DeriveBusCode(input.ModelPrefix, input.ChassisNo, input.SerialNo),
		RegistrationNo: input.RegistrationNo,
		SeatingLayout:  input.SeatingLayout,
		Extras:         input.Extras,
	}

	if err := Models.DB.Create(&bus).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A bus with this code already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create bus"})
	}

	return c.Status(fiber.StatusCreated).JSON(bus)
}

// UpdateBus updates a bus and re-derives its code from the edited fragments
// PUT /api/buses/:id
func UpdateBus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid bus ID"})
	}

	var bus Models.Bus
	if err := Models.DB.First(&bus, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bus not found"})
	}

	var input Models.BusRequest
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if messages := Validation.Struct(input); messages != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": messages})
	}

	bus.ModelPrefix = input.ModelPrefix
	bus.ChassisNo = input.ChassisNo
	bus.SerialNo = input.SerialNo
	bus.BusCode = Fleet.DeriveBusCode(input.ModelPrefix, input.ChassisNo, input.SerialNo)
	bus.RegistrationNo = input.RegistrationNo
	bus.SeatingLayout = input.SeatingLayout
	bus.Extras = input.Extras

	if err := Models.DB.Save(&bus).Error; err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A bus with this code already exists",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update bus"})
	}

	return c.JSON(bus)
}

// DeleteBus soft deletes a bus
// DELETE /api/buses/:id
func DeleteBus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid bus ID"})
	}

	var bus Models.Bus
	if err := Models.DB.First(&bus, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Bus not found"})
	}

	Models.DB.Delete(&bus)

	return c.JSON(fiber.Map{"message": "Bus deleted successfully"})
}

// PreviewBusCode derives the code for the current fragment values without
// touching the database, for live preview while the form is being edited
// GET /api/buses/preview-code?model_prefix=SP&chassis_no=AB1234&serial_no=01
func PreviewBusCode(c *fiber.Ctx) error {
	code := Fleet.DeriveBusCode(
		c.Query("model_prefix"),
		c.Query("chassis_no"),
		c.Query("serial_no"),
	)
	return c.JSON(fiber.Map{"bus_code": code})
}
