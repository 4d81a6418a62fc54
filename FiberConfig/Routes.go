package FiberConfig

import (
	"fmt"
	"os"

	"Inventra/Controllers"
	"Inventra/Models"
	"Inventra/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	vendorController := Controllers.NewVendorController(db)
	itemController := Controllers.NewItemController(db)
	stockController := Controllers.NewStockController(db)
	dashboardController := Controllers.NewDashboardController(db)

	// API group
	api := app.Group("/api")

	// Vendor routes
	vendors := api.Group("/vendors", middleware.Verify(1))
	vendors.Get("/", vendorController.GetVendors)
	vendors.Post("/", middleware.Verify(3), vendorController.CreateVendor)
	vendors.Get("/:id", vendorController.GetVendor)
	vendors.Put("/:id", middleware.Verify(3), vendorController.UpdateVendor)
	vendors.Delete("/:id", middleware.Verify(3), vendorController.DeleteVendor)
	vendors.Get("/:id/purchases", vendorController.GetVendorPurchases)

	// Item routes
	items := api.Group("/items", middleware.Verify(1))
	items.Get("/", itemController.GetItems)
	items.Post("/", middleware.Verify(3), itemController.CreateItem)
	items.Get("/:id", itemController.GetItem)
	items.Put("/:id", middleware.Verify(3), itemController.UpdateItem)
	items.Delete("/:id", middleware.Verify(3), itemController.DeleteItem)

	// Purchase invoice routes
	invoices := api.Group("/purchase-invoices", middleware.Verify(1))
	invoices.Get("/", Controllers.GetAllPurchaseInvoices)
	invoices.Post("/", middleware.Verify(3), Controllers.CreatePurchaseInvoice)
	invoices.Get("/:id", Controllers.GetPurchaseInvoice)
	invoices.Put("/:id", middleware.Verify(3), Controllers.UpdatePurchaseInvoice)
	invoices.Delete("/:id", middleware.Verify(3), Controllers.DeletePurchaseInvoice)

	// Issue bill routes
	issues := api.Group("/issue-bills", middleware.Verify(1))
	issues.Get("/", Controllers.GetAllIssueBills)
	issues.Post("/", middleware.Verify(3), Controllers.CreateIssueBill)
	issues.Get("/:id", Controllers.GetIssueBill)
	issues.Put("/:id", middleware.Verify(3), Controllers.UpdateIssueBill)
	issues.Delete("/:id", middleware.Verify(3), Controllers.DeleteIssueBill)

	// Stock routes - place /current BEFORE the ID route to avoid conflicts
	stock := api.Group("/stock", middleware.Verify(1))
	stock.Get("/current", stockController.GetCurrentStockAll)
	stock.Get("/:item_id/current", stockController.GetCurrentStock)
	stock.Get("/:item_id/summaries", stockController.GetItemSummaries)

	// Bus routes - /preview-code goes BEFORE the ID route to avoid conflicts
	buses := api.Group("/buses", middleware.Verify(1))
	buses.Get("/", Controllers.GetBuses)
	buses.Get("/preview-code", Controllers.PreviewBusCode)
	buses.Post("/", middleware.Verify(3), Controllers.CreateBus)
	buses.Get("/:id", Controllers.GetBus)
	buses.Put("/:id", middleware.Verify(3), Controllers.UpdateBus)
	buses.Delete("/:id", middleware.Verify(3), Controllers.DeleteBus)

	// Dashboard routes
	dashboard := api.Group("/dashboard", middleware.Verify(1))
	dashboard.Get("/summary", dashboardController.Summary)
	dashboard.Get("/monthly-purchases", dashboardController.MonthlyPurchases)
	dashboard.Get("/low-stock", dashboardController.LowStock)
	dashboard.Get("/recent-activity", dashboardController.RecentActivity)

	// Report exports
	reports := api.Group("/reports", middleware.Verify(3))
	reports.Get("/stock", Controllers.ExportStockReport)
	reports.Get("/invoice-register", Controllers.ExportInvoiceRegister)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*", // Allow all origins
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,  // Max age for preflight requests caching (5 minutes)
	}))

	SetupRoutes(app, Models.DB)
	app.Post("/api/Login", Controllers.Login)
	app.Get("/api/User", Controllers.User)
	app.Post("/api/Logout", Controllers.Logout)
	app.Post("/api/RegisterUser", middleware.Verify(4), Controllers.RegisterUser)
	app.Get("/api/FetchUsers", middleware.Verify(4), Controllers.FetchUsers)

	port := os.Getenv("PORT")
	if port == "" {
		port = ":3001"
	}
	app.Listen(port)
}
