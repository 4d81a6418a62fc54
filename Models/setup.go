package Models

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "database.db"
	}

	connection, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	DB = connection

	// 1. Base tables with no dependencies
	DB.AutoMigrate(
		&User{},
		&Vendor{},
		&Bus{},
	)

	// 2. Items reference vendors
	DB.AutoMigrate(&Item{})

	// 3. Documents and snapshots that reference items/vendors
	DB.AutoMigrate(
		&PurchaseInvoice{},
		&PurchaseInvoiceItem{},
		&IssueBill{},
		&IssueBillItem{},
		&StockSummary{},
	)

	seedAdmin()
}

// seedAdmin creates the initial admin account on a fresh database so the
// login endpoint is usable before any user has been registered.
func seedAdmin() {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@inventra.local"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "changeme"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}

	admin := User{
		Name:       "Administrator",
		Email:      email,
		Password:   hash,
		Permission: 4,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("Error seeding admin user: %v", err)
	} else {
		log.Printf("Seeded admin user %s", email)
	}
}
