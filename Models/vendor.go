package Models

import (
	"gorm.io/gorm"
)

type Vendor struct {
	gorm.Model
	Name    string `json:"name" gorm:"not null;uniqueIndex"`
	Contact string `json:"contact" gorm:"size:255"`
	Gstin   string `json:"gstin" gorm:"size:15"`
	Address string `json:"address" gorm:"type:text"`
	Notes   string `json:"notes" gorm:"type:text"`

	Invoices []PurchaseInvoice `json:"invoices,omitempty" gorm:"foreignKey:VendorID"`
}

type VendorRequest struct {
	Name    string `json:"name" validate:"required"`
	Contact string `json:"contact"`
	Gstin   string `json:"gstin" validate:"omitempty,len=15"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}
