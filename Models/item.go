package Models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Item is one catalog entry. Head unit is the primary unit of measure
// (e.g. box), sub unit the secondary one used for pricing (e.g. piece).
type Item struct {
	gorm.Model
	Name         string          `json:"name" gorm:"not null;index"`
	Code         string          `json:"code" gorm:"size:50;not null;uniqueIndex"`
	HeadUnit     string          `json:"head_unit" gorm:"size:20;not null"`
	SubUnit      string          `json:"sub_unit" gorm:"size:20;not null"`
	UnitsPerHead float64         `json:"units_per_head" gorm:"default:1"`
	GstRate      decimal.Decimal `json:"gst_rate" gorm:"type:numeric;default:0"`
	MinStock     float64         `json:"min_stock" gorm:"default:0"`
	VendorID     *uint           `json:"vendor_id" gorm:"index"`
	Specs        datatypes.JSON  `json:"specs,omitempty"`

	Vendor Vendor `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
}

type ItemRequest struct {
	Name         string         `json:"name" validate:"required"`
	Code         string         `json:"code" validate:"required"`
	HeadUnit     string         `json:"head_unit" validate:"required"`
	SubUnit      string         `json:"sub_unit" validate:"required"`
	UnitsPerHead float64        `json:"units_per_head" validate:"gte=0"`
	GstRate      string         `json:"gst_rate"`
	MinStock     float64        `json:"min_stock" validate:"gte=0"`
	VendorID     *uint          `json:"vendor_id"`
	Specs        datatypes.JSON `json:"specs"`
}
