package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"Inventra/Billing"
)

type PurchaseInvoice struct {
	gorm.Model
	InvoiceNo string    `json:"invoice_no" gorm:"size:100;not null;index"`
	Date      time.Time `json:"date" gorm:"not null;index"`
	VendorID  uint      `json:"vendor_id" gorm:"not null;index"`

	// Header charge inputs
	BeforeTaxAmount      decimal.Decimal `json:"before_tax_amount" gorm:"type:numeric;default:0"`
	BeforeTaxPercent     decimal.Decimal `json:"before_tax_percent" gorm:"type:numeric;default:0"`
	BeforeTaxGstRate     decimal.Decimal `json:"before_tax_gst_rate" gorm:"type:numeric;default:0"`
	OtherChargesAfterTax decimal.Decimal `json:"other_charges_after_tax" gorm:"type:numeric;default:0"`

	// Derived totals, always recomputed server-side before persisting
	TotalTaxableValue decimal.Decimal `json:"total_taxable_value" gorm:"type:numeric"`
	GstTotal          decimal.Decimal `json:"gst_total" gorm:"type:numeric"`
	TotalInvoiceValue decimal.Decimal `json:"total_invoice_value" gorm:"type:numeric"`

	Vendor Vendor                `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Items  []PurchaseInvoiceItem `json:"items,omitempty" gorm:"foreignKey:PurchaseInvoiceID;constraint:OnDelete:CASCADE"`
}

type PurchaseInvoiceItem struct {
	gorm.Model
	PurchaseInvoiceID uint `json:"purchase_invoice_id" gorm:"not null;index"`
	ItemID            uint `json:"item_id" gorm:"not null;index"`

	HeadQuantity decimal.Decimal `json:"head_quantity" gorm:"type:numeric;default:0"`
	HeadUnit     string          `json:"head_quantity_measurement" gorm:"size:20"`
	SubQuantity  decimal.Decimal `json:"sub_quantity" gorm:"type:numeric;default:0"`
	SubUnit      string          `json:"sub_quantity_measurement" gorm:"size:20"`
	Rate         decimal.Decimal `json:"rate" gorm:"type:numeric;default:0"`
	GstRate      decimal.Decimal `json:"gst_rate" gorm:"type:numeric;default:0"`

	// Derived per line, never accepted from the client
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric"`
	GstAmount decimal.Decimal `json:"gst_amount" gorm:"type:numeric"`
	Total     decimal.Decimal `json:"total" gorm:"type:numeric"`

	ItemOrder int  `json:"item_order" gorm:"not null;default:0"`
	Item      Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
}

// PurchaseInvoiceRequest carries the form fields as submitted. Numeric
// fields arrive as raw text; Billing treats blank or malformed values as
// zero instead of rejecting the request.
type PurchaseInvoiceRequest struct {
	InvoiceNo            string               `json:"invoice_no" validate:"required"`
	Date                 string               `json:"date" validate:"required"`
	VendorID             uint                 `json:"vendor_id" validate:"required"`
	BeforeTaxAmount      string               `json:"before_tax_amount"`
	BeforeTaxPercent     string               `json:"before_tax_percent"`
	BeforeTaxGstRate     string               `json:"before_tax_gst_rate"`
	OtherChargesAfterTax string               `json:"other_charges_after_tax"`
	Items                []InvoiceItemRequest `json:"items"`
}

type InvoiceItemRequest struct {
	ItemID       uint   `json:"item_id" validate:"required"`
	HeadQuantity string `json:"head_quantity"`
	HeadUnit     string `json:"head_quantity_measurement"`
	SubQuantity  string `json:"sub_quantity"`
	SubUnit      string `json:"sub_quantity_measurement"`
	Rate         string `json:"rate"`
	GstRate      string `json:"gst_rate"`
}

// BillingLine converts a request row into the calculator's input shape.
func (r InvoiceItemRequest) BillingLine() Billing.Line {
	return Billing.Line{
		ItemID:       r.ItemID,
		HeadQuantity: r.HeadQuantity,
		HeadUnit:     r.HeadUnit,
		SubQuantity:  r.SubQuantity,
		SubUnit:      r.SubUnit,
		Rate:         r.Rate,
		GstRate:      r.GstRate,
	}
}

// Charges converts the header fields into the calculator's input shape.
func (r PurchaseInvoiceRequest) Charges() Billing.Charges {
	return Billing.Charges{
		BeforeTaxAmount:      r.BeforeTaxAmount,
		BeforeTaxPercent:     r.BeforeTaxPercent,
		BeforeTaxGstRate:     r.BeforeTaxGstRate,
		OtherChargesAfterTax: r.OtherChargesAfterTax,
	}
}
