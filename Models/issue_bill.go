package Models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"Inventra/Billing"
)

const (
	IssueTypeTransfer    = "transfer"
	IssueTypeConsumption = "consumption"
	IssueTypeSale        = "sale"

	StoreMain = "main"
	StoreSub  = "sub"
)

// IssueBill records stock moved out of a store: to the other store, to a
// user, or to a sale.
type IssueBill struct {
	gorm.Model
	BillNo    string    `json:"bill_no" gorm:"size:100;not null;index"`
	Date      time.Time `json:"date" gorm:"not null;index"`
	IssueType string    `json:"issue_type" gorm:"size:20;not null"`
	FromStore string    `json:"from_store" gorm:"size:10;not null"`
	IssuedTo  string    `json:"issued_to" gorm:"size:255"`

	TotalTaxableValue decimal.Decimal `json:"total_taxable_value" gorm:"type:numeric"`
	GstTotal          decimal.Decimal `json:"gst_total" gorm:"type:numeric"`
	TotalBillValue    decimal.Decimal `json:"total_bill_value" gorm:"type:numeric"`

	Items []IssueBillItem `json:"items,omitempty" gorm:"foreignKey:IssueBillID;constraint:OnDelete:CASCADE"`
}

type IssueBillItem struct {
	gorm.Model
	IssueBillID uint `json:"issue_bill_id" gorm:"not null;index"`
	ItemID      uint `json:"item_id" gorm:"not null;index"`

	HeadQuantity decimal.Decimal `json:"head_quantity" gorm:"type:numeric;default:0"`
	HeadUnit     string          `json:"head_quantity_measurement" gorm:"size:20"`
	SubQuantity  decimal.Decimal `json:"sub_quantity" gorm:"type:numeric;default:0"`
	SubUnit      string          `json:"sub_quantity_measurement" gorm:"size:20"`
	Rate         decimal.Decimal `json:"rate" gorm:"type:numeric;default:0"`
	GstRate      decimal.Decimal `json:"gst_rate" gorm:"type:numeric;default:0"`

	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric"`
	GstAmount decimal.Decimal `json:"gst_amount" gorm:"type:numeric"`
	Total     decimal.Decimal `json:"total" gorm:"type:numeric"`

	ItemOrder int  `json:"item_order" gorm:"not null;default:0"`
	Item      Item `json:"item,omitempty" gorm:"foreignKey:ItemID"`
}

type IssueBillRequest struct {
	BillNo    string               `json:"bill_no" validate:"required"`
	Date      string               `json:"date" validate:"required"`
	IssueType string               `json:"issue_type" validate:"required,oneof=transfer consumption sale"`
	FromStore string               `json:"from_store" validate:"required,oneof=main sub"`
	IssuedTo  string               `json:"issued_to"`
	Items     []InvoiceItemRequest `json:"items" validate:"required,min=1"`
}

// Charges is empty for issue bills; only line-level amounts apply.
func (r IssueBillRequest) Charges() Billing.Charges {
	return Billing.Charges{}
}
