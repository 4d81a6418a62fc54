package Billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Line is one row of a purchase invoice or issue bill. The quantity, rate
// and GST fields hold the raw text the form submitted; the derived fields
// are overwritten by RecomputeLine and are never accepted from the client.
type Line struct {
	ItemID       uint   `json:"item_id"`
	HeadQuantity string `json:"head_quantity"`
	HeadUnit     string `json:"head_quantity_measurement"`
	SubQuantity  string `json:"sub_quantity"`
	SubUnit      string `json:"sub_quantity_measurement"`
	Rate         string `json:"rate"`
	GstRate      string `json:"gst_rate"`

	Amount    decimal.Decimal `json:"amount"`
	GstAmount decimal.Decimal `json:"gst_amount"`
	Total     decimal.Decimal `json:"total"`
}

// Charges holds the invoice-level charge fields entered on the header.
type Charges struct {
	BeforeTaxAmount      string `json:"before_tax_amount"`
	BeforeTaxPercent     string `json:"before_tax_percent"`
	BeforeTaxGstRate     string `json:"before_tax_gst_rate"`
	OtherChargesAfterTax string `json:"other_charges_after_tax"`
}

// InvoiceTotals is the aggregate over a list of lines plus header charges.
type InvoiceTotals struct {
	ItemsAmount       decimal.Decimal `json:"items_amount"`
	ItemsGstAmount    decimal.Decimal `json:"items_gst_amount"`
	BeforeTaxBase     decimal.Decimal `json:"before_tax_base"`
	BeforeTaxGst      decimal.Decimal `json:"before_tax_gst"`
	TotalTaxableValue decimal.Decimal `json:"total_taxable_value"`
	GstTotal          decimal.Decimal `json:"gst_total"`
	TotalInvoiceValue decimal.Decimal `json:"total_invoice_value"`
}

var hundred = decimal.NewFromInt(100)

// ParseAmount converts raw form text to a decimal. Blank or non-numeric
// input parses to zero so a half-typed field never blocks recomputation.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// RecomputeLine derives amount, GST amount and line total from the current
// sub quantity, rate and GST rate. Pure; the input line is returned with
// only the derived fields replaced.
func RecomputeLine(line Line) Line {
	subQty := ParseAmount(line.SubQuantity)
	rate := ParseAmount(line.Rate)
	gstRate := ParseAmount(line.GstRate)

	line.Amount = subQty.Mul(rate)
	line.GstAmount = line.Amount.Mul(gstRate).Div(hundred)
	line.Total = line.Amount.Add(line.GstAmount)
	return line
}

// RecomputeInvoice aggregates already-recomputed lines and the header
// charges into invoice totals. Intermediate sums are kept at full
// precision; rounding happens only when a value is presented.
func RecomputeInvoice(lines []Line, charges Charges) InvoiceTotals {
	var totals InvoiceTotals

	for _, line := range lines {
		totals.ItemsAmount = totals.ItemsAmount.Add(line.Amount)
		totals.ItemsGstAmount = totals.ItemsGstAmount.Add(line.GstAmount)
	}

	beforeTaxAmount := ParseAmount(charges.BeforeTaxAmount)
	beforeTaxPercent := ParseAmount(charges.BeforeTaxPercent)
	beforeTaxGstRate := ParseAmount(charges.BeforeTaxGstRate)
	afterTax := ParseAmount(charges.OtherChargesAfterTax)

	totals.BeforeTaxBase = beforeTaxAmount.Add(totals.ItemsAmount.Mul(beforeTaxPercent).Div(hundred))
	totals.BeforeTaxGst = totals.BeforeTaxBase.Mul(beforeTaxGstRate).Div(hundred)
	totals.TotalTaxableValue = totals.ItemsAmount.Add(totals.BeforeTaxBase)
	totals.GstTotal = totals.ItemsGstAmount.Add(totals.BeforeTaxGst)
	totals.TotalInvoiceValue = totals.TotalTaxableValue.Add(totals.GstTotal).Add(afterTax)
	return totals
}

// Round2 rounds a value to two decimal places for display or export.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
