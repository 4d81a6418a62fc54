package Billing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRecomputeLine(t *testing.T) {
	tests := []struct {
		name      string
		line      Line
		amount    string
		gstAmount string
		total     string
	}{
		{
			name:      "Standard GST line",
			line:      Line{SubQuantity: "10", Rate: "50", GstRate: "18"},
			amount:    "500",
			gstAmount: "90",
			total:     "590",
		},
		{
			name:      "Zero GST",
			line:      Line{SubQuantity: "3", Rate: "99.5", GstRate: "0"},
			amount:    "298.5",
			gstAmount: "0",
			total:     "298.5",
		},
		{
			name:      "Blank quantity parses to zero",
			line:      Line{SubQuantity: "", Rate: "50", GstRate: "18"},
			amount:    "0",
			gstAmount: "0",
			total:     "0",
		},
		{
			name:      "Non-numeric rate parses to zero",
			line:      Line{SubQuantity: "10", Rate: "abc", GstRate: "18"},
			amount:    "0",
			gstAmount: "0",
			total:     "0",
		},
		{
			// "10." still parses as 10, same as the browser's parseFloat
			name:      "Trailing decimal point",
			line:      Line{SubQuantity: "10.", Rate: "50", GstRate: "18"},
			amount:    "500",
			gstAmount: "90",
			total:     "590",
		},
		{
			name:      "Trailing garbage parses to zero",
			line:      Line{SubQuantity: "10.x", Rate: "50", GstRate: "18"},
			amount:    "0",
			gstAmount: "0",
			total:     "0",
		},
		{
			name:      "Fractional quantity",
			line:      Line{SubQuantity: "2.5", Rate: "40", GstRate: "12"},
			amount:    "100",
			gstAmount: "12",
			total:     "112",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RecomputeLine(tt.line)
			if !got.Amount.Equal(dec(tt.amount)) {
				t.Errorf("amount = %s, want %s", got.Amount, tt.amount)
			}
			if !got.GstAmount.Equal(dec(tt.gstAmount)) {
				t.Errorf("gst amount = %s, want %s", got.GstAmount, tt.gstAmount)
			}
			if !got.Total.Equal(dec(tt.total)) {
				t.Errorf("total = %s, want %s", got.Total, tt.total)
			}
		})
	}
}

func TestRecomputeLineIdempotent(t *testing.T) {
	line := RecomputeLine(Line{SubQuantity: "7", Rate: "13.33", GstRate: "28"})
	again := RecomputeLine(line)

	if !again.Amount.Equal(line.Amount) || !again.GstAmount.Equal(line.GstAmount) || !again.Total.Equal(line.Total) {
		t.Errorf("second pass changed derived fields: %+v vs %+v", again, line)
	}
}

func TestRecomputeLineOrdering(t *testing.T) {
	// total >= amount >= 0 for any non-negative inputs
	inputs := []Line{
		{SubQuantity: "0", Rate: "0", GstRate: "0"},
		{SubQuantity: "1", Rate: "0.01", GstRate: "100"},
		{SubQuantity: "1000", Rate: "9999.99", GstRate: "28"},
	}
	for _, in := range inputs {
		got := RecomputeLine(in)
		if got.Amount.IsNegative() {
			t.Errorf("amount negative for %+v", in)
		}
		if got.Total.LessThan(got.Amount) {
			t.Errorf("total %s < amount %s for %+v", got.Total, got.Amount, in)
		}
	}
}

func TestRecomputeInvoice(t *testing.T) {
	// Two lines totalling amount=1000 and gst=180, plus every header charge.
	lines := []Line{
		RecomputeLine(Line{SubQuantity: "10", Rate: "40", GstRate: "18"}), // 400 / 72
		RecomputeLine(Line{SubQuantity: "12", Rate: "50", GstRate: "18"}), // 600 / 108
	}
	charges := Charges{
		BeforeTaxAmount:      "50",
		BeforeTaxPercent:     "10",
		BeforeTaxGstRate:     "5",
		OtherChargesAfterTax: "20",
	}

	totals := RecomputeInvoice(lines, charges)

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"items amount", totals.ItemsAmount, "1000"},
		{"before tax base", totals.BeforeTaxBase, "150"},
		{"before tax gst", totals.BeforeTaxGst, "7.5"},
		{"total taxable value", totals.TotalTaxableValue, "1150"},
		{"gst total", totals.GstTotal, "187.5"},
		{"total invoice value", totals.TotalInvoiceValue, "1357.5"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
}

func TestRecomputeInvoiceEmptyItems(t *testing.T) {
	charges := Charges{
		BeforeTaxAmount:  "75",
		BeforeTaxGstRate: "12",
	}

	totals := RecomputeInvoice(nil, charges)

	if !totals.TotalTaxableValue.Equal(totals.BeforeTaxBase) {
		t.Errorf("taxable value %s should equal before-tax base %s with no lines",
			totals.TotalTaxableValue, totals.BeforeTaxBase)
	}
	if !totals.GstTotal.Equal(totals.BeforeTaxGst) {
		t.Errorf("gst total %s should equal before-tax gst %s with no lines",
			totals.GstTotal, totals.BeforeTaxGst)
	}
	if !totals.BeforeTaxBase.Equal(dec("75")) {
		t.Errorf("before tax base = %s, want 75", totals.BeforeTaxBase)
	}
	if !totals.TotalInvoiceValue.Equal(dec("84")) {
		t.Errorf("total invoice value = %s, want 84", totals.TotalInvoiceValue)
	}
}

func TestRecomputeInvoiceInvariant(t *testing.T) {
	// totalInvoiceValue >= totalTaxableValue >= items amount whenever all
	// charge inputs are non-negative.
	lines := []Line{
		RecomputeLine(Line{SubQuantity: "5", Rate: "123.45", GstRate: "18"}),
		RecomputeLine(Line{SubQuantity: "8", Rate: "0.99", GstRate: "5"}),
	}
	chargeSets := []Charges{
		{},
		{BeforeTaxAmount: "10"},
		{BeforeTaxPercent: "2.5", BeforeTaxGstRate: "18"},
		{BeforeTaxAmount: "1", BeforeTaxPercent: "1", BeforeTaxGstRate: "1", OtherChargesAfterTax: "1"},
	}
	for _, charges := range chargeSets {
		totals := RecomputeInvoice(lines, charges)
		if totals.TotalTaxableValue.LessThan(totals.ItemsAmount) {
			t.Errorf("taxable %s < items %s for %+v", totals.TotalTaxableValue, totals.ItemsAmount, charges)
		}
		if totals.TotalInvoiceValue.LessThan(totals.TotalTaxableValue) {
			t.Errorf("invoice %s < taxable %s for %+v", totals.TotalInvoiceValue, totals.TotalTaxableValue, charges)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(dec("187.505")); !got.Equal(dec("187.51")) {
		t.Errorf("Round2(187.505) = %s, want 187.51", got)
	}
	if got := Round2(dec("187.5")); !got.Equal(dec("187.5")) {
		t.Errorf("Round2(187.5) = %s, want 187.5", got)
	}
}
