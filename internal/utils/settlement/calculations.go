package settlement

import (
	"github.com/erpcore/sales_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Round2 is the canonical rounding policy for all monetary figures: two
// decimal places, half away from zero. Every stored or displayed amount
// passes through it exactly once.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineAmounts holds the derived monetary values for one invoice line.
type LineAmounts struct {
	LineTotal     decimal.Decimal
	DiscountValue decimal.Decimal
	TaxValue      decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// ComputeLine derives the monetary values for a single line from quantity,
// unit price, discount percent and tax percent. Inputs are clamped rather
// than rejected: quantity and price to >= 0, discount to [0,100], tax to >= 0.
// Pure and deterministic; safe to call concurrently.
func ComputeLine(quantity, unitPrice, discountPercent, taxPercent decimal.Decimal) LineAmounts {
	quantity = clampNonNegative(quantity)
	unitPrice = clampNonNegative(unitPrice)
	discountPercent = clampPercent(discountPercent)
	taxPercent = clampNonNegative(taxPercent)

	lineTotal := Round2(quantity.Mul(unitPrice))
	discountValue := Round2(lineTotal.Mul(discountPercent).Div(hundred))
	taxableBase := lineTotal.Sub(discountValue)
	taxValue := Round2(taxableBase.Mul(taxPercent).Div(hundred))

	return LineAmounts{
		LineTotal:     lineTotal,
		DiscountValue: discountValue,
		TaxValue:      taxValue,
	}
}

// ApplyLine fills the derived fields of an invoice line in place.
func ApplyLine(line *domain.InvoiceLine) {
	amounts := ComputeLine(line.Quantity, line.UnitPrice, line.DiscountPercent, line.TaxPercent)
	line.LineTotal = amounts.LineTotal
	line.DiscountValue = amounts.DiscountValue
	line.TaxValue = amounts.TaxValue
}

// Aggregate folds invoice lines into invoice-level totals. Per-line values
// are summed raw and rounded once at the aggregate level, not summed from
// already-rounded lines; the legacy books were produced that way and the
// distinction is observable on discount/tax-heavy invoices.
//
// An empty line list yields all-zero totals; rejecting empty invoices is the
// save operation's job, not the aggregator's.
func Aggregate(lines []domain.InvoiceLine) domain.InvoiceTotals {
	sumTotal := decimal.Zero
	sumAfterDiscount := decimal.Zero
	sumTax := decimal.Zero

	for _, line := range lines {
		quantity := clampNonNegative(line.Quantity)
		unitPrice := clampNonNegative(line.UnitPrice)
		discountPercent := clampPercent(line.DiscountPercent)
		taxPercent := clampNonNegative(line.TaxPercent)

		lineTotal := quantity.Mul(unitPrice)
		discountValue := lineTotal.Mul(discountPercent).Div(hundred)
		taxableBase := lineTotal.Sub(discountValue)
		taxValue := taxableBase.Mul(taxPercent).Div(hundred)

		sumTotal = sumTotal.Add(lineTotal)
		sumAfterDiscount = sumAfterDiscount.Add(taxableBase)
		sumTax = sumTax.Add(taxValue)
	}

	afterDiscount := Round2(sumAfterDiscount)
	tax := Round2(sumTax)

	return domain.InvoiceTotals{
		Total:         Round2(sumTotal),
		AfterDiscount: afterDiscount,
		Tax:           tax,
		AfterTax:      Round2(afterDiscount.Add(tax)),
	}
}

func clampNonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func clampPercent(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}
