package returns

import (
	"github.com/shopspring/decimal"
)

// FinancialSummary is the derived money view of a session. It is recomputed
// after every mutation and never persisted directly; only the two output
// totals end up on the transaction record.
type FinancialSummary struct {
	ReturnTotal        decimal.Decimal
	ExchangeTotal      decimal.Decimal
	ShippingAdjustment decimal.Decimal
	// Difference is the signed reconciliation amount for exchanges:
	// returnTotal + shippingAdjustment - exchangeTotal.
	Difference decimal.Decimal
	// RefundAmount is money owed to the customer, never negative.
	RefundAmount decimal.Decimal
	// ExchangeDifference is money owed by the customer, stored as an
	// absolute value. Exactly one of the two output fields is non-zero.
	ExchangeDifference decimal.Decimal
}

// CalculateFinancials computes the financial summary for the current state
// of the selection sets. Accumulation happens at full decimal precision;
// two-decimal rounding is a presentation concern.
func CalculateFinancials(
	kind ReturnKind,
	returnLines *ReturnLineSet,
	exchangeLines *ExchangeLineSet,
	shippingReturn bool,
	shippingCost decimal.Decimal,
) FinancialSummary {
	summary := FinancialSummary{
		ReturnTotal:        decimal.Zero,
		ExchangeTotal:      decimal.Zero,
		ShippingAdjustment: decimal.Zero,
		Difference:         decimal.Zero,
		RefundAmount:       decimal.Zero,
		ExchangeDifference: decimal.Zero,
	}

	if returnLines != nil {
		summary.ReturnTotal = returnLines.Total()
	}
	if shippingReturn {
		summary.ShippingAdjustment = shippingCost
	}

	if kind != KindExchange {
		summary.RefundAmount = summary.ReturnTotal.Add(summary.ShippingAdjustment)
		return summary
	}

	if exchangeLines != nil {
		summary.ExchangeTotal = exchangeLines.Total()
	}
	summary.Difference = summary.ReturnTotal.Add(summary.ShippingAdjustment).Sub(summary.ExchangeTotal)

	if summary.Difference.IsNegative() {
		summary.ExchangeDifference = summary.Difference.Abs()
	} else {
		summary.RefundAmount = summary.Difference
	}
	return summary
}
