package returns

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayloadLine is one flattened line of a submitted transaction. Return and
// exchange lines share the shape, distinguished by the Outgoing tag.
type PayloadLine struct {
	LineID             uuid.UUID
	VariationID        uuid.UUID
	StockTypeID        *uuid.UUID
	ProductName        string
	SKU                string
	Quantity           int
	UnitPrice          decimal.Decimal
	DiscountPercent    decimal.Decimal
	Outgoing           bool
	LinkedReturnLineID *uuid.UUID
}

// PayloadPayment is one payment entry of a submitted transaction
type PayloadPayment struct {
	MethodID   uuid.UUID
	MethodName string
	Amount     decimal.Decimal
	VoucherURL string
}

// TransactionPayload is the final assembled record handed to the persistence
// collaborator. It is created once per submit and immutable afterwards.
type TransactionPayload struct {
	KindCode         string
	SourceID         uuid.UUID
	SourceType       SourceType
	DocumentNumber   string
	CustomerName     string
	CustomerDocument string
	DocumentTypeID   *uuid.UUID
	Reason           string
	SituationID      uuid.UUID
	ShippingReturn   bool
	ShippingCost     decimal.Decimal
	// TotalRefundAmount is money owed to the customer; never negative.
	TotalRefundAmount decimal.Decimal
	// TotalExchangeDifference is money owed by the customer, absolute value.
	// For exchanges exactly one of the two totals is non-zero.
	TotalExchangeDifference decimal.Decimal
	Lines                   []PayloadLine
	Payments                []PayloadPayment
	BranchID                uuid.UUID
	WarehouseID             *uuid.UUID
}

// buildPayload flattens a session into its submission payload. Validation
// has already passed when this is called.
func buildPayload(s *ReturnSession, summary FinancialSummary) TransactionPayload {
	payload := TransactionPayload{
		KindCode:         s.Kind.String(),
		SourceID:         s.Source.ID,
		SourceType:       s.Source.Type,
		DocumentNumber:   s.Source.DocumentNumber,
		CustomerName:     s.Source.CustomerName,
		CustomerDocument: s.Source.CustomerDocument,
		DocumentTypeID:   s.Source.DocumentTypeID,
		Reason:           s.Reason,
		SituationID:      s.SituationID,
		ShippingReturn:   s.ShippingReturn,
		ShippingCost:     s.ShippingCost,
		BranchID:         s.BranchID,
		WarehouseID:      s.WarehouseID,
	}

	if s.Kind == KindExchange {
		payload.TotalRefundAmount = summary.RefundAmount
		payload.TotalExchangeDifference = summary.ExchangeDifference
	} else {
		payload.TotalRefundAmount = summary.RefundAmount
		payload.TotalExchangeDifference = decimal.Zero
	}

	for _, line := range s.ReturnLines.ToList() {
		payload.Lines = append(payload.Lines, PayloadLine{
			LineID:          line.LineID,
			VariationID:     line.VariationID,
			ProductName:     line.ProductName,
			SKU:             line.SKU,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			Outgoing:        false,
		})
	}
	for _, line := range s.ExchangeLines.ToList() {
		stockTypeID := line.StockTypeID
		payload.Lines = append(payload.Lines, PayloadLine{
			LineID:             line.LineID,
			VariationID:        line.VariationID,
			StockTypeID:        &stockTypeID,
			ProductName:        line.ProductName,
			SKU:                line.SKU,
			Quantity:           line.Quantity,
			UnitPrice:          line.UnitPrice,
			DiscountPercent:    line.DiscountPercent,
			Outgoing:           true,
			LinkedReturnLineID: line.LinkedReturnLineID,
		})
	}

	for _, entry := range s.Payments.Entries() {
		payload.Payments = append(payload.Payments, PayloadPayment{
			MethodID:   entry.MethodID,
			MethodName: entry.MethodName,
			Amount:     entry.Amount,
			VoucherURL: entry.VoucherURL,
		})
	}

	return payload
}
