package returns

import (
	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// TransactionLine is a persisted line of a return transaction, return and
// exchange lines flattened together and tagged with Outgoing.
type TransactionLine struct {
	ID                 uuid.UUID
	TransactionID      uuid.UUID
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

// TransactionPayment is a persisted payment entry of a return transaction
type TransactionPayment struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	MethodID      uuid.UUID
	MethodName    string
	Amount        decimal.Decimal
	VoucherURL    string
}

// ReturnTransaction is the persisted return/exchange record, the aggregate
// root written once per submit and replaced wholesale on edit-mode updates.
type ReturnTransaction struct {
	shared.TenantAggregateRoot
	Number                  string
	KindCode                string
	SourceID                uuid.UUID
	SourceType              SourceType
	DocumentNumber          string
	CustomerName            string
	CustomerDocument        string
	DocumentTypeID          *uuid.UUID
	Reason                  string
	SituationID             uuid.UUID
	ShippingReturn          bool
	ShippingCost            decimal.Decimal
	TotalRefundAmount       decimal.Decimal
	TotalExchangeDifference decimal.Decimal
	Lines                   []TransactionLine
	Payments                []TransactionPayment
	BranchID                uuid.UUID
	WarehouseID             *uuid.UUID
}

// NewReturnTransaction creates a persisted transaction from a submission
// payload. The payload has already been validated by the session builder.
func NewReturnTransaction(tenantID uuid.UUID, number string, payload TransactionPayload) (*ReturnTransaction, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Transaction number cannot be empty")
	}

	tx := &ReturnTransaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Number:              number,
	}
	tx.apply(payload)
	tx.AddDomainEvent(NewTransactionRegisteredEvent(tx))
	return tx, nil
}

// ApplyPayload replaces the transaction content with a resubmitted payload
// (edit mode). Identity, number and audit fields are preserved.
func (t *ReturnTransaction) ApplyPayload(payload TransactionPayload) {
	t.apply(payload)
	t.AddDomainEvent(NewTransactionUpdatedEvent(t))
}

func (t *ReturnTransaction) apply(payload TransactionPayload) {
	t.KindCode = payload.KindCode
	t.SourceID = payload.SourceID
	t.SourceType = payload.SourceType
	t.DocumentNumber = payload.DocumentNumber
	t.CustomerName = payload.CustomerName
	t.CustomerDocument = payload.CustomerDocument
	t.DocumentTypeID = payload.DocumentTypeID
	t.Reason = payload.Reason
	t.SituationID = payload.SituationID
	t.ShippingReturn = payload.ShippingReturn
	t.ShippingCost = payload.ShippingCost
	t.TotalRefundAmount = payload.TotalRefundAmount
	t.TotalExchangeDifference = payload.TotalExchangeDifference
	t.BranchID = payload.BranchID
	t.WarehouseID = payload.WarehouseID

	t.Lines = make([]TransactionLine, 0, len(payload.Lines))
	for _, line := range payload.Lines {
		t.Lines = append(t.Lines, TransactionLine{
			ID:                 line.LineID,
			TransactionID:      t.ID,
			VariationID:        line.VariationID,
			StockTypeID:        line.StockTypeID,
			ProductName:        line.ProductName,
			SKU:                line.SKU,
			Quantity:           line.Quantity,
			UnitPrice:          line.UnitPrice,
			DiscountPercent:    line.DiscountPercent,
			Outgoing:           line.Outgoing,
			LinkedReturnLineID: line.LinkedReturnLineID,
		})
	}

	t.Payments = make([]TransactionPayment, 0, len(payload.Payments))
	for _, payment := range payload.Payments {
		t.Payments = append(t.Payments, TransactionPayment{
			ID:            uuid.New(),
			TransactionID: t.ID,
			MethodID:      payment.MethodID,
			MethodName:    payment.MethodName,
			Amount:        payment.Amount,
			VoucherURL:    payment.VoucherURL,
		})
	}
}

// ReturnLineCount returns the number of non-outgoing lines
func (t *ReturnTransaction) ReturnLineCount() int {
	count := 0
	for _, line := range t.Lines {
		if !line.Outgoing {
			count++
		}
	}
	return count
}

// ExchangeLineCount returns the number of outgoing lines
func (t *ReturnTransaction) ExchangeLineCount() int {
	return len(t.Lines) - t.ReturnLineCount()
}

// SessionFromTransaction re-hydrates a persisted transaction into an
// editable session. The source bounds are re-read from the lookup
// collaborator by the caller; the transaction's own return lines act as the
// bounds when the original order is no longer available.
func SessionFromTransaction(t *ReturnTransaction, sourceLines []SourceLine) (*ReturnSession, error) {
	session, err := NewReturnSession(t.TenantID, t.BranchID, t.KindCode)
	if err != nil {
		return nil, err
	}

	if t.SourceType == SourceReturns {
		if err := session.ChooseSourceType(SourceReturns); err != nil {
			return nil, err
		}
	}

	if len(sourceLines) == 0 {
		sourceLines = sourceLinesFromTransaction(t)
	}

	ref := SourceRef{
		ID:               t.SourceID,
		Type:             t.SourceType,
		DocumentNumber:   t.DocumentNumber,
		CustomerName:     t.CustomerName,
		CustomerDocument: t.CustomerDocument,
		DocumentTypeID:   t.DocumentTypeID,
		ShippingCost:     t.ShippingCost,
	}
	if err := session.ConfirmSource(ref, sourceLines); err != nil {
		return nil, err
	}

	// Replay return lines first so exchange-line links can resolve.
	// Old line identifiers map onto the freshly assigned ones.
	oldToNewLineID := make(map[uuid.UUID]uuid.UUID)
	for _, line := range t.Lines {
		if line.Outgoing {
			continue
		}
		if !session.ReturnLines.IsReadOnly() {
			if err := session.SetReturnQuantity(line.VariationID, line.Quantity); err != nil {
				return nil, err
			}
		}
		if replayed := session.ReturnLines.Get(line.VariationID); replayed != nil {
			oldToNewLineID[line.ID] = replayed.LineID
		}
	}

	for _, line := range t.Lines {
		if !line.Outgoing {
			continue
		}
		var linked *uuid.UUID
		if line.LinkedReturnLineID != nil {
			if newID, ok := oldToNewLineID[*line.LinkedReturnLineID]; ok {
				linked = &newID
			}
		}
		stockTypeID := uuid.Nil
		if line.StockTypeID != nil {
			stockTypeID = *line.StockTypeID
		}
		if _, err := session.AddExchangeLine(ExchangeLine{
			VariationID:        line.VariationID,
			StockTypeID:        stockTypeID,
			ProductName:        line.ProductName,
			SKU:                line.SKU,
			Quantity:           line.Quantity,
			UnitPrice:          line.UnitPrice,
			DiscountPercent:    line.DiscountPercent,
			LinkedReturnLineID: linked,
		}); err != nil {
			return nil, err
		}
	}

	for _, payment := range t.Payments {
		entry, err := session.AddPayment(payment.MethodID, payment.MethodName, payment.Amount)
		if err != nil {
			return nil, err
		}
		if payment.VoucherURL != "" {
			if err := session.AttachPaymentVoucher(entry.ID, payment.VoucherURL); err != nil {
				return nil, err
			}
		}
	}

	if err := session.SetShipping(t.ShippingReturn, t.ShippingCost); err != nil {
		return nil, err
	}
	session.SetReason(t.Reason)
	if t.SituationID != uuid.Nil {
		if err := session.SetSituation(t.SituationID); err != nil {
			return nil, err
		}
	}
	if t.WarehouseID != nil {
		if err := session.SetWarehouse(*t.WarehouseID); err != nil {
			return nil, err
		}
	}

	editID := t.ID
	session.EditingTransactionID = &editID
	return session, nil
}

// sourceLinesFromTransaction falls back to the transaction's own return
// lines as selection bounds when the original source cannot be re-fetched
func sourceLinesFromTransaction(t *ReturnTransaction) []SourceLine {
	lines := make([]SourceLine, 0, len(t.Lines))
	for _, line := range t.Lines {
		if line.Outgoing {
			continue
		}
		lines = append(lines, SourceLine{
			VariationID:     line.VariationID,
			ProductName:     line.ProductName,
			SKU:             line.SKU,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
		})
	}
	return lines
}
