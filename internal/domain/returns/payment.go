package returns

import (
	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentEntry records one payment method and amount attached to a
// transaction. Entries are independent of the computed totals; the ledger
// never balances them against the financial summary.
type PaymentEntry struct {
	ID         uuid.UUID
	MethodID   uuid.UUID
	MethodName string
	Amount     decimal.Decimal
	VoucherURL string
}

// PaymentLedger is the ordered list of payment entries of a session
type PaymentLedger struct {
	entries []PaymentEntry
}

// NewPaymentLedger creates an empty payment ledger
func NewPaymentLedger() *PaymentLedger {
	return &PaymentLedger{}
}

// Add appends a payment entry. Entries with an empty method or a
// non-positive amount are rejected.
func (p *PaymentLedger) Add(methodID uuid.UUID, methodName string, amount decimal.Decimal) (*PaymentEntry, error) {
	if methodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Payment method cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Payment amount must be positive")
	}

	entry := PaymentEntry{
		ID:         uuid.New(),
		MethodID:   methodID,
		MethodName: methodName,
		Amount:     amount,
	}
	p.entries = append(p.entries, entry)
	return &p.entries[len(p.entries)-1], nil
}

// AttachVoucher records the proof-of-payment URL on an entry
func (p *PaymentLedger) AttachVoucher(entryID uuid.UUID, url string) error {
	for idx := range p.entries {
		if p.entries[idx].ID == entryID {
			p.entries[idx].VoucherURL = url
			return nil
		}
	}
	return shared.NewDomainError("PAYMENT_NOT_FOUND", "Payment entry not found")
}

// Remove drops the entry with the given ID
func (p *PaymentLedger) Remove(entryID uuid.UUID) error {
	for idx, entry := range p.entries {
		if entry.ID == entryID {
			p.entries = append(p.entries[:idx], p.entries[idx+1:]...)
			return nil
		}
	}
	return shared.NewDomainError("PAYMENT_NOT_FOUND", "Payment entry not found")
}

// Entries returns the ledger entries in insertion order
func (p *PaymentLedger) Entries() []PaymentEntry {
	result := make([]PaymentEntry, len(p.entries))
	copy(result, p.entries)
	return result
}

// Len returns the number of entries
func (p *PaymentLedger) Len() int {
	return len(p.entries)
}

// Total returns the sum of all entry amounts. Informational only; the
// ledger does not enforce balancing.
func (p *PaymentLedger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, entry := range p.entries {
		total = total.Add(entry.Amount)
	}
	return total
}
