package returns

import (
	"github.com/retailops/backoffice/internal/domain/shared"
)

// Event types for the returns context
const (
	EventTransactionRegistered = "returns.transaction.registered"
	EventTransactionUpdated    = "returns.transaction.updated"
)

// AggregateTypeReturnTransaction is the aggregate type name used in events
const AggregateTypeReturnTransaction = "ReturnTransaction"

// TransactionRegisteredEvent is published when a return/exchange
// transaction is submitted for the first time
type TransactionRegisteredEvent struct {
	shared.BaseDomainEvent
	Number                  string `json:"number"`
	KindCode                string `json:"kind_code"`
	TotalRefundAmount       string `json:"total_refund_amount"`
	TotalExchangeDifference string `json:"total_exchange_difference"`
}

// NewTransactionRegisteredEvent creates a TransactionRegisteredEvent
func NewTransactionRegisteredEvent(t *ReturnTransaction) *TransactionRegisteredEvent {
	return &TransactionRegisteredEvent{
		BaseDomainEvent:         shared.NewBaseDomainEvent(EventTransactionRegistered, AggregateTypeReturnTransaction, t.ID, t.TenantID),
		Number:                  t.Number,
		KindCode:                t.KindCode,
		TotalRefundAmount:       t.TotalRefundAmount.String(),
		TotalExchangeDifference: t.TotalExchangeDifference.String(),
	}
}

// TransactionUpdatedEvent is published when a persisted transaction is
// resubmitted in edit mode
type TransactionUpdatedEvent struct {
	shared.BaseDomainEvent
	Number   string `json:"number"`
	KindCode string `json:"kind_code"`
}

// NewTransactionUpdatedEvent creates a TransactionUpdatedEvent
func NewTransactionUpdatedEvent(t *ReturnTransaction) *TransactionUpdatedEvent {
	return &TransactionUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTransactionUpdated, AggregateTypeReturnTransaction, t.ID, t.TenantID),
		Number:          t.Number,
		KindCode:        t.KindCode,
	}
}
