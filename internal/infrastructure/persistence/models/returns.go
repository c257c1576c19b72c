package models

import (
	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/returns"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReturnTransactionModel is the persistence model for the ReturnTransaction
// aggregate root.
type ReturnTransactionModel struct {
	TenantAggregateModel
	Number                  string                           `gorm:"type:varchar(50);not null;uniqueIndex:idx_return_tx_tenant_number,priority:2"`
	KindCode                string                           `gorm:"type:varchar(10);not null;index"`
	SourceID                uuid.UUID                        `gorm:"type:uuid;not null;index"`
	SourceType              string                           `gorm:"type:varchar(20);not null"`
	DocumentNumber          string                           `gorm:"type:varchar(50);not null"`
	CustomerName            string                           `gorm:"type:varchar(200)"`
	CustomerDocument        string                           `gorm:"type:varchar(30)"`
	DocumentTypeID          *uuid.UUID                       `gorm:"type:uuid"`
	Reason                  string                           `gorm:"type:text"`
	SituationID             uuid.UUID                        `gorm:"type:uuid;not null;index"`
	ShippingReturn          bool                             `gorm:"not null;default:false"`
	ShippingCost            decimal.Decimal                  `gorm:"type:decimal(18,4);not null;default:0"`
	TotalRefundAmount       decimal.Decimal                  `gorm:"type:decimal(18,4);not null;default:0"`
	TotalExchangeDifference decimal.Decimal                  `gorm:"type:decimal(18,4);not null;default:0"`
	Lines                   []ReturnTransactionLineModel     `gorm:"foreignKey:TransactionID;references:ID"`
	Payments                []ReturnTransactionPaymentModel  `gorm:"foreignKey:TransactionID;references:ID"`
	BranchID                uuid.UUID                        `gorm:"type:uuid;not null;index"`
	WarehouseID             *uuid.UUID                       `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (ReturnTransactionModel) TableName() string {
	return "return_transactions"
}

// ToDomain converts the persistence model to a domain ReturnTransaction
func (m *ReturnTransactionModel) ToDomain() *returns.ReturnTransaction {
	tx := &returns.ReturnTransaction{
		TenantAggregateRoot: shared.TenantAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: shared.BaseEntity{
					ID:        m.ID,
					CreatedAt: m.CreatedAt,
					UpdatedAt: m.UpdatedAt,
				},
				Version: m.Version,
			},
			TenantID:  m.TenantID,
			CreatedBy: m.CreatedBy,
		},
		Number:                  m.Number,
		KindCode:                m.KindCode,
		SourceID:                m.SourceID,
		SourceType:              returns.SourceType(m.SourceType),
		DocumentNumber:          m.DocumentNumber,
		CustomerName:            m.CustomerName,
		CustomerDocument:        m.CustomerDocument,
		DocumentTypeID:          m.DocumentTypeID,
		Reason:                  m.Reason,
		SituationID:             m.SituationID,
		ShippingReturn:          m.ShippingReturn,
		ShippingCost:            m.ShippingCost,
		TotalRefundAmount:       m.TotalRefundAmount,
		TotalExchangeDifference: m.TotalExchangeDifference,
		BranchID:                m.BranchID,
		WarehouseID:             m.WarehouseID,
	}

	tx.Lines = make([]returns.TransactionLine, len(m.Lines))
	for i := range m.Lines {
		tx.Lines[i] = *m.Lines[i].ToDomain()
	}
	tx.Payments = make([]returns.TransactionPayment, len(m.Payments))
	for i := range m.Payments {
		tx.Payments[i] = *m.Payments[i].ToDomain()
	}
	return tx
}

// ReturnTransactionModelFromDomain creates a persistence model from a
// domain ReturnTransaction
func ReturnTransactionModelFromDomain(tx *returns.ReturnTransaction) *ReturnTransactionModel {
	m := &ReturnTransactionModel{
		Number:                  tx.Number,
		KindCode:                tx.KindCode,
		SourceID:                tx.SourceID,
		SourceType:              string(tx.SourceType),
		DocumentNumber:          tx.DocumentNumber,
		CustomerName:            tx.CustomerName,
		CustomerDocument:        tx.CustomerDocument,
		DocumentTypeID:          tx.DocumentTypeID,
		Reason:                  tx.Reason,
		SituationID:             tx.SituationID,
		ShippingReturn:          tx.ShippingReturn,
		ShippingCost:            tx.ShippingCost,
		TotalRefundAmount:       tx.TotalRefundAmount,
		TotalExchangeDifference: tx.TotalExchangeDifference,
		BranchID:                tx.BranchID,
		WarehouseID:             tx.WarehouseID,
	}
	m.FromDomainAggregateRoot(tx.BaseAggregateRoot)
	m.TenantID = tx.TenantID
	m.CreatedBy = tx.CreatedBy

	m.Lines = make([]ReturnTransactionLineModel, len(tx.Lines))
	for i := range tx.Lines {
		m.Lines[i] = *ReturnTransactionLineModelFromDomain(&tx.Lines[i])
	}
	m.Payments = make([]ReturnTransactionPaymentModel, len(tx.Payments))
	for i := range tx.Payments {
		m.Payments[i] = *ReturnTransactionPaymentModelFromDomain(&tx.Payments[i])
	}
	return m
}

// ReturnTransactionLineModel is the persistence model for one transaction
// line, return and exchange lines flattened together.
type ReturnTransactionLineModel struct {
	BaseModel
	TransactionID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariationID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	StockTypeID        *uuid.UUID      `gorm:"type:uuid"`
	ProductName        string          `gorm:"type:varchar(200);not null"`
	SKU                string          `gorm:"type:varchar(100)"`
	Quantity           int             `gorm:"not null"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountPercent    decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	Outgoing           bool            `gorm:"not null;default:false"`
	LinkedReturnLineID *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (ReturnTransactionLineModel) TableName() string {
	return "return_transaction_lines"
}

// ToDomain converts the persistence model to a domain TransactionLine
func (m *ReturnTransactionLineModel) ToDomain() *returns.TransactionLine {
	return &returns.TransactionLine{
		ID:                 m.ID,
		TransactionID:      m.TransactionID,
		VariationID:        m.VariationID,
		StockTypeID:        m.StockTypeID,
		ProductName:        m.ProductName,
		SKU:                m.SKU,
		Quantity:           m.Quantity,
		UnitPrice:          m.UnitPrice,
		DiscountPercent:    m.DiscountPercent,
		Outgoing:           m.Outgoing,
		LinkedReturnLineID: m.LinkedReturnLineID,
	}
}

// ReturnTransactionLineModelFromDomain creates a persistence model from a
// domain TransactionLine
func ReturnTransactionLineModelFromDomain(l *returns.TransactionLine) *ReturnTransactionLineModel {
	m := &ReturnTransactionLineModel{
		TransactionID:      l.TransactionID,
		VariationID:        l.VariationID,
		StockTypeID:        l.StockTypeID,
		ProductName:        l.ProductName,
		SKU:                l.SKU,
		Quantity:           l.Quantity,
		UnitPrice:          l.UnitPrice,
		DiscountPercent:    l.DiscountPercent,
		Outgoing:           l.Outgoing,
		LinkedReturnLineID: l.LinkedReturnLineID,
	}
	m.ID = l.ID
	return m
}

// ReturnTransactionPaymentModel is the persistence model for one payment
// ledger entry of a transaction.
type ReturnTransactionPaymentModel struct {
	BaseModel
	TransactionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	MethodID      uuid.UUID       `gorm:"type:uuid;not null"`
	MethodName    string          `gorm:"type:varchar(100);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	VoucherURL    string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (ReturnTransactionPaymentModel) TableName() string {
	return "return_transaction_payments"
}

// ToDomain converts the persistence model to a domain TransactionPayment
func (m *ReturnTransactionPaymentModel) ToDomain() *returns.TransactionPayment {
	return &returns.TransactionPayment{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		MethodID:      m.MethodID,
		MethodName:    m.MethodName,
		Amount:        m.Amount,
		VoucherURL:    m.VoucherURL,
	}
}

// ReturnTransactionPaymentModelFromDomain creates a persistence model from
// a domain TransactionPayment
func ReturnTransactionPaymentModelFromDomain(p *returns.TransactionPayment) *ReturnTransactionPaymentModel {
	m := &ReturnTransactionPaymentModel{
		TransactionID: p.TransactionID,
		MethodID:      p.MethodID,
		MethodName:    p.MethodName,
		Amount:        p.Amount,
		VoucherURL:    p.VoucherURL,
	}
	m.ID = p.ID
	return m
}
