package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/returns"
	"github.com/shopspring/decimal"
)

// SalesOrderModel is a read-only view over completed sales orders.
// The return engine never writes this table; it only resolves sources
// from it.
type SalesOrderModel struct {
	TenantAggregateModel
	OrderNumber      string                `gorm:"type:varchar(50);not null;uniqueIndex:idx_sales_order_tenant_number,priority:2"`
	CustomerName     string                `gorm:"type:varchar(200);not null"`
	CustomerDocument string                `gorm:"type:varchar(30)"`
	DocumentTypeID   *uuid.UUID            `gorm:"type:uuid"`
	TotalAmount      decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingCost     decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	OrderDate        time.Time             `gorm:"not null;index"`
	BranchID         uuid.UUID             `gorm:"type:uuid;not null;index"`
	Items            []SalesOrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// ToSourceRef converts the order header to a source reference
func (m *SalesOrderModel) ToSourceRef() returns.SourceRef {
	return returns.SourceRef{
		ID:               m.ID,
		Type:             returns.SourceOrders,
		DocumentNumber:   m.OrderNumber,
		CustomerName:     m.CustomerName,
		CustomerDocument: m.CustomerDocument,
		DocumentTypeID:   m.DocumentTypeID,
		Total:            m.TotalAmount,
		ShippingCost:     m.ShippingCost,
		Date:             m.OrderDate,
	}
}

// SalesOrderItemModel is a read-only view over sales order lines
type SalesOrderItemModel struct {
	BaseModel
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariationID     uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName     string          `gorm:"type:varchar(200);not null"`
	SKU             string          `gorm:"type:varchar(100)"`
	Quantity        int             `gorm:"not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0"`
	// TermNames is a comma-separated list of payment term names.
	TermNames string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (SalesOrderItemModel) TableName() string {
	return "sales_order_items"
}

// ToSourceLine converts the order line to a source line
func (m *SalesOrderItemModel) ToSourceLine() returns.SourceLine {
	var terms []string
	if m.TermNames != "" {
		terms = strings.Split(m.TermNames, ",")
	}
	return returns.SourceLine{
		VariationID:     m.VariationID,
		ProductName:     m.ProductName,
		SKU:             m.SKU,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		DiscountPercent: m.DiscountPercent,
		TermNames:       terms,
	}
}
