package models

import "github.com/google/uuid"

// SituationModel is a workflow status value attachable to a transaction
type SituationModel struct {
	BaseModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(100);not null"`
	Active   bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SituationModel) TableName() string {
	return "return_situations"
}

// DocumentTypeModel is a fiscal document type
type DocumentTypeModel struct {
	BaseModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(100);not null"`
	Code     string    `gorm:"type:varchar(20)"`
	Active   bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (DocumentTypeModel) TableName() string {
	return "document_types"
}

// PaymentMethodModel is a refund/payment method
type PaymentMethodModel struct {
	BaseModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(100);not null"`
	Code     string    `gorm:"type:varchar(20)"`
	Active   bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PaymentMethodModel) TableName() string {
	return "payment_methods"
}

// StockTypeModel is a stock classification for outgoing exchange lines
type StockTypeModel struct {
	BaseModel
	TenantID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name     string    `gorm:"type:varchar(100);not null"`
	Code     string    `gorm:"type:varchar(20)"`
	Active   bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (StockTypeModel) TableName() string {
	return "stock_types"
}
