package persistence

import (
	"context"

	"github.com/google/uuid"
	appreturns "github.com/retailops/backoffice/internal/application/returns"
	"github.com/retailops/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReferenceRepository serves the read-only reference lists from the
// database. Return kinds are a fixed taxonomy, not a table.
type GormReferenceRepository struct {
	db *gorm.DB
}

// NewGormReferenceRepository creates a new GormReferenceRepository
func NewGormReferenceRepository(db *gorm.DB) *GormReferenceRepository {
	return &GormReferenceRepository{db: db}
}

// ReturnKinds returns the fixed return kind taxonomy
func (r *GormReferenceRepository) ReturnKinds(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return []appreturns.ReferenceItem{
		{Name: "Devolução Total", Code: "DVT"},
		{Name: "Devolução Parcial", Code: "DVP"},
		{Name: "Troca de Mercadoria", Code: "CAM"},
	}, nil
}

// Situations returns the active workflow status values for a tenant
func (r *GormReferenceRepository) Situations(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	var rows []models.SituationModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]appreturns.ReferenceItem, len(rows))
	for i := range rows {
		items[i] = appreturns.ReferenceItem{ID: rows[i].ID, Name: rows[i].Name}
	}
	return items, nil
}

// DocumentTypes returns the active document types for a tenant
func (r *GormReferenceRepository) DocumentTypes(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	var rows []models.DocumentTypeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]appreturns.ReferenceItem, len(rows))
	for i := range rows {
		items[i] = appreturns.ReferenceItem{ID: rows[i].ID, Name: rows[i].Name, Code: rows[i].Code}
	}
	return items, nil
}

// PaymentMethods returns the active payment methods for a tenant
func (r *GormReferenceRepository) PaymentMethods(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	var rows []models.PaymentMethodModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]appreturns.ReferenceItem, len(rows))
	for i := range rows {
		items[i] = appreturns.ReferenceItem{ID: rows[i].ID, Name: rows[i].Name, Code: rows[i].Code}
	}
	return items, nil
}

// StockTypes returns the active stock types for a tenant
func (r *GormReferenceRepository) StockTypes(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	var rows []models.StockTypeModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]appreturns.ReferenceItem, len(rows))
	for i := range rows {
		items[i] = appreturns.ReferenceItem{ID: rows[i].ID, Name: rows[i].Name, Code: rows[i].Code}
	}
	return items, nil
}
