package persistence

import (
	"context"

	"github.com/google/uuid"
	appreturns "github.com/retailops/backoffice/internal/application/returns"
	"github.com/retailops/backoffice/internal/domain/returns"
	"github.com/retailops/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSourceLookup resolves return sources from the sales order and return
// transaction tables. The two raw shapes are normalized here: a prior
// return exposes its refund amount as the total and its creation time as
// the document date.
type GormSourceLookup struct {
	db *gorm.DB
}

// NewGormSourceLookup creates a new GormSourceLookup
func NewGormSourceLookup(db *gorm.DB) *GormSourceLookup {
	return &GormSourceLookup{db: db}
}

// Search finds candidate orders or prior returns matching the query
func (r *GormSourceLookup) Search(ctx context.Context, tenantID uuid.UUID, query appreturns.SourceQuery) (appreturns.SourceResult, error) {
	if query.WantReturns {
		return r.searchReturns(ctx, tenantID, query)
	}
	return r.searchOrders(ctx, tenantID, query)
}

func (r *GormSourceLookup) searchOrders(ctx context.Context, tenantID uuid.UUID, query appreturns.SourceQuery) (appreturns.SourceResult, error) {
	base := r.db.WithContext(ctx).Model(&models.SalesOrderModel{}).Where("tenant_id = ?", tenantID)
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		base = base.Where("order_number ILIKE ? OR customer_name ILIKE ? OR customer_document ILIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return appreturns.SourceResult{}, err
	}

	var rows []models.SalesOrderModel
	if err := base.
		Order("order_date DESC").
		Offset(searchOffset(query)).
		Limit(searchLimit(query)).
		Find(&rows).Error; err != nil {
		return appreturns.SourceResult{}, err
	}

	items := make([]returns.SourceRef, len(rows))
	for i := range rows {
		items[i] = rows[i].ToSourceRef()
	}
	return appreturns.SourceResult{Items: items, TotalCount: total}, nil
}

func (r *GormSourceLookup) searchReturns(ctx context.Context, tenantID uuid.UUID, query appreturns.SourceQuery) (appreturns.SourceResult, error) {
	base := r.db.WithContext(ctx).Model(&models.ReturnTransactionModel{}).Where("tenant_id = ?", tenantID)
	if query.Search != "" {
		pattern := "%" + query.Search + "%"
		base = base.Where("number ILIKE ? OR document_number ILIKE ? OR customer_name ILIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return appreturns.SourceResult{}, err
	}

	var rows []models.ReturnTransactionModel
	if err := base.
		Order("created_at DESC").
		Offset(searchOffset(query)).
		Limit(searchLimit(query)).
		Find(&rows).Error; err != nil {
		return appreturns.SourceResult{}, err
	}

	items := make([]returns.SourceRef, len(rows))
	for i := range rows {
		items[i] = returns.SourceRef{
			ID:               rows[i].ID,
			Type:             returns.SourceReturns,
			DocumentNumber:   rows[i].Number,
			CustomerName:     rows[i].CustomerName,
			CustomerDocument: rows[i].CustomerDocument,
			DocumentTypeID:   rows[i].DocumentTypeID,
			Total:            rows[i].TotalRefundAmount,
			ShippingCost:     rows[i].ShippingCost,
			Date:             rows[i].CreatedAt,
		}
	}
	return appreturns.SourceResult{Items: items, TotalCount: total}, nil
}

// FetchOrderLines returns the lines of a sales order
func (r *GormSourceLookup) FetchOrderLines(ctx context.Context, tenantID, orderID uuid.UUID) ([]returns.SourceLine, error) {
	var order models.SalesOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, orderID).
		First(&order).Error; err != nil {
		return nil, err
	}

	lines := make([]returns.SourceLine, len(order.Items))
	for i := range order.Items {
		lines[i] = order.Items[i].ToSourceLine()
	}
	return lines, nil
}

// FetchReturnLines returns the non-outgoing lines of a prior return.
// Outgoing exchange lines are never returnable through this path.
func (r *GormSourceLookup) FetchReturnLines(ctx context.Context, tenantID, returnID uuid.UUID) ([]returns.SourceLine, error) {
	var tx models.ReturnTransactionModel
	if err := r.db.WithContext(ctx).
		Preload("Lines", "outgoing = ?", false).
		Where("tenant_id = ? AND id = ?", tenantID, returnID).
		First(&tx).Error; err != nil {
		return nil, err
	}

	lines := make([]returns.SourceLine, 0, len(tx.Lines))
	for _, line := range tx.Lines {
		lines = append(lines, returns.SourceLine{
			VariationID:     line.VariationID,
			ProductName:     line.ProductName,
			SKU:             line.SKU,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
		})
	}
	return lines, nil
}

func searchOffset(query appreturns.SourceQuery) int {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	return (page - 1) * searchLimit(query)
}

func searchLimit(query appreturns.SourceQuery) int {
	if query.PageSize <= 0 || query.PageSize > 100 {
		return 20
	}
	return query.PageSize
}
