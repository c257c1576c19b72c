package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/returns"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/retailops/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReturnTransactionRepository implements ReturnTransactionRepository using GORM
type GormReturnTransactionRepository struct {
	db *gorm.DB
}

// NewGormReturnTransactionRepository creates a new GormReturnTransactionRepository
func NewGormReturnTransactionRepository(db *gorm.DB) *GormReturnTransactionRepository {
	return &GormReturnTransactionRepository{db: db}
}

// FindByIDForTenant finds a return transaction by ID within a tenant
func (r *GormReturnTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*returns.ReturnTransaction, error) {
	var m models.ReturnTransactionModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Payments").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindByNumber finds a return transaction by its number for a tenant
func (r *GormReturnTransactionRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*returns.ReturnTransaction, error) {
	var m models.ReturnTransactionModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Preload("Payments").
		Where("tenant_id = ? AND number = ?", tenantID, number).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return m.ToDomain(), nil
}

// FindAllForTenant finds return transactions for a tenant with filtering
func (r *GormReturnTransactionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]returns.ReturnTransaction, error) {
	var rows []models.ReturnTransactionModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ReturnTransactionModel{}).
			Preload("Lines").
			Preload("Payments").
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	result := make([]returns.ReturnTransaction, len(rows))
	for i := range rows {
		result[i] = *rows[i].ToDomain()
	}
	return result, nil
}

// CountForTenant counts return transactions for a tenant with filtering
func (r *GormReturnTransactionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ReturnTransactionModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates a new return transaction atomically: the record, all lines
// and all payments in one database transaction
func (r *GormReturnTransactionRepository) Save(ctx context.Context, transaction *returns.ReturnTransaction) error {
	m := models.ReturnTransactionModelFromDomain(transaction)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines", "Payments").Create(m).Error; err != nil {
			return err
		}
		for i := range m.Lines {
			m.Lines[i].TransactionID = m.ID
			if err := tx.Create(&m.Lines[i]).Error; err != nil {
				return err
			}
		}
		for i := range m.Payments {
			m.Payments[i].TransactionID = m.ID
			if err := tx.Create(&m.Payments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SaveWithLock updates an existing return transaction with optimistic
// locking. Lines and payments are replaced wholesale.
func (r *GormReturnTransactionRepository) SaveWithLock(ctx context.Context, transaction *returns.ReturnTransaction) error {
	m := models.ReturnTransactionModelFromDomain(transaction)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var currentVersion int
		if err := tx.Model(&models.ReturnTransactionModel{}).
			Where("id = ?", m.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != m.Version {
			return shared.ErrConcurrencyConflict
		}

		m.Version++
		m.UpdatedAt = time.Now()

		result := tx.Model(&models.ReturnTransactionModel{}).
			Where("id = ? AND version = ?", m.ID, currentVersion).
			Updates(map[string]any{
				"kind_code":                 m.KindCode,
				"source_id":                 m.SourceID,
				"source_type":               m.SourceType,
				"document_number":           m.DocumentNumber,
				"customer_name":             m.CustomerName,
				"customer_document":         m.CustomerDocument,
				"document_type_id":          m.DocumentTypeID,
				"reason":                    m.Reason,
				"situation_id":              m.SituationID,
				"shipping_return":           m.ShippingReturn,
				"shipping_cost":             m.ShippingCost,
				"total_refund_amount":       m.TotalRefundAmount,
				"total_exchange_difference": m.TotalExchangeDifference,
				"branch_id":                 m.BranchID,
				"warehouse_id":              m.WarehouseID,
				"version":                   m.Version,
				"updated_at":                m.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if err := tx.Where("transaction_id = ?", m.ID).
			Delete(&models.ReturnTransactionLineModel{}).Error; err != nil {
			return err
		}
		for i := range m.Lines {
			m.Lines[i].TransactionID = m.ID
			if err := tx.Create(&m.Lines[i]).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("transaction_id = ?", m.ID).
			Delete(&models.ReturnTransactionPaymentModel{}).Error; err != nil {
			return err
		}
		for i := range m.Payments {
			m.Payments[i].TransactionID = m.ID
			if err := tx.Create(&m.Payments[i]).Error; err != nil {
				return err
			}
		}

		transaction.Version = m.Version
		transaction.UpdatedAt = m.UpdatedAt
		return nil
	})
}

// DeleteForTenant deletes a return transaction and its children for a tenant
func (r *GormReturnTransactionRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", id).
			Delete(&models.ReturnTransactionLineModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("transaction_id = ?", id).
			Delete(&models.ReturnTransactionPaymentModel{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ReturnTransactionModel{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// GenerateNumber generates a unique transaction number for a tenant.
// Format: DEV-YYYY-NNNNN (e.g. DEV-2026-00001)
func (r *GormReturnTransactionRepository) GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("DEV-%d-", year)

	var last models.ReturnTransactionModel
	err := r.db.WithContext(ctx).
		Model(&models.ReturnTransactionModel{}).
		Where("tenant_id = ? AND number LIKE ?", tenantID, prefix+"%").
		Order("number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.Number != "" {
		parts := strings.Split(last.Number, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	number := fmt.Sprintf("%s%05d", prefix, nextNum)
	for range 100 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.ReturnTransactionModel{}).
			Where("tenant_id = ? AND number = ?", tenantID, number).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			break
		}
		nextNum++
		number = fmt.Sprintf("%s%05d", prefix, nextNum)
	}

	return number, nil
}

// applyFilter applies filter options to the query
func (r *GormReturnTransactionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ReturnTransactionSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(orderBy + " " + orderDir)

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReturnTransactionRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number ILIKE ? OR document_number ILIKE ? OR customer_name ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "kind_code":
			query = query.Where("kind_code = ?", value)
		case "situation_id":
			query = query.Where("situation_id = ?", value)
		case "branch_id":
			query = query.Where("branch_id = ?", value)
		case "source_id":
			query = query.Where("source_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}
