package returns

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/returns"
	"github.com/retailops/backoffice/internal/domain/shared"
)

// TransactionService serves the persisted return/exchange transactions
type TransactionService struct {
	txRepo returns.ReturnTransactionRepository
}

// NewTransactionService creates a new transaction service
func NewTransactionService(txRepo returns.ReturnTransactionRepository) *TransactionService {
	return &TransactionService{txRepo: txRepo}
}

// List returns a filtered, paginated page of transactions
func (s *TransactionService) List(ctx context.Context, tenantID uuid.UUID, filter TransactionListFilter) (*shared.Paginated[TransactionResponse], error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		repoFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		repoFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		repoFilter.OrderDir = filter.OrderDir
	}
	repoFilter.Search = filter.Search
	if filter.KindCode != nil {
		repoFilter.Filters["kind_code"] = *filter.KindCode
	}
	if filter.SituationID != nil {
		repoFilter.Filters["situation_id"] = *filter.SituationID
	}
	if filter.StartDate != nil {
		repoFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		repoFilter.Filters["end_date"] = *filter.EndDate
	}

	items, err := s.txRepo.FindAllForTenant(ctx, tenantID, repoFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.txRepo.CountForTenant(ctx, tenantID, repoFilter)
	if err != nil {
		return nil, err
	}

	page := shared.NewPaginated(ToTransactionResponses(items), total, repoFilter.Page, repoFilter.PageSize)
	return &page, nil
}

// Get returns one transaction by ID
func (s *TransactionService) Get(ctx context.Context, tenantID, id uuid.UUID) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, shared.NewDomainError("TRANSACTION_NOT_FOUND", "Return transaction not found")
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// GetByNumber returns one transaction by its document number
func (s *TransactionService) GetByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*TransactionResponse, error) {
	tx, err := s.txRepo.FindByNumber(ctx, tenantID, number)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, shared.NewDomainError("TRANSACTION_NOT_FOUND", "Return transaction not found")
	}
	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// Delete removes a transaction
func (s *TransactionService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tx, err := s.txRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if tx == nil {
		return shared.NewDomainError("TRANSACTION_NOT_FOUND", "Return transaction not found")
	}
	return s.txRepo.DeleteForTenant(ctx, tenantID, id)
}
