package returns

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
)

// ReturnTransactionRepository defines the persistence contract for
// submitted return/exchange transactions. Create and update are single
// atomic calls; a failure leaves the caller's session entirely intact.
type ReturnTransactionRepository interface {
	// FindByIDForTenant finds a transaction by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ReturnTransaction, error)

	// FindByNumber finds a transaction by its document number for a tenant
	FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*ReturnTransaction, error)

	// FindAllForTenant finds transactions for a tenant with filtering
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ReturnTransaction, error)

	// CountForTenant counts transactions for a tenant with filtering
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)

	// Save creates a new transaction atomically (record plus lines and payments)
	Save(ctx context.Context, tx *ReturnTransaction) error

	// SaveWithLock updates an existing transaction with optimistic locking
	SaveWithLock(ctx context.Context, tx *ReturnTransaction) error

	// DeleteForTenant deletes a transaction for a tenant
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error

	// GenerateNumber generates a unique transaction number for a tenant
	GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error)
}
