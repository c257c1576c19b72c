// Package returns implements the application workflow around the return
// and exchange transaction engine: session orchestration, source lookup,
// reference data and persistence of submitted transactions.
package returns

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/returns"
)

// SourceQuery is the normalized request sent to the lookup collaborator.
// Exactly one of WantOrders/WantReturns is expected to be true.
type SourceQuery struct {
	WantOrders  bool
	WantReturns bool
	Page        int
	PageSize    int
	Search      string
}

// SourceResult is the normalized lookup response. Orders and prior returns
// share this one shape; normalization of the alternate raw fields
// (total vs. refund amount, date vs. created-at) happens inside the
// adapter, never in the engine.
type SourceResult struct {
	Items      []returns.SourceRef
	TotalCount int64
}

// SourceLookup is the collaborator resolving candidate source records and
// their concrete lines. A fetch failure is non-fatal to the session.
type SourceLookup interface {
	// Search finds candidate orders or prior returns
	Search(ctx context.Context, tenantID uuid.UUID, query SourceQuery) (SourceResult, error)
	// FetchOrderLines returns the lines of a sales order
	FetchOrderLines(ctx context.Context, tenantID, orderID uuid.UUID) ([]returns.SourceLine, error)
	// FetchReturnLines returns the non-outgoing lines of a prior return
	FetchReturnLines(ctx context.Context, tenantID, returnID uuid.UUID) ([]returns.SourceLine, error)
}

// ReferenceItem is one entry of a read-only reference list
type ReferenceItem struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Code string    `json:"code,omitempty"`
}

// ReferenceData provides the read-only lookup lists consumed at workflow
// start: return kinds, situations, document types, payment methods and the
// stock-type taxonomy.
type ReferenceData interface {
	ReturnKinds(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error)
	Situations(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error)
	DocumentTypes(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error)
	PaymentMethods(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error)
	StockTypes(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error)
}

// VoucherStorage uploads proof-of-payment attachments and returns a URL.
// An upload failure aborts only the attachment, never the transaction.
type VoucherStorage interface {
	Upload(ctx context.Context, name string, content io.Reader, size int64, contentType string) (string, error)
}
