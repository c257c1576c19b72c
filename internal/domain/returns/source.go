package returns

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SourceType identifies which kind of record a return session is issued against
type SourceType string

const (
	// SourceOrders sources the session from a completed sales order
	SourceOrders SourceType = "orders"
	// SourceReturns sources the session from a previously registered return
	// (exchanges only)
	SourceReturns SourceType = "returns"
)

// IsValid checks if the source type is known
func (s SourceType) IsValid() bool {
	return s == SourceOrders || s == SourceReturns
}

// SourceRef is the immutable reference to the originating record.
// Once confirmed it is a read-only bound for quantities and prices.
type SourceRef struct {
	ID                  uuid.UUID
	Type                SourceType
	DocumentNumber      string
	CustomerName        string
	CustomerDocument    string
	DocumentTypeID      *uuid.UUID
	Total               decimal.Decimal
	ShippingCost        decimal.Decimal
	Date                time.Time
}

// SourceLine is a read-only line of the originating record.
// Lines are never mutated; they bound the selectable quantities.
type SourceLine struct {
	VariationID     uuid.UUID
	ProductName     string
	SKU             string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	TermNames       []string
}

// validateSourceLines rejects line sets that violate the source contract
func validateSourceLines(lines []SourceLine) error {
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if line.VariationID == uuid.Nil {
			return shared.NewDomainError("INVALID_SOURCE_LINE", "Source line variation ID cannot be empty")
		}
		if line.Quantity <= 0 {
			return shared.NewDomainError("INVALID_SOURCE_LINE", "Source line quantity must be positive")
		}
		if line.UnitPrice.IsNegative() {
			return shared.NewDomainError("INVALID_SOURCE_LINE", "Source line unit price cannot be negative")
		}
		if _, dup := seen[line.VariationID]; dup {
			return shared.NewDomainError("INVALID_SOURCE_LINE", "Source lines cannot repeat a variation ID")
		}
		seen[line.VariationID] = struct{}{}
	}
	return nil
}
