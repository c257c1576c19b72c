package returns

import (
	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockKey identifies the inventory pool an outgoing line is drawn from.
// Two exchange lines may share a variation as long as their stock types
// differ; the identical pair is a duplicate.
type StockKey struct {
	VariationID uuid.UUID
	StockTypeID uuid.UUID
}

// ExchangeLine is a replacement product line shipped out to the customer.
// LinkedReturnLineID optionally points at the stable LineID of a return line
// for traceability ("this size was exchanged for that size").
type ExchangeLine struct {
	LineID             uuid.UUID
	VariationID        uuid.UUID
	StockTypeID        uuid.UUID
	ProductName        string
	SKU                string
	Quantity           int
	UnitPrice          decimal.Decimal
	DiscountPercent    decimal.Decimal
	LinkedReturnLineID *uuid.UUID
	Outgoing           bool // always true for exchange lines
}

// Subtotal returns price * (1 - discount/100) * quantity for the line
func (l ExchangeLine) Subtotal() decimal.Decimal {
	discounted := l.UnitPrice.Mul(decimal.NewFromInt(100).Sub(l.DiscountPercent)).Div(decimal.NewFromInt(100))
	return discounted.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ExchangeLinePatch carries a partial update for an exchange line.
// Nil fields are left untouched.
type ExchangeLinePatch struct {
	Quantity           *int
	UnitPrice          *decimal.Decimal
	DiscountPercent    *decimal.Decimal
	LinkedReturnLineID *uuid.UUID
	ClearLink          bool
}

// ExchangeLineSet holds the outgoing lines of an exchange in insertion order.
// Membership is checked on the (variation, stock type) value pair.
type ExchangeLineSet struct {
	lines []*ExchangeLine
	keys  map[StockKey]struct{}
}

// NewExchangeLineSet creates an empty exchange line set
func NewExchangeLineSet() *ExchangeLineSet {
	return &ExchangeLineSet{
		keys: make(map[StockKey]struct{}),
	}
}

// Add appends a new outgoing line. Adding an already-present
// (variation, stock type) pair is rejected with no state change so callers
// can inform the user instead of wondering why nothing happened.
func (s *ExchangeLineSet) Add(line ExchangeLine) (*ExchangeLine, error) {
	if line.VariationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EXCHANGE_LINE", "Exchange line variation ID cannot be empty")
	}
	if line.StockTypeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EXCHANGE_LINE", "Exchange line stock type cannot be empty")
	}
	if line.Quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Exchange quantity must be at least 1")
	}
	if line.UnitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_EXCHANGE_LINE", "Exchange line unit price cannot be negative")
	}
	if err := validateDiscount(line.DiscountPercent); err != nil {
		return nil, err
	}

	key := StockKey{VariationID: line.VariationID, StockTypeID: line.StockTypeID}
	if _, dup := s.keys[key]; dup {
		return nil, shared.NewDomainError("DUPLICATE_SELECTION", "Variation already selected for this stock type")
	}

	line.LineID = uuid.New()
	line.Outgoing = true
	s.lines = append(s.lines, &line)
	s.keys[key] = struct{}{}
	return s.lines[len(s.lines)-1], nil
}

// Update applies a partial update to the line with the given stable ID
func (s *ExchangeLineSet) Update(lineID uuid.UUID, patch ExchangeLinePatch) error {
	line := s.get(lineID)
	if line == nil {
		return shared.NewDomainError("LINE_NOT_FOUND", "Exchange line not found")
	}

	// Validate the whole patch before touching the line so a failed update
	// leaves it untouched.
	if patch.Quantity != nil && *patch.Quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Exchange quantity must be at least 1")
	}
	if patch.UnitPrice != nil && patch.UnitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_EXCHANGE_LINE", "Exchange line unit price cannot be negative")
	}
	if patch.DiscountPercent != nil {
		if err := validateDiscount(*patch.DiscountPercent); err != nil {
			return err
		}
	}

	if patch.Quantity != nil {
		line.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		line.UnitPrice = *patch.UnitPrice
	}
	if patch.DiscountPercent != nil {
		line.DiscountPercent = *patch.DiscountPercent
	}
	if patch.ClearLink {
		line.LinkedReturnLineID = nil
	} else if patch.LinkedReturnLineID != nil {
		id := *patch.LinkedReturnLineID
		line.LinkedReturnLineID = &id
	}
	return nil
}

// Remove drops the line with the given stable ID. Links held by other lines
// are unaffected because linkage is by identifier, not position.
func (s *ExchangeLineSet) Remove(lineID uuid.UUID) error {
	for idx, line := range s.lines {
		if line.LineID == lineID {
			delete(s.keys, StockKey{VariationID: line.VariationID, StockTypeID: line.StockTypeID})
			s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
			return nil
		}
	}
	return shared.NewDomainError("LINE_NOT_FOUND", "Exchange line not found")
}

// ClearLinksTo removes any linkage pointing at the given return line.
// Called when a return line leaves the selection.
func (s *ExchangeLineSet) ClearLinksTo(returnLineID uuid.UUID) {
	for _, line := range s.lines {
		if line.LinkedReturnLineID != nil && *line.LinkedReturnLineID == returnLineID {
			line.LinkedReturnLineID = nil
		}
	}
}

// Contains reports whether the (variation, stock type) pair is present
func (s *ExchangeLineSet) Contains(key StockKey) bool {
	_, ok := s.keys[key]
	return ok
}

// Get returns the line with the given stable ID, or nil
func (s *ExchangeLineSet) Get(lineID uuid.UUID) *ExchangeLine {
	if line := s.get(lineID); line != nil {
		copied := *line
		return &copied
	}
	return nil
}

func (s *ExchangeLineSet) get(lineID uuid.UUID) *ExchangeLine {
	for _, line := range s.lines {
		if line.LineID == lineID {
			return line
		}
	}
	return nil
}

// ToList returns the outgoing lines in insertion order
func (s *ExchangeLineSet) ToList() []ExchangeLine {
	result := make([]ExchangeLine, 0, len(s.lines))
	for _, line := range s.lines {
		result = append(result, *line)
	}
	return result
}

// Len returns the number of outgoing lines
func (s *ExchangeLineSet) Len() int {
	return len(s.lines)
}

// Total returns the discounted sum over all outgoing lines
func (s *ExchangeLineSet) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func validateDiscount(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount percent must be between 0 and 100")
	}
	return nil
}
