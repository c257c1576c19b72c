package returns

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReturnLine is a product line coming back from the customer.
// The unit price is copied from the source line at selection time, never
// looked up live. LineID is a stable engine-assigned identifier used for
// cross-referencing from exchange lines.
type ReturnLine struct {
	LineID          uuid.UUID
	VariationID     uuid.UUID
	ProductName     string
	SKU             string
	Quantity        int
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	Outgoing        bool // always false for return lines
}

// Subtotal returns price * quantity for the line
func (l ReturnLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ReturnLineSet holds the return-side selection, bounded by the source lines.
// Lines are keyed by variation ID and kept in insertion order. When the set
// is read-only (full returns) every source line is auto-included with its
// quantity pinned to the original.
type ReturnLineSet struct {
	source   map[uuid.UUID]SourceLine
	lines    map[uuid.UUID]*ReturnLine
	order    []uuid.UUID
	readOnly bool
}

// NewReturnLineSet creates an empty, unseeded selection set
func NewReturnLineSet() *ReturnLineSet {
	return &ReturnLineSet{
		source: make(map[uuid.UUID]SourceLine),
		lines:  make(map[uuid.UUID]*ReturnLine),
	}
}

// SeedFromSource installs the source lines as the selection bounds.
// For read-only kinds every source line is copied verbatim with its quantity
// pinned to the original; other kinds start with an empty selection.
func (s *ReturnLineSet) SeedFromSource(lines []SourceLine, readOnly bool) error {
	if err := validateSourceLines(lines); err != nil {
		return err
	}

	s.source = make(map[uuid.UUID]SourceLine, len(lines))
	s.lines = make(map[uuid.UUID]*ReturnLine, len(lines))
	s.order = s.order[:0]
	s.readOnly = readOnly

	for _, line := range lines {
		s.source[line.VariationID] = line
		if readOnly {
			s.insert(line, line.Quantity)
		}
	}
	return nil
}

// SetQuantity upserts the selected quantity for a variation.
// Quantity zero removes an existing line. A quantity above the source bound
// is rejected, never clamped. Re-selecting a present variation with its
// current quantity is a no-op.
func (s *ReturnLineSet) SetQuantity(variationID uuid.UUID, quantity int) error {
	if s.readOnly {
		return shared.NewDomainError("SELECTION_READ_ONLY", "Full returns include every source line with fixed quantities")
	}

	src, ok := s.source[variationID]
	if !ok {
		return shared.NewDomainError("LINE_NOT_IN_SOURCE", "Variation is not part of the source document")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Return quantity cannot be negative")
	}
	if quantity > src.Quantity {
		return shared.NewDomainError("QUANTITY_EXCEEDS_SOURCE",
			fmt.Sprintf("Return quantity %d exceeds source quantity %d", quantity, src.Quantity))
	}

	if quantity == 0 {
		s.remove(variationID)
		return nil
	}

	if line, present := s.lines[variationID]; present {
		line.Quantity = quantity
		return nil
	}

	s.insert(src, quantity)
	return nil
}

// insert adds a new line copying price data from the source line
func (s *ReturnLineSet) insert(src SourceLine, quantity int) {
	s.lines[src.VariationID] = &ReturnLine{
		LineID:          uuid.New(),
		VariationID:     src.VariationID,
		ProductName:     src.ProductName,
		SKU:             src.SKU,
		Quantity:        quantity,
		UnitPrice:       src.UnitPrice,
		DiscountPercent: src.DiscountPercent,
	}
	s.order = append(s.order, src.VariationID)
}

// remove drops a line from the selection, preserving the order of the rest
func (s *ReturnLineSet) remove(variationID uuid.UUID) {
	if _, present := s.lines[variationID]; !present {
		return
	}
	delete(s.lines, variationID)
	for idx, id := range s.order {
		if id == variationID {
			s.order = append(s.order[:idx], s.order[idx+1:]...)
			break
		}
	}
}

// Get returns the line for a variation, or nil when not selected
func (s *ReturnLineSet) Get(variationID uuid.UUID) *ReturnLine {
	return s.lines[variationID]
}

// GetByLineID returns the line with the given stable identifier, or nil
func (s *ReturnLineSet) GetByLineID(lineID uuid.UUID) *ReturnLine {
	for _, line := range s.lines {
		if line.LineID == lineID {
			return line
		}
	}
	return nil
}

// ToList returns the selected lines in insertion order
func (s *ReturnLineSet) ToList() []ReturnLine {
	result := make([]ReturnLine, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.lines[id])
	}
	return result
}

// SourceLines returns the seeded source lines in no particular order
func (s *ReturnLineSet) SourceLines() []SourceLine {
	result := make([]SourceLine, 0, len(s.source))
	for _, line := range s.source {
		result = append(result, line)
	}
	return result
}

// SourceLine returns the source bound for a variation
func (s *ReturnLineSet) SourceLine(variationID uuid.UUID) (SourceLine, bool) {
	src, ok := s.source[variationID]
	return src, ok
}

// Len returns the number of selected lines
func (s *ReturnLineSet) Len() int {
	return len(s.order)
}

// IsReadOnly returns true when the selection cannot be edited
func (s *ReturnLineSet) IsReadOnly() bool {
	return s.readOnly
}

// Total returns the sum of price * quantity over all selected lines
func (s *ReturnLineSet) Total() decimal.Decimal {
	total := decimal.Zero
	for _, id := range s.order {
		total = total.Add(s.lines[id].Subtotal())
	}
	return total
}
