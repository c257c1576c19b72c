package returns

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SessionState represents the workflow state of a return session
type SessionState string

const (
	// StateSelectingKind is the initial state before a kind is fixed
	StateSelectingKind SessionState = "SELECTING_KIND"
	// StateSearchingSource means the originating record is being looked up
	StateSearchingSource SessionState = "SEARCHING_SOURCE"
	// StateSourceConfirmed means the source is fixed and lines are editable
	StateSourceConfirmed SessionState = "SOURCE_CONFIRMED"
)

// ReturnSession is the aggregate owning one in-progress return/exchange
// workflow: the kind, the source, both selection sets, the payment ledger
// and the shipping fields. A session is owned by exactly one workflow and
// discarded on submit or cancel. Every failed operation leaves the session
// untouched.
type ReturnSession struct {
	shared.TenantAggregateRoot
	Kind           ReturnKind
	State          SessionState
	SourceType     SourceType
	Source         SourceRef
	ReturnLines    *ReturnLineSet
	ExchangeLines  *ExchangeLineSet
	Payments       *PaymentLedger
	Reason         string
	SituationID    uuid.UUID
	ShippingReturn bool
	ShippingCost   decimal.Decimal
	BranchID       uuid.UUID
	WarehouseID    *uuid.UUID
	// EditingTransactionID is set when the session re-hydrates a persisted
	// transaction for edit-mode resubmission.
	EditingTransactionID *uuid.UUID

	profile KindProfile
	// searchedRefs caches the latest search result set so a confirm can
	// resolve the chosen record without a second lookup round-trip.
	searchedRefs map[uuid.UUID]SourceRef
}

// NewReturnSession starts a session for the given kind code. The kind
// transition (SELECTING_KIND -> SEARCHING_SOURCE) happens here; an unknown
// code is fatal to the workflow.
func NewReturnSession(tenantID, branchID uuid.UUID, kindCode string) (*ReturnSession, error) {
	kind, err := ParseReturnKind(kindCode)
	if err != nil {
		return nil, err
	}
	profile, err := kind.Profile()
	if err != nil {
		return nil, err
	}
	if branchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BRANCH", "Branch ID cannot be empty")
	}

	return &ReturnSession{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Kind:                kind,
		State:               StateSearchingSource,
		SourceType:          SourceOrders,
		ReturnLines:         NewReturnLineSet(),
		ExchangeLines:       NewExchangeLineSet(),
		Payments:            NewPaymentLedger(),
		ShippingCost:        decimal.Zero,
		BranchID:            branchID,
		profile:             profile,
	}, nil
}

// Profile returns the behavior profile of the session's kind
func (s *ReturnSession) Profile() KindProfile {
	return s.profile
}

// ChooseSourceType selects whether the session is sourced from orders or
// prior returns. Only exchanges may source from returns, and only before a
// source is confirmed.
func (s *ReturnSession) ChooseSourceType(sourceType SourceType) error {
	if s.State != StateSearchingSource {
		return shared.NewDomainError("INVALID_STATE", "Source type can only change while searching for a source")
	}
	if !sourceType.IsValid() {
		return shared.NewDomainError("INVALID_SOURCE_TYPE", fmt.Sprintf("Unknown source type: %q", sourceType))
	}
	if sourceType == SourceReturns && !s.profile.SourceSelectable {
		return shared.NewDomainError("INVALID_SOURCE_TYPE", "Only exchanges may be issued against a prior return")
	}
	s.SourceType = sourceType
	return nil
}

// LastSearch remembers the latest authoritative search result set
func (s *ReturnSession) LastSearch(refs []SourceRef) {
	s.searchedRefs = make(map[uuid.UUID]SourceRef, len(refs))
	for _, ref := range refs {
		s.searchedRefs[ref.ID] = ref
	}
}

// SearchedRef resolves a record from the latest search result set
func (s *ReturnSession) SearchedRef(id uuid.UUID) (SourceRef, bool) {
	ref, ok := s.searchedRefs[id]
	return ref, ok
}

// ConfirmSource fixes the originating record and seeds the return-side
// selection. Full returns auto-include every source line with pinned
// quantities; other kinds start with an empty selection.
func (s *ReturnSession) ConfirmSource(ref SourceRef, lines []SourceLine) error {
	if s.State != StateSearchingSource {
		return shared.NewDomainError("INVALID_STATE", "Source is already confirmed for this session")
	}
	if ref.ID == uuid.Nil {
		return shared.NewDomainError("INVALID_SOURCE", "Source ID cannot be empty")
	}
	if ref.Type != s.SourceType {
		return shared.NewDomainError("INVALID_SOURCE", "Source record does not match the chosen source type")
	}
	if len(lines) == 0 {
		return shared.NewDomainError("INVALID_SOURCE", "Source has no lines to return")
	}

	seeded := NewReturnLineSet()
	if err := seeded.SeedFromSource(lines, s.profile.ReadOnlySelection); err != nil {
		return err
	}

	s.Source = ref
	s.ReturnLines = seeded
	s.ShippingCost = ref.ShippingCost
	s.State = StateSourceConfirmed
	return nil
}

// ClearSource abandons the confirmed source and returns to searching.
// All line selections are discarded; payments are kept.
func (s *ReturnSession) ClearSource() error {
	if s.State != StateSourceConfirmed {
		return shared.NewDomainError("INVALID_STATE", "No confirmed source to clear")
	}
	s.Source = SourceRef{}
	s.ReturnLines = NewReturnLineSet()
	s.ExchangeLines = NewExchangeLineSet()
	s.ShippingReturn = false
	s.ShippingCost = decimal.Zero
	s.State = StateSearchingSource
	return nil
}

// SetReturnQuantity upserts the return quantity for a variation. Quantity
// zero removes the line and clears any exchange-line links pointing at it.
func (s *ReturnSession) SetReturnQuantity(variationID uuid.UUID, quantity int) error {
	if s.State != StateSourceConfirmed {
		return shared.NewDomainError("INVALID_STATE", "Confirm a source before selecting return lines")
	}

	var removedLineID uuid.UUID
	if quantity == 0 {
		if line := s.ReturnLines.Get(variationID); line != nil {
			removedLineID = line.LineID
		}
	}

	if err := s.ReturnLines.SetQuantity(variationID, quantity); err != nil {
		return err
	}

	if removedLineID != uuid.Nil {
		s.ExchangeLines.ClearLinksTo(removedLineID)
	}
	return nil
}

// AddExchangeLine appends an outgoing replacement line (exchanges only)
func (s *ReturnSession) AddExchangeLine(line ExchangeLine) (*ExchangeLine, error) {
	if !s.profile.HasExchangeLines {
		return nil, shared.NewDomainError("INVALID_KIND", "Only exchanges carry outgoing lines")
	}
	if s.State != StateSourceConfirmed {
		return nil, shared.NewDomainError("INVALID_STATE", "Confirm a source before selecting exchange lines")
	}
	if line.LinkedReturnLineID != nil && s.ReturnLines.GetByLineID(*line.LinkedReturnLineID) == nil {
		return nil, shared.NewDomainError("LINK_NOT_FOUND", "Linked return line does not exist")
	}
	return s.ExchangeLines.Add(line)
}

// UpdateExchangeLine applies a partial update to an outgoing line
func (s *ReturnSession) UpdateExchangeLine(lineID uuid.UUID, patch ExchangeLinePatch) error {
	if !s.profile.HasExchangeLines {
		return shared.NewDomainError("INVALID_KIND", "Only exchanges carry outgoing lines")
	}
	if patch.LinkedReturnLineID != nil && s.ReturnLines.GetByLineID(*patch.LinkedReturnLineID) == nil {
		return shared.NewDomainError("LINK_NOT_FOUND", "Linked return line does not exist")
	}
	return s.ExchangeLines.Update(lineID, patch)
}

// RemoveExchangeLine drops an outgoing line
func (s *ReturnSession) RemoveExchangeLine(lineID uuid.UUID) error {
	if !s.profile.HasExchangeLines {
		return shared.NewDomainError("INVALID_KIND", "Only exchanges carry outgoing lines")
	}
	return s.ExchangeLines.Remove(lineID)
}

// AddPayment appends a payment entry to the ledger
func (s *ReturnSession) AddPayment(methodID uuid.UUID, methodName string, amount decimal.Decimal) (*PaymentEntry, error) {
	return s.Payments.Add(methodID, methodName, amount)
}

// AttachPaymentVoucher records a proof-of-payment URL on an entry
func (s *ReturnSession) AttachPaymentVoucher(entryID uuid.UUID, url string) error {
	return s.Payments.AttachVoucher(entryID, url)
}

// RemovePayment drops a payment entry
func (s *ReturnSession) RemovePayment(entryID uuid.UUID) error {
	return s.Payments.Remove(entryID)
}

// SetShipping sets whether shipping cost is returned along with the goods
func (s *ReturnSession) SetShipping(shippingReturn bool, cost decimal.Decimal) error {
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_SHIPPING", "Shipping cost cannot be negative")
	}
	s.ShippingReturn = shippingReturn
	s.ShippingCost = cost
	return nil
}

// SetReason sets the overall return reason
func (s *ReturnSession) SetReason(reason string) {
	s.Reason = reason
}

// SetSituation sets the workflow status value attached to the transaction
func (s *ReturnSession) SetSituation(situationID uuid.UUID) error {
	if situationID == uuid.Nil {
		return shared.NewDomainError("INVALID_SITUATION", "Situation ID cannot be empty")
	}
	s.SituationID = situationID
	return nil
}

// SetWarehouse sets the warehouse context for the transaction
func (s *ReturnSession) SetWarehouse(warehouseID uuid.UUID) error {
	if warehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	s.WarehouseID = &warehouseID
	return nil
}

// HeaderPatch is a partial update of the session's header fields.
// Nil fields are left untouched.
type HeaderPatch struct {
	Reason         *string
	SituationID    *uuid.UUID
	ShippingReturn *bool
	ShippingCost   *decimal.Decimal
	WarehouseID    *uuid.UUID
}

// UpdateHeader applies a partial update to the header fields. The whole
// patch is validated before any field changes so a failed update leaves
// the session untouched.
func (s *ReturnSession) UpdateHeader(patch HeaderPatch) error {
	if patch.SituationID != nil && *patch.SituationID == uuid.Nil {
		return shared.NewDomainError("INVALID_SITUATION", "Situation ID cannot be empty")
	}
	if patch.ShippingCost != nil && patch.ShippingCost.IsNegative() {
		return shared.NewDomainError("INVALID_SHIPPING", "Shipping cost cannot be negative")
	}
	if patch.WarehouseID != nil && *patch.WarehouseID == uuid.Nil {
		return shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	if patch.Reason != nil {
		s.Reason = *patch.Reason
	}
	if patch.SituationID != nil {
		s.SituationID = *patch.SituationID
	}
	if patch.ShippingReturn != nil {
		s.ShippingReturn = *patch.ShippingReturn
	}
	if patch.ShippingCost != nil {
		s.ShippingCost = *patch.ShippingCost
	}
	if patch.WarehouseID != nil {
		id := *patch.WarehouseID
		s.WarehouseID = &id
	}
	return nil
}

// Financials recomputes the financial summary for the current state
func (s *ReturnSession) Financials() FinancialSummary {
	return CalculateFinancials(s.Kind, s.ReturnLines, s.ExchangeLines, s.ShippingReturn, s.ShippingCost)
}

// Build validates completeness and assembles the submission payload.
// All missing requirements are collected into one error so the caller can
// render every problem at once. The session itself is left untouched.
func (s *ReturnSession) Build() (TransactionPayload, error) {
	var problems []string

	if s.State != StateSourceConfirmed {
		problems = append(problems, "a source order or return must be confirmed")
	}
	if s.SituationID == uuid.Nil {
		problems = append(problems, "a situation must be selected")
	}
	if s.ReturnLines.Len() == 0 {
		problems = append(problems, "at least one return line must be selected")
	}
	if s.profile.HasExchangeLines && s.ExchangeLines.Len() == 0 {
		problems = append(problems, "at least one exchange line must be selected")
	}

	if len(problems) > 0 {
		return TransactionPayload{}, shared.NewValidationError("INCOMPLETE_TRANSACTION", problems)
	}

	return buildPayload(s, s.Financials()), nil
}
