package returns

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/returns"
	"github.com/retailops/backoffice/internal/domain/shared"
)

// sessionEntry pairs an in-progress session with its search bookkeeping.
// searchSeq is the sequence number of the most recently issued search;
// only the response carrying the latest sequence is allowed to become
// the authoritative result set.
type sessionEntry struct {
	mu         sync.Mutex
	session    *returns.ReturnSession
	searchSeq  uint64
	lastResult *SourceSearchResponse
}

// SessionService orchestrates return/exchange sessions: it owns the
// in-memory session store and drives the domain aggregate through the
// lookup, storage and persistence collaborators.
type SessionService struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*sessionEntry

	lookup    SourceLookup
	txRepo    returns.ReturnTransactionRepository
	vouchers  VoucherStorage
	publisher shared.EventPublisher
}

// NewSessionService creates a new session service
func NewSessionService(
	lookup SourceLookup,
	txRepo returns.ReturnTransactionRepository,
	vouchers VoucherStorage,
	publisher shared.EventPublisher,
) *SessionService {
	return &SessionService{
		entries:   make(map[uuid.UUID]*sessionEntry),
		lookup:    lookup,
		txRepo:    txRepo,
		vouchers:  vouchers,
		publisher: publisher,
	}
}

// Start creates a new session for the requested kind
func (s *SessionService) Start(ctx context.Context, tenantID uuid.UUID, req StartSessionRequest) (*SessionResponse, error) {
	session, err := returns.NewReturnSession(tenantID, req.BranchID, req.KindCode)
	if err != nil {
		return nil, err
	}
	if req.WarehouseID != nil {
		if err := session.SetWarehouse(*req.WarehouseID); err != nil {
			return nil, err
		}
	}
	if req.CreatedBy != nil {
		session.SetCreatedBy(*req.CreatedBy)
	}

	s.mu.Lock()
	s.entries[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	resp := ToSessionResponse(session)
	return &resp, nil
}

// Get returns the current snapshot of a session
func (s *SessionService) Get(ctx context.Context, tenantID, sessionID uuid.UUID) (*SessionResponse, error) {
	entry, err := s.entry(tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	resp := ToSessionResponse(entry.session)
	return &resp, nil
}

// Cancel discards a session without persisting anything
func (s *SessionService) Cancel(ctx context.Context, tenantID, sessionID uuid.UUID) error {
	if _, err := s.entry(tenantID, sessionID); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}

// ChooseSourceType switches the session between order-sourced and
// return-sourced lookup
func (s *SessionService) ChooseSourceType(ctx context.Context, tenantID, sessionID uuid.UUID, sourceType string) (*SessionResponse, error) {
	return s.mutate(tenantID, sessionID, func(session *returns.ReturnSession) error {
		return session.ChooseSourceType(returns.SourceType(sourceType))
	})
}

// SearchSources looks up candidate source records. Searches can overlap:
// only the most recently issued request is authoritative, an older request
// that completes late returns the latest completed result set marked Stale.
func (s *SessionService) SearchSources(ctx context.Context, tenantID, sessionID uuid.UUID, req SearchSourcesRequest) (*SourceSearchResponse, error) {
	entry, err := s.entry(tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	if req.SourceType != "" && string(entry.session.SourceType) != req.SourceType {
		if err := entry.session.ChooseSourceType(returns.SourceType(req.SourceType)); err != nil {
			entry.mu.Unlock()
			return nil, err
		}
	}
	entry.searchSeq++
	seq := entry.searchSeq
	sourceType := entry.session.SourceType
	entry.mu.Unlock()

	page := req.Page
	if page <= 0 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	result, err := s.lookup.Search(ctx, tenantID, SourceQuery{
		WantOrders:  sourceType == returns.SourceOrders,
		WantReturns: sourceType == returns.SourceReturns,
		Page:        page,
		PageSize:    pageSize,
		Search:      req.Search,
	})

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if seq != entry.searchSeq {
		// A newer search was issued while this one was inflight. Its
		// result (or an empty set, if it has not completed yet) is what
		// the caller must display.
		stale := SourceSearchResponse{Items: []SourceRefResponse{}, Stale: true}
		if entry.lastResult != nil {
			stale = *entry.lastResult
			stale.Stale = true
		}
		return &stale, nil
	}

	if err != nil {
		return nil, shared.NewDomainError("SOURCE_FETCH_FAILED", fmt.Sprintf("Source lookup failed: %v", err))
	}

	resp := SourceSearchResponse{
		Items:      make([]SourceRefResponse, 0, len(result.Items)),
		TotalCount: result.TotalCount,
		Page:       page,
		PageSize:   pageSize,
	}
	for _, item := range result.Items {
		resp.Items = append(resp.Items, ToSourceRefResponse(item))
	}

	entry.lastResult = &resp
	entry.session.LastSearch(result.Items)
	return &resp, nil
}

// ConfirmSource fixes one of the previously searched records as the
// session's source and seeds the return-side selection from its lines
func (s *SessionService) ConfirmSource(ctx context.Context, tenantID, sessionID uuid.UUID, req ConfirmSourceRequest) (*SessionResponse, error) {
	entry, err := s.entry(tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	ref, ok := entry.session.SearchedRef(req.SourceID)
	sourceType := entry.session.SourceType
	entry.mu.Unlock()
	if !ok {
		return nil, shared.NewDomainError("SOURCE_NOT_FOUND", "Source record was not part of the latest search results")
	}

	var lines []returns.SourceLine
	switch sourceType {
	case returns.SourceReturns:
		lines, err = s.lookup.FetchReturnLines(ctx, tenantID, req.SourceID)
	default:
		lines, err = s.lookup.FetchOrderLines(ctx, tenantID, req.SourceID)
	}
	if err != nil {
		return nil, shared.NewDomainError("SOURCE_FETCH_FAILED", fmt.Sprintf("Could not load source lines: %v", err))
	}

	return s.mutate(tenantID, sessionID, func(session *returns.ReturnSession) error {
		return session.ConfirmSource(ref, lines)
	})
}

// ClearSource abandons the confirmed source and returns to searching
func (s *SessionService) ClearSource(ctx context.Context, tenantID, sessionID uuid.UUID) (*SessionResponse, error) {
	return s.mutate(tenantID, sessionID, func(session *returns.ReturnSession) error {
		return session.ClearSource()
	})
}

// SetReturnLine upserts the return quantity for one variation
func (s *SessionService) SetReturnLine(ctx context.Context, tenantID, sessionID uuid.UUID, req SetReturnLineRequest) (*SessionResponse, error) {
	return s.mutate(tenantID, sessionID, func(session *returns.ReturnSession) error {
		return session.SetReturnQuantity(req.VariationID, req.Quantity)
	})
}

// AddExchangeLine appends an outgoing replacement line
func (s *SessionService) AddExchangeLine(ctx context.Context, tenantID, sessionID uuid.UUID, req AddExchangeLineRequest) (*SessionResponse, error) {
	return s.mutate(tenantID, sessionID, func(session *returns.ReturnSession) error {
		_, err := session.AddExchangeLine(returns.ExchangeLine{
			VariationID:        req.VariationID,
			StockTypeID:        req.StockTypeID,
			ProductName:        req.ProductName,
			SKU:                req.SKU,
			Quantity:           req.Quantity,
			UnitPrice:          req.UnitPrice,
			DiscountPercent:    req.DiscountPercent,
			LinkedReturnLineID: req.LinkedReturnLineID,
		})
		return err
	})
}

// UpdateExchangeLine applies a partial update to an outgoing line
func (s *SessionService) UpdateExchangeLine(ctx context.Context, tenantID, sessionID, lineID uuid.UUID, req UpdateExchangeLineRequest) (*SessionResponse, error) {
	return s.mutate(tenantID, sessionID, func(session *returns.ReturnSession) error {
		return session.UpdateExchangeLine(lineID, returns.ExchangeLinePatch{
			Quantity:           req.Quantity,
			UnitPrice:          req.UnitPrice,
			DiscountPercent:    req.DiscountPercent,
			LinkedReturnLineID: req.LinkedReturnLineID,
			ClearLink:          req.ClearLink,
		})
	})
}

// RemoveExchangeLine drops an outgoing line
func (s *SessionService) RemoveExchangeLine(ctx context.Context, tenantID, sessionID, lineID uuid.UUID) (*SessionResponse, error) {
	return s.mutate(tenantID, sessionID, func(session *returns.ReturnSession) error {
		return session.RemoveExchangeLine(lineID)
	})
}

// AddPayment appends a payment ledger entry
func (s *SessionService) AddPayment(ctx context.Context, tenantID, sessionID uuid.UUID, req AddPaymentRequest) (*SessionResponse, error) {
	return s.mutate(tenantID, sessionID, func(session *returns.ReturnSession) error {
		_, err := session.AddPayment(req.MethodID, req.MethodName, req.Amount)
		return err
	})
}

// RemovePayment drops a payment ledger entry
func (s *SessionService) RemovePayment(ctx context.Context, tenantID, sessionID, entryID uuid.UUID) (*SessionResponse, error) {
	return s.mutate(tenantID, sessionID, func(session *returns.ReturnSession) error {
		return session.RemovePayment(entryID)
	})
}

// AttachPaymentVoucher uploads a proof-of-payment file and records its URL
// on the ledger entry. An upload failure leaves the entry untouched.
func (s *SessionService) AttachPaymentVoucher(ctx context.Context, tenantID, sessionID, entryID uuid.UUID, filename string, content io.Reader, size int64, contentType string) (*SessionResponse, error) {
	entry, err := s.entry(tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("vouchers/%s/%s/%s_%s", tenantID, sessionID, entryID, filename)
	url, err := s.vouchers.Upload(ctx, name, content, size, contentType)
	if err != nil {
		return nil, shared.NewDomainError("VOUCHER_UPLOAD_FAILED", fmt.Sprintf("Could not store voucher: %v", err))
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := entry.session.AttachPaymentVoucher(entryID, url); err != nil {
		return nil, err
	}
	resp := ToSessionResponse(entry.session)
	return &resp, nil
}

// Update patches the session's header fields. The patch is validated as a
// whole; a rejected request changes nothing.
func (s *SessionService) Update(ctx context.Context, tenantID, sessionID uuid.UUID, req UpdateSessionRequest) (*SessionResponse, error) {
	return s.mutate(tenantID, sessionID, func(session *returns.ReturnSession) error {
		return session.UpdateHeader(returns.HeaderPatch{
			Reason:         req.Reason,
			SituationID:    req.SituationID,
			ShippingReturn: req.ShippingReturn,
			ShippingCost:   req.ShippingCost,
			WarehouseID:    req.WarehouseID,
		})
	})
}

// Submit builds the transaction payload, persists it and discards the
// session. A validation or persistence failure leaves the session intact.
func (s *SessionService) Submit(ctx context.Context, tenantID, sessionID uuid.UUID) (*TransactionResponse, error) {
	entry, err := s.entry(tenantID, sessionID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	payload, err := entry.session.Build()
	if err != nil {
		return nil, err
	}

	var tx *returns.ReturnTransaction
	if editID := entry.session.EditingTransactionID; editID != nil {
		tx, err = s.txRepo.FindByIDForTenant(ctx, tenantID, *editID)
		if err != nil {
			return nil, err
		}
		if tx == nil {
			return nil, shared.NewDomainError("TRANSACTION_NOT_FOUND", "Transaction being edited no longer exists")
		}
		tx.ApplyPayload(payload)
		if err := s.txRepo.SaveWithLock(ctx, tx); err != nil {
			return nil, err
		}
	} else {
		number, err := s.txRepo.GenerateNumber(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		tx, err = returns.NewReturnTransaction(tenantID, number, payload)
		if err != nil {
			return nil, err
		}
		if createdBy := entry.session.CreatedBy; createdBy != nil {
			tx.SetCreatedBy(*createdBy)
		}
		if err := s.txRepo.Save(ctx, tx); err != nil {
			return nil, err
		}
	}

	if s.publisher != nil {
		// Event delivery is best-effort; the transaction is already durable.
		_ = s.publisher.Publish(ctx, tx.GetDomainEvents()...)
	}
	tx.ClearDomainEvents()

	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()

	resp := ToTransactionResponse(tx)
	return &resp, nil
}

// StartEdit re-hydrates a persisted transaction into a new editable
// session. The original source lines are re-fetched to restore the
// selection bounds; when the source is gone the transaction's own lines
// serve as bounds.
func (s *SessionService) StartEdit(ctx context.Context, tenantID, transactionID uuid.UUID) (*SessionResponse, error) {
	tx, err := s.txRepo.FindByIDForTenant(ctx, tenantID, transactionID)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, shared.NewDomainError("TRANSACTION_NOT_FOUND", "Return transaction not found")
	}

	var sourceLines []returns.SourceLine
	switch tx.SourceType {
	case returns.SourceReturns:
		sourceLines, err = s.lookup.FetchReturnLines(ctx, tenantID, tx.SourceID)
	default:
		sourceLines, err = s.lookup.FetchOrderLines(ctx, tenantID, tx.SourceID)
	}
	if err != nil {
		// Source gone or unreadable: fall back to the transaction's lines.
		sourceLines = nil
	}

	session, err := returns.SessionFromTransaction(tx, sourceLines)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	resp := ToSessionResponse(session)
	return &resp, nil
}

func (s *SessionService) entry(tenantID, sessionID uuid.UUID) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok || entry.session.TenantID != tenantID {
		return nil, shared.NewDomainError("SESSION_NOT_FOUND", "Return session not found")
	}
	return entry, nil
}

func (s *SessionService) mutate(tenantID, sessionID uuid.UUID, fn func(*returns.ReturnSession) error) (*SessionResponse, error) {
	entry, err := s.entry(tenantID, sessionID)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := fn(entry.session); err != nil {
		return nil, err
	}
	resp := ToSessionResponse(entry.session)
	return &resp, nil
}
