package returns

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/returns"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService() (*SessionService, *MockSourceLookup, *MockTransactionRepository, *MockVoucherStorage, *MockEventPublisher) {
	lookup := new(MockSourceLookup)
	repo := new(MockTransactionRepository)
	storage := new(MockVoucherStorage)
	publisher := new(MockEventPublisher)
	svc := NewSessionService(lookup, repo, storage, publisher)
	return svc, lookup, repo, storage, publisher
}

func testSourceRef(id uuid.UUID) returns.SourceRef {
	return returns.SourceRef{
		ID:             id,
		Type:           returns.SourceOrders,
		DocumentNumber: "PED-1042",
		CustomerName:   "Ana Souza",
		Total:          decimal.NewFromInt(150),
		ShippingCost:   decimal.NewFromInt(15),
		Date:           time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
}

func testSourceLines(variationID uuid.UUID) []returns.SourceLine {
	return []returns.SourceLine{
		{
			VariationID: variationID,
			ProductName: "Camiseta Básica P",
			SKU:         "CAM-P-001",
			Quantity:    3,
			UnitPrice:   decimal.NewFromInt(50),
		},
	}
}

// confirmTestSource drives a fresh session through search and confirm
func confirmTestSource(t *testing.T, svc *SessionService, lookup *MockSourceLookup, tenantID, sessionID, sourceID, variationID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	lookup.On("Search", mock.Anything, tenantID, mock.Anything).
		Return(SourceResult{Items: []returns.SourceRef{testSourceRef(sourceID)}, TotalCount: 1}, nil).Once()
	lookup.On("FetchOrderLines", mock.Anything, tenantID, sourceID).
		Return(testSourceLines(variationID), nil).Once()

	_, err := svc.SearchSources(ctx, tenantID, sessionID, SearchSourcesRequest{Search: "1042"})
	require.NoError(t, err)
	_, err = svc.ConfirmSource(ctx, tenantID, sessionID, ConfirmSourceRequest{SourceID: sourceID})
	require.NoError(t, err)
}

func TestSessionService_Start(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("starts a partial return session", func(t *testing.T) {
		resp, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVP", BranchID: uuid.New()})

		require.NoError(t, err)
		assert.Equal(t, "DVP", resp.KindCode)
		assert.Equal(t, string(returns.StateSearchingSource), resp.State)
		assert.False(t, resp.ReadOnlySelection)
		assert.False(t, resp.HasExchangeLines)
	})

	t.Run("rejects unknown kind code", func(t *testing.T) {
		_, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "XYZ", BranchID: uuid.New()})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "UNKNOWN_KIND", domainErr.Code)
	})

	t.Run("session is scoped to its tenant", func(t *testing.T) {
		resp, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVT", BranchID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.Get(ctx, uuid.New(), resp.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SESSION_NOT_FOUND", domainErr.Code)
	})
}

func TestSessionService_SearchSources(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("returns normalized search results", func(t *testing.T) {
		svc, lookup, _, _, _ := newTestService()
		session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVP", BranchID: uuid.New()})
		require.NoError(t, err)

		sourceID := uuid.New()
		lookup.On("Search", mock.Anything, tenantID, mock.MatchedBy(func(q SourceQuery) bool {
			return q.WantOrders && !q.WantReturns && q.Search == "ana"
		})).Return(SourceResult{Items: []returns.SourceRef{testSourceRef(sourceID)}, TotalCount: 1}, nil)

		resp, err := svc.SearchSources(ctx, tenantID, session.ID, SearchSourcesRequest{Search: "ana"})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, sourceID, resp.Items[0].ID)
		assert.Equal(t, "PED-1042", resp.Items[0].DocumentNumber)
		assert.Equal(t, int64(1), resp.TotalCount)
		assert.False(t, resp.Stale)
	})

	t.Run("lookup failure is non-fatal to the session", func(t *testing.T) {
		svc, lookup, _, _, _ := newTestService()
		session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVP", BranchID: uuid.New()})
		require.NoError(t, err)

		lookup.On("Search", mock.Anything, tenantID, mock.Anything).
			Return(SourceResult{}, errors.New("connection refused"))

		_, err = svc.SearchSources(ctx, tenantID, session.ID, SearchSourcesRequest{Search: "ana"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SOURCE_FETCH_FAILED", domainErr.Code)

		got, err := svc.Get(ctx, tenantID, session.ID)
		require.NoError(t, err)
		assert.Equal(t, string(returns.StateSearchingSource), got.State)
	})

	t.Run("a late response never overrides a newer search", func(t *testing.T) {
		svc, lookup, _, _, _ := newTestService()
		session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVP", BranchID: uuid.New()})
		require.NoError(t, err)

		slowStarted := make(chan struct{})
		release := make(chan struct{})
		slowID := uuid.New()
		fastID := uuid.New()

		lookup.On("Search", mock.Anything, tenantID, mock.MatchedBy(func(q SourceQuery) bool {
			return q.Search == "slow"
		})).Run(func(mock.Arguments) {
			close(slowStarted)
			<-release
		}).Return(SourceResult{Items: []returns.SourceRef{testSourceRef(slowID)}, TotalCount: 1}, nil)
		lookup.On("Search", mock.Anything, tenantID, mock.MatchedBy(func(q SourceQuery) bool {
			return q.Search == "fast"
		})).Return(SourceResult{Items: []returns.SourceRef{testSourceRef(fastID)}, TotalCount: 1}, nil)

		slowDone := make(chan *SourceSearchResponse, 1)
		go func() {
			resp, err := svc.SearchSources(ctx, tenantID, session.ID, SearchSourcesRequest{Search: "slow"})
			require.NoError(t, err)
			slowDone <- resp
		}()

		<-slowStarted
		fastResp, err := svc.SearchSources(ctx, tenantID, session.ID, SearchSourcesRequest{Search: "fast"})
		require.NoError(t, err)
		require.Len(t, fastResp.Items, 1)
		assert.Equal(t, fastID, fastResp.Items[0].ID)

		close(release)
		slowResp := <-slowDone

		// The stale response carries the newer search's items, not its own.
		assert.True(t, slowResp.Stale)
		require.Len(t, slowResp.Items, 1)
		assert.Equal(t, fastID, slowResp.Items[0].ID)

		// The newer result stays confirmable; the stale one was discarded.
		lookup.On("FetchOrderLines", mock.Anything, tenantID, fastID).
			Return(testSourceLines(uuid.New()), nil)
		_, err = svc.ConfirmSource(ctx, tenantID, session.ID, ConfirmSourceRequest{SourceID: fastID})
		assert.NoError(t, err)
	})
}

func TestSessionService_ConfirmSource(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("confirms a searched record and seeds the selection", func(t *testing.T) {
		svc, lookup, _, _, _ := newTestService()
		session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVT", BranchID: uuid.New()})
		require.NoError(t, err)

		sourceID := uuid.New()
		variationID := uuid.New()
		confirmTestSource(t, svc, lookup, tenantID, session.ID, sourceID, variationID)

		got, err := svc.Get(ctx, tenantID, session.ID)
		require.NoError(t, err)
		assert.Equal(t, string(returns.StateSourceConfirmed), got.State)
		require.NotNil(t, got.Source)
		assert.Equal(t, sourceID, got.Source.ID)
		// Full returns pin every source line.
		require.Len(t, got.ReturnLines, 1)
		assert.Equal(t, 3, got.ReturnLines[0].Quantity)
		assert.True(t, got.ReadOnlySelection)
	})

	t.Run("rejects a record absent from the latest search", func(t *testing.T) {
		svc, lookup, _, _, _ := newTestService()
		session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVP", BranchID: uuid.New()})
		require.NoError(t, err)

		lookup.On("Search", mock.Anything, tenantID, mock.Anything).
			Return(SourceResult{Items: []returns.SourceRef{testSourceRef(uuid.New())}, TotalCount: 1}, nil)
		_, err = svc.SearchSources(ctx, tenantID, session.ID, SearchSourcesRequest{Search: "x"})
		require.NoError(t, err)

		_, err = svc.ConfirmSource(ctx, tenantID, session.ID, ConfirmSourceRequest{SourceID: uuid.New()})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SOURCE_NOT_FOUND", domainErr.Code)
	})

	t.Run("line fetch failure keeps the session searching", func(t *testing.T) {
		svc, lookup, _, _, _ := newTestService()
		session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVP", BranchID: uuid.New()})
		require.NoError(t, err)

		sourceID := uuid.New()
		lookup.On("Search", mock.Anything, tenantID, mock.Anything).
			Return(SourceResult{Items: []returns.SourceRef{testSourceRef(sourceID)}, TotalCount: 1}, nil)
		lookup.On("FetchOrderLines", mock.Anything, tenantID, sourceID).
			Return(nil, errors.New("timeout"))

		_, err = svc.SearchSources(ctx, tenantID, session.ID, SearchSourcesRequest{Search: "x"})
		require.NoError(t, err)
		_, err = svc.ConfirmSource(ctx, tenantID, session.ID, ConfirmSourceRequest{SourceID: sourceID})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SOURCE_FETCH_FAILED", domainErr.Code)

		got, err := svc.Get(ctx, tenantID, session.ID)
		require.NoError(t, err)
		assert.Equal(t, string(returns.StateSearchingSource), got.State)
	})
}

func TestSessionService_Submit(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("persists a complete partial return and discards the session", func(t *testing.T) {
		svc, lookup, repo, _, publisher := newTestService()
		session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVP", BranchID: uuid.New()})
		require.NoError(t, err)

		variationID := uuid.New()
		confirmTestSource(t, svc, lookup, tenantID, session.ID, uuid.New(), variationID)

		_, err = svc.SetReturnLine(ctx, tenantID, session.ID, SetReturnLineRequest{VariationID: variationID, Quantity: 2})
		require.NoError(t, err)
		situationID := uuid.New()
		_, err = svc.Update(ctx, tenantID, session.ID, UpdateSessionRequest{SituationID: &situationID})
		require.NoError(t, err)

		repo.On("GenerateNumber", mock.Anything, tenantID).Return("DEV-000001", nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*returns.ReturnTransaction")).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := svc.Submit(ctx, tenantID, session.ID)

		require.NoError(t, err)
		assert.Equal(t, "DEV-000001", resp.Number)
		assert.Equal(t, "DVP", resp.KindCode)
		assert.InDelta(t, 100.0, resp.TotalRefundAmount, 0.001)
		assert.Zero(t, resp.TotalExchangeDifference)
		require.Len(t, resp.Lines, 1)
		assert.False(t, resp.Lines[0].Outgoing)

		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)

		_, err = svc.Get(ctx, tenantID, session.ID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SESSION_NOT_FOUND", domainErr.Code)
	})

	t.Run("reports every missing requirement at once", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "CAM", BranchID: uuid.New()})
		require.NoError(t, err)

		_, err = svc.Submit(ctx, tenantID, session.ID)

		var validationErr *shared.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "INCOMPLETE_TRANSACTION", validationErr.Code)
		assert.Len(t, validationErr.Problems, 4)
		joined := strings.Join(validationErr.Problems, "\n")
		assert.Contains(t, joined, "source")
		assert.Contains(t, joined, "situation")
		assert.Contains(t, joined, "return line")
		assert.Contains(t, joined, "exchange line")

		// Session survives a failed submit.
		_, err = svc.Get(ctx, tenantID, session.ID)
		assert.NoError(t, err)
	})

	t.Run("persistence failure leaves the session intact", func(t *testing.T) {
		svc, lookup, repo, _, _ := newTestService()
		session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVP", BranchID: uuid.New()})
		require.NoError(t, err)

		variationID := uuid.New()
		confirmTestSource(t, svc, lookup, tenantID, session.ID, uuid.New(), variationID)
		_, err = svc.SetReturnLine(ctx, tenantID, session.ID, SetReturnLineRequest{VariationID: variationID, Quantity: 1})
		require.NoError(t, err)
		situationID := uuid.New()
		_, err = svc.Update(ctx, tenantID, session.ID, UpdateSessionRequest{SituationID: &situationID})
		require.NoError(t, err)

		repo.On("GenerateNumber", mock.Anything, tenantID).Return("DEV-000002", nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("deadlock detected"))

		_, err = svc.Submit(ctx, tenantID, session.ID)
		require.Error(t, err)

		got, err := svc.Get(ctx, tenantID, session.ID)
		require.NoError(t, err)
		assert.Equal(t, string(returns.StateSourceConfirmed), got.State)
		assert.Len(t, got.ReturnLines, 1)
	})
}

func TestSessionService_EditMode(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	buildPersisted := func(t *testing.T) (*returns.ReturnTransaction, uuid.UUID) {
		t.Helper()
		variationID := uuid.New()
		session, err := returns.NewReturnSession(tenantID, uuid.New(), "DVP")
		require.NoError(t, err)
		require.NoError(t, session.ConfirmSource(testSourceRef(uuid.New()), testSourceLines(variationID)))
		require.NoError(t, session.SetReturnQuantity(variationID, 2))
		require.NoError(t, session.SetSituation(uuid.New()))
		payload, err := session.Build()
		require.NoError(t, err)
		tx, err := returns.NewReturnTransaction(tenantID, "DEV-000010", payload)
		require.NoError(t, err)
		tx.ClearDomainEvents()
		return tx, variationID
	}

	t.Run("re-hydrates a persisted transaction into a session", func(t *testing.T) {
		svc, lookup, repo, _, _ := newTestService()
		tx, variationID := buildPersisted(t)

		repo.On("FindByIDForTenant", mock.Anything, tenantID, tx.ID).Return(tx, nil)
		lookup.On("FetchOrderLines", mock.Anything, tenantID, tx.SourceID).
			Return(testSourceLines(variationID), nil)

		resp, err := svc.StartEdit(ctx, tenantID, tx.ID)

		require.NoError(t, err)
		require.NotNil(t, resp.EditingTransactionID)
		assert.Equal(t, tx.ID, *resp.EditingTransactionID)
		require.Len(t, resp.ReturnLines, 1)
		assert.Equal(t, 2, resp.ReturnLines[0].Quantity)
		// Bounds come from the re-fetched source, not the saved quantity.
		assert.Equal(t, 3, resp.ReturnLines[0].SourceQuantity)
	})

	t.Run("falls back to saved lines when the source is gone", func(t *testing.T) {
		svc, lookup, repo, _, _ := newTestService()
		tx, _ := buildPersisted(t)

		repo.On("FindByIDForTenant", mock.Anything, tenantID, tx.ID).Return(tx, nil)
		lookup.On("FetchOrderLines", mock.Anything, tenantID, tx.SourceID).
			Return(nil, errors.New("order purged"))

		resp, err := svc.StartEdit(ctx, tenantID, tx.ID)

		require.NoError(t, err)
		require.Len(t, resp.ReturnLines, 1)
		assert.Equal(t, 2, resp.ReturnLines[0].SourceQuantity)
	})

	t.Run("submitting an edit session updates in place", func(t *testing.T) {
		svc, lookup, repo, _, publisher := newTestService()
		tx, variationID := buildPersisted(t)

		repo.On("FindByIDForTenant", mock.Anything, tenantID, tx.ID).Return(tx, nil)
		lookup.On("FetchOrderLines", mock.Anything, tenantID, tx.SourceID).
			Return(testSourceLines(variationID), nil)
		repo.On("SaveWithLock", mock.Anything, tx).Return(nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		session, err := svc.StartEdit(ctx, tenantID, tx.ID)
		require.NoError(t, err)
		_, err = svc.SetReturnLine(ctx, tenantID, session.ID, SetReturnLineRequest{VariationID: variationID, Quantity: 3})
		require.NoError(t, err)

		resp, err := svc.Submit(ctx, tenantID, session.ID)

		require.NoError(t, err)
		assert.Equal(t, "DEV-000010", resp.Number)
		assert.InDelta(t, 150.0, resp.TotalRefundAmount, 0.001)
		repo.AssertNotCalled(t, "GenerateNumber", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})
}

func TestSessionService_Payments(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("uploads a voucher and records its URL", func(t *testing.T) {
		svc, _, _, storage, _ := newTestService()
		session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVP", BranchID: uuid.New()})
		require.NoError(t, err)

		resp, err := svc.AddPayment(ctx, tenantID, session.ID, AddPaymentRequest{
			MethodID:   uuid.New(),
			MethodName: "PIX",
			Amount:     decimal.NewFromInt(50),
		})
		require.NoError(t, err)
		require.Len(t, resp.Payments, 1)
		entryID := resp.Payments[0].ID

		storage.On("Upload", mock.Anything, mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "vouchers/")
		}), mock.Anything, int64(4), "image/png").Return("https://cdn.example.com/v/1.png", nil)

		resp, err = svc.AttachPaymentVoucher(ctx, tenantID, session.ID, entryID, "1.png", strings.NewReader("data"), 4, "image/png")

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/v/1.png", resp.Payments[0].VoucherURL)
	})

	t.Run("upload failure leaves the entry untouched", func(t *testing.T) {
		svc, _, _, storage, _ := newTestService()
		session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVP", BranchID: uuid.New()})
		require.NoError(t, err)

		resp, err := svc.AddPayment(ctx, tenantID, session.ID, AddPaymentRequest{
			MethodID:   uuid.New(),
			MethodName: "Dinheiro",
			Amount:     decimal.NewFromInt(30),
		})
		require.NoError(t, err)
		entryID := resp.Payments[0].ID

		storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("bucket unavailable"))

		_, err = svc.AttachPaymentVoucher(ctx, tenantID, session.ID, entryID, "1.png", strings.NewReader("data"), 4, "image/png")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VOUCHER_UPLOAD_FAILED", domainErr.Code)

		got, err := svc.Get(ctx, tenantID, session.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Payments[0].VoucherURL)
	})

	t.Run("payments survive clearing the source", func(t *testing.T) {
		svc, lookup, _, _, _ := newTestService()
		session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVP", BranchID: uuid.New()})
		require.NoError(t, err)

		variationID := uuid.New()
		confirmTestSource(t, svc, lookup, tenantID, session.ID, uuid.New(), variationID)
		_, err = svc.SetReturnLine(ctx, tenantID, session.ID, SetReturnLineRequest{VariationID: variationID, Quantity: 1})
		require.NoError(t, err)
		_, err = svc.AddPayment(ctx, tenantID, session.ID, AddPaymentRequest{
			MethodID: uuid.New(), MethodName: "PIX", Amount: decimal.NewFromInt(20),
		})
		require.NoError(t, err)

		resp, err := svc.ClearSource(ctx, tenantID, session.ID)

		require.NoError(t, err)
		assert.Equal(t, string(returns.StateSearchingSource), resp.State)
		assert.Empty(t, resp.ReturnLines)
		assert.Len(t, resp.Payments, 1)
	})
}

func TestSessionService_Update(t *testing.T) {
	t.Run("applies the header fields", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		ctx := context.Background()
		tenantID := uuid.New()

		session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVP", BranchID: uuid.New()})
		require.NoError(t, err)

		reason := "troca de tamanho"
		situationID := uuid.New()
		shippingReturn := true
		cost := decimal.NewFromFloat(15.90)

		resp, err := svc.Update(ctx, tenantID, session.ID, UpdateSessionRequest{
			Reason:         &reason,
			SituationID:    &situationID,
			ShippingReturn: &shippingReturn,
			ShippingCost:   &cost,
		})

		require.NoError(t, err)
		assert.Equal(t, reason, resp.Reason)
		require.NotNil(t, resp.SituationID)
		assert.Equal(t, situationID, *resp.SituationID)
		assert.True(t, resp.ShippingReturn)
		assert.Equal(t, 15.90, resp.ShippingCost)
	})

	t.Run("rejected update leaves the session intact", func(t *testing.T) {
		svc, _, _, _, _ := newTestService()
		ctx := context.Background()
		tenantID := uuid.New()

		session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVP", BranchID: uuid.New()})
		require.NoError(t, err)

		original := "defeito de fabricação"
		_, err = svc.Update(ctx, tenantID, session.ID, UpdateSessionRequest{Reason: &original})
		require.NoError(t, err)

		// A nil situation ID fails validation; the reason travelling in the
		// same patch must not stick.
		reason := "motivo alterado"
		nilID := uuid.Nil
		_, err = svc.Update(ctx, tenantID, session.ID, UpdateSessionRequest{
			Reason:      &reason,
			SituationID: &nilID,
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_SITUATION", domainErr.Code)

		resp, err := svc.Get(ctx, tenantID, session.ID)
		require.NoError(t, err)
		assert.Equal(t, original, resp.Reason)
		assert.Nil(t, resp.SituationID)
	})
}

func TestSessionService_Cancel(t *testing.T) {
	svc, _, _, _, _ := newTestService()
	ctx := context.Background()
	tenantID := uuid.New()

	session, err := svc.Start(ctx, tenantID, StartSessionRequest{KindCode: "DVT", BranchID: uuid.New()})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, tenantID, session.ID))

	_, err = svc.Get(ctx, tenantID, session.ID)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SESSION_NOT_FOUND", domainErr.Code)
}
