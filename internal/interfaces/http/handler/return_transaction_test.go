package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appreturns "github.com/retailops/backoffice/internal/application/returns"
	"github.com/retailops/backoffice/internal/domain/returns"
	"github.com/retailops/backoffice/internal/interfaces/http/middleware"
)

type transactionTestEnv struct {
	router   *gin.Engine
	tenantID uuid.UUID
	repo     *stubTransactionRepository
	lookup   *stubSourceLookup
}

func newTransactionTestEnv(t *testing.T) *transactionTestEnv {
	t.Helper()

	tenantID := uuid.New()
	lookup := &stubSourceLookup{}
	repo := &stubTransactionRepository{}
	sessions := appreturns.NewSessionService(lookup, repo, &stubVoucherStorage{}, &stubPublisher{})
	transactions := appreturns.NewTransactionService(repo)

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Tenant(tenantID))

	h := NewReturnTransactionHandler(transactions, sessions)
	api.GET("/return-transactions", h.List)
	api.GET("/return-transactions/:id", h.Get)
	api.GET("/return-transactions/number/:number", h.GetByNumber)
	api.DELETE("/return-transactions/:id", h.Delete)
	api.POST("/return-transactions/:id/edit-session", h.StartEdit)

	return &transactionTestEnv{
		router:   router,
		tenantID: tenantID,
		repo:     repo,
		lookup:   lookup,
	}
}

func (e *transactionTestEnv) seedTransaction(t *testing.T) *returns.ReturnTransaction {
	t.Helper()

	variationID := uuid.New()
	tx, err := returns.NewReturnTransaction(e.tenantID, "DEV-2026-00042", returns.TransactionPayload{
		KindCode:          "DVP",
		SourceID:          uuid.New(),
		SourceType:        returns.SourceOrders,
		DocumentNumber:    "PED-2001",
		CustomerName:      "Carlos Lima",
		SituationID:       uuid.New(),
		TotalRefundAmount: decimal.NewFromInt(120),
		BranchID:          uuid.New(),
		Lines: []returns.PayloadLine{
			{
				LineID:      uuid.New(),
				VariationID: variationID,
				ProductName: "Calça Jeans 42",
				SKU:         "CAL-JE-42",
				Quantity:    1,
				UnitPrice:   decimal.NewFromInt(120),
			},
		},
	})
	require.NoError(t, err)
	e.repo.saved = append(e.repo.saved, tx)

	e.lookup.ref = returns.SourceRef{ID: tx.SourceID, Type: returns.SourceOrders, DocumentNumber: "PED-2001"}
	e.lookup.lines = []returns.SourceLine{
		{VariationID: variationID, ProductName: "Calça Jeans 42", SKU: "CAL-JE-42", Quantity: 2, UnitPrice: decimal.NewFromInt(120)},
	}
	return tx
}

func TestReturnTransactionHandler_List(t *testing.T) {
	env := newTransactionTestEnv(t)
	env.seedTransaction(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/return-transactions", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Success bool `json:"success"`
		Data    []struct {
			Number string `json:"number"`
		} `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "DEV-2026-00042", envelope.Data[0].Number)
	assert.Equal(t, int64(1), envelope.Meta.Total)
}

func TestReturnTransactionHandler_Get(t *testing.T) {
	env := newTransactionTestEnv(t)
	tx := env.seedTransaction(t)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/return-transactions/"+tx.ID.String(), nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "DEV-2026-00042", decodeData(t, w)["number"])
	})

	t.Run("missing is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/return-transactions/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "NOT_FOUND", decodeError(t, w)["code"])
	})

	t.Run("by number", func(t *testing.T) {
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/return-transactions/number/DEV-2026-00042", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tx.ID.String(), decodeData(t, w)["id"])
	})
}

func TestReturnTransactionHandler_Delete(t *testing.T) {
	env := newTransactionTestEnv(t)
	tx := env.seedTransaction(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/return-transactions/"+tx.ID.String(), nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, env.repo.saved)
}

func TestReturnTransactionHandler_StartEdit(t *testing.T) {
	env := newTransactionTestEnv(t)
	tx := env.seedTransaction(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/return-transactions/"+tx.ID.String()+"/edit-session", nil))

	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "SOURCE_CONFIRMED", data["state"])
	assert.Equal(t, tx.ID.String(), data["editing_transaction_id"])
	require.Len(t, data["return_lines"].([]any), 1)
}
