package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appreturns "github.com/retailops/backoffice/internal/application/returns"
	"github.com/retailops/backoffice/internal/interfaces/http/middleware"
)

type stubReferenceData struct {
	kinds []appreturns.ReferenceItem
	err   error
}

func (s *stubReferenceData) ReturnKinds(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return s.kinds, s.err
}

func (s *stubReferenceData) Situations(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return []appreturns.ReferenceItem{{ID: uuid.New(), Name: "Aguardando conferência"}}, s.err
}

func (s *stubReferenceData) DocumentTypes(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return []appreturns.ReferenceItem{{ID: uuid.New(), Name: "CPF"}}, s.err
}

func (s *stubReferenceData) PaymentMethods(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return []appreturns.ReferenceItem{{ID: uuid.New(), Name: "Dinheiro"}}, s.err
}

func (s *stubReferenceData) StockTypes(ctx context.Context, tenantID uuid.UUID) ([]appreturns.ReferenceItem, error) {
	return []appreturns.ReferenceItem{{ID: uuid.New(), Name: "Defeito"}}, s.err
}

func newReferenceRouter(data *stubReferenceData) *gin.Engine {
	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Tenant(uuid.New()))

	h := NewReferenceHandler(appreturns.NewReferenceService(data))
	api.GET("/reference", h.All)
	api.GET("/reference/return-kinds", h.ReturnKinds)
	api.GET("/reference/situations", h.Situations)
	return router
}

func TestReferenceHandler_All(t *testing.T) {
	data := &stubReferenceData{
		kinds: []appreturns.ReferenceItem{
			{ID: uuid.New(), Name: "Devolução total", Code: "DVT"},
			{ID: uuid.New(), Name: "Devolução parcial", Code: "DVP"},
			{ID: uuid.New(), Name: "Câmbio", Code: "CAM"},
		},
	}
	router := newReferenceRouter(data)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reference", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data appreturns.ReferenceListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.ReturnKinds, 3)
	assert.Len(t, envelope.Data.Situations, 1)
	assert.Len(t, envelope.Data.PaymentMethods, 1)
	assert.Equal(t, "DVT", envelope.Data.ReturnKinds[0].Code)
}

func TestReferenceHandler_Sublist(t *testing.T) {
	data := &stubReferenceData{
		kinds: []appreturns.ReferenceItem{{ID: uuid.New(), Name: "Devolução total", Code: "DVT"}},
	}
	router := newReferenceRouter(data)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reference/return-kinds", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var envelope struct {
		Data []appreturns.ReferenceItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "DVT", envelope.Data[0].Code)
}

func TestReferenceHandler_BackendFailure(t *testing.T) {
	data := &stubReferenceData{err: errors.New("database offline")}
	router := newReferenceRouter(data)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/reference/situations", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
