package returns

import (
	"context"

	"github.com/google/uuid"
)

// ReferenceListResponse groups every lookup list the workflow needs at
// start, fetched in one round-trip
type ReferenceListResponse struct {
	ReturnKinds    []ReferenceItem `json:"return_kinds"`
	Situations     []ReferenceItem `json:"situations"`
	DocumentTypes  []ReferenceItem `json:"document_types"`
	PaymentMethods []ReferenceItem `json:"payment_methods"`
	StockTypes     []ReferenceItem `json:"stock_types"`
}

// ReferenceService serves the read-only lookup lists. Caching happens in
// the ReferenceData implementation, not here.
type ReferenceService struct {
	data ReferenceData
}

// NewReferenceService creates a new reference service
func NewReferenceService(data ReferenceData) *ReferenceService {
	return &ReferenceService{data: data}
}

// All fetches every reference list for the workflow start screen
func (s *ReferenceService) All(ctx context.Context, tenantID uuid.UUID) (*ReferenceListResponse, error) {
	kinds, err := s.data.ReturnKinds(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	situations, err := s.data.Situations(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	documentTypes, err := s.data.DocumentTypes(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	paymentMethods, err := s.data.PaymentMethods(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	stockTypes, err := s.data.StockTypes(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	return &ReferenceListResponse{
		ReturnKinds:    kinds,
		Situations:     situations,
		DocumentTypes:  documentTypes,
		PaymentMethods: paymentMethods,
		StockTypes:     stockTypes,
	}, nil
}

// ReturnKinds fetches the fixed return kind list
func (s *ReferenceService) ReturnKinds(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error) {
	return s.data.ReturnKinds(ctx, tenantID)
}

// DocumentTypes fetches the fiscal document type list
func (s *ReferenceService) DocumentTypes(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error) {
	return s.data.DocumentTypes(ctx, tenantID)
}

// Situations fetches the workflow status list
func (s *ReferenceService) Situations(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error) {
	return s.data.Situations(ctx, tenantID)
}

// PaymentMethods fetches the payment method list
func (s *ReferenceService) PaymentMethods(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error) {
	return s.data.PaymentMethods(ctx, tenantID)
}

// StockTypes fetches the stock-type taxonomy
func (s *ReferenceService) StockTypes(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error) {
	return s.data.StockTypes(ctx, tenantID)
}
