package returns

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/returns"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockSourceLookup is a mock implementation of SourceLookup
type MockSourceLookup struct {
	mock.Mock
}

func (m *MockSourceLookup) Search(ctx context.Context, tenantID uuid.UUID, query SourceQuery) (SourceResult, error) {
	args := m.Called(ctx, tenantID, query)
	return args.Get(0).(SourceResult), args.Error(1)
}

func (m *MockSourceLookup) FetchOrderLines(ctx context.Context, tenantID, orderID uuid.UUID) ([]returns.SourceLine, error) {
	args := m.Called(ctx, tenantID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]returns.SourceLine), args.Error(1)
}

func (m *MockSourceLookup) FetchReturnLines(ctx context.Context, tenantID, returnID uuid.UUID) ([]returns.SourceLine, error) {
	args := m.Called(ctx, tenantID, returnID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]returns.SourceLine), args.Error(1)
}

// MockTransactionRepository is a mock implementation of ReturnTransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*returns.ReturnTransaction, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.ReturnTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, number string) (*returns.ReturnTransaction, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*returns.ReturnTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]returns.ReturnTransaction, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]returns.ReturnTransaction), args.Error(1)
}

func (m *MockTransactionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTransactionRepository) Save(ctx context.Context, tx *returns.ReturnTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveWithLock(ctx context.Context, tx *returns.ReturnTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockTransactionRepository) GenerateNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID)
	return args.String(0), args.Error(1)
}

// MockVoucherStorage is a mock implementation of VoucherStorage
type MockVoucherStorage struct {
	mock.Mock
}

func (m *MockVoucherStorage) Upload(ctx context.Context, name string, content io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, name, content, size, contentType)
	return args.String(0), args.Error(1)
}

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// MockReferenceData is a mock implementation of ReferenceData
type MockReferenceData struct {
	mock.Mock
}

func (m *MockReferenceData) ReturnKinds(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]ReferenceItem), args.Error(1)
}

func (m *MockReferenceData) Situations(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]ReferenceItem), args.Error(1)
}

func (m *MockReferenceData) DocumentTypes(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]ReferenceItem), args.Error(1)
}

func (m *MockReferenceData) PaymentMethods(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]ReferenceItem), args.Error(1)
}

func (m *MockReferenceData) StockTypes(ctx context.Context, tenantID uuid.UUID) ([]ReferenceItem, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]ReferenceItem), args.Error(1)
}
