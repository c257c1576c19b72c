package storage

import (
	"context"
	"errors"
	"io"
	"sync"

	appreturns "github.com/retailops/backoffice/internal/application/returns"
)

// Ensure StubVoucherStorage implements VoucherStorage
var _ appreturns.VoucherStorage = (*StubVoucherStorage)(nil)

// StubVoucherStorage keeps uploaded vouchers in memory and returns fake
// URLs. Use this for development and tests until a real bucket is
// configured.
type StubVoucherStorage struct {
	// BaseURL is the base URL for generated voucher URLs.
	BaseURL string

	mu      sync.Mutex
	objects map[string][]byte
}

// NewStubVoucherStorage creates a new StubVoucherStorage
func NewStubVoucherStorage() *StubVoucherStorage {
	return &StubVoucherStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Upload stores the voucher in memory and returns a fake URL
func (s *StubVoucherStorage) Upload(ctx context.Context, name string, content io.Reader, size int64, contentType string) (string, error) {
	if name == "" {
		return "", errors.New("object name is required")
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.objects[name] = data
	s.mu.Unlock()

	return s.BaseURL + "/" + name, nil
}

// Object returns a stored voucher's content for test assertions
func (s *StubVoucherStorage) Object(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[name]
	return data, ok
}
