package returns

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/returns"
	"github.com/shopspring/decimal"
)

// StartSessionRequest starts a new return/exchange workflow
type StartSessionRequest struct {
	KindCode    string
	BranchID    uuid.UUID
	WarehouseID *uuid.UUID
	CreatedBy   *uuid.UUID
}

// SearchSourcesRequest searches for candidate source records
type SearchSourcesRequest struct {
	SourceType string
	Page       int
	PageSize   int
	Search     string
}

// ConfirmSourceRequest fixes the originating record of a session
type ConfirmSourceRequest struct {
	SourceID uuid.UUID
}

// SetReturnLineRequest upserts a return-side quantity
type SetReturnLineRequest struct {
	VariationID uuid.UUID
	Quantity    int
}

// AddExchangeLineRequest appends an outgoing replacement line
type AddExchangeLineRequest struct {
	VariationID        uuid.UUID
	StockTypeID        uuid.UUID
	ProductName        string
	SKU                string
	Quantity           int
	UnitPrice          decimal.Decimal
	DiscountPercent    decimal.Decimal
	LinkedReturnLineID *uuid.UUID
}

// UpdateExchangeLineRequest partially updates an outgoing line
type UpdateExchangeLineRequest struct {
	Quantity           *int
	UnitPrice          *decimal.Decimal
	DiscountPercent    *decimal.Decimal
	LinkedReturnLineID *uuid.UUID
	ClearLink          bool
}

// AddPaymentRequest appends a payment ledger entry
type AddPaymentRequest struct {
	MethodID   uuid.UUID
	MethodName string
	Amount     decimal.Decimal
}

// UpdateSessionRequest updates the session's header fields.
// Nil fields are left untouched.
type UpdateSessionRequest struct {
	Reason         *string
	SituationID    *uuid.UUID
	ShippingReturn *bool
	ShippingCost   *decimal.Decimal
	WarehouseID    *uuid.UUID
}

// SourceRefResponse is one candidate source record in search results
type SourceRefResponse struct {
	ID               uuid.UUID `json:"id"`
	Type             string    `json:"type"`
	DocumentNumber   string    `json:"document_number"`
	CustomerName     string    `json:"customer_name"`
	CustomerDocument string    `json:"customer_document"`
	Total            float64   `json:"total"`
	Date             time.Time `json:"date"`
}

// SourceSearchResponse is a page of candidate source records.
// Stale is set when a newer search was issued while this one was inflight;
// the items then belong to the most recent completed search.
type SourceSearchResponse struct {
	Items      []SourceRefResponse `json:"items"`
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	Stale      bool                `json:"stale,omitempty"`
}

// ReturnLineResponse is a return-side line with its source bound
type ReturnLineResponse struct {
	LineID         uuid.UUID `json:"line_id"`
	VariationID    uuid.UUID `json:"variation_id"`
	ProductName    string    `json:"product_name"`
	SKU            string    `json:"sku"`
	Quantity       int       `json:"quantity"`
	SourceQuantity int       `json:"source_quantity"`
	UnitPrice      float64   `json:"unit_price"`
	Subtotal       float64   `json:"subtotal"`
}

// ExchangeLineResponse is an outgoing replacement line
type ExchangeLineResponse struct {
	LineID             uuid.UUID  `json:"line_id"`
	VariationID        uuid.UUID  `json:"variation_id"`
	StockTypeID        uuid.UUID  `json:"stock_type_id"`
	ProductName        string     `json:"product_name"`
	SKU                string     `json:"sku"`
	Quantity           int        `json:"quantity"`
	UnitPrice          float64    `json:"unit_price"`
	DiscountPercent    float64    `json:"discount_percent"`
	Subtotal           float64    `json:"subtotal"`
	LinkedReturnLineID *uuid.UUID `json:"linked_return_line_id,omitempty"`
}

// PaymentEntryResponse is one payment ledger entry
type PaymentEntryResponse struct {
	ID         uuid.UUID `json:"id"`
	MethodID   uuid.UUID `json:"method_id"`
	MethodName string    `json:"method_name"`
	Amount     float64   `json:"amount"`
	VoucherURL string    `json:"voucher_url,omitempty"`
}

// FinancialSummaryResponse is the derived money view, rounded to two
// decimals for display
type FinancialSummaryResponse struct {
	ReturnTotal        float64 `json:"return_total"`
	ExchangeTotal      float64 `json:"exchange_total"`
	ShippingAdjustment float64 `json:"shipping_adjustment"`
	Difference         float64 `json:"difference"`
	RefundAmount       float64 `json:"refund_amount"`
	ExchangeDifference float64 `json:"exchange_difference"`
}

// SessionResponse is the full snapshot of an in-progress session
type SessionResponse struct {
	ID                   uuid.UUID                `json:"id"`
	TenantID             uuid.UUID                `json:"tenant_id"`
	KindCode             string                   `json:"kind_code"`
	State                string                   `json:"state"`
	SourceType           string                   `json:"source_type"`
	Source               *SourceRefResponse       `json:"source,omitempty"`
	SourceLines          []SourceLineResponse     `json:"source_lines,omitempty"`
	ReturnLines          []ReturnLineResponse     `json:"return_lines"`
	ExchangeLines        []ExchangeLineResponse   `json:"exchange_lines"`
	Payments             []PaymentEntryResponse   `json:"payments"`
	Reason               string                   `json:"reason,omitempty"`
	SituationID          *uuid.UUID               `json:"situation_id,omitempty"`
	ShippingReturn       bool                     `json:"shipping_return"`
	ShippingCost         float64                  `json:"shipping_cost"`
	Financials           FinancialSummaryResponse `json:"financials"`
	BranchID             uuid.UUID                `json:"branch_id"`
	WarehouseID          *uuid.UUID               `json:"warehouse_id,omitempty"`
	EditingTransactionID *uuid.UUID               `json:"editing_transaction_id,omitempty"`
	ReadOnlySelection    bool                     `json:"read_only_selection"`
	HasExchangeLines     bool                     `json:"has_exchange_lines"`
	CreatedAt            time.Time                `json:"created_at"`
}

// SourceLineResponse is a read-only source line bounding the selection
type SourceLineResponse struct {
	VariationID uuid.UUID `json:"variation_id"`
	ProductName string    `json:"product_name"`
	SKU         string    `json:"sku"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
}

// TransactionResponse is a persisted return/exchange transaction
type TransactionResponse struct {
	ID                      uuid.UUID                  `json:"id"`
	TenantID                uuid.UUID                  `json:"tenant_id"`
	Number                  string                     `json:"number"`
	KindCode                string                     `json:"kind_code"`
	SourceID                uuid.UUID                  `json:"source_id"`
	SourceType              string                     `json:"source_type"`
	DocumentNumber          string                     `json:"document_number"`
	CustomerName            string                     `json:"customer_name"`
	CustomerDocument        string                     `json:"customer_document"`
	Reason                  string                     `json:"reason,omitempty"`
	SituationID             uuid.UUID                  `json:"situation_id"`
	ShippingReturn          bool                       `json:"shipping_return"`
	ShippingCost            float64                    `json:"shipping_cost"`
	TotalRefundAmount       float64                    `json:"total_refund_amount"`
	TotalExchangeDifference float64                    `json:"total_exchange_difference"`
	Lines                   []TransactionLineResponse  `json:"lines"`
	Payments                []PaymentEntryResponse     `json:"payments"`
	BranchID                uuid.UUID                  `json:"branch_id"`
	WarehouseID             *uuid.UUID                 `json:"warehouse_id,omitempty"`
	CreatedAt               time.Time                  `json:"created_at"`
	UpdatedAt               time.Time                  `json:"updated_at"`
	Version                 int                        `json:"version"`
}

// TransactionLineResponse is one flattened, outgoing-tagged line
type TransactionLineResponse struct {
	ID                 uuid.UUID  `json:"id"`
	VariationID        uuid.UUID  `json:"variation_id"`
	StockTypeID        *uuid.UUID `json:"stock_type_id,omitempty"`
	ProductName        string     `json:"product_name"`
	SKU                string     `json:"sku"`
	Quantity           int        `json:"quantity"`
	UnitPrice          float64    `json:"unit_price"`
	DiscountPercent    float64    `json:"discount_percent"`
	Outgoing           bool       `json:"outgoing"`
	LinkedReturnLineID *uuid.UUID `json:"linked_return_line_id,omitempty"`
}

// TransactionListFilter filters the persisted transaction list
type TransactionListFilter struct {
	Page        int
	PageSize    int
	OrderBy     string
	OrderDir    string
	Search      string
	KindCode    *string
	SituationID *uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// ToSourceRefResponse converts a domain source reference to its DTO
func ToSourceRefResponse(ref returns.SourceRef) SourceRefResponse {
	return SourceRefResponse{
		ID:               ref.ID,
		Type:             string(ref.Type),
		DocumentNumber:   ref.DocumentNumber,
		CustomerName:     ref.CustomerName,
		CustomerDocument: ref.CustomerDocument,
		Total:            round2(ref.Total),
		Date:             ref.Date,
	}
}

// ToSessionResponse converts a domain session to its full snapshot DTO
func ToSessionResponse(s *returns.ReturnSession) SessionResponse {
	profile := s.Profile()
	summary := s.Financials()

	resp := SessionResponse{
		ID:                   s.ID,
		TenantID:             s.TenantID,
		KindCode:             s.Kind.String(),
		State:                string(s.State),
		SourceType:           string(s.SourceType),
		ReturnLines:          make([]ReturnLineResponse, 0, s.ReturnLines.Len()),
		ExchangeLines:        make([]ExchangeLineResponse, 0, s.ExchangeLines.Len()),
		Payments:             make([]PaymentEntryResponse, 0, s.Payments.Len()),
		Reason:               s.Reason,
		ShippingReturn:       s.ShippingReturn,
		ShippingCost:         round2(s.ShippingCost),
		Financials:           toFinancialSummaryResponse(summary),
		BranchID:             s.BranchID,
		WarehouseID:          s.WarehouseID,
		EditingTransactionID: s.EditingTransactionID,
		ReadOnlySelection:    profile.ReadOnlySelection,
		HasExchangeLines:     profile.HasExchangeLines,
		CreatedAt:            s.CreatedAt,
	}

	if s.SituationID != uuid.Nil {
		situationID := s.SituationID
		resp.SituationID = &situationID
	}

	if s.State == returns.StateSourceConfirmed {
		source := ToSourceRefResponse(s.Source)
		resp.Source = &source
		for _, line := range s.ReturnLines.SourceLines() {
			resp.SourceLines = append(resp.SourceLines, SourceLineResponse{
				VariationID: line.VariationID,
				ProductName: line.ProductName,
				SKU:         line.SKU,
				Quantity:    line.Quantity,
				UnitPrice:   round2(line.UnitPrice),
			})
		}
	}

	for _, line := range s.ReturnLines.ToList() {
		sourceQuantity := line.Quantity
		if src, ok := s.ReturnLines.SourceLine(line.VariationID); ok {
			sourceQuantity = src.Quantity
		}
		resp.ReturnLines = append(resp.ReturnLines, ReturnLineResponse{
			LineID:         line.LineID,
			VariationID:    line.VariationID,
			ProductName:    line.ProductName,
			SKU:            line.SKU,
			Quantity:       line.Quantity,
			SourceQuantity: sourceQuantity,
			UnitPrice:      round2(line.UnitPrice),
			Subtotal:       round2(line.Subtotal()),
		})
	}

	for _, line := range s.ExchangeLines.ToList() {
		discount, _ := line.DiscountPercent.Float64()
		resp.ExchangeLines = append(resp.ExchangeLines, ExchangeLineResponse{
			LineID:             line.LineID,
			VariationID:        line.VariationID,
			StockTypeID:        line.StockTypeID,
			ProductName:        line.ProductName,
			SKU:                line.SKU,
			Quantity:           line.Quantity,
			UnitPrice:          round2(line.UnitPrice),
			DiscountPercent:    discount,
			Subtotal:           round2(line.Subtotal()),
			LinkedReturnLineID: line.LinkedReturnLineID,
		})
	}

	for _, entry := range s.Payments.Entries() {
		resp.Payments = append(resp.Payments, PaymentEntryResponse{
			ID:         entry.ID,
			MethodID:   entry.MethodID,
			MethodName: entry.MethodName,
			Amount:     round2(entry.Amount),
			VoucherURL: entry.VoucherURL,
		})
	}

	return resp
}

func toFinancialSummaryResponse(summary returns.FinancialSummary) FinancialSummaryResponse {
	return FinancialSummaryResponse{
		ReturnTotal:        round2(summary.ReturnTotal),
		ExchangeTotal:      round2(summary.ExchangeTotal),
		ShippingAdjustment: round2(summary.ShippingAdjustment),
		Difference:         round2(summary.Difference),
		RefundAmount:       round2(summary.RefundAmount),
		ExchangeDifference: round2(summary.ExchangeDifference),
	}
}

// ToTransactionResponse converts a persisted transaction to its DTO
func ToTransactionResponse(t *returns.ReturnTransaction) TransactionResponse {
	lines := make([]TransactionLineResponse, 0, len(t.Lines))
	for _, line := range t.Lines {
		discount, _ := line.DiscountPercent.Float64()
		lines = append(lines, TransactionLineResponse{
			ID:                 line.ID,
			VariationID:        line.VariationID,
			StockTypeID:        line.StockTypeID,
			ProductName:        line.ProductName,
			SKU:                line.SKU,
			Quantity:           line.Quantity,
			UnitPrice:          round2(line.UnitPrice),
			DiscountPercent:    discount,
			Outgoing:           line.Outgoing,
			LinkedReturnLineID: line.LinkedReturnLineID,
		})
	}

	payments := make([]PaymentEntryResponse, 0, len(t.Payments))
	for _, payment := range t.Payments {
		payments = append(payments, PaymentEntryResponse{
			ID:         payment.ID,
			MethodID:   payment.MethodID,
			MethodName: payment.MethodName,
			Amount:     round2(payment.Amount),
			VoucherURL: payment.VoucherURL,
		})
	}

	return TransactionResponse{
		ID:                      t.ID,
		TenantID:                t.TenantID,
		Number:                  t.Number,
		KindCode:                t.KindCode,
		SourceID:                t.SourceID,
		SourceType:              string(t.SourceType),
		DocumentNumber:          t.DocumentNumber,
		CustomerName:            t.CustomerName,
		CustomerDocument:        t.CustomerDocument,
		Reason:                  t.Reason,
		SituationID:             t.SituationID,
		ShippingReturn:          t.ShippingReturn,
		ShippingCost:            round2(t.ShippingCost),
		TotalRefundAmount:       round2(t.TotalRefundAmount),
		TotalExchangeDifference: round2(t.TotalExchangeDifference),
		Lines:                   lines,
		Payments:                payments,
		BranchID:                t.BranchID,
		WarehouseID:             t.WarehouseID,
		CreatedAt:               t.CreatedAt,
		UpdatedAt:               t.UpdatedAt,
		Version:                 t.Version,
	}
}

// ToTransactionResponses converts a slice of transactions
func ToTransactionResponses(items []returns.ReturnTransaction) []TransactionResponse {
	result := make([]TransactionResponse, len(items))
	for i := range items {
		result[i] = ToTransactionResponse(&items[i])
	}
	return result
}
