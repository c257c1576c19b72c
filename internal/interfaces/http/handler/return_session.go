package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appreturns "github.com/retailops/backoffice/internal/application/returns"
)

// ReturnSessionHandler serves the in-progress return/exchange workflow
type ReturnSessionHandler struct {
	BaseHandler
	sessions *appreturns.SessionService
}

// NewReturnSessionHandler creates a new ReturnSessionHandler
func NewReturnSessionHandler(sessions *appreturns.SessionService) *ReturnSessionHandler {
	return &ReturnSessionHandler{sessions: sessions}
}

// StartSessionRequest starts a new workflow session
type StartSessionRequest struct {
	KindCode    string  `json:"kind_code" binding:"required,oneof=DVT DVP CAM"`
	BranchID    string  `json:"branch_id" binding:"required,uuid"`
	WarehouseID *string `json:"warehouse_id" binding:"omitempty,uuid"`
	CreatedBy   *string `json:"created_by" binding:"omitempty,uuid"`
}

// SearchSourcesRequest holds the source search query parameters
type SearchSourcesRequest struct {
	SourceType string `form:"source_type" binding:"omitempty,oneof=orders returns"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	Search     string `form:"search"`
}

// ConfirmSourceRequest fixes the session's originating record
type ConfirmSourceRequest struct {
	SourceID string `json:"source_id" binding:"required,uuid"`
}

// SetReturnLineRequest sets a return-side quantity
type SetReturnLineRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// AddExchangeLineRequest appends an outgoing replacement line
type AddExchangeLineRequest struct {
	VariationID        string  `json:"variation_id" binding:"required,uuid"`
	StockTypeID        string  `json:"stock_type_id" binding:"required,uuid"`
	ProductName        string  `json:"product_name" binding:"required"`
	SKU                string  `json:"sku"`
	Quantity           int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice          float64 `json:"unit_price" binding:"min=0"`
	DiscountPercent    float64 `json:"discount_percent" binding:"min=0,max=100"`
	LinkedReturnLineID *string `json:"linked_return_line_id" binding:"omitempty,uuid"`
}

// UpdateExchangeLineRequest partially updates an outgoing line
type UpdateExchangeLineRequest struct {
	Quantity           *int     `json:"quantity" binding:"omitempty,gt=0"`
	UnitPrice          *float64 `json:"unit_price" binding:"omitempty,min=0"`
	DiscountPercent    *float64 `json:"discount_percent" binding:"omitempty,min=0,max=100"`
	LinkedReturnLineID *string  `json:"linked_return_line_id" binding:"omitempty,uuid"`
	ClearLink          bool     `json:"clear_link"`
}

// AddPaymentRequest appends a payment ledger entry
type AddPaymentRequest struct {
	MethodID   string  `json:"method_id" binding:"required,uuid"`
	MethodName string  `json:"method_name" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
}

// UpdateSessionRequest patches the session header fields
type UpdateSessionRequest struct {
	Reason         *string  `json:"reason"`
	SituationID    *string  `json:"situation_id" binding:"omitempty,uuid"`
	ShippingReturn *bool    `json:"shipping_return"`
	ShippingCost   *float64 `json:"shipping_cost" binding:"omitempty,min=0"`
	WarehouseID    *string  `json:"warehouse_id" binding:"omitempty,uuid"`
}

// Start creates a new workflow session
func (h *ReturnSessionHandler) Start(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		h.BadRequest(c, "Invalid branch ID format")
		return
	}

	appReq := appreturns.StartSessionRequest{
		KindCode: req.KindCode,
		BranchID: branchID,
	}
	if req.WarehouseID != nil && *req.WarehouseID != "" {
		warehouseID, err := uuid.Parse(*req.WarehouseID)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse ID format")
			return
		}
		appReq.WarehouseID = &warehouseID
	}
	if req.CreatedBy != nil && *req.CreatedBy != "" {
		createdBy, err := uuid.Parse(*req.CreatedBy)
		if err != nil {
			h.BadRequest(c, "Invalid creator ID format")
			return
		}
		appReq.CreatedBy = &createdBy
	}

	session, err := h.sessions.Start(c.Request.Context(), tenantID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

// Get returns the full session snapshot including financials
func (h *ReturnSessionHandler) Get(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	session, err := h.sessions.Get(c.Request.Context(), tenantID, sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Cancel abandons an in-progress session
func (h *ReturnSessionHandler) Cancel(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	if err := h.sessions.Cancel(c.Request.Context(), tenantID, sessionID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// SearchSources runs a paginated source lookup. A source_type query
// parameter switches the session between order and return sourcing first.
func (h *ReturnSessionHandler) SearchSources(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	var req SearchSourcesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.sessions.SearchSources(c.Request.Context(), tenantID, sessionID, appreturns.SearchSourcesRequest{
		SourceType: req.SourceType,
		Page:       req.Page,
		PageSize:   req.PageSize,
		Search:     req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ConfirmSource fixes one searched record as the session source
func (h *ReturnSessionHandler) ConfirmSource(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	var req ConfirmSourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sourceID, err := uuid.Parse(req.SourceID)
	if err != nil {
		h.BadRequest(c, "Invalid source ID format")
		return
	}

	session, err := h.sessions.ConfirmSource(c.Request.Context(), tenantID, sessionID, appreturns.ConfirmSourceRequest{SourceID: sourceID})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// ClearSource abandons the confirmed source and returns to searching
func (h *ReturnSessionHandler) ClearSource(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	session, err := h.sessions.ClearSource(c.Request.Context(), tenantID, sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// SetReturnLine sets the returned quantity for a source line. Quantity
// zero removes the line from the selection.
func (h *ReturnSessionHandler) SetReturnLine(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	variationID, err := uuid.Parse(c.Param("variationId"))
	if err != nil {
		h.BadRequest(c, "Invalid variation ID format")
		return
	}

	var req SetReturnLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	session, err := h.sessions.SetReturnLine(c.Request.Context(), tenantID, sessionID, appreturns.SetReturnLineRequest{
		VariationID: variationID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// AddExchangeLine appends an outgoing replacement line
func (h *ReturnSessionHandler) AddExchangeLine(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	var req AddExchangeLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	variationID, err := uuid.Parse(req.VariationID)
	if err != nil {
		h.BadRequest(c, "Invalid variation ID format")
		return
	}
	stockTypeID, err := uuid.Parse(req.StockTypeID)
	if err != nil {
		h.BadRequest(c, "Invalid stock type ID format")
		return
	}

	appReq := appreturns.AddExchangeLineRequest{
		VariationID:     variationID,
		StockTypeID:     stockTypeID,
		ProductName:     req.ProductName,
		SKU:             req.SKU,
		Quantity:        req.Quantity,
		UnitPrice:       decimal.NewFromFloat(req.UnitPrice),
		DiscountPercent: decimal.NewFromFloat(req.DiscountPercent),
	}
	if req.LinkedReturnLineID != nil && *req.LinkedReturnLineID != "" {
		linkedID, err := uuid.Parse(*req.LinkedReturnLineID)
		if err != nil {
			h.BadRequest(c, "Invalid linked return line ID format")
			return
		}
		appReq.LinkedReturnLineID = &linkedID
	}

	session, err := h.sessions.AddExchangeLine(c.Request.Context(), tenantID, sessionID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// UpdateExchangeLine partially updates an outgoing line
func (h *ReturnSessionHandler) UpdateExchangeLine(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	var req UpdateExchangeLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := appreturns.UpdateExchangeLineRequest{
		Quantity:  req.Quantity,
		ClearLink: req.ClearLink,
	}
	if req.UnitPrice != nil {
		price := decimal.NewFromFloat(*req.UnitPrice)
		appReq.UnitPrice = &price
	}
	if req.DiscountPercent != nil {
		discount := decimal.NewFromFloat(*req.DiscountPercent)
		appReq.DiscountPercent = &discount
	}
	if req.LinkedReturnLineID != nil && *req.LinkedReturnLineID != "" {
		linkedID, err := uuid.Parse(*req.LinkedReturnLineID)
		if err != nil {
			h.BadRequest(c, "Invalid linked return line ID format")
			return
		}
		appReq.LinkedReturnLineID = &linkedID
	}

	session, err := h.sessions.UpdateExchangeLine(c.Request.Context(), tenantID, sessionID, lineID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// RemoveExchangeLine removes an outgoing line
func (h *ReturnSessionHandler) RemoveExchangeLine(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	lineID, err := uuid.Parse(c.Param("lineId"))
	if err != nil {
		h.BadRequest(c, "Invalid line ID format")
		return
	}

	session, err := h.sessions.RemoveExchangeLine(c.Request.Context(), tenantID, sessionID, lineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// AddPayment appends a payment ledger entry
func (h *ReturnSessionHandler) AddPayment(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	var req AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	methodID, err := uuid.Parse(req.MethodID)
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID format")
		return
	}

	session, err := h.sessions.AddPayment(c.Request.Context(), tenantID, sessionID, appreturns.AddPaymentRequest{
		MethodID:   methodID,
		MethodName: req.MethodName,
		Amount:     decimal.NewFromFloat(req.Amount),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// RemovePayment removes a payment ledger entry
func (h *ReturnSessionHandler) RemovePayment(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		h.BadRequest(c, "Invalid payment entry ID format")
		return
	}

	session, err := h.sessions.RemovePayment(c.Request.Context(), tenantID, sessionID, entryID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// AttachPaymentVoucher uploads a voucher file for a payment entry.
// Expects a multipart form with a "voucher" file field.
func (h *ReturnSessionHandler) AttachPaymentVoucher(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("entryId"))
	if err != nil {
		h.BadRequest(c, "Invalid payment entry ID format")
		return
	}

	fileHeader, err := c.FormFile("voucher")
	if err != nil {
		h.BadRequest(c, "Missing voucher file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	session, err := h.sessions.AttachPaymentVoucher(c.Request.Context(), tenantID, sessionID, entryID,
		fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Update patches the session header fields
func (h *ReturnSessionHandler) Update(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	var req UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	appReq := appreturns.UpdateSessionRequest{
		Reason:         req.Reason,
		ShippingReturn: req.ShippingReturn,
	}
	if req.SituationID != nil && *req.SituationID != "" {
		situationID, err := uuid.Parse(*req.SituationID)
		if err != nil {
			h.BadRequest(c, "Invalid situation ID format")
			return
		}
		appReq.SituationID = &situationID
	}
	if req.ShippingCost != nil {
		cost := decimal.NewFromFloat(*req.ShippingCost)
		appReq.ShippingCost = &cost
	}
	if req.WarehouseID != nil && *req.WarehouseID != "" {
		warehouseID, err := uuid.Parse(*req.WarehouseID)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse ID format")
			return
		}
		appReq.WarehouseID = &warehouseID
	}

	session, err := h.sessions.Update(c.Request.Context(), tenantID, sessionID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, session)
}

// Submit validates and persists the session as a return transaction
func (h *ReturnSessionHandler) Submit(c *gin.Context) {
	tenantID, sessionID, ok := h.sessionScope(c)
	if !ok {
		return
	}

	tx, err := h.sessions.Submit(c.Request.Context(), tenantID, sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tx)
}

func (h *ReturnSessionHandler) sessionScope(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return uuid.Nil, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return uuid.Nil, uuid.Nil, false
	}

	return tenantID, sessionID, true
}
