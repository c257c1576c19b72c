package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appreturns "github.com/retailops/backoffice/internal/application/returns"
)

// ReturnTransactionHandler serves persisted return/exchange transactions
type ReturnTransactionHandler struct {
	BaseHandler
	transactions *appreturns.TransactionService
	sessions     *appreturns.SessionService
}

// NewReturnTransactionHandler creates a new ReturnTransactionHandler
func NewReturnTransactionHandler(transactions *appreturns.TransactionService, sessions *appreturns.SessionService) *ReturnTransactionHandler {
	return &ReturnTransactionHandler{
		transactions: transactions,
		sessions:     sessions,
	}
}

// ListTransactionsRequest holds the list query parameters
type ListTransactionsRequest struct {
	Page        int    `form:"page"`
	PageSize    int    `form:"page_size"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search      string `form:"search"`
	KindCode    string `form:"kind_code" binding:"omitempty,oneof=DVT DVP CAM"`
	SituationID string `form:"situation_id" binding:"omitempty,uuid"`
	StartDate   string `form:"start_date"`
	EndDate     string `form:"end_date"`
}

// List returns a paginated list of persisted transactions
func (h *ReturnTransactionHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := appreturns.TransactionListFilter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}
	if req.KindCode != "" {
		kindCode := req.KindCode
		filter.KindCode = &kindCode
	}
	if req.SituationID != "" {
		situationID, err := uuid.Parse(req.SituationID)
		if err != nil {
			h.BadRequest(c, "Invalid situation ID format")
			return
		}
		filter.SituationID = &situationID
	}
	if req.StartDate != "" {
		startDate, err := time.Parse(time.RFC3339, req.StartDate)
		if err != nil {
			h.BadRequest(c, "Invalid start date, expected RFC 3339")
			return
		}
		filter.StartDate = &startDate
	}
	if req.EndDate != "" {
		endDate, err := time.Parse(time.RFC3339, req.EndDate)
		if err != nil {
			h.BadRequest(c, "Invalid end date, expected RFC 3339")
			return
		}
		filter.EndDate = &endDate
	}

	page, err := h.transactions.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns a persisted transaction by ID
func (h *ReturnTransactionHandler) Get(c *gin.Context) {
	tenantID, txID, ok := h.transactionScope(c)
	if !ok {
		return
	}

	tx, err := h.transactions.Get(c.Request.Context(), tenantID, txID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tx)
}

// GetByNumber returns a persisted transaction by its business number
func (h *ReturnTransactionHandler) GetByNumber(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Transaction number is required")
		return
	}

	tx, err := h.transactions.GetByNumber(c.Request.Context(), tenantID, number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tx)
}

// Delete removes a persisted transaction
func (h *ReturnTransactionHandler) Delete(c *gin.Context) {
	tenantID, txID, ok := h.transactionScope(c)
	if !ok {
		return
	}

	if err := h.transactions.Delete(c.Request.Context(), tenantID, txID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// StartEdit re-hydrates a persisted transaction into a fresh workflow
// session so it can be modified and resubmitted
func (h *ReturnTransactionHandler) StartEdit(c *gin.Context) {
	tenantID, txID, ok := h.transactionScope(c)
	if !ok {
		return
	}

	session, err := h.sessions.StartEdit(c.Request.Context(), tenantID, txID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, session)
}

func (h *ReturnTransactionHandler) transactionScope(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return uuid.Nil, uuid.Nil, false
	}

	txID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid transaction ID format")
		return uuid.Nil, uuid.Nil, false
	}

	return tenantID, txID, true
}
