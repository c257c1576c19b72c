package handler

import (
	"github.com/gin-gonic/gin"

	appreturns "github.com/retailops/backoffice/internal/application/returns"
)

// ReferenceHandler serves the read-only lookup lists the workflow needs
type ReferenceHandler struct {
	BaseHandler
	references *appreturns.ReferenceService
}

// NewReferenceHandler creates a new ReferenceHandler
func NewReferenceHandler(references *appreturns.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{references: references}
}

// All returns every reference list in one round-trip
func (h *ReferenceHandler) All(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	lists, err := h.references.All(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, lists)
}

// ReturnKinds returns the fixed return kind list
func (h *ReferenceHandler) ReturnKinds(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	kinds, err := h.references.ReturnKinds(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, kinds)
}

// Situations returns the tenant's situation list
func (h *ReferenceHandler) Situations(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	situations, err := h.references.Situations(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, situations)
}

// DocumentTypes returns the tenant's document type list
func (h *ReferenceHandler) DocumentTypes(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	documentTypes, err := h.references.DocumentTypes(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, documentTypes)
}

// PaymentMethods returns the tenant's payment method list
func (h *ReferenceHandler) PaymentMethods(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	methods, err := h.references.PaymentMethods(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, methods)
}

// StockTypes returns the tenant's stock type list
func (h *ReferenceHandler) StockTypes(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	stockTypes, err := h.references.StockTypes(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stockTypes)
}
