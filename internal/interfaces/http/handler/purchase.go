package handler

import (
	"github.com/gin-gonic/gin"

	tradeapp "github.com/comercio/backoffice/internal/application/trade"
)

// PurchaseHandler exposes the purchase API. A purchase is registered as
// already received: creation posts stock in and queues supplier ledger
// postings in one request.
type PurchaseHandler struct {
	BaseHandler
	service *tradeapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(service *tradeapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

// Create registers a purchase with its items and optional payments
func (h *PurchaseHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req tradeapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if req.OperatorID == nil {
		req.OperatorID = getOperatorID(c)
	}

	resp, err := h.service.Create(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// AddPayment applies a payment to an existing purchase
func (h *PurchaseHandler) AddPayment(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	purchaseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	var req tradeapp.AddPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if req.OperatorID == nil {
		req.OperatorID = getOperatorID(c)
	}

	resp, err := h.service.AddPayment(c.Request.Context(), tenantID, purchaseID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel cancels a purchase and reverses its stock entries
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	purchaseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	resp, err := h.service.Cancel(c.Request.Context(), tenantID, purchaseID, getOperatorID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get returns one purchase with items and payments
func (h *PurchaseHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	purchaseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), tenantID, purchaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns purchases matching the filter
func (h *PurchaseHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var filter tradeapp.PurchaseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// GetStatusSummary returns purchase counts grouped by status
func (h *PurchaseHandler) GetStatusSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	resp, err := h.service.GetStatusSummary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
