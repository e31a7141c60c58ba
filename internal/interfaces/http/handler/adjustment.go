package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/comercio/backoffice/internal/application/inventory"
)

// AdjustmentHandler exposes the stock adjustment workflow: draft, approve,
// cancel.
type AdjustmentHandler struct {
	BaseHandler
	service *inventoryapp.AdjustmentService
}

// NewAdjustmentHandler creates a new AdjustmentHandler
func NewAdjustmentHandler(service *inventoryapp.AdjustmentService) *AdjustmentHandler {
	return &AdjustmentHandler{service: service}
}

// Create registers a draft adjustment capturing counted quantities
func (h *AdjustmentHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req inventoryapp.CreateAdjustmentRequest
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

// Approve applies a draft adjustment's differences to stock
func (h *AdjustmentHandler) Approve(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	adjustmentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID")
		return
	}

	operatorID := getOperatorID(c)
	if operatorID == nil {
		h.BadRequest(c, "X-User-ID header is required to approve an adjustment")
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), tenantID, adjustmentID, *operatorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel discards a draft adjustment
func (h *AdjustmentHandler) Cancel(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	adjustmentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID")
		return
	}

	resp, err := h.service.Cancel(c.Request.Context(), tenantID, adjustmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Get returns one adjustment with its items
func (h *AdjustmentHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	adjustmentID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), tenantID, adjustmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns adjustments matching the filter
func (h *AdjustmentHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var filter inventoryapp.AdjustmentListFilter
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
