package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/comercio/backoffice/internal/application/catalog"
)

// PaymentMethodHandler exposes the payment method catalog
type PaymentMethodHandler struct {
	BaseHandler
	service *catalogapp.PaymentMethodService
}

// NewPaymentMethodHandler creates a new PaymentMethodHandler
func NewPaymentMethodHandler(service *catalogapp.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{service: service}
}

// Create registers a new payment method
func (h *PaymentMethodHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req catalogapp.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// Get returns one payment method by ID
func (h *PaymentMethodHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	methodID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid payment method ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), tenantID, methodID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns all payment methods for the tenant
func (h *PaymentMethodHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	items, err := h.service.List(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}
