package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/comercio/backoffice/internal/application/partner"
)

// WarehouseHandler exposes the warehouse registry
type WarehouseHandler struct {
	BaseHandler
	service *partnerapp.WarehouseService
}

// NewWarehouseHandler creates a new WarehouseHandler
func NewWarehouseHandler(service *partnerapp.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{service: service}
}

// Create registers a new warehouse
func (h *WarehouseHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req partnerapp.CreateWarehouseRequest
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

// Update modifies a warehouse
func (h *WarehouseHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	warehouseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	var req partnerapp.UpdateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), tenantID, warehouseID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete removes a warehouse that holds no stock
func (h *WarehouseHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	warehouseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), tenantID, warehouseID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get returns one warehouse by ID
func (h *WarehouseHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	warehouseID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), tenantID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns all warehouses for the tenant
func (h *WarehouseHandler) List(c *gin.Context) {
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
