package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/comercio/backoffice/internal/application/inventory"
)

// StockHandler exposes the stock movement log and its derived views:
// per-warehouse stock, kardex, valuation and low-stock alerts.
type StockHandler struct {
	BaseHandler
	service *inventoryapp.StockService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(service *inventoryapp.StockService) *StockHandler {
	return &StockHandler{service: service}
}

// PostMovement records a manual stock movement
func (h *StockHandler) PostMovement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req inventoryapp.PostMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if req.OperatorID == nil {
		req.OperatorID = getOperatorID(c)
	}

	resp, err := h.service.PostMovement(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetMovement returns one stock movement by ID
func (h *StockHandler) GetMovement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	movementID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid movement ID")
		return
	}

	resp, err := h.service.GetMovement(c.Request.Context(), tenantID, movementID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListMovements returns stock movements matching the filter, newest first
func (h *StockHandler) ListMovements(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var filter inventoryapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.ListMovements(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// GetMovementsSummary returns movement counts and quantities grouped by type
func (h *StockHandler) GetMovementsSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var filter inventoryapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	rows, err := h.service.GetMovementsSummary(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// GetProductStock returns a product's stock broken down per warehouse
func (h *StockHandler) GetProductStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	resp, err := h.service.GetProductStock(c.Request.Context(), tenantID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetKardex returns a product's chronological movement replay with running
// balances
func (h *StockHandler) GetKardex(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var filter inventoryapp.MovementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	var warehouseID *uuid.UUID
	if raw := c.Query("warehouse_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse ID")
			return
		}
		warehouseID = &parsed
	}

	resp, err := h.service.GetKardex(c.Request.Context(), tenantID, productID, warehouseID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetWarehouseStock returns every stock row held in one warehouse
func (h *StockHandler) GetWarehouseStock(c *gin.Context) {
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

	resp, err := h.service.GetWarehouseStock(c.Request.Context(), tenantID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetLowStock returns tracked products at or below their minimum stock level
func (h *StockHandler) GetLowStock(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	items, err := h.service.GetLowStock(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// GetValuation returns stock quantities and values, tenant-wide or for one
// warehouse
func (h *StockHandler) GetValuation(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var warehouseID *uuid.UUID
	if raw := c.Query("warehouse_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid warehouse ID")
			return
		}
		warehouseID = &parsed
	}

	resp, err := h.service.GetValuation(c.Request.Context(), tenantID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
