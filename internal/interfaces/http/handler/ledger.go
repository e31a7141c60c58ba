package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ledgerapp "github.com/comercio/backoffice/internal/application/ledger"
	"github.com/comercio/backoffice/internal/domain/partner"
)

// LedgerHandler exposes the party ledger API: movements, payments, balances
// and statements.
type LedgerHandler struct {
	BaseHandler
	service *ledgerapp.Service
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(service *ledgerapp.Service) *LedgerHandler {
	return &LedgerHandler{service: service}
}

// PostMovement appends a movement to a party's ledger
func (h *LedgerHandler) PostMovement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req ledgerapp.PostMovementRequest
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

// PostInitialBalance opens a party's ledger with a starting balance
func (h *LedgerHandler) PostInitialBalance(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req ledgerapp.PostInitialBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if req.OperatorID == nil {
		req.OperatorID = getOperatorID(c)
	}

	resp, err := h.service.PostInitialBalance(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// RegisterCustomerPayment records a payment received from a customer
func (h *LedgerHandler) RegisterCustomerPayment(c *gin.Context) {
	h.registerPayment(c, h.service.RegisterCustomerPayment)
}

// RegisterSupplierPayment records a payment made to a supplier
func (h *LedgerHandler) RegisterSupplierPayment(c *gin.Context) {
	h.registerPayment(c, h.service.RegisterSupplierPayment)
}

func (h *LedgerHandler) registerPayment(c *gin.Context, register func(ctx context.Context, tenantID uuid.UUID, req *ledgerapp.RegisterPaymentRequest) (*ledgerapp.PaymentResponse, error)) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req ledgerapp.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	if req.OperatorID == nil {
		req.OperatorID = getOperatorID(c)
	}

	resp, err := register(c.Request.Context(), tenantID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetMovement returns one ledger movement by ID
func (h *LedgerHandler) GetMovement(c *gin.Context) {
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

// GetBalance returns a party's current running balance
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	entityID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	resp, err := h.service.GetBalance(c.Request.Context(), tenantID, entityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetStatement returns a party's movement history for a date window
func (h *LedgerHandler) GetStatement(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	entityID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	var filter ledgerapp.StatementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.service.GetStatement(c.Request.Context(), tenantID, entityID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListPayments returns a party's payments
func (h *LedgerHandler) ListPayments(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	entityID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	var filter ledgerapp.StatementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.service.ListPayments(c.Request.Context(), tenantID, entityID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}

// ListBalances returns current balances for all parties matching the filter
func (h *LedgerHandler) ListBalances(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var query struct {
		Search     string `form:"search"`
		IsCustomer *bool  `form:"is_customer"`
		IsSupplier *bool  `form:"is_supplier"`
		Active     *bool  `form:"active"`
		Page       int    `form:"page"`
		PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.ValidationError(c, err)
		return
	}

	filter := partner.PartyFilter{
		Search:     query.Search,
		IsCustomer: query.IsCustomer,
		IsSupplier: query.IsSupplier,
		Active:     query.Active,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}

	result, err := h.service.ListEntityBalances(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(&h.BaseHandler, c, result)
}
