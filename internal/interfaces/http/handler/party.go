package handler

import (
	"github.com/gin-gonic/gin"

	partnerapp "github.com/comercio/backoffice/internal/application/partner"
)

// PartyHandler exposes the party registry. Parties play customer and
// supplier roles and anchor the ledger.
type PartyHandler struct {
	BaseHandler
	service *partnerapp.PartyService
}

// NewPartyHandler creates a new PartyHandler
func NewPartyHandler(service *partnerapp.PartyService) *PartyHandler {
	return &PartyHandler{service: service}
}

// Create registers a new party
func (h *PartyHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var req partnerapp.CreatePartyRequest
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

// Update modifies a party's info and roles
func (h *PartyHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	partyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid party ID")
		return
	}

	var req partnerapp.UpdatePartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), tenantID, partyID, &req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Deactivate marks a party inactive; its ledger history stays intact
func (h *PartyHandler) Deactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	partyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid party ID")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), tenantID, partyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get returns one party by ID
func (h *PartyHandler) Get(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	partyID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid party ID")
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), tenantID, partyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// List returns parties matching the filter
func (h *PartyHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Tenant identification required")
		return
	}

	var filter partnerapp.PartyListFilter
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
