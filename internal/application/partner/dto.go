package partner

import (
	"time"

	"github.com/comercio/backoffice/internal/domain/partner"
	"github.com/google/uuid"
)

// CreatePartyRequest represents a request to create a party
type CreatePartyRequest struct {
	Name       string     `json:"name" binding:"required,min=1,max=200"`
	TaxID      string     `json:"tax_id" binding:"omitempty,max=30"`
	Email      string     `json:"email" binding:"omitempty,email"`
	Phone      string     `json:"phone" binding:"omitempty,max=50"`
	Address    string     `json:"address" binding:"omitempty,max=300"`
	IsCustomer bool       `json:"is_customer"`
	IsSupplier bool       `json:"is_supplier"`
	OperatorID *uuid.UUID `json:"operator_id"`
}

// UpdatePartyRequest represents a request to update a party
type UpdatePartyRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=200"`
	TaxID      string `json:"tax_id" binding:"omitempty,max=30"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone" binding:"omitempty,max=50"`
	Address    string `json:"address" binding:"omitempty,max=300"`
	IsCustomer *bool  `json:"is_customer"`
	IsSupplier *bool  `json:"is_supplier"`
}

// PartyListFilter represents filter options for the party list
type PartyListFilter struct {
	Search     string `form:"search"`
	IsCustomer *bool  `form:"is_customer"`
	IsSupplier *bool  `form:"is_supplier"`
	Active     *bool  `form:"active"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// PartyResponse represents a party in API responses
type PartyResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TaxID      string    `json:"tax_id"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	IsCustomer bool      `json:"is_customer"`
	IsSupplier bool      `json:"is_supplier"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateWarehouseRequest represents a request to create a warehouse
type CreateWarehouseRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Code      string `json:"code" binding:"omitempty,max=30"`
	Address   string `json:"address" binding:"omitempty,max=300"`
	IsDefault bool   `json:"is_default"`
}

// UpdateWarehouseRequest represents a request to update a warehouse
type UpdateWarehouseRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Code    string `json:"code" binding:"omitempty,max=30"`
	Address string `json:"address" binding:"omitempty,max=300"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   string    `json:"address"`
	IsDefault bool      `json:"is_default"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toPartyResponse(p *partner.Party) *PartyResponse {
	return &PartyResponse{
		ID:         p.ID,
		Name:       p.Name,
		TaxID:      p.TaxID,
		Email:      p.Email,
		Phone:      p.Phone,
		Address:    p.Address,
		IsCustomer: p.IsCustomer,
		IsSupplier: p.IsSupplier,
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toWarehouseResponse(w *partner.Warehouse) *WarehouseResponse {
	return &WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Code:      w.Code,
		Address:   w.Address,
		IsDefault: w.IsDefault,
		Active:    w.Active,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
