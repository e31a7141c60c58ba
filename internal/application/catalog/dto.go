package catalog

import (
	"time"

	"github.com/comercio/backoffice/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	SKU         string          `json:"sku" binding:"omitempty,max=50"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"omitempty,max=500"`
	CostPrice   decimal.Decimal `json:"cost_price"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	MinStock    decimal.Decimal `json:"min_stock"`
	TrackStock  *bool           `json:"track_stock"`
	OperatorID  *uuid.UUID      `json:"operator_id"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	SKU         string          `json:"sku" binding:"omitempty,max=50"`
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"omitempty,max=500"`
	SalePrice   decimal.Decimal `json:"sale_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	MinStock    decimal.Decimal `json:"min_stock"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Active   *bool  `form:"active"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           uuid.UUID       `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	TrackStock   bool            `json:"track_stock"`
	Active       bool            `json:"active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreatePaymentMethodRequest represents a request to create a payment method
type CreatePaymentMethodRequest struct {
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Code      string `json:"code" binding:"omitempty,max=30"`
	IsDefault bool   `json:"is_default"`
}

// PaymentMethodResponse represents a payment method in API responses
type PaymentMethodResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	IsDefault bool      `json:"is_default"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		CostPrice:    p.CostPrice,
		SalePrice:    p.SalePrice,
		TaxRate:      p.TaxRate,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		TrackStock:   p.TrackStock,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toPaymentMethodResponse(m *catalog.PaymentMethod) *PaymentMethodResponse {
	return &PaymentMethodResponse{
		ID:        m.ID,
		Name:      m.Name,
		Code:      m.Code,
		IsDefault: m.IsDefault,
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}
}
