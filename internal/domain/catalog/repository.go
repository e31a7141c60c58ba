package catalog

import (
	"context"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductFilter narrows product listings
type ProductFilter struct {
	Search     string
	Active     *bool
	TrackStock *bool
	Page       int
	PageSize   int
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Save(ctx context.Context, product *Product) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Product, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ProductFilter) (*shared.Paginated[Product], error)
	FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]Product, error)
	UpdateCurrentStock(ctx context.Context, tenantID, productID uuid.UUID, quantity decimal.Decimal) error
	UpdateCostPrice(ctx context.Context, tenantID, productID uuid.UUID, costPrice decimal.Decimal) error
}

// PaymentMethodRepository defines persistence operations for payment methods
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *PaymentMethod) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PaymentMethod, error)
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]PaymentMethod, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]PaymentMethod, error)
}
