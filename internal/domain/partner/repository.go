package partner

import (
	"context"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// PartyFilter narrows party listings
type PartyFilter struct {
	Search     string
	IsCustomer *bool
	IsSupplier *bool
	Active     *bool
	Page       int
	PageSize   int
}

// PartyRepository defines persistence operations for parties
type PartyRepository interface {
	Create(ctx context.Context, party *Party) error
	Save(ctx context.Context, party *Party) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Party, error)
	// FindForUpdate locks the party row so that concurrent ledger postings
	// against the same party serialize on it.
	FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Party, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PartyFilter) (*shared.Paginated[Party], error)
	ExistsByTaxID(ctx context.Context, tenantID uuid.UUID, taxID string) (bool, error)
}

// WarehouseRepository defines persistence operations for warehouses
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *Warehouse) error
	Save(ctx context.Context, warehouse *Warehouse) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Warehouse, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]Warehouse, error)
	FindDefaultForTenant(ctx context.Context, tenantID uuid.UUID) (*Warehouse, error)
}
