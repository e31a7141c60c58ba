package trade

import (
	"context"
	"time"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// PurchaseFilter narrows purchase listings
type PurchaseFilter struct {
	SupplierID    *uuid.UUID
	WarehouseID   *uuid.UUID
	Status        *PurchaseStatus
	PaymentStatus *PaymentStatus
	DateFrom      *time.Time
	DateTo        *time.Time
	Page          int
	PageSize      int
}

// StatusCount is one bucket of the purchase status summary
type StatusCount struct {
	Status PurchaseStatus `json:"status"`
	Count  int64          `json:"count"`
}

// PurchaseRepository defines persistence operations for purchase documents
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *Purchase) error
	Save(ctx context.Context, purchase *Purchase) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Purchase, error)
	// FindForUpdate loads the purchase with its rows locked for the
	// duration of the surrounding transaction.
	FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Purchase, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter PurchaseFilter) (*shared.Paginated[Purchase], error)
	CountByStatus(ctx context.Context, tenantID uuid.UUID) ([]StatusCount, error)
}
