package inventory

import (
	"context"
	"time"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockMovementFilter narrows movement queries
type StockMovementFilter struct {
	WarehouseID  *uuid.UUID
	ProductID    *uuid.UUID
	MovementType *MovementType
	DocumentType *DocumentType
	DateFrom     *time.Time
	DateTo       *time.Time
	Page         int
	PageSize     int
}

// WarehouseStockRepository persists the derived stock aggregate.
// FindForUpdate must take a row lock so the read-modify-write of a posting is
// serialized per (tenant, warehouse, product).
type WarehouseStockRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*WarehouseStock, error)
	FindByWarehouseAndProduct(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*WarehouseStock, error)
	// FindForUpdate locks the row for the duration of the surrounding
	// transaction; returns ErrNotFound when no row exists yet.
	FindForUpdate(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*WarehouseStock, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]WarehouseStock, int64, error)
	FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]WarehouseStock, error)
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]WarehouseStock, error)
	SumQuantityByProduct(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error)
	HasPositiveStock(ctx context.Context, tenantID, warehouseID uuid.UUID) (bool, error)
	Save(ctx context.Context, stock *WarehouseStock) error
	Create(ctx context.Context, stock *WarehouseStock) error
}

// MovementSummaryRow aggregates movements by type and document type
type MovementSummaryRow struct {
	MovementType  MovementType
	DocumentType  DocumentType
	Count         int64
	TotalQuantity decimal.Decimal
}

// StockMovementRepository persists the append-only stock movement log
type StockMovementRepository interface {
	Create(ctx context.Context, movement *StockMovement) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*StockMovement, error)
	FindForTenant(ctx context.Context, tenantID uuid.UUID, filter StockMovementFilter) ([]StockMovement, int64, error)
	// FindByProductChronological returns every movement for a product ascending
	// by creation time, for kardex replay
	FindByProductChronological(ctx context.Context, tenantID, productID uuid.UUID, filter StockMovementFilter) ([]StockMovement, error)
	// Summarize groups movements by type and document type inside the window
	Summarize(ctx context.Context, tenantID uuid.UUID, filter StockMovementFilter) ([]MovementSummaryRow, error)
}

// StockAdjustmentRepository persists adjustment documents with their items
type StockAdjustmentRepository interface {
	Create(ctx context.Context, adjustment *StockAdjustment) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*StockAdjustment, error)
	// FindForUpdate loads the adjustment with its items under a row lock
	FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*StockAdjustment, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockAdjustment, int64, error)
	Save(ctx context.Context, adjustment *StockAdjustment) error
}
