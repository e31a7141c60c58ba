package inventory

import (
	"time"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WarehouseStock is the derived stock aggregate for one (warehouse, product)
// pair. It is recomputed from movements, never edited directly: Apply handles
// IN/OUT postings and SetQuantity handles approved adjustments.
type WarehouseStock struct {
	shared.TenantAggregateRoot
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_key,priority:2"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_warehouse_stock_key,priority:3"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReservedQty decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	// AvailableQty is always Quantity - ReservedQty
	AvailableQty   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LastMovementAt *time.Time
}

// TableName returns the table name for GORM
func (WarehouseStock) TableName() string {
	return "warehouse_stocks"
}

// NewWarehouseStock creates an empty stock row for a warehouse-product pair
func NewWarehouseStock(tenantID, warehouseID, productID uuid.UUID) (*WarehouseStock, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &WarehouseStock{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		WarehouseID:         warehouseID,
		ProductID:           productID,
		Quantity:            decimal.Zero,
		ReservedQty:         decimal.Zero,
		AvailableQty:        decimal.Zero,
	}, nil
}

// Apply posts an IN or OUT movement against the aggregate. An OUT that would
// drive the quantity negative is rejected with ErrInsufficientStock.
func (s *WarehouseStock) Apply(movementType MovementType, quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if movementType != MovementTypeIn && movementType != MovementTypeOut {
		return shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Movement type must be IN or OUT")
	}
	if movementType == MovementTypeOut && quantity.GreaterThan(s.Quantity) {
		return shared.ErrInsufficientStock
	}

	s.Quantity = NextQuantity(s.Quantity, movementType, quantity)
	s.recompute()
	return nil
}

// SetQuantity sets the quantity to an absolute value regardless of the prior
// one. Only the approved adjustment workflow uses this path.
func (s *WarehouseStock) SetQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	s.Quantity = quantity
	s.recompute()
	return nil
}

func (s *WarehouseStock) recompute() {
	now := time.Now()
	s.AvailableQty = s.Quantity.Sub(s.ReservedQty)
	s.LastMovementAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
}

// HasStock returns true if any quantity remains
func (s *WarehouseStock) HasStock() bool {
	return s.Quantity.GreaterThan(decimal.Zero)
}
