package inventory

import (
	"fmt"
	"time"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdjustmentStatus represents the state of a stock adjustment document
type AdjustmentStatus string

const (
	AdjustmentStatusDraft     AdjustmentStatus = "DRAFT"
	AdjustmentStatusApproved  AdjustmentStatus = "APPROVED"
	AdjustmentStatusCancelled AdjustmentStatus = "CANCELLED"
)

// IsValid checks if the status is a valid AdjustmentStatus
func (s AdjustmentStatus) IsValid() bool {
	switch s {
	case AdjustmentStatusDraft, AdjustmentStatusApproved, AdjustmentStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of AdjustmentStatus
func (s AdjustmentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s AdjustmentStatus) CanTransitionTo(target AdjustmentStatus) bool {
	switch s {
	case AdjustmentStatusDraft:
		return target == AdjustmentStatusApproved || target == AdjustmentStatusCancelled
	case AdjustmentStatusApproved, AdjustmentStatusCancelled:
		return false // Terminal states
	}
	return false
}

// StockAdjustmentItem reconciles the counted quantity of one product against
// the system quantity. Items are immutable once the adjustment leaves draft.
type StockAdjustmentItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	AdjustmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	CurrentQty   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AdjustedQty  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	// Difference is AdjustedQty - CurrentQty
	Difference decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	// TotalValue is Difference * UnitCost
	TotalValue decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason     string          `gorm:"type:varchar(500)"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StockAdjustmentItem) TableName() string {
	return "stock_adjustment_items"
}

// NewStockAdjustmentItem creates a new adjustment line item
func NewStockAdjustmentItem(adjustmentID, productID uuid.UUID, currentQty, adjustedQty, unitCost decimal.Decimal, reason string) (*StockAdjustmentItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if currentQty.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Current quantity cannot be negative")
	}
	if adjustedQty.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Adjusted quantity cannot be negative")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	now := time.Now()
	difference := adjustedQty.Sub(currentQty)
	return &StockAdjustmentItem{
		ID:           uuid.New(),
		AdjustmentID: adjustmentID,
		ProductID:    productID,
		CurrentQty:   currentQty,
		AdjustedQty:  adjustedQty,
		Difference:   difference,
		UnitCost:     unitCost,
		TotalValue:   difference.Mul(unitCost),
		Reason:       reason,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// HasDifference returns true if the counted quantity differs from the system one
func (i *StockAdjustmentItem) HasDifference() bool {
	return !i.Difference.IsZero()
}

// MovementType returns the stock movement direction the item emits on approval
func (i *StockAdjustmentItem) MovementType() MovementType {
	if i.Difference.IsNegative() {
		return MovementTypeOut
	}
	return MovementTypeIn
}

// StockAdjustment reconciles counted stock against system stock for one
// warehouse. It is the aggregate root of the adjustment workflow:
// DRAFT -> APPROVED (emits movements and sets quantities) or DRAFT -> CANCELLED.
type StockAdjustment struct {
	shared.TenantAggregateRoot
	AdjustmentNumber string           `gorm:"type:varchar(30);not null;uniqueIndex:idx_adjustment_tenant_number,priority:2"`
	WarehouseID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status           AdjustmentStatus `gorm:"type:varchar(20);not null"`
	Reason           string           `gorm:"type:varchar(500);not null"`
	TotalValue       decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	ApprovedAt       *time.Time
	ApprovedBy       *uuid.UUID            `gorm:"type:uuid"`
	Items            []StockAdjustmentItem `gorm:"foreignKey:AdjustmentID;references:ID"`
}

// TableName returns the table name for GORM
func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}

// NewStockAdjustment creates a new adjustment document in draft status
func NewStockAdjustment(tenantID, warehouseID uuid.UUID, adjustmentNumber, reason string) (*StockAdjustment, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if adjustmentNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Adjustment number cannot be empty")
	}
	if reason == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Reason cannot be empty")
	}

	return &StockAdjustment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		AdjustmentNumber:    adjustmentNumber,
		WarehouseID:         warehouseID,
		Status:              AdjustmentStatusDraft,
		Reason:              reason,
		TotalValue:          decimal.Zero,
		Items:               make([]StockAdjustmentItem, 0),
	}, nil
}

// AddItem adds a line item while the adjustment is in draft
func (a *StockAdjustment) AddItem(productID uuid.UUID, currentQty, adjustedQty, unitCost decimal.Decimal, reason string) (*StockAdjustmentItem, error) {
	if a.Status != AdjustmentStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Can only add items in DRAFT status")
	}
	for _, item := range a.Items {
		if item.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in adjustment")
		}
	}

	item, err := NewStockAdjustmentItem(a.ID, productID, currentQty, adjustedQty, unitCost, reason)
	if err != nil {
		return nil, err
	}
	a.Items = append(a.Items, *item)
	a.TotalValue = a.TotalValue.Add(item.TotalValue)
	a.UpdatedAt = time.Now()
	return &a.Items[len(a.Items)-1], nil
}

// Approve transitions the adjustment to its terminal success state. The caller
// is responsible for emitting the stock movements in the same transaction.
func (a *StockAdjustment) Approve(approvedBy uuid.UUID) error {
	if !a.Status.CanTransitionTo(AdjustmentStatusApproved) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve adjustment in %s status", a.Status))
	}
	if len(a.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot approve adjustment with no items")
	}

	now := time.Now()
	a.Status = AdjustmentStatusApproved
	a.ApprovedAt = &now
	a.ApprovedBy = &approvedBy
	a.UpdatedAt = now
	a.IncrementVersion()
	return nil
}

// Cancel aborts a draft adjustment; it never touches stock
func (a *StockAdjustment) Cancel() error {
	if !a.Status.CanTransitionTo(AdjustmentStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel adjustment in %s status", a.Status))
	}
	a.Status = AdjustmentStatusCancelled
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// IsDraft returns true while the adjustment can still be modified
func (a *StockAdjustment) IsDraft() bool {
	return a.Status == AdjustmentStatusDraft
}
