package inventory

import (
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the direction of a stock movement
type MovementType string

const (
	MovementTypeIn  MovementType = "IN"
	MovementTypeOut MovementType = "OUT"
	// MovementTypeTransfer exists on the wire format but no operation emits it;
	// postings reject it until warehouse transfers are implemented.
	MovementTypeTransfer MovementType = "TRANSFER"
)

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeTransfer:
		return true
	}
	return false
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// DocumentType identifies the business document that originated a movement
type DocumentType string

const (
	DocumentTypePurchase             DocumentType = "PURCHASE"
	DocumentTypePurchaseCancellation DocumentType = "PURCHASE_CANCELLATION"
	DocumentTypeSale                 DocumentType = "SALE"
	DocumentTypeAdjustment           DocumentType = "ADJUSTMENT"
	DocumentTypeManual               DocumentType = "MANUAL"
)

// IsValid returns true if the document type is valid
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypePurchase, DocumentTypePurchaseCancellation,
		DocumentTypeSale, DocumentTypeAdjustment, DocumentTypeManual:
		return true
	}
	return false
}

// String returns the string representation of DocumentType
func (t DocumentType) String() string {
	return string(t)
}

// NextQuantity applies a movement to the previous stock quantity.
// IN adds the quantity, OUT subtracts it.
func NextQuantity(prev decimal.Decimal, movementType MovementType, quantity decimal.Decimal) decimal.Decimal {
	if movementType == MovementTypeIn {
		return prev.Add(quantity)
	}
	return prev.Sub(quantity)
}

// StockMovement is an immutable record of stock entering or leaving a
// warehouse. Reversals are new movements with a cancellation document type,
// never updates.
type StockMovement struct {
	shared.BaseEntity
	TenantID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_movement_product,priority:1"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_movement_product,priority:2"`
	MovementType    MovementType    `gorm:"type:varchar(10);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalCost       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DocumentType    DocumentType    `gorm:"type:varchar(30);not null"`
	DocumentID      *uuid.UUID      `gorm:"type:uuid"`
	ReferenceNumber string          `gorm:"type:varchar(50)"`
	Notes           string          `gorm:"type:varchar(500)"`
	OperatorID      *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new stock movement record
func NewStockMovement(
	tenantID, warehouseID, productID uuid.UUID,
	movementType MovementType,
	quantity, unitCost decimal.Decimal,
	documentType DocumentType,
) (*StockMovement, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if movementType != MovementTypeIn && movementType != MovementTypeOut {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Movement type must be IN or OUT")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if !documentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_TYPE", "Invalid document type")
	}

	return &StockMovement{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     tenantID,
		WarehouseID:  warehouseID,
		ProductID:    productID,
		MovementType: movementType,
		Quantity:     quantity,
		UnitCost:     unitCost,
		TotalCost:    quantity.Mul(unitCost),
		DocumentType: documentType,
	}, nil
}

// WithDocument links the movement to its originating document
func (m *StockMovement) WithDocument(documentID uuid.UUID, referenceNumber string) *StockMovement {
	m.DocumentID = &documentID
	m.ReferenceNumber = referenceNumber
	return m
}

// WithNotes sets free-form notes
func (m *StockMovement) WithNotes(notes string) *StockMovement {
	m.Notes = notes
	return m
}

// WithOperatorID sets the acting user
func (m *StockMovement) WithOperatorID(operatorID uuid.UUID) *StockMovement {
	m.OperatorID = &operatorID
	return m
}

// SignedQuantity returns the quantity with the sign implied by the direction
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	if m.MovementType == MovementTypeOut {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
