package ledger

import (
	"time"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the business origin of a party movement
type MovementType string

const (
	MovementTypeSale            MovementType = "SALE"
	MovementTypeSalePayment     MovementType = "SALE_PAYMENT"
	MovementTypePurchase        MovementType = "PURCHASE"
	MovementTypePurchasePayment MovementType = "PURCHASE_PAYMENT"
	MovementTypeCreditNote      MovementType = "CREDIT_NOTE"
	MovementTypeDebitNote       MovementType = "DEBIT_NOTE"
	MovementTypeAdjustment      MovementType = "ADJUSTMENT"
	MovementTypeInitialBalance  MovementType = "INITIAL_BALANCE"
)

// IsValid returns true if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeSale, MovementTypeSalePayment,
		MovementTypePurchase, MovementTypePurchasePayment,
		MovementTypeCreditNote, MovementTypeDebitNote,
		MovementTypeAdjustment, MovementTypeInitialBalance:
		return true
	}
	return false
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// Nature represents the sign of a movement on the running balance
type Nature string

const (
	// NatureDebit increases the running balance (the party owes more)
	NatureDebit Nature = "DEBIT"
	// NatureCredit decreases the running balance (a payment or credit)
	NatureCredit Nature = "CREDIT"
)

// IsValid returns true if the nature is valid
func (n Nature) IsValid() bool {
	return n == NatureDebit || n == NatureCredit
}

// String returns the string representation of Nature
func (n Nature) String() string {
	return string(n)
}

// NextBalance applies a movement to the previous running balance.
// DEBIT adds the amount, CREDIT subtracts it. The result may be negative.
func NextBalance(prev decimal.Decimal, nature Nature, amount decimal.Decimal) decimal.Decimal {
	if nature == NatureDebit {
		return prev.Add(amount)
	}
	return prev.Sub(amount)
}

// Movement is an immutable record of a change in a party's running balance.
// Corrections are made with new movements, never by updating existing ones.
type Movement struct {
	shared.BaseEntity
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_party_movement_entity,priority:1"`
	EntityID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_party_movement_entity,priority:2"`
	MovementType MovementType    `gorm:"type:varchar(30);not null"`
	Nature       Nature          `gorm:"type:varchar(10);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	// Balance is the running balance after this movement was applied
	Balance      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	MovementDate time.Time       `gorm:"not null;index:idx_party_movement_entity,priority:3"`
	Description  string          `gorm:"type:varchar(500)"`
	SaleID       *uuid.UUID      `gorm:"type:uuid"`
	PurchaseID   *uuid.UUID      `gorm:"type:uuid"`
	PaymentID    *uuid.UUID      `gorm:"type:uuid"`
	OperatorID   *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "party_movements"
}

// NewMovement creates a new party movement with the running balance already applied
func NewMovement(
	tenantID, entityID uuid.UUID,
	movementType MovementType,
	nature Nature,
	amount decimal.Decimal,
	previousBalance decimal.Decimal,
	movementDate time.Time,
) (*Movement, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if entityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Entity ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type")
	}
	if !nature.IsValid() {
		return nil, shared.NewDomainError("INVALID_NATURE", "Nature must be DEBIT or CREDIT")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if movementDate.IsZero() {
		movementDate = time.Now()
	}

	return &Movement{
		BaseEntity:   shared.NewBaseEntity(),
		TenantID:     tenantID,
		EntityID:     entityID,
		MovementType: movementType,
		Nature:       nature,
		Amount:       amount,
		Balance:      NextBalance(previousBalance, nature, amount),
		MovementDate: movementDate,
	}, nil
}

// WithDescription sets the movement description
func (m *Movement) WithDescription(description string) *Movement {
	m.Description = description
	return m
}

// WithSaleID links the movement to an originating sale
func (m *Movement) WithSaleID(saleID uuid.UUID) *Movement {
	m.SaleID = &saleID
	return m
}

// WithPurchaseID links the movement to an originating purchase
func (m *Movement) WithPurchaseID(purchaseID uuid.UUID) *Movement {
	m.PurchaseID = &purchaseID
	return m
}

// WithPaymentID links the movement to its sibling payment record
func (m *Movement) WithPaymentID(paymentID uuid.UUID) *Movement {
	m.PaymentID = &paymentID
	return m
}

// WithOperatorID sets the acting user
func (m *Movement) WithOperatorID(operatorID uuid.UUID) *Movement {
	m.OperatorID = &operatorID
	return m
}

// SignedAmount returns the amount with the sign implied by the nature
func (m *Movement) SignedAmount() decimal.Decimal {
	if m.Nature == NatureCredit {
		return m.Amount.Neg()
	}
	return m.Amount
}
