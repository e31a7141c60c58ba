package ledger

import (
	"time"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentType distinguishes who is paying
type PaymentType string

const (
	PaymentTypeCustomer PaymentType = "CUSTOMER_PAYMENT"
	PaymentTypeSupplier PaymentType = "SUPPLIER_PAYMENT"
)

// IsValid returns true if the payment type is valid
func (t PaymentType) IsValid() bool {
	return t == PaymentTypeCustomer || t == PaymentTypeSupplier
}

// String returns the string representation of PaymentType
func (t PaymentType) String() string {
	return string(t)
}

// Payment records money received from a customer or paid to a supplier.
// It is created together with exactly one CREDIT movement in the same
// transaction; the movement references the payment by id.
type Payment struct {
	shared.BaseEntity
	TenantID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	EntityID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentType       PaymentType     `gorm:"type:varchar(30);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentMethodID   uuid.UUID       `gorm:"type:uuid;not null"`
	PaymentMethodName string          `gorm:"type:varchar(100);not null"`
	PaymentDate       time.Time       `gorm:"not null"`
	Reference         string          `gorm:"type:varchar(100)"`
	ReferenceDate     *time.Time
	Notes             string     `gorm:"type:varchar(500)"`
	OperatorID        *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "party_payments"
}

// NewPayment creates a new party payment
func NewPayment(
	tenantID, entityID uuid.UUID,
	paymentType PaymentType,
	amount decimal.Decimal,
	paymentMethodID uuid.UUID,
	paymentMethodName string,
	paymentDate time.Time,
) (*Payment, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if entityID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Entity ID cannot be empty")
	}
	if !paymentType.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_TYPE", "Invalid payment type")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	if paymentMethodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method ID cannot be empty")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	return &Payment{
		BaseEntity:        shared.NewBaseEntity(),
		TenantID:          tenantID,
		EntityID:          entityID,
		PaymentType:       paymentType,
		Amount:            amount,
		PaymentMethodID:   paymentMethodID,
		PaymentMethodName: paymentMethodName,
		PaymentDate:       paymentDate,
	}, nil
}

// WithReference sets the external reference and its date
func (p *Payment) WithReference(reference string, referenceDate *time.Time) *Payment {
	p.Reference = reference
	p.ReferenceDate = referenceDate
	return p
}

// WithNotes sets free-form notes
func (p *Payment) WithNotes(notes string) *Payment {
	p.Notes = notes
	return p
}

// WithOperatorID sets the acting user
func (p *Payment) WithOperatorID(operatorID uuid.UUID) *Payment {
	p.OperatorID = &operatorID
	return p
}

// MovementType returns the ledger movement type this payment produces
func (p *Payment) MovementType() MovementType {
	if p.PaymentType == PaymentTypeCustomer {
		return MovementTypeSalePayment
	}
	return MovementTypePurchasePayment
}
