package catalog

import (
	"time"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentMethod is a tenant configured way of paying documents
type PaymentMethod struct {
	shared.TenantAggregateRoot
	Name      string `gorm:"type:varchar(100);not null"`
	Code      string `gorm:"type:varchar(30);uniqueIndex:idx_payment_method_tenant_code,priority:2"`
	IsDefault bool   `gorm:"not null;default:false"`
	Active    bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// NewPaymentMethod creates a new payment method
func NewPaymentMethod(tenantID uuid.UUID, name, code string) (*PaymentMethod, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Payment method name cannot be empty")
	}

	return &PaymentMethod{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Code:                code,
		Active:              true,
	}, nil
}

// Deactivate marks the payment method inactive
func (m *PaymentMethod) Deactivate() {
	m.Active = false
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}
