package partner

import (
	"time"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
)

// Party is a commercial counterparty. A single party can act as customer,
// supplier or both; the role flags gate which documents may reference it.
type Party struct {
	shared.TenantAggregateRoot
	Name       string `gorm:"type:varchar(200);not null;index"`
	TaxID      string `gorm:"type:varchar(30);index"`
	Email      string `gorm:"type:varchar(200)"`
	Phone      string `gorm:"type:varchar(50)"`
	Address    string `gorm:"type:varchar(300)"`
	IsCustomer bool   `gorm:"not null;default:false"`
	IsSupplier bool   `gorm:"not null;default:false"`
	Active     bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Party) TableName() string {
	return "parties"
}

// NewParty creates a new party with at least one role
func NewParty(tenantID uuid.UUID, name string, isCustomer, isSupplier bool) (*Party, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Party name cannot be empty")
	}
	if !isCustomer && !isSupplier {
		return nil, shared.NewDomainError("INVALID_ROLE", "Party must be a customer, a supplier, or both")
	}

	return &Party{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		IsCustomer:          isCustomer,
		IsSupplier:          isSupplier,
		Active:              true,
	}, nil
}

// WithTaxID sets the tax identifier
func (p *Party) WithTaxID(taxID string) *Party {
	p.TaxID = taxID
	return p
}

// WithContact sets the contact information
func (p *Party) WithContact(email, phone, address string) *Party {
	p.Email = email
	p.Phone = phone
	p.Address = address
	return p
}

// UpdateInfo updates the editable party fields
func (p *Party) UpdateInfo(name, taxID, email, phone, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Party name cannot be empty")
	}
	p.Name = name
	p.TaxID = taxID
	p.Email = email
	p.Phone = phone
	p.Address = address
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetRoles updates the role flags
func (p *Party) SetRoles(isCustomer, isSupplier bool) error {
	if !isCustomer && !isSupplier {
		return shared.NewDomainError("INVALID_ROLE", "Party must be a customer, a supplier, or both")
	}
	p.IsCustomer = isCustomer
	p.IsSupplier = isSupplier
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Deactivate marks the party inactive without deleting its history
func (p *Party) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Activate re-enables an inactive party
func (p *Party) Activate() {
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
