package partner

import (
	"time"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Warehouse is a physical stock location
type Warehouse struct {
	shared.TenantAggregateRoot
	Name      string `gorm:"type:varchar(100);not null"`
	Code      string `gorm:"type:varchar(30);uniqueIndex:idx_warehouse_tenant_code,priority:2"`
	Address   string `gorm:"type:varchar(300)"`
	IsDefault bool   `gorm:"not null;default:false"`
	Active    bool   `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse
func NewWarehouse(tenantID uuid.UUID, name, code string) (*Warehouse, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}

	return &Warehouse{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Code:                code,
		Active:              true,
	}, nil
}

// WithAddress sets the warehouse address
func (w *Warehouse) WithAddress(address string) *Warehouse {
	w.Address = address
	return w
}

// MarkAsDefault flags this warehouse as the tenant default
func (w *Warehouse) MarkAsDefault() {
	w.IsDefault = true
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}

// UpdateInfo updates the editable warehouse fields
func (w *Warehouse) UpdateInfo(name, code, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}
	w.Name = name
	w.Code = code
	w.Address = address
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
	return nil
}

// Deactivate marks the warehouse inactive
func (w *Warehouse) Deactivate() {
	w.Active = false
	w.UpdatedAt = time.Now()
	w.IncrementVersion()
}
