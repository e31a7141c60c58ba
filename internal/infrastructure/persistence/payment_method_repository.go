package persistence

import (
	"context"
	"errors"

	"github.com/comercio/backoffice/internal/domain/catalog"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentMethodRepository implements catalog.PaymentMethodRepository using GORM
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewGormPaymentMethodRepository creates a new GormPaymentMethodRepository
func NewGormPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// Create creates a new payment method
func (r *GormPaymentMethodRepository) Create(ctx context.Context, method *catalog.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

// FindByIDForTenant finds a payment method by ID within a tenant
func (r *GormPaymentMethodRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.PaymentMethod, error) {
	var method catalog.PaymentMethod
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &method, nil
}

// FindByIDsForTenant finds payment methods by IDs within a tenant
func (r *GormPaymentMethodRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.PaymentMethod, error) {
	if len(ids) == 0 {
		return []catalog.PaymentMethod{}, nil
	}
	var methods []catalog.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&methods).Error
	return methods, err
}

// FindAllForTenant lists the tenant's payment methods
func (r *GormPaymentMethodRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]catalog.PaymentMethod, error) {
	var methods []catalog.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&methods).Error
	return methods, err
}

var _ catalog.PaymentMethodRepository = (*GormPaymentMethodRepository)(nil)
