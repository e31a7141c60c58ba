package persistence

import (
	"context"
	"errors"

	"github.com/comercio/backoffice/internal/domain/ledger"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentRepository implements ledger.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create creates a new party payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *ledger.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// FindByIDForTenant finds a payment by ID within a tenant
func (r *GormPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Payment, error) {
	var payment ledger.Payment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindForEntity returns a party's payments, newest first
func (r *GormPaymentRepository) FindForEntity(ctx context.Context, tenantID, entityID uuid.UUID, filter ledger.MovementFilter) ([]ledger.Payment, int64, error) {
	var payments []ledger.Payment
	var total int64

	base := r.db.WithContext(ctx).Model(&ledger.Payment{}).
		Where("tenant_id = ? AND entity_id = ?", tenantID, entityID)
	if filter.DateFrom != nil {
		base = base.Where("payment_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		base = base.Where("payment_date <= ?", *filter.DateTo)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Session(&gorm.Session{})
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Order("payment_date DESC, created_at DESC").Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

var _ ledger.PaymentRepository = (*GormPaymentRepository)(nil)
