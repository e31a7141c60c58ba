package persistence

import (
	"context"
	"errors"

	"github.com/comercio/backoffice/internal/domain/inventory"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockAdjustmentRepository implements inventory.StockAdjustmentRepository using GORM
type GormStockAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormStockAdjustmentRepository creates a new GormStockAdjustmentRepository
func NewGormStockAdjustmentRepository(db *gorm.DB) *GormStockAdjustmentRepository {
	return &GormStockAdjustmentRepository{db: db}
}

// Create creates an adjustment with its items
func (r *GormStockAdjustmentRepository) Create(ctx context.Context, adjustment *inventory.StockAdjustment) error {
	return r.db.WithContext(ctx).Create(adjustment).Error
}

// FindByIDForTenant finds an adjustment with its items
func (r *GormStockAdjustmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.StockAdjustment, error) {
	var adjustment inventory.StockAdjustment
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&adjustment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &adjustment, nil
}

// FindForUpdate loads the adjustment with its items under a row lock
func (r *GormStockAdjustmentRepository) FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*inventory.StockAdjustment, error) {
	var adjustment inventory.StockAdjustment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&adjustment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("adjustment_id = ?", id).
		Order("created_at ASC").
		Find(&adjustment.Items).Error; err != nil {
		return nil, err
	}
	return &adjustment, nil
}

// FindAllForTenant lists adjustments newest first
func (r *GormStockAdjustmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.StockAdjustment, int64, error) {
	var adjustments []inventory.StockAdjustment
	var total int64

	base := r.db.WithContext(ctx).Model(&inventory.StockAdjustment{}).
		Where("tenant_id = ?", tenantID)
	if status, ok := filter.Filters["status"]; ok {
		base = base.Where("status = ?", status)
	}

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Session(&gorm.Session{}).
		Preload("Items").
		Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	if err := query.Find(&adjustments).Error; err != nil {
		return nil, 0, err
	}
	return adjustments, total, nil
}

// Save persists the adjustment and its items
func (r *GormStockAdjustmentRepository) Save(ctx context.Context, adjustment *inventory.StockAdjustment) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(adjustment).Error
}

var _ inventory.StockAdjustmentRepository = (*GormStockAdjustmentRepository)(nil)
