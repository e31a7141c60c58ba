package persistence

import (
	"context"
	"errors"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/comercio/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseRepository implements trade.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// Create creates a purchase with its items and payments
func (r *GormPurchaseRepository) Create(ctx context.Context, purchase *trade.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

// Save persists the purchase and its associations
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *trade.Purchase) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(purchase).Error
}

// FindByIDForTenant finds a purchase with its items and payments
func (r *GormPurchaseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Payments").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindForUpdate loads the purchase under a row lock with its associations
func (r *GormPurchaseRepository) FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*trade.Purchase, error) {
	var purchase trade.Purchase
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("purchase_id = ?", id).
		Order("created_at ASC").
		Find(&purchase.Items).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("purchase_id = ?", id).
		Order("created_at ASC").
		Find(&purchase.Payments).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// FindAllForTenant lists purchases newest first
func (r *GormPurchaseRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter trade.PurchaseFilter) (*shared.Paginated[trade.Purchase], error) {
	var purchases []trade.Purchase
	var total int64

	base := r.db.WithContext(ctx).Model(&trade.Purchase{}).
		Where("tenant_id = ?", tenantID)
	base = r.applyFilter(base, filter)

	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	query := base.Session(&gorm.Session{}).
		Preload("Items").
		Preload("Payments").
		Order("purchase_date DESC, created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize)
	if err := query.Find(&purchases).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(purchases, total, page, pageSize)
	return &result, nil
}

// CountByStatus counts purchases per status
func (r *GormPurchaseRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID) ([]trade.StatusCount, error) {
	var counts []trade.StatusCount
	err := r.db.WithContext(ctx).Model(&trade.Purchase{}).
		Select("status, COUNT(*) as count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Scan(&counts).Error
	return counts, err
}

func (r *GormPurchaseRepository) applyFilter(query *gorm.DB, filter trade.PurchaseFilter) *gorm.DB {
	if filter.SupplierID != nil {
		query = query.Where("supplier_id = ?", *filter.SupplierID)
	}
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.DateFrom != nil {
		query = query.Where("purchase_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("purchase_date <= ?", *filter.DateTo)
	}
	return query
}

var _ trade.PurchaseRepository = (*GormPurchaseRepository)(nil)
