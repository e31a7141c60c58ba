package persistence

import (
	"context"
	"errors"

	"github.com/comercio/backoffice/internal/domain/inventory"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWarehouseStockRepository implements inventory.WarehouseStockRepository using GORM
type GormWarehouseStockRepository struct {
	db *gorm.DB
}

// NewGormWarehouseStockRepository creates a new GormWarehouseStockRepository
func NewGormWarehouseStockRepository(db *gorm.DB) *GormWarehouseStockRepository {
	return &GormWarehouseStockRepository{db: db}
}

// FindByIDForTenant finds a stock row by ID within a tenant
func (r *GormWarehouseStockRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.WarehouseStock, error) {
	var stock inventory.WarehouseStock
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindByWarehouseAndProduct finds the stock row for one product in one warehouse
func (r *GormWarehouseStockRepository) FindByWarehouseAndProduct(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*inventory.WarehouseStock, error) {
	var stock inventory.WarehouseStock
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND warehouse_id = ? AND product_id = ?", tenantID, warehouseID, productID).
		First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindForUpdate locks the stock row with SELECT ... FOR UPDATE. On SQLite the
// locking clause is a no-op; the serialization there comes from the single
// writer.
func (r *GormWarehouseStockRepository) FindForUpdate(ctx context.Context, tenantID, warehouseID, productID uuid.UUID) (*inventory.WarehouseStock, error) {
	var stock inventory.WarehouseStock
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND warehouse_id = ? AND product_id = ?", tenantID, warehouseID, productID).
		First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindAllForTenant lists stock rows. A filter with PageSize <= 0 returns the
// whole tenant without pagination.
func (r *GormWarehouseStockRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]inventory.WarehouseStock, int64, error) {
	var stocks []inventory.WarehouseStock
	var total int64

	base := r.db.WithContext(ctx).Model(&inventory.WarehouseStock{}).
		Where("tenant_id = ?", tenantID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Session(&gorm.Session{}).Order("updated_at DESC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Find(&stocks).Error; err != nil {
		return nil, 0, err
	}
	return stocks, total, nil
}

// FindByWarehouse lists the stock rows of one warehouse
func (r *GormWarehouseStockRepository) FindByWarehouse(ctx context.Context, tenantID, warehouseID uuid.UUID) ([]inventory.WarehouseStock, error) {
	var stocks []inventory.WarehouseStock
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND warehouse_id = ?", tenantID, warehouseID).
		Find(&stocks).Error
	return stocks, err
}

// FindByProduct lists the stock rows of one product across warehouses
func (r *GormWarehouseStockRepository) FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]inventory.WarehouseStock, error) {
	var stocks []inventory.WarehouseStock
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Find(&stocks).Error
	return stocks, err
}

// SumQuantityByProduct totals a product's quantity across warehouses
func (r *GormWarehouseStockRepository) SumQuantityByProduct(ctx context.Context, tenantID, productID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&inventory.WarehouseStock{}).
		Select("COALESCE(SUM(quantity), 0) as total").
		Where("tenant_id = ? AND product_id = ?", tenantID, productID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// HasPositiveStock reports whether the warehouse holds any positive quantity
func (r *GormWarehouseStockRepository) HasPositiveStock(ctx context.Context, tenantID, warehouseID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&inventory.WarehouseStock{}).
		Where("tenant_id = ? AND warehouse_id = ? AND quantity > 0", tenantID, warehouseID).
		Count(&count).Error
	return count > 0, err
}

// Save persists an existing stock row
func (r *GormWarehouseStockRepository) Save(ctx context.Context, stock *inventory.WarehouseStock) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

// Create creates a new stock row
func (r *GormWarehouseStockRepository) Create(ctx context.Context, stock *inventory.WarehouseStock) error {
	return r.db.WithContext(ctx).Create(stock).Error
}

var _ inventory.WarehouseStockRepository = (*GormWarehouseStockRepository)(nil)
