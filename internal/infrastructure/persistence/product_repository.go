package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/comercio/backoffice/internal/domain/catalog"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create creates a new product
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Save persists an existing product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// FindByIDForTenant finds a product by ID within a tenant
func (r *GormProductRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDsForTenant finds products by IDs within a tenant
func (r *GormProductRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var products []catalog.Product
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&products).Error
	return products, err
}

// FindAllForTenant lists products matching the filter
func (r *GormProductRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter catalog.ProductFilter) (*shared.Paginated[catalog.Product], error) {
	var products []catalog.Product
	var total int64

	base := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		base = base.Where("name LIKE ? OR sku LIKE ?", pattern, pattern)
	}
	if filter.Active != nil {
		base = base.Where("active = ?", *filter.Active)
	}
	if filter.TrackStock != nil {
		base = base.Where("track_stock = ?", *filter.TrackStock)
	}

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

	if err := base.Session(&gorm.Session{}).
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(products, total, page, pageSize)
	return &result, nil
}

// FindLowStock returns tracked active products at or below their minimum
func (r *GormProductRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]catalog.Product, error) {
	var products []catalog.Product
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ? AND track_stock = ? AND min_stock > 0 AND current_stock <= min_stock", tenantID, true, true).
		Order("current_stock ASC").
		Find(&products).Error
	return products, err
}

// UpdateCurrentStock overwrites the product's denormalized stock total
func (r *GormProductRepository) UpdateCurrentStock(ctx context.Context, tenantID, productID uuid.UUID, quantity decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("tenant_id = ? AND id = ?", tenantID, productID).
		Updates(map[string]interface{}{
			"current_stock": quantity,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// UpdateCostPrice records the latest acquisition cost
func (r *GormProductRepository) UpdateCostPrice(ctx context.Context, tenantID, productID uuid.UUID, costPrice decimal.Decimal) error {
	result := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("tenant_id = ? AND id = ?", tenantID, productID).
		Updates(map[string]interface{}{
			"cost_price": costPrice,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
