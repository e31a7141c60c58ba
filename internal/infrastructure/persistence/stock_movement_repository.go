package persistence

import (
	"context"
	"errors"

	"github.com/comercio/backoffice/internal/domain/inventory"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements inventory.StockMovementRepository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Create appends a movement to the log
func (r *GormStockMovementRepository) Create(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByIDForTenant finds a movement by ID within a tenant
func (r *GormStockMovementRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*inventory.StockMovement, error) {
	var movement inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&movement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindForTenant lists movements newest first
func (r *GormStockMovementRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID, filter inventory.StockMovementFilter) ([]inventory.StockMovement, int64, error) {
	var movements []inventory.StockMovement
	var total int64

	base := r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
		Where("tenant_id = ?", tenantID)
	base = r.applyFilter(base, filter)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := base.Session(&gorm.Session{}).Order("created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	if err := query.Find(&movements).Error; err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}

// FindByProductChronological returns a product's movements oldest first
func (r *GormStockMovementRepository) FindByProductChronological(ctx context.Context, tenantID, productID uuid.UUID, filter inventory.StockMovementFilter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND product_id = ?", tenantID, productID)
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	err := query.Order("created_at ASC").Find(&movements).Error
	return movements, err
}

// Summarize groups movements by type and document type inside the window
func (r *GormStockMovementRepository) Summarize(ctx context.Context, tenantID uuid.UUID, filter inventory.StockMovementFilter) ([]inventory.MovementSummaryRow, error) {
	var rows []inventory.MovementSummaryRow
	query := r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
		Select("movement_type, document_type, COUNT(*) as count, COALESCE(SUM(quantity), 0) as total_quantity").
		Where("tenant_id = ?", tenantID)
	query = r.applyFilter(query, filter)
	err := query.Group("movement_type, document_type").
		Order("movement_type, document_type").
		Scan(&rows).Error
	return rows, err
}

func (r *GormStockMovementRepository) applyFilter(query *gorm.DB, filter inventory.StockMovementFilter) *gorm.DB {
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.MovementType != nil {
		query = query.Where("movement_type = ?", *filter.MovementType)
	}
	if filter.DocumentType != nil {
		query = query.Where("document_type = ?", *filter.DocumentType)
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}
	return query
}

var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
