package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/comercio/backoffice/internal/domain/ledger"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormMovementRepository implements ledger.MovementRepository using GORM.
// Movements are append-only; the repository exposes no update or delete.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GormMovementRepository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Create appends a movement to the log
func (r *GormMovementRepository) Create(ctx context.Context, movement *ledger.Movement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByIDForTenant finds a movement by ID within a tenant
func (r *GormMovementRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ledger.Movement, error) {
	var movement ledger.Movement
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

// FindLastForEntity returns the party's most recent movement
func (r *GormMovementRepository) FindLastForEntity(ctx context.Context, tenantID, entityID uuid.UUID) (*ledger.Movement, error) {
	var movement ledger.Movement
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND entity_id = ?", tenantID, entityID).
		Order("movement_date DESC, created_at DESC").
		First(&movement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindLastBefore returns the most recent movement strictly before the date
func (r *GormMovementRepository) FindLastBefore(ctx context.Context, tenantID, entityID uuid.UUID, before time.Time) (*ledger.Movement, error) {
	var movement ledger.Movement
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND entity_id = ? AND movement_date < ?", tenantID, entityID, before).
		Order("movement_date DESC, created_at DESC").
		First(&movement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindForEntity returns movements ascending within the filter window
func (r *GormMovementRepository) FindForEntity(ctx context.Context, tenantID, entityID uuid.UUID, filter ledger.MovementFilter) ([]ledger.Movement, int64, error) {
	var movements []ledger.Movement
	var total int64

	base := r.db.WithContext(ctx).Model(&ledger.Movement{}).
		Where("tenant_id = ? AND entity_id = ?", tenantID, entityID)
	base = r.applyFilter(base, filter)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND entity_id = ?", tenantID, entityID)
	query = r.applyFilter(query, filter)
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Order("movement_date ASC, created_at ASC").Find(&movements).Error; err != nil {
		return nil, 0, err
	}
	return movements, total, nil
}

// SumByNature totals movement amounts of one nature inside the filter window
func (r *GormMovementRepository) SumByNature(ctx context.Context, tenantID, entityID uuid.UUID, nature ledger.Nature, filter ledger.MovementFilter) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	query := r.db.WithContext(ctx).Model(&ledger.Movement{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("tenant_id = ? AND entity_id = ? AND nature = ?", tenantID, entityID, nature)
	query = r.applyFilter(query, filter)

	if err := query.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// CountForEntity counts the party's movements
func (r *GormMovementRepository) CountForEntity(ctx context.Context, tenantID, entityID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&ledger.Movement{}).
		Where("tenant_id = ? AND entity_id = ?", tenantID, entityID).
		Count(&total).Error
	return total, err
}

// LatestBalances returns each party's newest balance in one query
func (r *GormMovementRepository) LatestBalances(ctx context.Context, tenantID uuid.UUID, entityIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error) {
	balances := make(map[uuid.UUID]decimal.Decimal, len(entityIDs))
	if len(entityIDs) == 0 {
		return balances, nil
	}

	var rows []struct {
		EntityID uuid.UUID
		Balance  decimal.Decimal
	}
	sub := r.db.Model(&ledger.Movement{}).
		Select("entity_id, MAX(created_at) AS last_created").
		Where("tenant_id = ? AND entity_id IN ?", tenantID, entityIDs).
		Group("entity_id")

	if err := r.db.WithContext(ctx).Model(&ledger.Movement{}).
		Select("party_movements.entity_id, party_movements.balance").
		Joins("JOIN (?) latest ON latest.entity_id = party_movements.entity_id AND latest.last_created = party_movements.created_at", sub).
		Where("party_movements.tenant_id = ?", tenantID).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		balances[row.EntityID] = row.Balance
	}
	return balances, nil
}

func (r *GormMovementRepository) applyFilter(query *gorm.DB, filter ledger.MovementFilter) *gorm.DB {
	if filter.MovementType != nil {
		query = query.Where("movement_type = ?", *filter.MovementType)
	}
	if filter.DateFrom != nil {
		query = query.Where("movement_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("movement_date <= ?", *filter.DateTo)
	}
	return query
}

var _ ledger.MovementRepository = (*GormMovementRepository)(nil)
