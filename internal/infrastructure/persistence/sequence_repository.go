package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSequenceRepository implements shared.SequenceRepository using GORM.
// Next locks the counter row, so two transactions allocating the same series
// serialize and committed numbers have no gaps.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// Next allocates the next value for a tenant's series
func (r *GormSequenceRepository) Next(ctx context.Context, tenantID uuid.UUID, series string) (int64, error) {
	var seq shared.Sequence
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND series = ?", tenantID, series).
		First(&seq).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		now := time.Now()
		seq = shared.Sequence{
			ID:        uuid.New(),
			TenantID:  tenantID,
			Series:    series,
			LastValue: 0,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := r.db.WithContext(ctx).Create(&seq).Error; err != nil {
			return 0, err
		}
	}

	seq.LastValue++
	seq.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(&seq).Error; err != nil {
		return 0, err
	}
	return seq.LastValue, nil
}

var _ shared.SequenceRepository = (*GormSequenceRepository)(nil)
