package persistence

import (
	"context"
	"time"

	"github.com/comercio/backoffice/internal/domain/ledger"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// staleClaimAge is how long a PROCESSING entry may sit before it is assumed
// stranded by a crashed drain and claimed again.
const staleClaimAge = 5 * time.Minute

// GormPostingOutboxRepository implements ledger.PostingOutboxRepository using GORM
type GormPostingOutboxRepository struct {
	db *gorm.DB
}

// NewGormPostingOutboxRepository creates a new GormPostingOutboxRepository
func NewGormPostingOutboxRepository(db *gorm.DB) *GormPostingOutboxRepository {
	return &GormPostingOutboxRepository{db: db}
}

// Create records a pending posting
func (r *GormPostingOutboxRepository) Create(ctx context.Context, entry *ledger.PostingOutbox) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Save persists a processed or failed entry
func (r *GormPostingOutboxRepository) Save(ctx context.Context, entry *ledger.PostingOutbox) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// ClaimPending claims up to limit retryable entries oldest first: pending
// rows, failed rows below the attempt cap, and PROCESSING rows stranded by a
// crashed drain. Claimed rows are flipped to PROCESSING in the same
// transaction, so a concurrent drain does not pick them up again. The SELECT
// locks the rows on PostgreSQL; on SQLite the clause is a no-op and the
// single writer serializes claims anyway.
func (r *GormPostingOutboxRepository) ClaimPending(ctx context.Context, limit int) ([]ledger.PostingOutbox, error) {
	var entries []ledger.PostingOutbox
	now := time.Now()
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status = ? OR (status = ? AND attempts < ?) OR (status = ? AND updated_at < ?)",
			ledger.OutboxStatusPending,
			ledger.OutboxStatusFailed, ledger.MaxPostingAttempts,
			ledger.OutboxStatusProcessing, now.Add(-staleClaimAge)).
		Order("created_at ASC").
		Limit(limit).
		Find(&entries).Error
	if err != nil || len(entries) == 0 {
		return entries, err
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for i := range entries {
		entries[i].MarkClaimed()
		ids = append(ids, entries[i].ID)
	}
	err = r.db.WithContext(ctx).
		Model(&ledger.PostingOutbox{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"status":     ledger.OutboxStatusProcessing,
			"updated_at": now,
		}).Error
	return entries, err
}

var _ ledger.PostingOutboxRepository = (*GormPostingOutboxRepository)(nil)
