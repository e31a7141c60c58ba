package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementFilter narrows statement queries
type MovementFilter struct {
	DateFrom     *time.Time
	DateTo       *time.Time
	MovementType *MovementType
	Page         int
	PageSize     int
}

// MovementRepository persists the append-only party movement log.
// Movements are never updated or deleted.
type MovementRepository interface {
	Create(ctx context.Context, movement *Movement) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Movement, error)
	// FindLastForEntity returns the most recent movement for the party,
	// ordered by (movement_date, insertion order) descending, or ErrNotFound.
	FindLastForEntity(ctx context.Context, tenantID, entityID uuid.UUID) (*Movement, error)
	// FindLastBefore returns the most recent movement strictly before the given
	// date, or ErrNotFound when the party has no earlier movements.
	FindLastBefore(ctx context.Context, tenantID, entityID uuid.UUID, before time.Time) (*Movement, error)
	// FindForEntity returns movements ascending by (movement_date, insertion
	// order) within the filter window, plus the unpaginated window count.
	FindForEntity(ctx context.Context, tenantID, entityID uuid.UUID, filter MovementFilter) ([]Movement, int64, error)
	// SumByNature totals movement amounts of one nature inside the filter window
	SumByNature(ctx context.Context, tenantID, entityID uuid.UUID, nature Nature, filter MovementFilter) (decimal.Decimal, error)
	CountForEntity(ctx context.Context, tenantID, entityID uuid.UUID) (int64, error)
	// LatestBalances returns the balance carried by the newest movement of
	// each given party. Parties with no movements are absent from the map.
	LatestBalances(ctx context.Context, tenantID uuid.UUID, entityIDs []uuid.UUID) (map[uuid.UUID]decimal.Decimal, error)
}

// PaymentRepository persists party payments
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)
	FindForEntity(ctx context.Context, tenantID, entityID uuid.UUID, filter MovementFilter) ([]Payment, int64, error)
}
