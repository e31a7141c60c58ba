package shared

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Sequence is a per tenant, per series document counter. Numbers are
// allocated inside the same transaction that persists the document, so a
// committed series has no gaps.
type Sequence struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_sequence_tenant_series,priority:1"`
	Series    string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_sequence_tenant_series,priority:2"`
	LastValue int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Sequence) TableName() string {
	return "sequences"
}

// Document series known to the system
const (
	SeriesPurchase   = "COMPRA"
	SeriesAdjustment = "AJU"
)

// FormatDocumentNumber renders a series value as SERIES-NNNN, keeping at
// least four digits with zero padding.
func FormatDocumentNumber(series string, value int64) string {
	return fmt.Sprintf("%s-%04d", series, value)
}

// SequenceRepository allocates document numbers. Next must lock the counter
// row for the duration of the caller's transaction.
type SequenceRepository interface {
	Next(ctx context.Context, tenantID uuid.UUID, series string) (int64, error)
}
