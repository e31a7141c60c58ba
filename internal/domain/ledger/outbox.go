package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OutboxStatus is the processing state of a pending ledger posting
type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "PENDING"
	OutboxStatusProcessing OutboxStatus = "PROCESSING"
	OutboxStatusPosted     OutboxStatus = "POSTED"
	OutboxStatusFailed     OutboxStatus = "FAILED"
)

// MaxPostingAttempts caps how often a failed posting is retried before the
// drain stops picking it up.
const MaxPostingAttempts = 5

// PostingOutbox is a ledger posting recorded inside a business transaction
// and posted after commit. Failures never invalidate the source document; failed
// rows stay in the table for retry.
type PostingOutbox struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	EntityID     uuid.UUID       `gorm:"type:uuid;not null"`
	MovementType MovementType    `gorm:"type:varchar(30);not null"`
	Nature       Nature          `gorm:"type:varchar(10);not null"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	MovementDate time.Time       `gorm:"not null"`
	PurchaseID   *uuid.UUID      `gorm:"type:uuid"`
	PaymentID    *uuid.UUID      `gorm:"type:uuid"`
	OperatorID   *uuid.UUID      `gorm:"type:uuid"`
	Description  string          `gorm:"type:varchar(300)"`
	Status       OutboxStatus    `gorm:"type:varchar(20);not null;index"`
	Attempts     int             `gorm:"not null;default:0"`
	LastError    string          `gorm:"type:varchar(500)"`
	ProcessedAt  *time.Time
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PostingOutbox) TableName() string {
	return "ledger_posting_outbox"
}

// NewPostingOutbox creates a pending outbox entry
func NewPostingOutbox(tenantID, entityID uuid.UUID, movementType MovementType, nature Nature, amount decimal.Decimal, movementDate time.Time) *PostingOutbox {
	now := time.Now()
	return &PostingOutbox{
		ID:           uuid.New(),
		TenantID:     tenantID,
		EntityID:     entityID,
		MovementType: movementType,
		Nature:       nature,
		Amount:       amount,
		MovementDate: movementDate,
		Status:       OutboxStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// WithPurchase links the pending posting to its source purchase and payment
func (o *PostingOutbox) WithPurchase(purchaseID uuid.UUID, paymentID *uuid.UUID) *PostingOutbox {
	o.PurchaseID = &purchaseID
	o.PaymentID = paymentID
	return o
}

// WithDescription sets the human readable description
func (o *PostingOutbox) WithDescription(description string) *PostingOutbox {
	o.Description = description
	return o
}

// WithOperatorID records who triggered the posting
func (o *PostingOutbox) WithOperatorID(operatorID uuid.UUID) *PostingOutbox {
	o.OperatorID = &operatorID
	return o
}

// MarkClaimed flags the entry as taken by a drain run. Claimed entries are
// invisible to concurrent drains until they finish or go stale.
func (o *PostingOutbox) MarkClaimed() {
	o.Status = OutboxStatusProcessing
	o.UpdatedAt = time.Now()
}

// MarkPosted flags the entry as successfully posted
func (o *PostingOutbox) MarkPosted() {
	now := time.Now()
	o.Status = OutboxStatusPosted
	o.ProcessedAt = &now
	o.UpdatedAt = now
}

// MarkFailed records a failed posting attempt. Failed entries stay retryable
// until they exhaust MaxPostingAttempts.
func (o *PostingOutbox) MarkFailed(cause string) {
	o.Status = OutboxStatusFailed
	o.Attempts++
	o.LastError = cause
	o.UpdatedAt = time.Now()
}

// Retryable reports whether a drain may pick the entry up again
func (o *PostingOutbox) Retryable() bool {
	switch o.Status {
	case OutboxStatusPending:
		return true
	case OutboxStatusFailed:
		return o.Attempts < MaxPostingAttempts
	}
	return false
}

// PostingOutboxRepository defines persistence operations for pending postings
type PostingOutboxRepository interface {
	Create(ctx context.Context, entry *PostingOutbox) error
	Save(ctx context.Context, entry *PostingOutbox) error
	// ClaimPending atomically claims up to limit retryable entries for one
	// drain run, moving them to PROCESSING so concurrent drains skip them.
	ClaimPending(ctx context.Context, limit int) ([]PostingOutbox, error)
}
