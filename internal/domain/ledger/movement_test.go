package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextBalance(t *testing.T) {
	t.Run("debit increases the balance", func(t *testing.T) {
		next := NextBalance(decimal.NewFromInt(100), NatureDebit, decimal.NewFromInt(40))
		assert.True(t, next.Equal(decimal.NewFromInt(140)))
	})

	t.Run("credit decreases the balance", func(t *testing.T) {
		next := NextBalance(decimal.NewFromInt(100), NatureCredit, decimal.NewFromInt(40))
		assert.True(t, next.Equal(decimal.NewFromInt(60)))
	})

	t.Run("balance can go negative", func(t *testing.T) {
		next := NextBalance(decimal.NewFromInt(50), NatureCredit, decimal.NewFromInt(80))
		assert.True(t, next.Equal(decimal.NewFromInt(-30)))
	})
}

func TestNewMovement(t *testing.T) {
	tenantID := uuid.New()
	entityID := uuid.New()

	t.Run("applies the running balance", func(t *testing.T) {
		m, err := NewMovement(tenantID, entityID, MovementTypePurchase, NatureDebit,
			decimal.NewFromInt(1210), decimal.NewFromInt(500), time.Now())

		require.NoError(t, err)
		assert.True(t, m.Balance.Equal(decimal.NewFromInt(1710)))
		assert.Equal(t, MovementTypePurchase, m.MovementType)
		assert.Equal(t, NatureDebit, m.Nature)
	})

	t.Run("credit movement reduces the running balance", func(t *testing.T) {
		m, err := NewMovement(tenantID, entityID, MovementTypePurchasePayment, NatureCredit,
			decimal.NewFromInt(300), decimal.NewFromInt(1000), time.Now())

		require.NoError(t, err)
		assert.True(t, m.Balance.Equal(decimal.NewFromInt(700)))
	})

	t.Run("defaults zero movement date to now", func(t *testing.T) {
		m, err := NewMovement(tenantID, entityID, MovementTypeAdjustment, NatureDebit,
			decimal.NewFromInt(10), decimal.Zero, time.Time{})

		require.NoError(t, err)
		assert.False(t, m.MovementDate.IsZero())
	})

	t.Run("fails with empty tenant", func(t *testing.T) {
		_, err := NewMovement(uuid.Nil, entityID, MovementTypeSale, NatureDebit,
			decimal.NewFromInt(10), decimal.Zero, time.Now())
		assert.Error(t, err)
	})

	t.Run("fails with empty entity", func(t *testing.T) {
		_, err := NewMovement(tenantID, uuid.Nil, MovementTypeSale, NatureDebit,
			decimal.NewFromInt(10), decimal.Zero, time.Now())
		assert.Error(t, err)
	})

	t.Run("fails with invalid movement type", func(t *testing.T) {
		_, err := NewMovement(tenantID, entityID, MovementType("BOGUS"), NatureDebit,
			decimal.NewFromInt(10), decimal.Zero, time.Now())
		assert.Error(t, err)
	})

	t.Run("fails with invalid nature", func(t *testing.T) {
		_, err := NewMovement(tenantID, entityID, MovementTypeSale, Nature("SIDEWAYS"),
			decimal.NewFromInt(10), decimal.Zero, time.Now())
		assert.Error(t, err)
	})

	t.Run("fails with negative amount", func(t *testing.T) {
		_, err := NewMovement(tenantID, entityID, MovementTypeSale, NatureDebit,
			decimal.NewFromInt(-10), decimal.Zero, time.Now())
		assert.Error(t, err)
	})
}

func TestMovement_SignedAmount(t *testing.T) {
	tenantID := uuid.New()
	entityID := uuid.New()

	debit, err := NewMovement(tenantID, entityID, MovementTypeSale, NatureDebit,
		decimal.NewFromInt(25), decimal.Zero, time.Now())
	require.NoError(t, err)
	assert.True(t, debit.SignedAmount().Equal(decimal.NewFromInt(25)))

	credit, err := NewMovement(tenantID, entityID, MovementTypeSalePayment, NatureCredit,
		decimal.NewFromInt(25), decimal.Zero, time.Now())
	require.NoError(t, err)
	assert.True(t, credit.SignedAmount().Equal(decimal.NewFromInt(-25)))
}

func TestPostingOutbox(t *testing.T) {
	tenantID := uuid.New()
	entityID := uuid.New()

	t.Run("starts pending", func(t *testing.T) {
		entry := NewPostingOutbox(tenantID, entityID, MovementTypePurchase, NatureDebit,
			decimal.NewFromInt(100), time.Now())

		assert.Equal(t, OutboxStatusPending, entry.Status)
		assert.Equal(t, 0, entry.Attempts)
		assert.Nil(t, entry.ProcessedAt)
	})

	t.Run("mark posted is terminal", func(t *testing.T) {
		entry := NewPostingOutbox(tenantID, entityID, MovementTypePurchase, NatureDebit,
			decimal.NewFromInt(100), time.Now())
		entry.MarkPosted()

		assert.Equal(t, OutboxStatusPosted, entry.Status)
		require.NotNil(t, entry.ProcessedAt)
	})

	t.Run("mark failed records the cause and counts attempts", func(t *testing.T) {
		entry := NewPostingOutbox(tenantID, entityID, MovementTypePurchase, NatureDebit,
			decimal.NewFromInt(100), time.Now())
		entry.MarkFailed("supplier not found")
		entry.MarkFailed("supplier not found")

		assert.Equal(t, OutboxStatusFailed, entry.Status)
		assert.Equal(t, 2, entry.Attempts)
		assert.Equal(t, "supplier not found", entry.LastError)
	})

	t.Run("failed entries stay retryable until the attempt cap", func(t *testing.T) {
		entry := NewPostingOutbox(tenantID, entityID, MovementTypePurchase, NatureDebit,
			decimal.NewFromInt(100), time.Now())
		assert.True(t, entry.Retryable())

		for i := 0; i < MaxPostingAttempts-1; i++ {
			entry.MarkFailed("supplier not found")
		}
		assert.True(t, entry.Retryable())

		entry.MarkFailed("supplier not found")
		assert.False(t, entry.Retryable())
	})

	t.Run("claimed entries are not retryable", func(t *testing.T) {
		entry := NewPostingOutbox(tenantID, entityID, MovementTypePurchase, NatureDebit,
			decimal.NewFromInt(100), time.Now())
		entry.MarkClaimed()

		assert.Equal(t, OutboxStatusProcessing, entry.Status)
		assert.False(t, entry.Retryable())
	})
}
