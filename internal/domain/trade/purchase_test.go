package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comercio/backoffice/internal/domain/shared"
)

func newTestPurchase(t *testing.T) *Purchase {
	t.Helper()
	p, err := NewPurchase(uuid.New(), "PC-000001", uuid.New(), uuid.New(), time.Now(), decimal.Zero)
	require.NoError(t, err)
	return p
}

func TestNewPurchase(t *testing.T) {
	t.Run("creates completed document with pending payment", func(t *testing.T) {
		p := newTestPurchase(t)

		assert.Equal(t, PurchaseStatusCompleted, p.Status)
		assert.Equal(t, PaymentStatusPending, p.PaymentStatus)
		assert.True(t, p.TotalAmount.IsZero())
		assert.Empty(t, p.Items)
	})

	t.Run("fails with empty number", func(t *testing.T) {
		_, err := NewPurchase(uuid.New(), "", uuid.New(), uuid.New(), time.Now(), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("fails with empty supplier", func(t *testing.T) {
		_, err := NewPurchase(uuid.New(), "PC-000001", uuid.Nil, uuid.New(), time.Now(), decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("fails with discount above 100", func(t *testing.T) {
		_, err := NewPurchase(uuid.New(), "PC-000001", uuid.New(), uuid.New(), time.Now(), decimal.NewFromInt(101))
		assert.Error(t, err)
	})
}

func TestPurchase_AddItem(t *testing.T) {
	t.Run("computes line and document totals", func(t *testing.T) {
		p := newTestPurchase(t)
		productID := uuid.New()

		item, err := p.AddItem(&productID, "Steel sheet", decimal.NewFromInt(10),
			decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(21))
		require.NoError(t, err)

		assert.True(t, item.Subtotal.Equal(decimal.NewFromInt(1000)))
		assert.True(t, item.TaxAmount.Equal(decimal.NewFromInt(210)))
		assert.True(t, item.LineTotal.Equal(decimal.NewFromInt(1210)))

		assert.True(t, p.Subtotal.Equal(decimal.NewFromInt(1000)))
		assert.True(t, p.TaxAmount.Equal(decimal.NewFromInt(210)))
		assert.True(t, p.TotalAmount.Equal(decimal.NewFromInt(1210)))
		assert.True(t, p.BalanceAmount.Equal(decimal.NewFromInt(1210)))
	})

	t.Run("applies line discount before tax", func(t *testing.T) {
		p := newTestPurchase(t)

		item, err := p.AddItem(nil, "Paint bucket", decimal.NewFromInt(4),
			decimal.NewFromInt(50), decimal.NewFromInt(10), decimal.NewFromInt(10))
		require.NoError(t, err)

		// 4 * 50 * 0.9 = 180, tax 18
		assert.True(t, item.Subtotal.Equal(decimal.NewFromInt(180)))
		assert.True(t, item.TaxAmount.Equal(decimal.NewFromInt(18)))
		assert.True(t, item.LineTotal.Equal(decimal.NewFromInt(198)))
	})

	t.Run("applies document discount over item subtotals", func(t *testing.T) {
		p, err := NewPurchase(uuid.New(), "PC-000002", uuid.New(), uuid.New(), time.Now(), decimal.NewFromInt(10))
		require.NoError(t, err)

		_, err = p.AddItem(nil, "Cement bag", decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		assert.True(t, p.DiscountAmount.Equal(decimal.NewFromInt(100)))
		assert.True(t, p.Subtotal.Equal(decimal.NewFromInt(900)))
		assert.True(t, p.TotalAmount.Equal(decimal.NewFromInt(900)))
	})

	t.Run("rejects items on cancelled purchase", func(t *testing.T) {
		p := newTestPurchase(t)
		require.NoError(t, p.Cancel())

		_, err := p.AddItem(nil, "Late item", decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		p := newTestPurchase(t)
		_, err := p.AddItem(nil, "Nothing", decimal.Zero, decimal.NewFromInt(1), decimal.Zero, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestPurchase_AddPayment(t *testing.T) {
	setup := func(t *testing.T) *Purchase {
		p := newTestPurchase(t)
		_, err := p.AddItem(nil, "Steel sheet", decimal.NewFromInt(10),
			decimal.NewFromInt(100), decimal.Zero, decimal.Zero)
		require.NoError(t, err)
		return p
	}

	t.Run("partial payment updates balance and status", func(t *testing.T) {
		p := setup(t)

		_, err := p.AddPayment(uuid.New(), "Cash", decimal.NewFromInt(300), time.Now())
		require.NoError(t, err)

		assert.True(t, p.PaidAmount.Equal(decimal.NewFromInt(300)))
		assert.True(t, p.BalanceAmount.Equal(decimal.NewFromInt(700)))
		assert.Equal(t, PaymentStatusPartial, p.PaymentStatus)
	})

	t.Run("full payment flips status to paid", func(t *testing.T) {
		p := setup(t)

		_, err := p.AddPayment(uuid.New(), "Transfer", decimal.NewFromInt(1000), time.Now())
		require.NoError(t, err)

		assert.True(t, p.BalanceAmount.IsZero())
		assert.Equal(t, PaymentStatusPaid, p.PaymentStatus)
	})

	t.Run("rejects overpayment", func(t *testing.T) {
		p := setup(t)

		_, err := p.AddPayment(uuid.New(), "Cash", decimal.NewFromInt(700), time.Now())
		require.NoError(t, err)

		_, err = p.AddPayment(uuid.New(), "Cash", decimal.NewFromInt(301), time.Now())
		assert.ErrorIs(t, err, shared.ErrOverPayment)
		assert.True(t, p.PaidAmount.Equal(decimal.NewFromInt(700)))
	})

	t.Run("rejects payment on cancelled purchase", func(t *testing.T) {
		p := setup(t)
		require.NoError(t, p.Cancel())

		_, err := p.AddPayment(uuid.New(), "Cash", decimal.NewFromInt(100), time.Now())
		assert.Error(t, err)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		p := setup(t)
		_, err := p.AddPayment(uuid.New(), "Cash", decimal.Zero, time.Now())
		assert.Error(t, err)
	})
}

func TestPurchase_Cancel(t *testing.T) {
	t.Run("cancellation is terminal", func(t *testing.T) {
		p := newTestPurchase(t)

		require.NoError(t, p.Cancel())
		assert.True(t, p.IsCancelled())
		assert.NotNil(t, p.CancelledAt)

		assert.Error(t, p.Cancel())
	})
}

func TestDerivePaymentStatus(t *testing.T) {
	total := decimal.NewFromInt(100)

	assert.Equal(t, PaymentStatusPending, DerivePaymentStatus(decimal.Zero, total))
	assert.Equal(t, PaymentStatusPartial, DerivePaymentStatus(decimal.NewFromInt(50), total))
	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(total, total))
	assert.Equal(t, PaymentStatusPaid, DerivePaymentStatus(decimal.NewFromInt(150), total))
}
