package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comercio/backoffice/internal/domain/shared"
)

func newTestStock(t *testing.T) *WarehouseStock {
	t.Helper()
	s, err := NewWarehouseStock(uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	return s
}

func TestNextQuantity(t *testing.T) {
	t.Run("in adds", func(t *testing.T) {
		next := NextQuantity(decimal.NewFromInt(10), MovementTypeIn, decimal.NewFromInt(5))
		assert.True(t, next.Equal(decimal.NewFromInt(15)))
	})

	t.Run("out subtracts", func(t *testing.T) {
		next := NextQuantity(decimal.NewFromInt(10), MovementTypeOut, decimal.NewFromInt(4))
		assert.True(t, next.Equal(decimal.NewFromInt(6)))
	})
}

func TestWarehouseStock_Apply(t *testing.T) {
	t.Run("in movement accumulates quantity", func(t *testing.T) {
		s := newTestStock(t)

		require.NoError(t, s.Apply(MovementTypeIn, decimal.NewFromInt(10)))
		require.NoError(t, s.Apply(MovementTypeIn, decimal.NewFromInt(5)))

		assert.True(t, s.Quantity.Equal(decimal.NewFromInt(15)))
		assert.True(t, s.AvailableQty.Equal(decimal.NewFromInt(15)))
		assert.NotNil(t, s.LastMovementAt)
	})

	t.Run("out movement reduces quantity", func(t *testing.T) {
		s := newTestStock(t)
		require.NoError(t, s.Apply(MovementTypeIn, decimal.NewFromInt(10)))

		require.NoError(t, s.Apply(MovementTypeOut, decimal.NewFromInt(4)))
		assert.True(t, s.Quantity.Equal(decimal.NewFromInt(6)))
	})

	t.Run("out beyond quantity is rejected and leaves state untouched", func(t *testing.T) {
		s := newTestStock(t)
		require.NoError(t, s.Apply(MovementTypeIn, decimal.NewFromInt(3)))
		versionBefore := s.Version

		err := s.Apply(MovementTypeOut, decimal.NewFromInt(4))

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.True(t, s.Quantity.Equal(decimal.NewFromInt(3)))
		assert.Equal(t, versionBefore, s.Version)
	})

	t.Run("out from an empty row is rejected", func(t *testing.T) {
		s := newTestStock(t)
		err := s.Apply(MovementTypeOut, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		s := newTestStock(t)
		assert.Error(t, s.Apply(MovementTypeIn, decimal.Zero))
	})

	t.Run("rejects transfer direction", func(t *testing.T) {
		s := newTestStock(t)
		assert.Error(t, s.Apply(MovementTypeTransfer, decimal.NewFromInt(1)))
	})
}

func TestWarehouseStock_SetQuantity(t *testing.T) {
	t.Run("sets absolute quantity", func(t *testing.T) {
		s := newTestStock(t)
		require.NoError(t, s.Apply(MovementTypeIn, decimal.NewFromInt(50)))

		require.NoError(t, s.SetQuantity(decimal.NewFromInt(42)))

		assert.True(t, s.Quantity.Equal(decimal.NewFromInt(42)))
		assert.True(t, s.AvailableQty.Equal(decimal.NewFromInt(42)))
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		s := newTestStock(t)
		assert.Error(t, s.SetQuantity(decimal.NewFromInt(-1)))
	})
}

func TestNewStockMovement(t *testing.T) {
	tenantID := uuid.New()
	warehouseID := uuid.New()
	productID := uuid.New()

	t.Run("computes total cost", func(t *testing.T) {
		m, err := NewStockMovement(tenantID, warehouseID, productID,
			MovementTypeIn, decimal.NewFromInt(10), decimal.NewFromInt(100), DocumentTypePurchase)

		require.NoError(t, err)
		assert.True(t, m.TotalCost.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("signed quantity follows direction", func(t *testing.T) {
		out, err := NewStockMovement(tenantID, warehouseID, productID,
			MovementTypeOut, decimal.NewFromInt(8), decimal.NewFromInt(10), DocumentTypeAdjustment)

		require.NoError(t, err)
		assert.True(t, out.SignedQuantity().Equal(decimal.NewFromInt(-8)))
	})

	t.Run("rejects transfer until implemented", func(t *testing.T) {
		_, err := NewStockMovement(tenantID, warehouseID, productID,
			MovementTypeTransfer, decimal.NewFromInt(1), decimal.Zero, DocumentTypeManual)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewStockMovement(tenantID, warehouseID, productID,
			MovementTypeIn, decimal.Zero, decimal.Zero, DocumentTypeManual)
		assert.Error(t, err)
	})

	t.Run("rejects invalid document type", func(t *testing.T) {
		_, err := NewStockMovement(tenantID, warehouseID, productID,
			MovementTypeIn, decimal.NewFromInt(1), decimal.Zero, DocumentType("RETURN"))
		assert.Error(t, err)
	})
}
