package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryapp "github.com/comercio/backoffice/internal/application/inventory"
	"github.com/comercio/backoffice/internal/domain/inventory"
	"github.com/comercio/backoffice/internal/domain/shared"
)

func (e *testEnv) postStock(t *testing.T, warehouseID, productID uuid.UUID, movementType string, quantity, unitCost int64) *inventoryapp.MovementResponse {
	t.Helper()
	resp, err := e.stockService.PostMovement(context.Background(), e.tenantID, &inventoryapp.PostMovementRequest{
		WarehouseID:  warehouseID,
		ProductID:    productID,
		MovementType: movementType,
		Quantity:     dec(quantity),
		UnitCost:     dec(unitCost),
	})
	require.NoError(t, err)
	return resp
}

func TestStockService_PostMovement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	product := env.seedProduct(t, "SKU-001", "Steel sheet", dec(80))

	t.Run("first IN creates the stock row", func(t *testing.T) {
		env.postStock(t, warehouse.ID, product.ID, "IN", 10, 80)

		stock, err := env.stocks.FindByWarehouseAndProduct(ctx, env.tenantID, warehouse.ID, product.ID)
		require.NoError(t, err)
		assert.True(t, stock.Quantity.Equal(dec(10)))

		// product denormalized total follows the warehouse rows
		ps, err := env.stockService.GetProductStock(ctx, env.tenantID, product.ID)
		require.NoError(t, err)
		assert.True(t, ps.TotalQuantity.Equal(dec(10)))
	})

	t.Run("OUT reduces the row", func(t *testing.T) {
		env.postStock(t, warehouse.ID, product.ID, "OUT", 4, 80)

		stock, err := env.stocks.FindByWarehouseAndProduct(ctx, env.tenantID, warehouse.ID, product.ID)
		require.NoError(t, err)
		assert.True(t, stock.Quantity.Equal(dec(6)))
	})
}

func TestStockService_RejectedOutLeavesNoWrites(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	product := env.seedProduct(t, "SKU-001", "Steel sheet", dec(80))

	env.postStock(t, warehouse.ID, product.ID, "IN", 3, 80)

	_, err := env.stockService.PostMovement(ctx, env.tenantID, &inventoryapp.PostMovementRequest{
		WarehouseID:  warehouse.ID,
		ProductID:    product.ID,
		MovementType: "OUT",
		Quantity:     dec(4),
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	// the failed posting wrote neither a movement nor a quantity change
	_, total, err := env.stockMovements.FindForTenant(ctx, env.tenantID, inventory.StockMovementFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	stock, err := env.stocks.FindByWarehouseAndProduct(ctx, env.tenantID, warehouse.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(dec(3)))
}

func TestStockService_OutWithoutRowRejected(t *testing.T) {
	env := newTestEnv(t)
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	product := env.seedProduct(t, "SKU-001", "Steel sheet", dec(80))

	_, err := env.stockService.PostMovement(context.Background(), env.tenantID, &inventoryapp.PostMovementRequest{
		WarehouseID:  warehouse.ID,
		ProductID:    product.ID,
		MovementType: "OUT",
		Quantity:     dec(1),
	})
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
}

func TestStockService_UntrackedProductRejected(t *testing.T) {
	env := newTestEnv(t)
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	product := env.seedUntrackedProduct(t, "SRV-001", "Delivery service")

	_, err := env.stockService.PostMovement(context.Background(), env.tenantID, &inventoryapp.PostMovementRequest{
		WarehouseID:  warehouse.ID,
		ProductID:    product.ID,
		MovementType: "IN",
		Quantity:     dec(1),
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "STOCK_NOT_TRACKED", domainErr.Code)
}

func TestStockService_GetWarehouseStock(t *testing.T) {
	env := newTestEnv(t)
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	sheet := env.seedProduct(t, "SKU-001", "Steel sheet", dec(80))
	rod := env.seedProduct(t, "SKU-002", "Steel rod", dec(40))

	env.postStock(t, warehouse.ID, sheet.ID, "IN", 10, 80)
	env.postStock(t, warehouse.ID, rod.ID, "IN", 4, 40)

	resp, err := env.stockService.GetWarehouseStock(context.Background(), env.tenantID, warehouse.ID)
	require.NoError(t, err)

	assert.True(t, resp.TotalQuantity.Equal(dec(14)))
	require.Len(t, resp.Items, 2)
	bySKU := make(map[string]decimal.Decimal)
	for _, item := range resp.Items {
		bySKU[item.SKU] = item.Quantity
	}
	assert.True(t, bySKU["SKU-001"].Equal(dec(10)))
	assert.True(t, bySKU["SKU-002"].Equal(dec(4)))
}

func TestStockService_KardexReplay(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	product := env.seedProduct(t, "SKU-001", "Steel sheet", dec(80))

	env.postStock(t, warehouse.ID, product.ID, "IN", 10, 80)
	env.postStock(t, warehouse.ID, product.ID, "OUT", 4, 80)
	env.postStock(t, warehouse.ID, product.ID, "IN", 5, 90)

	kardex, err := env.stockService.GetKardex(ctx, env.tenantID, product.ID, &warehouse.ID, inventoryapp.MovementListFilter{})
	require.NoError(t, err)

	require.Len(t, kardex.Entries, 3)
	assert.True(t, kardex.Entries[0].Balance.Equal(dec(10)))
	assert.True(t, kardex.Entries[1].Balance.Equal(dec(6)))
	assert.True(t, kardex.Entries[2].Balance.Equal(dec(11)))
	assert.True(t, kardex.OpeningQuantity.IsZero())
	assert.True(t, kardex.ClosingQuantity.Equal(dec(11)))

	// the replayed closing quantity matches the derived stock row
	stock, err := env.stocks.FindByWarehouseAndProduct(ctx, env.tenantID, warehouse.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(kardex.ClosingQuantity))
}

func TestAdjustmentService_ApproveFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	product := env.seedProduct(t, "SKU-001", "Steel sheet", dec(10))
	operator := uuid.New()

	env.postStock(t, warehouse.ID, product.ID, "IN", 50, 10)

	created, err := env.adjustmentService.Create(ctx, env.tenantID, &inventoryapp.CreateAdjustmentRequest{
		WarehouseID: warehouse.ID,
		Reason:      "cycle count",
		Items: []inventoryapp.AdjustmentItemRequest{
			{ProductID: product.ID, AdjustedQty: dec(42), Reason: "shrinkage"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "AJU-0001", created.AdjustmentNumber)
	assert.Equal(t, "DRAFT", created.Status)
	require.Len(t, created.Items, 1)
	assert.True(t, created.Items[0].CurrentQty.Equal(dec(50)))
	assert.True(t, created.Items[0].Difference.Equal(dec(-8)))
	assert.True(t, created.TotalValue.Equal(dec(-80)))

	// draft does not touch stock
	stock, err := env.stocks.FindByWarehouseAndProduct(ctx, env.tenantID, warehouse.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(dec(50)))

	approved, err := env.adjustmentService.Approve(ctx, env.tenantID, created.ID, operator)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)

	stock, err = env.stocks.FindByWarehouseAndProduct(ctx, env.tenantID, warehouse.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(dec(42)))

	// approval emitted one OUT movement for the shortfall
	adjType := inventory.DocumentTypeAdjustment
	movements, _, err := env.stockMovements.FindForTenant(ctx, env.tenantID, inventory.StockMovementFilter{DocumentType: &adjType})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, inventory.MovementTypeOut, movements[0].MovementType)
	assert.True(t, movements[0].Quantity.Equal(dec(8)))
	assert.Equal(t, "AJU-0001", movements[0].ReferenceNumber)

	ps, err := env.stockService.GetProductStock(ctx, env.tenantID, product.ID)
	require.NoError(t, err)
	assert.True(t, ps.TotalQuantity.Equal(dec(42)))

	// terminal state
	_, err = env.adjustmentService.Approve(ctx, env.tenantID, created.ID, operator)
	assert.Error(t, err)
	_, err = env.adjustmentService.Cancel(ctx, env.tenantID, created.ID)
	assert.Error(t, err)
}

func TestAdjustmentService_ApproveSetsCountedQuantityAfterDrift(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	product := env.seedProduct(t, "SKU-001", "Steel sheet", dec(10))
	operator := uuid.New()

	env.postStock(t, warehouse.ID, product.ID, "IN", 50, 10)

	created, err := env.adjustmentService.Create(ctx, env.tenantID, &inventoryapp.CreateAdjustmentRequest{
		WarehouseID: warehouse.ID,
		Reason:      "cycle count",
		Items: []inventoryapp.AdjustmentItemRequest{
			{ProductID: product.ID, AdjustedQty: dec(42), Reason: "shrinkage"},
		},
	})
	require.NoError(t, err)

	// stock drops below the counted quantity between draft and approval
	env.postStock(t, warehouse.ID, product.ID, "OUT", 46, 10)

	approved, err := env.adjustmentService.Approve(ctx, env.tenantID, created.ID, operator)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", approved.Status)

	// the row lands on the counted quantity regardless of the drift
	stock, err := env.stocks.FindByWarehouseAndProduct(ctx, env.tenantID, warehouse.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(dec(42)))

	// the movement covers the delta from the live quantity of 4, not the
	// draft-time difference of -8
	adjType := inventory.DocumentTypeAdjustment
	movements, _, err := env.stockMovements.FindForTenant(ctx, env.tenantID, inventory.StockMovementFilter{DocumentType: &adjType})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, inventory.MovementTypeIn, movements[0].MovementType)
	assert.True(t, movements[0].Quantity.Equal(dec(38)))
	assert.Equal(t, created.AdjustmentNumber, movements[0].ReferenceNumber)

	ps, err := env.stockService.GetProductStock(ctx, env.tenantID, product.ID)
	require.NoError(t, err)
	assert.True(t, ps.TotalQuantity.Equal(dec(42)))
}

func TestAdjustmentService_CancelLeavesStockAlone(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	product := env.seedProduct(t, "SKU-001", "Steel sheet", dec(10))

	env.postStock(t, warehouse.ID, product.ID, "IN", 50, 10)

	created, err := env.adjustmentService.Create(ctx, env.tenantID, &inventoryapp.CreateAdjustmentRequest{
		WarehouseID: warehouse.ID,
		Reason:      "cycle count",
		Items: []inventoryapp.AdjustmentItemRequest{
			{ProductID: product.ID, AdjustedQty: dec(40)},
		},
	})
	require.NoError(t, err)

	cancelled, err := env.adjustmentService.Cancel(ctx, env.tenantID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)

	stock, err := env.stocks.FindByWarehouseAndProduct(ctx, env.tenantID, warehouse.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(dec(50)))

	_, err = env.adjustmentService.Approve(ctx, env.tenantID, created.ID, uuid.New())
	assert.Error(t, err)
}

func TestAdjustmentService_SequentialNumbers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	product := env.seedProduct(t, "SKU-001", "Steel sheet", dec(10))

	for i, want := range []string{"AJU-0001", "AJU-0002"} {
		created, err := env.adjustmentService.Create(ctx, env.tenantID, &inventoryapp.CreateAdjustmentRequest{
			WarehouseID: warehouse.ID,
			Reason:      "cycle count",
			Items: []inventoryapp.AdjustmentItemRequest{
				{ProductID: product.ID, AdjustedQty: dec(int64(i + 1))},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, want, created.AdjustmentNumber)
	}
}
