package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tradeapp "github.com/comercio/backoffice/internal/application/trade"
	"github.com/comercio/backoffice/internal/domain/inventory"
	"github.com/comercio/backoffice/internal/domain/ledger"
	"github.com/comercio/backoffice/internal/domain/shared"
)

func TestPurchaseService_Create(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	supplier := env.seedParty(t, "Aceros SA", false, true)
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	product := env.seedProduct(t, "SKU-001", "Steel sheet", dec(80))
	cash := env.seedPaymentMethod(t, "Cash", "CASH")

	resp, err := env.purchaseService.Create(ctx, env.tenantID, &tradeapp.CreatePurchaseRequest{
		SupplierID:  supplier.ID,
		WarehouseID: warehouse.ID,
		Items: []tradeapp.PurchaseItemRequest{
			{ProductID: &product.ID, Quantity: dec(10), UnitPrice: dec(100), TaxRate: dec(21)},
		},
		Payments: []tradeapp.PurchasePaymentRequest{
			{PaymentMethodID: cash.ID, Amount: dec(605)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "COMPRA-0001", resp.PurchaseNumber)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.True(t, resp.Subtotal.Equal(dec(1000)))
	assert.True(t, resp.TaxAmount.Equal(dec(210)))
	assert.True(t, resp.TotalAmount.Equal(dec(1210)))
	assert.True(t, resp.PaidAmount.Equal(dec(605)))
	assert.True(t, resp.BalanceAmount.Equal(dec(605)))
	assert.Equal(t, "PARTIAL", resp.PaymentStatus)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Steel sheet", resp.Items[0].Description)

	// stock was received at the purchase price
	stock, err := env.stocks.FindByWarehouseAndProduct(ctx, env.tenantID, warehouse.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(dec(10)))

	purchaseType := inventory.DocumentTypePurchase
	movements, _, err := env.stockMovements.FindForTenant(ctx, env.tenantID, inventory.StockMovementFilter{DocumentType: &purchaseType})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "COMPRA-0001", movements[0].ReferenceNumber)

	// acquisition cost follows the latest purchase price
	fresh, err := env.productService.GetByID(ctx, env.tenantID, product.ID)
	require.NoError(t, err)
	assert.True(t, fresh.CostPrice.Equal(dec(100)))

	// the payment was posted to the supplier ledger through the outbox
	last, err := env.movements.FindLastForEntity(ctx, env.tenantID, supplier.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.MovementTypePurchasePayment, last.MovementType)
	assert.Equal(t, ledger.NatureCredit, last.Nature)
	assert.True(t, last.Amount.Equal(dec(605)))
	assert.True(t, last.Balance.Equal(dec(-605)))
	require.NotNil(t, last.PurchaseID)
	assert.Equal(t, resp.ID, *last.PurchaseID)

	var outboxRows []ledger.PostingOutbox
	require.NoError(t, env.db.DB.Where("tenant_id = ?", env.tenantID).Find(&outboxRows).Error)
	require.Len(t, outboxRows, 1)
	assert.Equal(t, ledger.OutboxStatusPosted, outboxRows[0].Status)
	assert.NotNil(t, outboxRows[0].ProcessedAt)
}

func TestPurchaseService_SequentialNumbers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	supplier := env.seedParty(t, "Aceros SA", false, true)
	warehouse := env.seedWarehouse(t, "Central", "CEN")

	for _, want := range []string{"COMPRA-0001", "COMPRA-0002"} {
		resp, err := env.purchaseService.Create(ctx, env.tenantID, &tradeapp.CreatePurchaseRequest{
			SupplierID:  supplier.ID,
			WarehouseID: warehouse.ID,
			Items: []tradeapp.PurchaseItemRequest{
				{Description: "Freight", Quantity: dec(1), UnitPrice: dec(50)},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, want, resp.PurchaseNumber)
	}
}

func TestPurchaseService_CustomerRejected(t *testing.T) {
	env := newTestEnv(t)
	customer := env.seedParty(t, "Juan Perez", true, false)
	warehouse := env.seedWarehouse(t, "Central", "CEN")

	_, err := env.purchaseService.Create(context.Background(), env.tenantID, &tradeapp.CreatePurchaseRequest{
		SupplierID:  customer.ID,
		WarehouseID: warehouse.ID,
		Items: []tradeapp.PurchaseItemRequest{
			{Description: "Freight", Quantity: dec(1), UnitPrice: dec(50)},
		},
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_ROLE", domainErr.Code)
}

func TestPurchaseService_OverpaymentAtCreateRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	supplier := env.seedParty(t, "Aceros SA", false, true)
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	product := env.seedProduct(t, "SKU-001", "Steel sheet", dec(80))
	cash := env.seedPaymentMethod(t, "Cash", "CASH")

	_, err := env.purchaseService.Create(ctx, env.tenantID, &tradeapp.CreatePurchaseRequest{
		SupplierID:  supplier.ID,
		WarehouseID: warehouse.ID,
		Items: []tradeapp.PurchaseItemRequest{
			{ProductID: &product.ID, Quantity: dec(1), UnitPrice: dec(100)},
		},
		Payments: []tradeapp.PurchasePaymentRequest{
			{PaymentMethodID: cash.ID, Amount: dec(9999)},
		},
	})
	assert.ErrorIs(t, err, shared.ErrOverPayment)

	// nothing survived the rollback
	page, err := env.purchaseService.List(ctx, env.tenantID, tradeapp.PurchaseListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)

	_, err = env.stocks.FindByWarehouseAndProduct(ctx, env.tenantID, warehouse.ID, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// the consumed sequence number was rolled back with the rest
	resp, err := env.purchaseService.Create(ctx, env.tenantID, &tradeapp.CreatePurchaseRequest{
		SupplierID:  supplier.ID,
		WarehouseID: warehouse.ID,
		Items: []tradeapp.PurchaseItemRequest{
			{ProductID: &product.ID, Quantity: dec(1), UnitPrice: dec(100)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "COMPRA-0001", resp.PurchaseNumber)
}

func TestPurchaseService_AddPayment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	supplier := env.seedParty(t, "Aceros SA", false, true)
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	cash := env.seedPaymentMethod(t, "Cash", "CASH")

	created, err := env.purchaseService.Create(ctx, env.tenantID, &tradeapp.CreatePurchaseRequest{
		SupplierID:  supplier.ID,
		WarehouseID: warehouse.ID,
		Items: []tradeapp.PurchaseItemRequest{
			{Description: "Freight", Quantity: dec(1), UnitPrice: dec(1000)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", created.PaymentStatus)

	t.Run("partial then paid", func(t *testing.T) {
		resp, err := env.purchaseService.AddPayment(ctx, env.tenantID, created.ID, &tradeapp.AddPaymentRequest{
			PaymentMethodID: cash.ID,
			Amount:          dec(400),
		})
		require.NoError(t, err)
		assert.Equal(t, "PARTIAL", resp.PaymentStatus)
		assert.True(t, resp.BalanceAmount.Equal(dec(600)))

		resp, err = env.purchaseService.AddPayment(ctx, env.tenantID, created.ID, &tradeapp.AddPaymentRequest{
			PaymentMethodID: cash.ID,
			Amount:          dec(600),
		})
		require.NoError(t, err)
		assert.Equal(t, "PAID", resp.PaymentStatus)
		assert.True(t, resp.BalanceAmount.IsZero())

		// both payments hit the supplier ledger
		balance, err := env.ledgerService.GetBalance(ctx, env.tenantID, supplier.ID)
		require.NoError(t, err)
		assert.True(t, balance.Balance.Equal(dec(-1000)))
	})

	t.Run("overpayment rejected", func(t *testing.T) {
		_, err := env.purchaseService.AddPayment(ctx, env.tenantID, created.ID, &tradeapp.AddPaymentRequest{
			PaymentMethodID: cash.ID,
			Amount:          dec(1),
		})
		assert.ErrorIs(t, err, shared.ErrOverPayment)
	})
}

func TestPurchaseService_Cancel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	supplier := env.seedParty(t, "Aceros SA", false, true)
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	product := env.seedProduct(t, "SKU-001", "Steel sheet", dec(80))
	cash := env.seedPaymentMethod(t, "Cash", "CASH")

	created, err := env.purchaseService.Create(ctx, env.tenantID, &tradeapp.CreatePurchaseRequest{
		SupplierID:  supplier.ID,
		WarehouseID: warehouse.ID,
		Items: []tradeapp.PurchaseItemRequest{
			{ProductID: &product.ID, Quantity: dec(10), UnitPrice: dec(100)},
		},
		Payments: []tradeapp.PurchasePaymentRequest{
			{PaymentMethodID: cash.ID, Amount: dec(200)},
		},
	})
	require.NoError(t, err)

	cancelled, err := env.purchaseService.Cancel(ctx, env.tenantID, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	// the received quantity was reversed with an OUT movement
	stock, err := env.stocks.FindByWarehouseAndProduct(ctx, env.tenantID, warehouse.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.IsZero())

	reversalType := inventory.DocumentTypePurchaseCancellation
	movements, _, err := env.stockMovements.FindForTenant(ctx, env.tenantID, inventory.StockMovementFilter{DocumentType: &reversalType})
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, inventory.MovementTypeOut, movements[0].MovementType)
	assert.True(t, movements[0].Quantity.Equal(dec(10)))

	// the payment and its supplier ledger movement stay on record
	assert.True(t, cancelled.PaidAmount.Equal(dec(200)))
	balance, err := env.ledgerService.GetBalance(ctx, env.tenantID, supplier.ID)
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(dec(-200)))

	_, err = env.purchaseService.Cancel(ctx, env.tenantID, created.ID, nil)
	assert.Error(t, err)
}

func TestPurchaseService_CancelFailsWhenStockConsumed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	supplier := env.seedParty(t, "Aceros SA", false, true)
	warehouse := env.seedWarehouse(t, "Central", "CEN")
	product := env.seedProduct(t, "SKU-001", "Steel sheet", dec(80))

	created, err := env.purchaseService.Create(ctx, env.tenantID, &tradeapp.CreatePurchaseRequest{
		SupplierID:  supplier.ID,
		WarehouseID: warehouse.ID,
		Items: []tradeapp.PurchaseItemRequest{
			{ProductID: &product.ID, Quantity: dec(10), UnitPrice: dec(100)},
		},
	})
	require.NoError(t, err)

	env.postStock(t, warehouse.ID, product.ID, "OUT", 6, 100)

	_, err = env.purchaseService.Cancel(ctx, env.tenantID, created.ID, nil)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)

	// the failed reversal left the purchase and the stock untouched
	current, err := env.purchaseService.GetByID(ctx, env.tenantID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", current.Status)

	stock, err := env.stocks.FindByWarehouseAndProduct(ctx, env.tenantID, warehouse.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, stock.Quantity.Equal(dec(4)))
}
