package persistence

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	catalogapp "github.com/comercio/backoffice/internal/application/catalog"
	inventoryapp "github.com/comercio/backoffice/internal/application/inventory"
	ledgerapp "github.com/comercio/backoffice/internal/application/ledger"
	partnerapp "github.com/comercio/backoffice/internal/application/partner"
	tradeapp "github.com/comercio/backoffice/internal/application/trade"
	"github.com/comercio/backoffice/internal/domain/catalog"
	"github.com/comercio/backoffice/internal/domain/inventory"
	"github.com/comercio/backoffice/internal/domain/ledger"
	"github.com/comercio/backoffice/internal/domain/partner"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/comercio/backoffice/internal/domain/trade"
)

// testEnv wires the full service stack against an in-memory SQLite database.
type testEnv struct {
	db       *Database
	tenantID uuid.UUID

	movements      *GormMovementRepository
	payments       *GormPaymentRepository
	outbox         *GormPostingOutboxRepository
	stocks         *GormWarehouseStockRepository
	stockMovements *GormStockMovementRepository
	purchases      *GormPurchaseRepository

	stockService      *inventoryapp.StockService
	adjustmentService *inventoryapp.AdjustmentService
	ledgerService     *ledgerapp.Service
	processor         *ledgerapp.PostingProcessor
	purchaseService   *tradeapp.PurchaseService
	partyService      *partnerapp.PartyService
	warehouseService  *partnerapp.WarehouseService
	productService    *catalogapp.ProductService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	// one in-memory database per test; a second pooled connection would
	// land on a different empty database
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gormDB.AutoMigrate(
		&partner.Party{},
		&partner.Warehouse{},
		&catalog.Product{},
		&catalog.PaymentMethod{},
		&shared.Sequence{},
		&ledger.Movement{},
		&ledger.Payment{},
		&ledger.PostingOutbox{},
		&inventory.WarehouseStock{},
		&inventory.StockMovement{},
		&inventory.StockAdjustment{},
		&inventory.StockAdjustmentItem{},
		&trade.Purchase{},
		&trade.PurchaseItem{},
		&trade.PurchasePayment{},
	))

	db := &Database{DB: gormDB}
	t.Cleanup(func() { _ = db.Close() })

	log := zap.NewNop()

	partyRepo := NewGormPartyRepository(gormDB)
	warehouseRepo := NewGormWarehouseRepository(gormDB)
	productRepo := NewGormProductRepository(gormDB)
	paymentMethodRepo := NewGormPaymentMethodRepository(gormDB)
	stockRepo := NewGormWarehouseStockRepository(gormDB)
	stockMovementRepo := NewGormStockMovementRepository(gormDB)
	adjustmentRepo := NewGormStockAdjustmentRepository(gormDB)
	movementRepo := NewGormMovementRepository(gormDB)
	paymentRepo := NewGormPaymentRepository(gormDB)
	outboxRepo := NewGormPostingOutboxRepository(gormDB)
	purchaseRepo := NewGormPurchaseRepository(gormDB)

	inventoryScope := NewGormInventoryTransactionScope(db)
	ledgerScope := NewGormLedgerTransactionScope(db)
	tradeScope := NewGormTradeTransactionScope(db)

	stockService := inventoryapp.NewStockService(inventoryScope, stockRepo, stockMovementRepo, productRepo, log)
	adjustmentService := inventoryapp.NewAdjustmentService(inventoryScope, adjustmentRepo, stockService, log)
	ledgerService := ledgerapp.NewService(ledgerScope, movementRepo, paymentRepo, partyRepo, paymentMethodRepo, log)
	processor := ledgerapp.NewPostingProcessor(ledgerScope, ledgerService, log)
	purchaseService := tradeapp.NewPurchaseService(tradeScope, purchaseRepo, warehouseRepo, stockService, processor, log)

	return &testEnv{
		db:                db,
		tenantID:          uuid.New(),
		movements:         movementRepo,
		payments:          paymentRepo,
		outbox:            outboxRepo,
		stocks:            stockRepo,
		stockMovements:    stockMovementRepo,
		purchases:         purchaseRepo,
		stockService:      stockService,
		adjustmentService: adjustmentService,
		ledgerService:     ledgerService,
		processor:         processor,
		purchaseService:   purchaseService,
		partyService:      partnerapp.NewPartyService(partyRepo, log),
		warehouseService:  partnerapp.NewWarehouseService(warehouseRepo, stockRepo, log),
		productService:    catalogapp.NewProductService(productRepo, log),
	}
}

func (e *testEnv) seedParty(t *testing.T, name string, isCustomer, isSupplier bool) *partner.Party {
	t.Helper()
	p, err := partner.NewParty(e.tenantID, name, isCustomer, isSupplier)
	require.NoError(t, err)
	require.NoError(t, e.db.DB.Create(p).Error)
	return p
}

func (e *testEnv) seedWarehouse(t *testing.T, name, code string) *partner.Warehouse {
	t.Helper()
	w, err := partner.NewWarehouse(e.tenantID, name, code)
	require.NoError(t, err)
	require.NoError(t, e.db.DB.Create(w).Error)
	return w
}

func (e *testEnv) seedProduct(t *testing.T, sku, name string, costPrice decimal.Decimal) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(e.tenantID, sku, name)
	require.NoError(t, err)
	p.WithPrices(costPrice, costPrice.Mul(decimal.NewFromInt(2)))
	require.NoError(t, e.db.DB.Create(p).Error)
	return p
}

func (e *testEnv) seedUntrackedProduct(t *testing.T, sku, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(e.tenantID, sku, name)
	require.NoError(t, err)
	p.WithoutStockTracking()
	require.NoError(t, e.db.DB.Create(p).Error)
	return p
}

func (e *testEnv) seedPaymentMethod(t *testing.T, name, code string) *catalog.PaymentMethod {
	t.Helper()
	m, err := catalog.NewPaymentMethod(e.tenantID, name, code)
	require.NoError(t, err)
	require.NoError(t, e.db.DB.Create(m).Error)
	return m
}

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}
