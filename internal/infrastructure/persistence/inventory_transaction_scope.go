package persistence

import (
	"context"

	appinventory "github.com/comercio/backoffice/internal/application/inventory"
	"github.com/comercio/backoffice/internal/domain/catalog"
	"github.com/comercio/backoffice/internal/domain/inventory"
	"github.com/comercio/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryTransactionScope implements the inventory transaction scope
// using GORM transactions.
type GormInventoryTransactionScope struct {
	db *Database
}

// NewGormInventoryTransactionScope creates a new transaction scope
func NewGormInventoryTransactionScope(db *Database) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the function inside one database transaction. Every
// repository handed to fn is bound to that transaction.
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newInventoryTxRepositories(tx))
	})
}

type inventoryTxRepositories struct {
	stocks      *GormWarehouseStockRepository
	movements   *GormStockMovementRepository
	adjustments *GormStockAdjustmentRepository
	products    *GormProductRepository
	sequences   *GormSequenceRepository
}

func newInventoryTxRepositories(tx *gorm.DB) *inventoryTxRepositories {
	return &inventoryTxRepositories{
		stocks:      NewGormWarehouseStockRepository(tx),
		movements:   NewGormStockMovementRepository(tx),
		adjustments: NewGormStockAdjustmentRepository(tx),
		products:    NewGormProductRepository(tx),
		sequences:   NewGormSequenceRepository(tx),
	}
}

func (r *inventoryTxRepositories) Stocks() inventory.WarehouseStockRepository {
	return r.stocks
}

func (r *inventoryTxRepositories) Movements() inventory.StockMovementRepository {
	return r.movements
}

func (r *inventoryTxRepositories) Adjustments() inventory.StockAdjustmentRepository {
	return r.adjustments
}

func (r *inventoryTxRepositories) Products() catalog.ProductRepository {
	return r.products
}

func (r *inventoryTxRepositories) Sequences() shared.SequenceRepository {
	return r.sequences
}

var _ appinventory.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*inventoryTxRepositories)(nil)
