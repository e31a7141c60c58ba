package inventory

import (
	"context"

	"github.com/comercio/backoffice/internal/domain/catalog"
	"github.com/comercio/backoffice/internal/domain/inventory"
	"github.com/comercio/backoffice/internal/domain/shared"
)

// TransactionScope provides transactional access to the stock repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to every repository a stock
// posting touches, all scoped to the same underlying transaction.
//
// The WarehouseStock row is the serialization point: postings lock it with
// FindForUpdate before reading, so a posting against the same
// (tenant, warehouse, product) either waits or sees the committed balance.
type TransactionalRepositories interface {
	Stocks() inventory.WarehouseStockRepository
	Movements() inventory.StockMovementRepository
	Adjustments() inventory.StockAdjustmentRepository
	Products() catalog.ProductRepository
	Sequences() shared.SequenceRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful for wiring tests against in-memory repositories.
type NoOpTransactionScope struct {
	stocks      inventory.WarehouseStockRepository
	movements   inventory.StockMovementRepository
	adjustments inventory.StockAdjustmentRepository
	products    catalog.ProductRepository
	sequences   shared.SequenceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	stocks inventory.WarehouseStockRepository,
	movements inventory.StockMovementRepository,
	adjustments inventory.StockAdjustmentRepository,
	products catalog.ProductRepository,
	sequences shared.SequenceRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		stocks:      stocks,
		movements:   movements,
		adjustments: adjustments,
		products:    products,
		sequences:   sequences,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Stocks returns the warehouse stock repository.
func (s *NoOpTransactionScope) Stocks() inventory.WarehouseStockRepository {
	return s.stocks
}

// Movements returns the stock movement repository.
func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository {
	return s.movements
}

// Adjustments returns the stock adjustment repository.
func (s *NoOpTransactionScope) Adjustments() inventory.StockAdjustmentRepository {
	return s.adjustments
}

// Products returns the product repository.
func (s *NoOpTransactionScope) Products() catalog.ProductRepository {
	return s.products
}

// Sequences returns the document number sequence repository.
func (s *NoOpTransactionScope) Sequences() shared.SequenceRepository {
	return s.sequences
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
