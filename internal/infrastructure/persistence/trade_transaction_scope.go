package persistence

import (
	"context"

	appinventory "github.com/comercio/backoffice/internal/application/inventory"
	apptrade "github.com/comercio/backoffice/internal/application/trade"
	"github.com/comercio/backoffice/internal/domain/catalog"
	"github.com/comercio/backoffice/internal/domain/ledger"
	"github.com/comercio/backoffice/internal/domain/partner"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/comercio/backoffice/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTradeTransactionScope implements the trade transaction scope using
// GORM transactions. The inventory repositories it exposes share the same
// transaction, so a purchase and its stock postings commit together.
type GormTradeTransactionScope struct {
	db *Database
}

// NewGormTradeTransactionScope creates a new transaction scope
func NewGormTradeTransactionScope(db *Database) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the function inside one database transaction
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newTradeTxRepositories(tx))
	})
}

type tradeTxRepositories struct {
	purchases      *GormPurchaseRepository
	parties        *GormPartyRepository
	paymentMethods *GormPaymentMethodRepository
	sequences      *GormSequenceRepository
	outbox         *GormPostingOutboxRepository
	inventory      *inventoryTxRepositories
}

func newTradeTxRepositories(tx *gorm.DB) *tradeTxRepositories {
	return &tradeTxRepositories{
		purchases:      NewGormPurchaseRepository(tx),
		parties:        NewGormPartyRepository(tx),
		paymentMethods: NewGormPaymentMethodRepository(tx),
		sequences:      NewGormSequenceRepository(tx),
		outbox:         NewGormPostingOutboxRepository(tx),
		inventory:      newInventoryTxRepositories(tx),
	}
}

func (r *tradeTxRepositories) Purchases() trade.PurchaseRepository {
	return r.purchases
}

func (r *tradeTxRepositories) Parties() partner.PartyRepository {
	return r.parties
}

func (r *tradeTxRepositories) PaymentMethods() catalog.PaymentMethodRepository {
	return r.paymentMethods
}

func (r *tradeTxRepositories) Sequences() shared.SequenceRepository {
	return r.sequences
}

func (r *tradeTxRepositories) Outbox() ledger.PostingOutboxRepository {
	return r.outbox
}

func (r *tradeTxRepositories) Inventory() appinventory.TransactionalRepositories {
	return r.inventory
}

var _ apptrade.TransactionScope = (*GormTradeTransactionScope)(nil)
var _ apptrade.TransactionalRepositories = (*tradeTxRepositories)(nil)
