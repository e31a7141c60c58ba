package persistence

import (
	"context"

	appledger "github.com/comercio/backoffice/internal/application/ledger"
	"github.com/comercio/backoffice/internal/domain/ledger"
	"github.com/comercio/backoffice/internal/domain/partner"
	"gorm.io/gorm"
)

// GormLedgerTransactionScope implements the ledger transaction scope using
// GORM transactions.
type GormLedgerTransactionScope struct {
	db *Database
}

// NewGormLedgerTransactionScope creates a new transaction scope
func NewGormLedgerTransactionScope(db *Database) *GormLedgerTransactionScope {
	return &GormLedgerTransactionScope{db: db}
}

// Execute runs the function inside one database transaction
func (s *GormLedgerTransactionScope) Execute(ctx context.Context, fn func(repos appledger.TransactionalRepositories) error) error {
	return s.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(newLedgerTxRepositories(tx))
	})
}

type ledgerTxRepositories struct {
	movements *GormMovementRepository
	payments  *GormPaymentRepository
	parties   *GormPartyRepository
	outbox    *GormPostingOutboxRepository
}

func newLedgerTxRepositories(tx *gorm.DB) *ledgerTxRepositories {
	return &ledgerTxRepositories{
		movements: NewGormMovementRepository(tx),
		payments:  NewGormPaymentRepository(tx),
		parties:   NewGormPartyRepository(tx),
		outbox:    NewGormPostingOutboxRepository(tx),
	}
}

func (r *ledgerTxRepositories) Movements() ledger.MovementRepository {
	return r.movements
}

func (r *ledgerTxRepositories) Payments() ledger.PaymentRepository {
	return r.payments
}

func (r *ledgerTxRepositories) Parties() partner.PartyRepository {
	return r.parties
}

func (r *ledgerTxRepositories) Outbox() ledger.PostingOutboxRepository {
	return r.outbox
}

var _ appledger.TransactionScope = (*GormLedgerTransactionScope)(nil)
var _ appledger.TransactionalRepositories = (*ledgerTxRepositories)(nil)
