package ledger

import (
	"context"

	"github.com/comercio/backoffice/internal/domain/ledger"
	"github.com/comercio/backoffice/internal/domain/partner"
)

// TransactionScope provides transactional access to the ledger repositories.
// A posting locks the party row first, so concurrent postings against the
// same party serialize and each one reads the committed previous balance.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to every repository a ledger
// posting touches, all scoped to the same underlying transaction.
type TransactionalRepositories interface {
	Movements() ledger.MovementRepository
	Payments() ledger.PaymentRepository
	Parties() partner.PartyRepository
	Outbox() ledger.PostingOutboxRepository
}

// NoOpTransactionScope runs the function without a real transaction.
type NoOpTransactionScope struct {
	movements ledger.MovementRepository
	payments  ledger.PaymentRepository
	parties   partner.PartyRepository
	outbox    ledger.PostingOutboxRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	movements ledger.MovementRepository,
	payments ledger.PaymentRepository,
	parties partner.PartyRepository,
	outbox ledger.PostingOutboxRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		movements: movements,
		payments:  payments,
		parties:   parties,
		outbox:    outbox,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Movements returns the party movement repository.
func (s *NoOpTransactionScope) Movements() ledger.MovementRepository {
	return s.movements
}

// Payments returns the party payment repository.
func (s *NoOpTransactionScope) Payments() ledger.PaymentRepository {
	return s.payments
}

// Parties returns the party repository.
func (s *NoOpTransactionScope) Parties() partner.PartyRepository {
	return s.parties
}

// Outbox returns the pending posting repository.
func (s *NoOpTransactionScope) Outbox() ledger.PostingOutboxRepository {
	return s.outbox
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
