package trade

import (
	"context"

	appinventory "github.com/comercio/backoffice/internal/application/inventory"
	"github.com/comercio/backoffice/internal/domain/catalog"
	"github.com/comercio/backoffice/internal/domain/ledger"
	"github.com/comercio/backoffice/internal/domain/partner"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/comercio/backoffice/internal/domain/trade"
)

// TransactionScope provides transactional access to everything a purchase
// touches: the document itself, stock, the number sequence and the ledger
// posting outbox. One Execute call is one atomic purchase operation.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the purchase repositories,
// all scoped to the same underlying transaction. Inventory exposes the stock
// repositories in the same transaction so stock postings commit or roll back
// with the document.
type TransactionalRepositories interface {
	Purchases() trade.PurchaseRepository
	Parties() partner.PartyRepository
	PaymentMethods() catalog.PaymentMethodRepository
	Sequences() shared.SequenceRepository
	Outbox() ledger.PostingOutboxRepository
	Inventory() appinventory.TransactionalRepositories
}
