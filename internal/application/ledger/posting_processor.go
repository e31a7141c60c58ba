package ledger

import (
	"context"

	"github.com/comercio/backoffice/internal/domain/ledger"
	"go.uber.org/zap"
)

// PostingProcessor drains the ledger posting outbox. Business transactions
// record their ledger side effects as outbox rows; the processor posts them
// after commit. A failed posting is logged and retried on later drains until
// it exhausts its attempts; it never invalidates the source document.
type PostingProcessor struct {
	txScope TransactionScope
	service *Service
	logger  *zap.Logger
}

// NewPostingProcessor creates a new posting processor
func NewPostingProcessor(txScope TransactionScope, service *Service, logger *zap.Logger) *PostingProcessor {
	return &PostingProcessor{
		txScope: txScope,
		service: service,
		logger:  logger,
	}
}

// ProcessPending claims up to limit retryable entries and posts them. The
// claim happens in its own transaction, so the inline drain after a purchase
// and the background ticker never pick up the same entry. Each posting then
// runs in its own transaction so one failure does not block the rest.
func (p *PostingProcessor) ProcessPending(ctx context.Context, limit int) (processed int, failed int, err error) {
	var entries []ledger.PostingOutbox
	err = p.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		entries, txErr = repos.Outbox().ClaimPending(ctx, limit)
		return txErr
	})
	if err != nil {
		return 0, 0, err
	}

	for i := range entries {
		if err := p.processEntry(ctx, &entries[i]); err != nil {
			failed++
			p.logger.Warn("ledger posting failed",
				zap.String("outbox_id", entries[i].ID.String()),
				zap.String("tenant_id", entries[i].TenantID.String()),
				zap.String("entity_id", entries[i].EntityID.String()),
				zap.Error(err))
			continue
		}
		processed++
	}

	if processed > 0 || failed > 0 {
		p.logger.Info("ledger posting outbox drained",
			zap.Int("processed", processed),
			zap.Int("failed", failed))
	}
	return processed, failed, nil
}

func (p *PostingProcessor) processEntry(ctx context.Context, entry *ledger.PostingOutbox) error {
	postErr := p.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		cmd := MovementCommand{
			TenantID:     entry.TenantID,
			EntityID:     entry.EntityID,
			MovementType: entry.MovementType,
			Nature:       entry.Nature,
			Amount:       entry.Amount,
			MovementDate: entry.MovementDate,
			Description:  entry.Description,
			PurchaseID:   entry.PurchaseID,
			PaymentID:    entry.PaymentID,
			OperatorID:   entry.OperatorID,
		}
		if _, err := p.service.ApplyMovement(ctx, repos, cmd); err != nil {
			return err
		}
		entry.MarkPosted()
		return repos.Outbox().Save(ctx, entry)
	})
	if postErr == nil {
		return nil
	}

	entry.MarkFailed(postErr.Error())
	if saveErr := p.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.Outbox().Save(ctx, entry)
	}); saveErr != nil {
		p.logger.Error("could not record outbox failure",
			zap.String("outbox_id", entry.ID.String()),
			zap.Error(saveErr))
	}
	return postErr
}
