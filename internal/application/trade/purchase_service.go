package trade

import (
	"context"
	"fmt"
	"time"

	appinventory "github.com/comercio/backoffice/internal/application/inventory"
	appledger "github.com/comercio/backoffice/internal/application/ledger"
	"github.com/comercio/backoffice/internal/domain/inventory"
	"github.com/comercio/backoffice/internal/domain/ledger"
	"github.com/comercio/backoffice/internal/domain/partner"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/comercio/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PurchaseService orchestrates purchases: the document, its stock entries
// and cost updates commit atomically; the supplier ledger postings are
// recorded in the outbox inside the same transaction and posted best effort
// after commit.
type PurchaseService struct {
	txScope      TransactionScope
	purchases    trade.PurchaseRepository
	warehouses   partner.WarehouseRepository
	stockService *appinventory.StockService
	processor    *appledger.PostingProcessor
	logger       *zap.Logger
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	txScope TransactionScope,
	purchases trade.PurchaseRepository,
	warehouses partner.WarehouseRepository,
	stockService *appinventory.StockService,
	processor *appledger.PostingProcessor,
	logger *zap.Logger,
) *PurchaseService {
	return &PurchaseService{
		txScope:      txScope,
		purchases:    purchases,
		warehouses:   warehouses,
		stockService: stockService,
		processor:    processor,
		logger:       logger,
	}
}

// Create registers a purchase. The document, its stock IN movements, the
// product cost updates and the outbox rows for the supplier ledger are one
// transaction; a failure in any of them rolls everything back.
func (s *PurchaseService) Create(ctx context.Context, tenantID uuid.UUID, req *CreatePurchaseRequest) (*PurchaseResponse, error) {
	if _, err := s.warehouses.FindByIDForTenant(ctx, tenantID, req.WarehouseID); err != nil {
		return nil, err
	}

	purchaseDate := time.Now()
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}

	var purchase *trade.Purchase
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		supplier, err := repos.Parties().FindByIDForTenant(ctx, tenantID, req.SupplierID)
		if err != nil {
			return err
		}
		if !supplier.IsSupplier {
			return shared.NewDomainError("INVALID_ROLE", "Party is not a supplier")
		}

		next, err := repos.Sequences().Next(ctx, tenantID, shared.SeriesPurchase)
		if err != nil {
			return err
		}
		number := shared.FormatDocumentNumber(shared.SeriesPurchase, next)

		purchase, err = trade.NewPurchase(tenantID, number, req.SupplierID, req.WarehouseID, purchaseDate, req.DiscountPercent)
		if err != nil {
			return err
		}
		purchase.Notes = req.Notes
		if req.OperatorID != nil {
			purchase.SetCreatedBy(*req.OperatorID)
		}

		for _, line := range req.Items {
			description := line.Description
			taxRate := line.TaxRate
			if line.ProductID != nil {
				product, err := repos.Inventory().Products().FindByIDForTenant(ctx, tenantID, *line.ProductID)
				if err != nil {
					return err
				}
				if description == "" {
					description = product.Name
				}
				if taxRate.IsZero() {
					taxRate = product.TaxRate
				}
			}
			if _, err := purchase.AddItem(line.ProductID, description, line.Quantity, line.UnitPrice, line.DiscountPercent, taxRate); err != nil {
				return err
			}
		}

		for _, pay := range req.Payments {
			method, err := repos.PaymentMethods().FindByIDForTenant(ctx, tenantID, pay.PaymentMethodID)
			if err != nil {
				return err
			}
			paymentDate := purchaseDate
			if pay.PaymentDate != nil {
				paymentDate = *pay.PaymentDate
			}
			payment, err := purchase.AddPayment(method.ID, method.Name, pay.Amount, paymentDate)
			if err != nil {
				return err
			}
			payment.Reference = pay.Reference
		}

		if err := repos.Purchases().Create(ctx, purchase); err != nil {
			return err
		}

		for i := range purchase.Items {
			if err := s.receiveItem(ctx, repos, purchase, &purchase.Items[i], req.OperatorID); err != nil {
				return err
			}
		}

		for i := range purchase.Payments {
			if err := s.enqueuePaymentPosting(ctx, repos, purchase, &purchase.Payments[i], req.OperatorID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("purchase_number", purchase.PurchaseNumber),
		zap.String("total_amount", purchase.TotalAmount.String()),
		zap.String("payment_status", purchase.PaymentStatus.String()))

	s.drainOutbox(ctx)
	return toPurchaseResponse(purchase), nil
}

// AddPayment applies one payment to an existing purchase and enqueues its
// supplier ledger posting.
func (s *PurchaseService) AddPayment(ctx context.Context, tenantID, purchaseID uuid.UUID, req *AddPaymentRequest) (*PurchaseResponse, error) {
	var purchase *trade.Purchase
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		purchase, err = repos.Purchases().FindForUpdate(ctx, tenantID, purchaseID)
		if err != nil {
			return err
		}

		method, err := repos.PaymentMethods().FindByIDForTenant(ctx, tenantID, req.PaymentMethodID)
		if err != nil {
			return err
		}
		paymentDate := time.Now()
		if req.PaymentDate != nil {
			paymentDate = *req.PaymentDate
		}

		payment, err := purchase.AddPayment(method.ID, method.Name, req.Amount, paymentDate)
		if err != nil {
			return err
		}
		payment.Reference = req.Reference

		if err := repos.Purchases().Save(ctx, purchase); err != nil {
			return err
		}
		return s.enqueuePaymentPosting(ctx, repos, purchase, payment, req.OperatorID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase payment added",
		zap.String("tenant_id", tenantID.String()),
		zap.String("purchase_number", purchase.PurchaseNumber),
		zap.String("amount", req.Amount.String()),
		zap.String("payment_status", purchase.PaymentStatus.String()))

	s.drainOutbox(ctx)
	return toPurchaseResponse(purchase), nil
}

// Cancel reverses a purchase's stock with OUT movements and flips the
// document to CANCELLED. If the reversal would drive any stock row negative
// the whole cancellation fails. Payments and supplier ledger movements are
// not reversed; corrections there are explicit follow-up postings.
func (s *PurchaseService) Cancel(ctx context.Context, tenantID, purchaseID uuid.UUID, operatorID *uuid.UUID) (*PurchaseResponse, error) {
	var purchase *trade.Purchase
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		purchase, err = repos.Purchases().FindForUpdate(ctx, tenantID, purchaseID)
		if err != nil {
			return err
		}
		if err := purchase.Cancel(); err != nil {
			return err
		}

		for i := range purchase.Items {
			item := &purchase.Items[i]
			if item.ProductID == nil {
				continue
			}
			product, err := repos.Inventory().Products().FindByIDForTenant(ctx, tenantID, *item.ProductID)
			if err != nil {
				return err
			}
			if !product.TrackStock {
				continue
			}
			cmd := appinventory.MovementCommand{
				TenantID:        tenantID,
				WarehouseID:     purchase.WarehouseID,
				ProductID:       *item.ProductID,
				MovementType:    inventory.MovementTypeOut,
				Quantity:        item.Quantity,
				UnitCost:        item.UnitPrice,
				DocumentType:    inventory.DocumentTypePurchaseCancellation,
				DocumentID:      &purchase.ID,
				ReferenceNumber: purchase.PurchaseNumber,
				OperatorID:      operatorID,
			}
			if _, err := s.stockService.ApplyMovement(ctx, repos.Inventory(), cmd); err != nil {
				return err
			}
		}

		return repos.Purchases().Save(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	if purchase.PaidAmount.IsPositive() {
		s.logger.Warn("purchase cancelled with payments on record, supplier ledger not reversed",
			zap.String("tenant_id", tenantID.String()),
			zap.String("purchase_number", purchase.PurchaseNumber),
			zap.String("paid_amount", purchase.PaidAmount.String()))
	}
	s.logger.Info("purchase cancelled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("purchase_number", purchase.PurchaseNumber))

	return toPurchaseResponse(purchase), nil
}

// GetByID returns one purchase with its items and payments
func (s *PurchaseService) GetByID(ctx context.Context, tenantID, purchaseID uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchases.FindByIDForTenant(ctx, tenantID, purchaseID)
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase), nil
}

// List returns purchases for the tenant, newest first
func (s *PurchaseService) List(ctx context.Context, tenantID uuid.UUID, filter PurchaseListFilter) (*shared.Paginated[PurchaseResponse], error) {
	domainFilter := trade.PurchaseFilter{
		SupplierID:    filter.SupplierID,
		WarehouseID:   filter.WarehouseID,
		Status:        (*trade.PurchaseStatus)(filter.Status),
		PaymentStatus: (*trade.PaymentStatus)(filter.PaymentStatus),
		DateFrom:      filter.DateFrom,
		DateTo:        filter.DateTo,
		Page:          filter.Page,
		PageSize:      filter.PageSize,
	}

	page, err := s.purchases.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]PurchaseResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *toPurchaseResponse(&page.Items[i]))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}

// GetStatusSummary counts purchases per status
func (s *PurchaseService) GetStatusSummary(ctx context.Context, tenantID uuid.UUID) (*StatusSummaryResponse, error) {
	counts, err := s.purchases.CountByStatus(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	rows := make([]StatusSummaryRow, 0, len(counts))
	var total int64
	for _, c := range counts {
		total += c.Count
		rows = append(rows, StatusSummaryRow{Status: c.Status.String(), Count: c.Count})
	}
	return &StatusSummaryResponse{Statuses: rows, Total: total}, nil
}

// receiveItem posts the stock IN movement for one line and records the new
// acquisition cost on the product. Lines without a product, or whose product
// does not track stock, affect only the document totals.
func (s *PurchaseService) receiveItem(ctx context.Context, repos TransactionalRepositories, purchase *trade.Purchase, item *trade.PurchaseItem, operatorID *uuid.UUID) error {
	if item.ProductID == nil {
		return nil
	}
	product, err := repos.Inventory().Products().FindByIDForTenant(ctx, purchase.TenantID, *item.ProductID)
	if err != nil {
		return err
	}
	if !product.TrackStock {
		return nil
	}

	cmd := appinventory.MovementCommand{
		TenantID:        purchase.TenantID,
		WarehouseID:     purchase.WarehouseID,
		ProductID:       *item.ProductID,
		MovementType:    inventory.MovementTypeIn,
		Quantity:        item.Quantity,
		UnitCost:        item.UnitPrice,
		DocumentType:    inventory.DocumentTypePurchase,
		DocumentID:      &purchase.ID,
		ReferenceNumber: purchase.PurchaseNumber,
		OperatorID:      operatorID,
	}
	if _, err := s.stockService.ApplyMovement(ctx, repos.Inventory(), cmd); err != nil {
		return err
	}
	return repos.Inventory().Products().UpdateCostPrice(ctx, purchase.TenantID, *item.ProductID, item.UnitPrice)
}

// enqueuePaymentPosting records the supplier CREDIT movement as an outbox
// row inside the purchase transaction.
func (s *PurchaseService) enqueuePaymentPosting(ctx context.Context, repos TransactionalRepositories, purchase *trade.Purchase, payment *trade.PurchasePayment, operatorID *uuid.UUID) error {
	entry := ledger.NewPostingOutbox(purchase.TenantID, purchase.SupplierID, ledger.MovementTypePurchasePayment, ledger.NatureCredit, payment.Amount, payment.PaymentDate).
		WithPurchase(purchase.ID, &payment.ID).
		WithDescription(fmt.Sprintf("Payment %s %s", purchase.PurchaseNumber, payment.PaymentMethodName))
	if operatorID != nil {
		entry.WithOperatorID(*operatorID)
	}
	return repos.Outbox().Create(ctx, entry)
}

// drainOutbox posts pending ledger entries after a commit. Failures are
// logged by the processor and retried on the next drain.
func (s *PurchaseService) drainOutbox(ctx context.Context) {
	if s.processor == nil {
		return
	}
	if _, _, err := s.processor.ProcessPending(ctx, 100); err != nil {
		s.logger.Warn("ledger posting outbox drain failed", zap.Error(err))
	}
}
