package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/comercio/backoffice/internal/domain/inventory"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AdjustmentService drives the stock adjustment workflow:
// draft creation, approval (which posts the movements) and cancellation.
type AdjustmentService struct {
	txScope      TransactionScope
	adjustments  inventory.StockAdjustmentRepository
	stockService *StockService
	logger       *zap.Logger
}

// NewAdjustmentService creates a new adjustment service
func NewAdjustmentService(
	txScope TransactionScope,
	adjustments inventory.StockAdjustmentRepository,
	stockService *StockService,
	logger *zap.Logger,
) *AdjustmentService {
	return &AdjustmentService{
		txScope:      txScope,
		adjustments:  adjustments,
		stockService: stockService,
		logger:       logger,
	}
}

// Create opens a draft adjustment. Every item captures the system quantity
// and the product cost at creation time, so the document records what the
// count was reconciled against.
func (s *AdjustmentService) Create(ctx context.Context, tenantID uuid.UUID, req *CreateAdjustmentRequest) (*AdjustmentResponse, error) {
	var adjustment *inventory.StockAdjustment
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		next, err := repos.Sequences().Next(ctx, tenantID, shared.SeriesAdjustment)
		if err != nil {
			return err
		}
		number := shared.FormatDocumentNumber(shared.SeriesAdjustment, next)

		adjustment, err = inventory.NewStockAdjustment(tenantID, req.WarehouseID, number, req.Reason)
		if err != nil {
			return err
		}
		if req.OperatorID != nil {
			adjustment.SetCreatedBy(*req.OperatorID)
		}

		for _, item := range req.Items {
			product, err := repos.Products().FindByIDForTenant(ctx, tenantID, item.ProductID)
			if err != nil {
				return err
			}
			if !product.TrackStock {
				return shared.NewDomainError("STOCK_NOT_TRACKED", fmt.Sprintf("Product %s does not track stock", product.Name))
			}

			currentQty := decimal.Zero
			stock, err := repos.Stocks().FindByWarehouseAndProduct(ctx, tenantID, req.WarehouseID, item.ProductID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if stock != nil {
				currentQty = stock.Quantity
			}

			if _, err := adjustment.AddItem(item.ProductID, currentQty, item.AdjustedQty, product.CostPrice, item.Reason); err != nil {
				return err
			}
		}

		return repos.Adjustments().Create(ctx, adjustment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjustment created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("adjustment_number", adjustment.AdjustmentNumber),
		zap.Int("items", len(adjustment.Items)))

	return toAdjustmentResponse(adjustment), nil
}

// Approve transitions a draft adjustment to APPROVED. Every item has its
// stock row set to the counted quantity, all inside one transaction. The
// movement covers the delta against the live quantity, not the draft-time
// snapshot, so quantities that drifted between count and approval still land
// exactly on the counted value.
func (s *AdjustmentService) Approve(ctx context.Context, tenantID, adjustmentID, approvedBy uuid.UUID) (*AdjustmentResponse, error) {
	var adjustment *inventory.StockAdjustment
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		adjustment, err = repos.Adjustments().FindForUpdate(ctx, tenantID, adjustmentID)
		if err != nil {
			return err
		}

		if err := adjustment.Approve(approvedBy); err != nil {
			return err
		}

		for i := range adjustment.Items {
			item := &adjustment.Items[i]

			liveQty := decimal.Zero
			stock, err := repos.Stocks().FindForUpdate(ctx, tenantID, adjustment.WarehouseID, item.ProductID)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return err
			}
			if stock != nil {
				liveQty = stock.Quantity
			}

			delta := item.AdjustedQty.Sub(liveQty)
			if !delta.IsZero() {
				movementType := inventory.MovementTypeIn
				if delta.IsNegative() {
					movementType = inventory.MovementTypeOut
				}
				cmd := MovementCommand{
					TenantID:        tenantID,
					WarehouseID:     adjustment.WarehouseID,
					ProductID:       item.ProductID,
					MovementType:    movementType,
					Quantity:        delta.Abs(),
					UnitCost:        item.UnitCost,
					DocumentType:    inventory.DocumentTypeAdjustment,
					DocumentID:      &adjustment.ID,
					ReferenceNumber: adjustment.AdjustmentNumber,
					Notes:           item.Reason,
					OperatorID:      &approvedBy,
				}
				if _, err := s.stockService.ApplyMovement(ctx, repos, cmd); err != nil {
					return err
				}
			}
			// the movement already brought the row to the counted quantity;
			// SetQuantity pins it explicitly
			if err := s.stockService.ApplyAbsoluteQuantity(ctx, repos, tenantID, adjustment.WarehouseID, item.ProductID, item.AdjustedQty); err != nil {
				return err
			}
		}

		return repos.Adjustments().Save(ctx, adjustment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjustment approved",
		zap.String("tenant_id", tenantID.String()),
		zap.String("adjustment_number", adjustment.AdjustmentNumber),
		zap.String("approved_by", approvedBy.String()))

	return toAdjustmentResponse(adjustment), nil
}

// Cancel discards a draft adjustment without touching stock
func (s *AdjustmentService) Cancel(ctx context.Context, tenantID, adjustmentID uuid.UUID) (*AdjustmentResponse, error) {
	var adjustment *inventory.StockAdjustment
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		adjustment, err = repos.Adjustments().FindForUpdate(ctx, tenantID, adjustmentID)
		if err != nil {
			return err
		}
		if err := adjustment.Cancel(); err != nil {
			return err
		}
		return repos.Adjustments().Save(ctx, adjustment)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjustment cancelled",
		zap.String("tenant_id", tenantID.String()),
		zap.String("adjustment_number", adjustment.AdjustmentNumber))

	return toAdjustmentResponse(adjustment), nil
}

// GetByID returns one adjustment with its items
func (s *AdjustmentService) GetByID(ctx context.Context, tenantID, adjustmentID uuid.UUID) (*AdjustmentResponse, error) {
	adjustment, err := s.adjustments.FindByIDForTenant(ctx, tenantID, adjustmentID)
	if err != nil {
		return nil, err
	}
	return toAdjustmentResponse(adjustment), nil
}

// List returns adjustments for the tenant, newest first
func (s *AdjustmentService) List(ctx context.Context, tenantID uuid.UUID, filter AdjustmentListFilter) (*shared.Paginated[AdjustmentResponse], error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	if filter.Status != nil {
		domainFilter.Filters = map[string]interface{}{"status": *filter.Status}
	}
	domainFilter.Normalize("created_at")

	adjustments, total, err := s.adjustments.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]AdjustmentResponse, 0, len(adjustments))
	for i := range adjustments {
		items = append(items, *toAdjustmentResponse(&adjustments[i]))
	}
	result := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}
