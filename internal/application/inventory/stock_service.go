package inventory

import (
	"context"
	"errors"

	"github.com/comercio/backoffice/internal/domain/catalog"
	"github.com/comercio/backoffice/internal/domain/inventory"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MovementCommand is the internal form of a stock posting. Other services
// build one when they post stock inside their own transaction.
type MovementCommand struct {
	TenantID        uuid.UUID
	WarehouseID     uuid.UUID
	ProductID       uuid.UUID
	MovementType    inventory.MovementType
	Quantity        decimal.Decimal
	UnitCost        decimal.Decimal
	DocumentType    inventory.DocumentType
	DocumentID      *uuid.UUID
	ReferenceNumber string
	Notes           string
	OperatorID      *uuid.UUID
}

// StockService handles stock postings and stock queries
type StockService struct {
	txScope   TransactionScope
	stocks    inventory.WarehouseStockRepository
	movements inventory.StockMovementRepository
	products  catalog.ProductRepository
	logger    *zap.Logger
}

// NewStockService creates a new stock service
func NewStockService(
	txScope TransactionScope,
	stocks inventory.WarehouseStockRepository,
	movements inventory.StockMovementRepository,
	products catalog.ProductRepository,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		txScope:   txScope,
		stocks:    stocks,
		movements: movements,
		products:  products,
		logger:    logger,
	}
}

// PostMovement posts one stock movement atomically: it locks the stock row,
// appends the movement, updates the derived quantities and refreshes the
// product's denormalized total.
func (s *StockService) PostMovement(ctx context.Context, tenantID uuid.UUID, req *PostMovementRequest) (*MovementResponse, error) {
	movementType := inventory.MovementType(req.MovementType)
	documentType := inventory.DocumentTypeManual
	if req.DocumentType != "" {
		documentType = inventory.DocumentType(req.DocumentType)
	}

	cmd := MovementCommand{
		TenantID:        tenantID,
		WarehouseID:     req.WarehouseID,
		ProductID:       req.ProductID,
		MovementType:    movementType,
		Quantity:        req.Quantity,
		UnitCost:        req.UnitCost,
		DocumentType:    documentType,
		DocumentID:      req.DocumentID,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		OperatorID:      req.OperatorID,
	}

	var movement *inventory.StockMovement
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		movement, txErr = s.ApplyMovement(ctx, repos, cmd)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock movement posted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("movement_id", movement.ID.String()),
		zap.String("product_id", cmd.ProductID.String()),
		zap.String("movement_type", movementType.String()),
		zap.String("quantity", cmd.Quantity.String()))

	return toMovementResponse(movement), nil
}

// ApplyMovement performs one stock posting inside an already open transaction
// scope. The caller owns the transaction; nothing is committed here.
func (s *StockService) ApplyMovement(ctx context.Context, repos TransactionalRepositories, cmd MovementCommand) (*inventory.StockMovement, error) {
	product, err := repos.Products().FindByIDForTenant(ctx, cmd.TenantID, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.TrackStock {
		return nil, shared.NewDomainError("STOCK_NOT_TRACKED", "Product does not track stock")
	}

	stock, err := repos.Stocks().FindForUpdate(ctx, cmd.TenantID, cmd.WarehouseID, cmd.ProductID)
	created := false
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if cmd.MovementType == inventory.MovementTypeOut {
			return nil, shared.ErrInsufficientStock
		}
		stock, err = inventory.NewWarehouseStock(cmd.TenantID, cmd.WarehouseID, cmd.ProductID)
		if err != nil {
			return nil, err
		}
		created = true
	}

	if err := stock.Apply(cmd.MovementType, cmd.Quantity); err != nil {
		return nil, err
	}

	movement, err := inventory.NewStockMovement(cmd.TenantID, cmd.WarehouseID, cmd.ProductID, cmd.MovementType, cmd.Quantity, cmd.UnitCost, cmd.DocumentType)
	if err != nil {
		return nil, err
	}
	if cmd.DocumentID != nil {
		movement.WithDocument(*cmd.DocumentID, cmd.ReferenceNumber)
	} else if cmd.ReferenceNumber != "" {
		movement.ReferenceNumber = cmd.ReferenceNumber
	}
	if cmd.Notes != "" {
		movement.WithNotes(cmd.Notes)
	}
	if cmd.OperatorID != nil {
		movement.WithOperatorID(*cmd.OperatorID)
	}

	if err := repos.Movements().Create(ctx, movement); err != nil {
		return nil, err
	}
	if created {
		err = repos.Stocks().Create(ctx, stock)
	} else {
		err = repos.Stocks().Save(ctx, stock)
	}
	if err != nil {
		return nil, err
	}

	return movement, s.refreshProductStock(ctx, repos, cmd.TenantID, cmd.ProductID)
}

// ApplyAbsoluteQuantity sets the stock row to an absolute quantity inside an
// open transaction. Used by the adjustment approval path, which records the
// counted quantity rather than a delta.
func (s *StockService) ApplyAbsoluteQuantity(ctx context.Context, repos TransactionalRepositories, tenantID, warehouseID, productID uuid.UUID, quantity decimal.Decimal) error {
	stock, err := repos.Stocks().FindForUpdate(ctx, tenantID, warehouseID, productID)
	created := false
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		stock, err = inventory.NewWarehouseStock(tenantID, warehouseID, productID)
		if err != nil {
			return err
		}
		created = true
	}

	if err := stock.SetQuantity(quantity); err != nil {
		return err
	}
	if created {
		err = repos.Stocks().Create(ctx, stock)
	} else {
		err = repos.Stocks().Save(ctx, stock)
	}
	if err != nil {
		return err
	}
	return s.refreshProductStock(ctx, repos, tenantID, productID)
}

// refreshProductStock recomputes the product's denormalized stock total from
// the warehouse rows.
func (s *StockService) refreshProductStock(ctx context.Context, repos TransactionalRepositories, tenantID, productID uuid.UUID) error {
	total, err := repos.Stocks().SumQuantityByProduct(ctx, tenantID, productID)
	if err != nil {
		return err
	}
	return repos.Products().UpdateCurrentStock(ctx, tenantID, productID, total)
}

// GetMovement returns a single stock movement
func (s *StockService) GetMovement(ctx context.Context, tenantID, movementID uuid.UUID) (*MovementResponse, error) {
	movement, err := s.movements.FindByIDForTenant(ctx, tenantID, movementID)
	if err != nil {
		return nil, err
	}
	return toMovementResponse(movement), nil
}

// ListMovements returns the stock movement log, newest first
func (s *StockService) ListMovements(ctx context.Context, tenantID uuid.UUID, filter MovementListFilter) (*shared.Paginated[MovementResponse], error) {
	domainFilter := inventory.StockMovementFilter{
		WarehouseID:  filter.WarehouseID,
		ProductID:    filter.ProductID,
		DocumentType: (*inventory.DocumentType)(filter.DocumentType),
		MovementType: (*inventory.MovementType)(filter.MovementType),
		DateFrom:     filter.DateFrom,
		DateTo:       filter.DateTo,
		Page:         filter.Page,
		PageSize:     filter.PageSize,
	}

	movements, total, err := s.movements.FindForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		items = append(items, *toMovementResponse(&movements[i]))
	}
	page, pageSize := normalizePage(filter.Page, filter.PageSize)
	result := shared.NewPaginated(items, total, page, pageSize)
	return &result, nil
}

// GetProductStock returns a product's stock broken down by warehouse
func (s *StockService) GetProductStock(ctx context.Context, tenantID, productID uuid.UUID) (*ProductStockResponse, error) {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	rows, err := s.stocks.FindByProduct(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	lines := make([]WarehouseStockLine, 0, len(rows))
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Quantity)
		lines = append(lines, WarehouseStockLine{
			WarehouseID:    row.WarehouseID,
			Quantity:       row.Quantity,
			ReservedQty:    row.ReservedQty,
			AvailableQty:   row.AvailableQty,
			LastMovementAt: row.LastMovementAt,
		})
	}

	return &ProductStockResponse{
		ProductID:     product.ID,
		ProductName:   product.Name,
		SKU:           product.SKU,
		TotalQuantity: total,
		Warehouses:    lines,
	}, nil
}

// GetWarehouseStock returns every stock row held in one warehouse
func (s *StockService) GetWarehouseStock(ctx context.Context, tenantID, warehouseID uuid.UUID) (*WarehouseStockResponse, error) {
	rows, err := s.stocks.FindByWarehouse(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
	}
	products, err := s.products.FindByIDsForTenant(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		names[products[i].ID] = &products[i]
	}

	lines := make([]WarehouseStockItemLine, 0, len(rows))
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Quantity)
		line := WarehouseStockItemLine{
			ProductID:      row.ProductID,
			Quantity:       row.Quantity,
			ReservedQty:    row.ReservedQty,
			AvailableQty:   row.AvailableQty,
			LastMovementAt: row.LastMovementAt,
		}
		if p, ok := names[row.ProductID]; ok {
			line.SKU = p.SKU
			line.ProductName = p.Name
		}
		lines = append(lines, line)
	}

	return &WarehouseStockResponse{
		WarehouseID:   warehouseID,
		TotalQuantity: total,
		Items:         lines,
	}, nil
}

// GetLowStock returns tracked products at or below their minimum threshold
func (s *StockService) GetLowStock(ctx context.Context, tenantID uuid.UUID) ([]LowStockItemResponse, error) {
	products, err := s.products.FindLowStock(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	items := make([]LowStockItemResponse, 0, len(products))
	for _, p := range products {
		level := StockLevelLow
		if p.IsOutOfStock() {
			level = StockLevelOut
		}
		items = append(items, LowStockItemResponse{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			Level:        level,
		})
	}
	return items, nil
}

// GetKardex replays a product's movement log chronologically and returns
// each movement with its running balance. The date window bounds the visible
// entries; earlier movements only contribute to the opening quantity.
func (s *StockService) GetKardex(ctx context.Context, tenantID, productID uuid.UUID, warehouseID *uuid.UUID, filter MovementListFilter) (*KardexResponse, error) {
	if _, err := s.products.FindByIDForTenant(ctx, tenantID, productID); err != nil {
		return nil, err
	}

	movements, err := s.movements.FindByProductChronological(ctx, tenantID, productID, inventory.StockMovementFilter{
		WarehouseID: warehouseID,
	})
	if err != nil {
		return nil, err
	}

	balance := decimal.Zero
	opening := decimal.Zero
	entries := make([]KardexEntryResponse, 0, len(movements))
	for i := range movements {
		m := &movements[i]
		balance = inventory.NextQuantity(balance, m.MovementType, m.Quantity)
		if filter.DateFrom != nil && m.CreatedAt.Before(*filter.DateFrom) {
			opening = balance
			continue
		}
		if filter.DateTo != nil && m.CreatedAt.After(*filter.DateTo) {
			continue
		}
		entries = append(entries, KardexEntryResponse{
			MovementID:      m.ID,
			WarehouseID:     m.WarehouseID,
			Date:            m.CreatedAt,
			MovementType:    m.MovementType.String(),
			DocumentType:    m.DocumentType.String(),
			ReferenceNumber: m.ReferenceNumber,
			Quantity:        m.SignedQuantity(),
			UnitCost:        m.UnitCost,
			Balance:         balance,
		})
	}

	closing := opening
	if len(entries) > 0 {
		closing = entries[len(entries)-1].Balance
	}

	return &KardexResponse{
		ProductID:       productID,
		WarehouseID:     warehouseID,
		OpeningQuantity: opening,
		ClosingQuantity: closing,
		Entries:         entries,
	}, nil
}

// GetValuation values current stock at each product's cost price
func (s *StockService) GetValuation(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) (*ValuationResponse, error) {
	var rows []inventory.WarehouseStock
	var err error
	if warehouseID != nil {
		rows, err = s.stocks.FindByWarehouse(ctx, tenantID, *warehouseID)
	} else {
		rows, _, err = s.stocks.FindAllForTenant(ctx, tenantID, shared.Filter{PageSize: -1})
	}
	if err != nil {
		return nil, err
	}

	quantities := make(map[uuid.UUID]decimal.Decimal)
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if _, seen := quantities[row.ProductID]; !seen {
			ids = append(ids, row.ProductID)
		}
		quantities[row.ProductID] = quantities[row.ProductID].Add(row.Quantity)
	}

	products, err := s.products.FindByIDsForTenant(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]ValuationLineResponse, 0, len(products))
	totalValue := decimal.Zero
	for _, p := range products {
		qty := quantities[p.ID]
		if qty.IsZero() {
			continue
		}
		value := qty.Mul(p.CostPrice)
		totalValue = totalValue.Add(value)
		lines = append(lines, ValuationLineResponse{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Quantity:  qty,
			CostPrice: p.CostPrice,
			Value:     value,
		})
	}

	return &ValuationResponse{
		WarehouseID: warehouseID,
		TotalValue:  totalValue,
		Lines:       lines,
	}, nil
}

// GetMovementsSummary groups movements by type inside the filter window
func (s *StockService) GetMovementsSummary(ctx context.Context, tenantID uuid.UUID, filter MovementListFilter) ([]MovementsSummaryRow, error) {
	rows, err := s.movements.Summarize(ctx, tenantID, inventory.StockMovementFilter{
		WarehouseID: filter.WarehouseID,
		ProductID:   filter.ProductID,
		DateFrom:    filter.DateFrom,
		DateTo:      filter.DateTo,
	})
	if err != nil {
		return nil, err
	}

	result := make([]MovementsSummaryRow, 0, len(rows))
	for _, row := range rows {
		result = append(result, MovementsSummaryRow{
			MovementType:  row.MovementType.String(),
			DocumentType:  row.DocumentType.String(),
			Count:         row.Count,
			TotalQuantity: row.TotalQuantity,
		})
	}
	return result, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
