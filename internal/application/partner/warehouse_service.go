package partner

import (
	"context"

	"github.com/comercio/backoffice/internal/domain/inventory"
	"github.com/comercio/backoffice/internal/domain/partner"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WarehouseService manages stock locations
type WarehouseService struct {
	warehouses partner.WarehouseRepository
	stocks     inventory.WarehouseStockRepository
	logger     *zap.Logger
}

// NewWarehouseService creates a new warehouse service
func NewWarehouseService(warehouses partner.WarehouseRepository, stocks inventory.WarehouseStockRepository, logger *zap.Logger) *WarehouseService {
	return &WarehouseService{
		warehouses: warehouses,
		stocks:     stocks,
		logger:     logger,
	}
}

// Create registers a new warehouse
func (s *WarehouseService) Create(ctx context.Context, tenantID uuid.UUID, req *CreateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := partner.NewWarehouse(tenantID, req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	warehouse.WithAddress(req.Address)
	if req.IsDefault {
		warehouse.MarkAsDefault()
	}

	if err := s.warehouses.Create(ctx, warehouse); err != nil {
		return nil, err
	}

	s.logger.Info("warehouse created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("warehouse_id", warehouse.ID.String()),
		zap.String("name", warehouse.Name))

	return toWarehouseResponse(warehouse), nil
}

// Update modifies a warehouse's reference data
func (s *WarehouseService) Update(ctx context.Context, tenantID, warehouseID uuid.UUID, req *UpdateWarehouseRequest) (*WarehouseResponse, error) {
	warehouse, err := s.warehouses.FindByIDForTenant(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}
	if err := warehouse.UpdateInfo(req.Name, req.Code, req.Address); err != nil {
		return nil, err
	}
	if err := s.warehouses.Save(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Delete removes a warehouse. A warehouse still holding stock cannot be
// deleted; its quantities must be moved or adjusted out first.
func (s *WarehouseService) Delete(ctx context.Context, tenantID, warehouseID uuid.UUID) error {
	if _, err := s.warehouses.FindByIDForTenant(ctx, tenantID, warehouseID); err != nil {
		return err
	}

	hasStock, err := s.stocks.HasPositiveStock(ctx, tenantID, warehouseID)
	if err != nil {
		return err
	}
	if hasStock {
		return shared.NewDomainError("INVALID_STATE", "Warehouse still holds stock")
	}

	if err := s.warehouses.Delete(ctx, tenantID, warehouseID); err != nil {
		return err
	}

	s.logger.Info("warehouse deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("warehouse_id", warehouseID.String()))
	return nil
}

// GetByID returns one warehouse
func (s *WarehouseService) GetByID(ctx context.Context, tenantID, warehouseID uuid.UUID) (*WarehouseResponse, error) {
	warehouse, err := s.warehouses.FindByIDForTenant(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List returns every warehouse of the tenant
func (s *WarehouseService) List(ctx context.Context, tenantID uuid.UUID) ([]WarehouseResponse, error) {
	warehouses, err := s.warehouses.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	items := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		items = append(items, *toWarehouseResponse(&warehouses[i]))
	}
	return items, nil
}
