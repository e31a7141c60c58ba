package inventory

import (
	"time"

	"github.com/comercio/backoffice/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostMovementRequest represents a request to post a stock movement
type PostMovementRequest struct {
	WarehouseID     uuid.UUID       `json:"warehouse_id" binding:"required"`
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	MovementType    string          `json:"movement_type" binding:"required,oneof=IN OUT"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	DocumentType    string          `json:"document_type"` // defaults to MANUAL
	DocumentID      *uuid.UUID      `json:"document_id"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
	OperatorID      *uuid.UUID      `json:"operator_id"`
}

// MovementResponse represents a stock movement in API responses
type MovementResponse struct {
	ID              uuid.UUID       `json:"id"`
	WarehouseID     uuid.UUID       `json:"warehouse_id"`
	ProductID       uuid.UUID       `json:"product_id"`
	MovementType    string          `json:"movement_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	DocumentType    string          `json:"document_type"`
	DocumentID      *uuid.UUID      `json:"document_id"`
	ReferenceNumber string          `json:"reference_number"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
}

// MovementListFilter represents filter options for the movement list
type MovementListFilter struct {
	WarehouseID  *uuid.UUID `form:"warehouse_id"`
	ProductID    *uuid.UUID `form:"product_id"`
	MovementType *string    `form:"movement_type" binding:"omitempty,oneof=IN OUT TRANSFER"`
	DocumentType *string    `form:"document_type"`
	DateFrom     *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo       *time.Time `form:"date_to" time_format:"2006-01-02"`
	Page         int        `form:"page"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// WarehouseStockLine is the per warehouse breakdown of a product's stock
type WarehouseStockLine struct {
	WarehouseID    uuid.UUID       `json:"warehouse_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	ReservedQty    decimal.Decimal `json:"reserved_qty"`
	AvailableQty   decimal.Decimal `json:"available_qty"`
	LastMovementAt *time.Time      `json:"last_movement_at,omitempty"`
}

// ProductStockResponse aggregates a product's stock across warehouses
type ProductStockResponse struct {
	ProductID     uuid.UUID            `json:"product_id"`
	ProductName   string               `json:"product_name"`
	SKU           string               `json:"sku"`
	TotalQuantity decimal.Decimal      `json:"total_quantity"`
	Warehouses    []WarehouseStockLine `json:"warehouses"`
}

// WarehouseStockItemLine is one product row held in a warehouse
type WarehouseStockItemLine struct {
	ProductID      uuid.UUID       `json:"product_id"`
	SKU            string          `json:"sku"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	ReservedQty    decimal.Decimal `json:"reserved_qty"`
	AvailableQty   decimal.Decimal `json:"available_qty"`
	LastMovementAt *time.Time      `json:"last_movement_at,omitempty"`
}

// WarehouseStockResponse lists the stock held in one warehouse
type WarehouseStockResponse struct {
	WarehouseID   uuid.UUID                `json:"warehouse_id"`
	TotalQuantity decimal.Decimal          `json:"total_quantity"`
	Items         []WarehouseStockItemLine `json:"items"`
}

// Stock level tags used in low stock reports
const (
	StockLevelOut = "out_of_stock"
	StockLevelLow = "low_stock"
)

// LowStockItemResponse is one row of the low stock report
type LowStockItemResponse struct {
	ProductID    uuid.UUID       `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Level        string          `json:"level"`
}

// KardexEntryResponse is one row of the product movement history with the
// running balance after the movement
type KardexEntryResponse struct {
	MovementID      uuid.UUID       `json:"movement_id"`
	WarehouseID     uuid.UUID       `json:"warehouse_id"`
	Date            time.Time       `json:"date"`
	MovementType    string          `json:"movement_type"`
	DocumentType    string          `json:"document_type"`
	ReferenceNumber string          `json:"reference_number"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Balance         decimal.Decimal `json:"balance"`
}

// KardexResponse is the product movement history report
type KardexResponse struct {
	ProductID       uuid.UUID             `json:"product_id"`
	WarehouseID     *uuid.UUID            `json:"warehouse_id,omitempty"`
	OpeningQuantity decimal.Decimal       `json:"opening_quantity"`
	ClosingQuantity decimal.Decimal       `json:"closing_quantity"`
	Entries         []KardexEntryResponse `json:"entries"`
}

// ValuationLineResponse is one product row of the stock valuation report
type ValuationLineResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	CostPrice decimal.Decimal `json:"cost_price"`
	Value     decimal.Decimal `json:"value"`
}

// ValuationResponse is the stock valuation report
type ValuationResponse struct {
	WarehouseID *uuid.UUID              `json:"warehouse_id,omitempty"`
	TotalValue  decimal.Decimal         `json:"total_value"`
	Lines       []ValuationLineResponse `json:"lines"`
}

// MovementsSummaryRow is one bucket of the movements summary report
type MovementsSummaryRow struct {
	MovementType  string          `json:"movement_type"`
	DocumentType  string          `json:"document_type"`
	Count         int64           `json:"count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// AdjustmentItemRequest is one counted line of an adjustment
type AdjustmentItemRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	AdjustedQty decimal.Decimal `json:"adjusted_qty"`
	Reason      string          `json:"reason"`
}

// CreateAdjustmentRequest represents a request to create a stock adjustment
type CreateAdjustmentRequest struct {
	WarehouseID uuid.UUID               `json:"warehouse_id" binding:"required"`
	Reason      string                  `json:"reason" binding:"required,min=1,max=500"`
	Items       []AdjustmentItemRequest `json:"items" binding:"required,min=1,dive"`
	OperatorID  *uuid.UUID              `json:"operator_id"`
}

// AdjustmentItemResponse represents an adjustment line in API responses
type AdjustmentItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	CurrentQty  decimal.Decimal `json:"current_qty"`
	AdjustedQty decimal.Decimal `json:"adjusted_qty"`
	Difference  decimal.Decimal `json:"difference"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	TotalValue  decimal.Decimal `json:"total_value"`
	Reason      string          `json:"reason"`
}

// AdjustmentResponse represents a stock adjustment in API responses
type AdjustmentResponse struct {
	ID               uuid.UUID                `json:"id"`
	AdjustmentNumber string                   `json:"adjustment_number"`
	WarehouseID      uuid.UUID                `json:"warehouse_id"`
	Status           string                   `json:"status"`
	TotalValue       decimal.Decimal          `json:"total_value"`
	Reason           string                   `json:"reason"`
	ApprovedBy       *uuid.UUID               `json:"approved_by,omitempty"`
	ApprovedAt       *time.Time               `json:"approved_at,omitempty"`
	Items            []AdjustmentItemResponse `json:"items"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// AdjustmentListFilter represents filter options for the adjustment list
type AdjustmentListFilter struct {
	Status   *string `form:"status" binding:"omitempty,oneof=DRAFT APPROVED CANCELLED"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func toMovementResponse(m *inventory.StockMovement) *MovementResponse {
	return &MovementResponse{
		ID:              m.ID,
		WarehouseID:     m.WarehouseID,
		ProductID:       m.ProductID,
		MovementType:    m.MovementType.String(),
		Quantity:        m.Quantity,
		UnitCost:        m.UnitCost,
		TotalCost:       m.TotalCost,
		DocumentType:    m.DocumentType.String(),
		DocumentID:      m.DocumentID,
		ReferenceNumber: m.ReferenceNumber,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
	}
}

func toAdjustmentResponse(a *inventory.StockAdjustment) *AdjustmentResponse {
	items := make([]AdjustmentItemResponse, 0, len(a.Items))
	for _, item := range a.Items {
		items = append(items, AdjustmentItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			CurrentQty:  item.CurrentQty,
			AdjustedQty: item.AdjustedQty,
			Difference:  item.Difference,
			UnitCost:    item.UnitCost,
			TotalValue:  item.TotalValue,
			Reason:      item.Reason,
		})
	}
	return &AdjustmentResponse{
		ID:               a.ID,
		AdjustmentNumber: a.AdjustmentNumber,
		WarehouseID:      a.WarehouseID,
		Status:           a.Status.String(),
		TotalValue:       a.TotalValue,
		Reason:           a.Reason,
		ApprovedBy:       a.ApprovedBy,
		ApprovedAt:       a.ApprovedAt,
		Items:            items,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
