package trade

import (
	"time"

	"github.com/comercio/backoffice/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseItemRequest is one line of a purchase
type PurchaseItemRequest struct {
	ProductID       *uuid.UUID      `json:"product_id"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unit_price" binding:"required"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
}

// PurchasePaymentRequest is one payment applied at creation time
type PurchasePaymentRequest struct {
	PaymentMethodID uuid.UUID       `json:"payment_method_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate     *time.Time      `json:"payment_date"`
	Reference       string          `json:"reference"`
}

// CreatePurchaseRequest represents a request to register a purchase
type CreatePurchaseRequest struct {
	SupplierID      uuid.UUID                `json:"supplier_id" binding:"required"`
	WarehouseID     uuid.UUID                `json:"warehouse_id" binding:"required"`
	PurchaseDate    *time.Time               `json:"purchase_date"`
	DiscountPercent decimal.Decimal          `json:"discount_percent"`
	Notes           string                   `json:"notes"`
	Items           []PurchaseItemRequest    `json:"items" binding:"required,min=1,dive"`
	Payments        []PurchasePaymentRequest `json:"payments" binding:"omitempty,dive"`
	OperatorID      *uuid.UUID               `json:"operator_id"`
}

// AddPaymentRequest applies one payment to an existing purchase
type AddPaymentRequest struct {
	PaymentMethodID uuid.UUID       `json:"payment_method_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate     *time.Time      `json:"payment_date"`
	Reference       string          `json:"reference"`
	OperatorID      *uuid.UUID      `json:"operator_id"`
}

// PurchaseItemResponse represents a purchase line in API responses
type PurchaseItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       *uuid.UUID      `json:"product_id,omitempty"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	LineTotal       decimal.Decimal `json:"line_total"`
}

// PurchasePaymentResponse represents a purchase payment in API responses
type PurchasePaymentResponse struct {
	ID                uuid.UUID       `json:"id"`
	PaymentMethodID   uuid.UUID       `json:"payment_method_id"`
	PaymentMethodName string          `json:"payment_method_name"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentDate       time.Time       `json:"payment_date"`
	Reference         string          `json:"reference"`
}

// PurchaseResponse represents a purchase document in API responses
type PurchaseResponse struct {
	ID              uuid.UUID                 `json:"id"`
	PurchaseNumber  string                    `json:"purchase_number"`
	SupplierID      uuid.UUID                 `json:"supplier_id"`
	WarehouseID     uuid.UUID                 `json:"warehouse_id"`
	PurchaseDate    time.Time                 `json:"purchase_date"`
	Status          string                    `json:"status"`
	DiscountPercent decimal.Decimal           `json:"discount_percent"`
	Subtotal        decimal.Decimal           `json:"subtotal"`
	DiscountAmount  decimal.Decimal           `json:"discount_amount"`
	TaxAmount       decimal.Decimal           `json:"tax_amount"`
	TotalAmount     decimal.Decimal           `json:"total_amount"`
	PaidAmount      decimal.Decimal           `json:"paid_amount"`
	BalanceAmount   decimal.Decimal           `json:"balance_amount"`
	PaymentStatus   string                    `json:"payment_status"`
	Notes           string                    `json:"notes"`
	CancelledAt     *time.Time                `json:"cancelled_at,omitempty"`
	Items           []PurchaseItemResponse    `json:"items"`
	Payments        []PurchasePaymentResponse `json:"payments"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// PurchaseListFilter represents filter options for the purchase list
type PurchaseListFilter struct {
	SupplierID    *uuid.UUID `form:"supplier_id"`
	WarehouseID   *uuid.UUID `form:"warehouse_id"`
	Status        *string    `form:"status" binding:"omitempty,oneof=COMPLETED CANCELLED"`
	PaymentStatus *string    `form:"payment_status" binding:"omitempty,oneof=PENDING PARTIAL PAID"`
	DateFrom      *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo        *time.Time `form:"date_to" time_format:"2006-01-02"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// StatusSummaryResponse counts purchases per status
type StatusSummaryResponse struct {
	Statuses []StatusSummaryRow `json:"statuses"`
	Total    int64              `json:"total"`
}

// StatusSummaryRow is one bucket of the status summary
type StatusSummaryRow struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func toPurchaseResponse(p *trade.Purchase) *PurchaseResponse {
	items := make([]PurchaseItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, PurchaseItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			Description:     item.Description,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			TaxRate:         item.TaxRate,
			Subtotal:        item.Subtotal,
			TaxAmount:       item.TaxAmount,
			LineTotal:       item.LineTotal,
		})
	}
	payments := make([]PurchasePaymentResponse, 0, len(p.Payments))
	for _, payment := range p.Payments {
		payments = append(payments, PurchasePaymentResponse{
			ID:                payment.ID,
			PaymentMethodID:   payment.PaymentMethodID,
			PaymentMethodName: payment.PaymentMethodName,
			Amount:            payment.Amount,
			PaymentDate:       payment.PaymentDate,
			Reference:         payment.Reference,
		})
	}
	return &PurchaseResponse{
		ID:              p.ID,
		PurchaseNumber:  p.PurchaseNumber,
		SupplierID:      p.SupplierID,
		WarehouseID:     p.WarehouseID,
		PurchaseDate:    p.PurchaseDate,
		Status:          p.Status.String(),
		DiscountPercent: p.DiscountPercent,
		Subtotal:        p.Subtotal,
		DiscountAmount:  p.DiscountAmount,
		TaxAmount:       p.TaxAmount,
		TotalAmount:     p.TotalAmount,
		PaidAmount:      p.PaidAmount,
		BalanceAmount:   p.BalanceAmount,
		PaymentStatus:   p.PaymentStatus.String(),
		Notes:           p.Notes,
		CancelledAt:     p.CancelledAt,
		Items:           items,
		Payments:        payments,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
