package ledger

import (
	"time"

	"github.com/comercio/backoffice/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostMovementRequest represents a request to post a party movement
type PostMovementRequest struct {
	EntityID     uuid.UUID       `json:"entity_id" binding:"required"`
	MovementType string          `json:"movement_type" binding:"required"`
	Nature       string          `json:"nature" binding:"required,oneof=DEBIT CREDIT"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	MovementDate *time.Time      `json:"movement_date"`
	Description  string          `json:"description"`
	SaleID       *uuid.UUID      `json:"sale_id"`
	PurchaseID   *uuid.UUID      `json:"purchase_id"`
	OperatorID   *uuid.UUID      `json:"operator_id"`
}

// PostInitialBalanceRequest opens a party's ledger with a starting balance
type PostInitialBalanceRequest struct {
	EntityID    uuid.UUID       `json:"entity_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Nature      string          `json:"nature" binding:"required,oneof=DEBIT CREDIT"`
	Description string          `json:"description"`
	OperatorID  *uuid.UUID      `json:"operator_id"`
}

// RegisterPaymentRequest represents a customer or supplier payment
type RegisterPaymentRequest struct {
	EntityID        uuid.UUID       `json:"entity_id" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethodID uuid.UUID       `json:"payment_method_id" binding:"required"`
	PaymentDate     *time.Time      `json:"payment_date"`
	Reference       string          `json:"reference"`
	ReferenceDate   *time.Time      `json:"reference_date"`
	Notes           string          `json:"notes"`
	OperatorID      *uuid.UUID      `json:"operator_id"`
}

// MovementResponse represents a party movement in API responses
type MovementResponse struct {
	ID           uuid.UUID       `json:"id"`
	EntityID     uuid.UUID       `json:"entity_id"`
	MovementType string          `json:"movement_type"`
	Nature       string          `json:"nature"`
	Amount       decimal.Decimal `json:"amount"`
	Balance      decimal.Decimal `json:"balance"`
	MovementDate time.Time       `json:"movement_date"`
	Description  string          `json:"description"`
	SaleID       *uuid.UUID      `json:"sale_id,omitempty"`
	PurchaseID   *uuid.UUID      `json:"purchase_id,omitempty"`
	PaymentID    *uuid.UUID      `json:"payment_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PaymentResponse represents a party payment in API responses
type PaymentResponse struct {
	ID                uuid.UUID       `json:"id"`
	EntityID          uuid.UUID       `json:"entity_id"`
	PaymentType       string          `json:"payment_type"`
	Amount            decimal.Decimal `json:"amount"`
	PaymentMethodID   uuid.UUID       `json:"payment_method_id"`
	PaymentMethodName string          `json:"payment_method_name"`
	PaymentDate       time.Time       `json:"payment_date"`
	Reference         string          `json:"reference"`
	Notes             string          `json:"notes"`
	// Balance is the party's running balance after the payment movement
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
}

// BalanceResponse is a party's current running balance with lifetime totals
type BalanceResponse struct {
	EntityID       uuid.UUID       `json:"entity_id"`
	Balance        decimal.Decimal `json:"balance"`
	TotalDebits    decimal.Decimal `json:"total_debits"`
	TotalCredits   decimal.Decimal `json:"total_credits"`
	MovementCount  int64           `json:"movement_count"`
	LastMovementAt *time.Time      `json:"last_movement_at,omitempty"`
}

// StatementFilter represents filter options for a party statement
type StatementFilter struct {
	DateFrom     *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo       *time.Time `form:"date_to" time_format:"2006-01-02"`
	MovementType *string    `form:"movement_type"`
	Page         int        `form:"page"`
	PageSize     int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// StatementResponse is a party's movement history with opening and closing
// balances for the requested window
type StatementResponse struct {
	EntityID       uuid.UUID          `json:"entity_id"`
	OpeningBalance decimal.Decimal    `json:"opening_balance"`
	TotalDebits    decimal.Decimal    `json:"total_debits"`
	TotalCredits   decimal.Decimal    `json:"total_credits"`
	ClosingBalance decimal.Decimal    `json:"closing_balance"`
	Movements      []MovementResponse `json:"movements"`
	Total          int64              `json:"total"`
	Page           int                `json:"page"`
	PageSize       int                `json:"page_size"`
}

// EntityBalanceResponse is one row of the balances listing
type EntityBalanceResponse struct {
	EntityID   uuid.UUID       `json:"entity_id"`
	Name       string          `json:"name"`
	IsCustomer bool            `json:"is_customer"`
	IsSupplier bool            `json:"is_supplier"`
	Balance    decimal.Decimal `json:"balance"`
}

func toMovementResponse(m *ledger.Movement) *MovementResponse {
	return &MovementResponse{
		ID:           m.ID,
		EntityID:     m.EntityID,
		MovementType: m.MovementType.String(),
		Nature:       m.Nature.String(),
		Amount:       m.Amount,
		Balance:      m.Balance,
		MovementDate: m.MovementDate,
		Description:  m.Description,
		SaleID:       m.SaleID,
		PurchaseID:   m.PurchaseID,
		PaymentID:    m.PaymentID,
		CreatedAt:    m.CreatedAt,
	}
}

func toPaymentResponse(p *ledger.Payment, balance decimal.Decimal) *PaymentResponse {
	return &PaymentResponse{
		ID:                p.ID,
		EntityID:          p.EntityID,
		PaymentType:       p.PaymentType.String(),
		Amount:            p.Amount,
		PaymentMethodID:   p.PaymentMethodID,
		PaymentMethodName: p.PaymentMethodName,
		PaymentDate:       p.PaymentDate,
		Reference:         p.Reference,
		Notes:             p.Notes,
		Balance:           balance,
		CreatedAt:         p.CreatedAt,
	}
}
