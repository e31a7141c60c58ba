package trade

import (
	"fmt"
	"time"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseStatus represents the status of a purchase document
type PurchaseStatus string

const (
	PurchaseStatusCompleted PurchaseStatus = "COMPLETED"
	PurchaseStatusCancelled PurchaseStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseStatus
func (s PurchaseStatus) IsValid() bool {
	return s == PurchaseStatusCompleted || s == PurchaseStatusCancelled
}

// String returns the string representation of PurchaseStatus
func (s PurchaseStatus) String() string {
	return string(s)
}

// PaymentStatus is derived from paid amount vs total amount
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// DerivePaymentStatus computes the payment status from paid vs total
func DerivePaymentStatus(paid, total decimal.Decimal) PaymentStatus {
	switch {
	case paid.IsZero():
		return PaymentStatusPending
	case paid.GreaterThanOrEqual(total):
		return PaymentStatusPaid
	default:
		return PaymentStatusPartial
	}
}

// PurchaseItem is a line item of a purchase document
type PurchaseItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	PurchaseID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID  *uuid.UUID `gorm:"type:uuid"`
	// Description is denormalized at creation so the document survives product edits
	Description     string          `gorm:"type:varchar(200);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	TaxRate         decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// NewPurchaseItem creates a line item and computes its totals:
// subtotal = qty * price * (1 - discount/100), tax = subtotal * taxRate/100.
func NewPurchaseItem(purchaseID uuid.UUID, productID *uuid.UUID, description string, quantity, unitPrice, discountPercent, taxRate decimal.Decimal) (*PurchaseItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Item description cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount percent must be between 0 and 100")
	}
	if taxRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	hundred := decimal.NewFromInt(100)
	subtotal := quantity.Mul(unitPrice).Mul(decimal.NewFromInt(1).Sub(discountPercent.Div(hundred)))
	taxAmount := subtotal.Mul(taxRate).Div(hundred)

	now := time.Now()
	return &PurchaseItem{
		ID:              uuid.New(),
		PurchaseID:      purchaseID,
		ProductID:       productID,
		Description:     description,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		DiscountPercent: discountPercent,
		TaxRate:         taxRate,
		Subtotal:        subtotal,
		TaxAmount:       taxAmount,
		LineTotal:       subtotal.Add(taxAmount),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// PurchasePayment records one payment applied to a purchase
type PurchasePayment struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentMethodID   uuid.UUID       `gorm:"type:uuid;not null"`
	PaymentMethodName string          `gorm:"type:varchar(100);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentDate       time.Time       `gorm:"not null"`
	Reference         string          `gorm:"type:varchar(100)"`
	Notes             string          `gorm:"type:varchar(500)"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchasePayment) TableName() string {
	return "purchase_payments"
}

// NewPurchasePayment creates a payment line
func NewPurchasePayment(purchaseID, paymentMethodID uuid.UUID, paymentMethodName string, amount decimal.Decimal, paymentDate time.Time) (*PurchasePayment, error) {
	if paymentMethodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	now := time.Now()
	return &PurchasePayment{
		ID:                uuid.New(),
		PurchaseID:        purchaseID,
		PaymentMethodID:   paymentMethodID,
		PaymentMethodName: paymentMethodName,
		Amount:            amount,
		PaymentDate:       paymentDate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// Purchase is the purchase document aggregate root. Cancellation flips the
// status and reverses stock; historical rows are never physically deleted.
type Purchase struct {
	shared.TenantAggregateRoot
	PurchaseNumber  string          `gorm:"type:varchar(30);not null;uniqueIndex:idx_purchase_tenant_number,priority:2"`
	SupplierID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	PurchaseDate    time.Time       `gorm:"not null"`
	Status          PurchaseStatus  `gorm:"type:varchar(20);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Subtotal        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	BalanceAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaymentStatus   PaymentStatus   `gorm:"type:varchar(20);not null"`
	Notes           string          `gorm:"type:varchar(500)"`
	CancelledAt     *time.Time
	Items           []PurchaseItem    `gorm:"foreignKey:PurchaseID;references:ID"`
	Payments        []PurchasePayment `gorm:"foreignKey:PurchaseID;references:ID"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new purchase document
func NewPurchase(tenantID uuid.UUID, purchaseNumber string, supplierID, warehouseID uuid.UUID, purchaseDate time.Time, discountPercent decimal.Decimal) (*Purchase, error) {
	if purchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Purchase number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount percent must be between 0 and 100")
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	return &Purchase{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		PurchaseNumber:      purchaseNumber,
		SupplierID:          supplierID,
		WarehouseID:         warehouseID,
		PurchaseDate:        purchaseDate,
		Status:              PurchaseStatusCompleted,
		DiscountPercent:     discountPercent,
		PaymentStatus:       PaymentStatusPending,
		Items:               make([]PurchaseItem, 0),
		Payments:            make([]PurchasePayment, 0),
	}, nil
}

// AddItem adds a line item and recalculates the document totals
func (p *Purchase) AddItem(productID *uuid.UUID, description string, quantity, unitPrice, discountPercent, taxRate decimal.Decimal) (*PurchaseItem, error) {
	if p.IsCancelled() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot modify a cancelled purchase")
	}

	item, err := NewPurchaseItem(p.ID, productID, description, quantity, unitPrice, discountPercent, taxRate)
	if err != nil {
		return nil, err
	}
	p.Items = append(p.Items, *item)
	p.recalculateTotals()
	return &p.Items[len(p.Items)-1], nil
}

// AddPayment applies a payment, guarding against overpayment
func (p *Purchase) AddPayment(paymentMethodID uuid.UUID, paymentMethodName string, amount decimal.Decimal, paymentDate time.Time) (*PurchasePayment, error) {
	if p.IsCancelled() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot pay a cancelled purchase")
	}
	if p.PaidAmount.Add(amount).GreaterThan(p.TotalAmount) {
		return nil, shared.ErrOverPayment
	}

	payment, err := NewPurchasePayment(p.ID, paymentMethodID, paymentMethodName, amount, paymentDate)
	if err != nil {
		return nil, err
	}
	p.Payments = append(p.Payments, *payment)
	p.PaidAmount = p.PaidAmount.Add(amount)
	p.BalanceAmount = p.TotalAmount.Sub(p.PaidAmount)
	p.PaymentStatus = DerivePaymentStatus(p.PaidAmount, p.TotalAmount)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return &p.Payments[len(p.Payments)-1], nil
}

// Cancel flips the purchase into its terminal cancelled state
func (p *Purchase) Cancel() error {
	if p.IsCancelled() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Purchase %s is already cancelled", p.PurchaseNumber))
	}
	now := time.Now()
	p.Status = PurchaseStatusCancelled
	p.CancelledAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()
	return nil
}

// recalculateTotals recomputes document totals from the line items:
// subtotal = sum(item subtotals) - document discount, total = subtotal + taxes.
func (p *Purchase) recalculateTotals() {
	hundred := decimal.NewFromInt(100)
	itemsSubtotal := decimal.Zero
	taxAmount := decimal.Zero
	for _, item := range p.Items {
		itemsSubtotal = itemsSubtotal.Add(item.Subtotal)
		taxAmount = taxAmount.Add(item.TaxAmount)
	}

	p.DiscountAmount = itemsSubtotal.Mul(p.DiscountPercent).Div(hundred)
	p.Subtotal = itemsSubtotal.Sub(p.DiscountAmount)
	p.TaxAmount = taxAmount
	p.TotalAmount = p.Subtotal.Add(p.TaxAmount)
	p.BalanceAmount = p.TotalAmount.Sub(p.PaidAmount)
	p.PaymentStatus = DerivePaymentStatus(p.PaidAmount, p.TotalAmount)
	p.UpdatedAt = time.Now()
}

// IsCancelled returns true once the purchase reached its terminal state
func (p *Purchase) IsCancelled() bool {
	return p.Status == PurchaseStatusCancelled
}

// ItemCount returns the number of line items
func (p *Purchase) ItemCount() int {
	return len(p.Items)
}
