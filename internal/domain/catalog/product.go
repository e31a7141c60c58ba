package catalog

import (
	"time"

	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable or purchasable article. CurrentStock is a
// denormalized total across warehouses, recomputed after every stock write.
type Product struct {
	shared.TenantAggregateRoot
	SKU          string          `gorm:"type:varchar(50);uniqueIndex:idx_product_tenant_sku,priority:2"`
	Name         string          `gorm:"type:varchar(200);not null;index"`
	Description  string          `gorm:"type:varchar(500)"`
	CostPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SalePrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TaxRate      decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CurrentStock decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStock     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TrackStock   bool            `gorm:"not null"`
	Active       bool            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, sku, name string) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}

	return &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SKU:                 sku,
		Name:                name,
		TrackStock:          true,
		Active:              true,
	}, nil
}

// WithPrices sets cost and sale prices
func (p *Product) WithPrices(costPrice, salePrice decimal.Decimal) *Product {
	p.CostPrice = costPrice
	p.SalePrice = salePrice
	return p
}

// WithTaxRate sets the default tax rate applied on documents
func (p *Product) WithTaxRate(taxRate decimal.Decimal) *Product {
	p.TaxRate = taxRate
	return p
}

// WithMinStock sets the low stock threshold
func (p *Product) WithMinStock(minStock decimal.Decimal) *Product {
	p.MinStock = minStock
	return p
}

// WithoutStockTracking disables stock movements for service items
func (p *Product) WithoutStockTracking() *Product {
	p.TrackStock = false
	return p
}

// UpdateCostPrice records the latest acquisition cost
func (p *Product) UpdateCostPrice(costPrice decimal.Decimal) error {
	if costPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost price cannot be negative")
	}
	p.CostPrice = costPrice
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// SetCurrentStock overwrites the denormalized stock total
func (p *Product) SetCurrentStock(quantity decimal.Decimal) {
	p.CurrentStock = quantity
	p.UpdatedAt = time.Now()
}

// IsLowStock reports whether stock fell to or below the threshold
func (p *Product) IsLowStock() bool {
	return p.TrackStock && p.MinStock.GreaterThan(decimal.Zero) && p.CurrentStock.LessThanOrEqual(p.MinStock)
}

// IsOutOfStock reports whether there is no stock at all
func (p *Product) IsOutOfStock() bool {
	return p.TrackStock && p.CurrentStock.LessThanOrEqual(decimal.Zero)
}

// Deactivate marks the product inactive
func (p *Product) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
