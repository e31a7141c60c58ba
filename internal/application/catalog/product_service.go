package catalog

import (
	"context"

	"github.com/comercio/backoffice/internal/domain/catalog"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService manages the product catalog
type ProductService struct {
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(products catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, logger: logger}
}

// Create registers a new product
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req *CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(tenantID, req.SKU, req.Name)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	product.WithPrices(req.CostPrice, req.SalePrice).WithTaxRate(req.TaxRate).WithMinStock(req.MinStock)
	if req.TrackStock != nil && !*req.TrackStock {
		product.WithoutStockTracking()
	}
	if req.OperatorID != nil {
		product.SetCreatedBy(*req.OperatorID)
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	return toProductResponse(product), nil
}

// Update modifies a product's reference data. Cost price and current stock
// are owned by the purchase and stock flows and are not editable here.
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req *UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	product.SKU = req.SKU
	product.Name = req.Name
	product.Description = req.Description
	product.SalePrice = req.SalePrice
	product.TaxRate = req.TaxRate
	product.MinStock = req.MinStock
	product.IncrementVersion()

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate marks a product inactive; its movement history stays intact
func (s *ProductService) Deactivate(ctx context.Context, tenantID, productID uuid.UUID) error {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return err
	}
	product.Deactivate()
	return s.products.Save(ctx, product)
}

// GetByID returns one product
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	page, err := s.products.FindAllForTenant(ctx, tenantID, catalog.ProductFilter{
		Search:   filter.Search,
		Active:   filter.Active,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *toProductResponse(&page.Items[i]))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}
