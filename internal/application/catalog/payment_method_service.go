package catalog

import (
	"context"

	"github.com/comercio/backoffice/internal/domain/catalog"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentMethodService manages payment method reference data
type PaymentMethodService struct {
	methods catalog.PaymentMethodRepository
	logger  *zap.Logger
}

// NewPaymentMethodService creates a new payment method service
func NewPaymentMethodService(methods catalog.PaymentMethodRepository, logger *zap.Logger) *PaymentMethodService {
	return &PaymentMethodService{methods: methods, logger: logger}
}

// Create registers a new payment method
func (s *PaymentMethodService) Create(ctx context.Context, tenantID uuid.UUID, req *CreatePaymentMethodRequest) (*PaymentMethodResponse, error) {
	method, err := catalog.NewPaymentMethod(tenantID, req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	method.IsDefault = req.IsDefault

	if err := s.methods.Create(ctx, method); err != nil {
		return nil, err
	}

	s.logger.Info("payment method created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("payment_method_id", method.ID.String()),
		zap.String("name", method.Name))

	return toPaymentMethodResponse(method), nil
}

// GetByID returns one payment method
func (s *PaymentMethodService) GetByID(ctx context.Context, tenantID, methodID uuid.UUID) (*PaymentMethodResponse, error) {
	method, err := s.methods.FindByIDForTenant(ctx, tenantID, methodID)
	if err != nil {
		return nil, err
	}
	return toPaymentMethodResponse(method), nil
}

// List returns every payment method of the tenant
func (s *PaymentMethodService) List(ctx context.Context, tenantID uuid.UUID) ([]PaymentMethodResponse, error) {
	methods, err := s.methods.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	items := make([]PaymentMethodResponse, 0, len(methods))
	for i := range methods {
		items = append(items, *toPaymentMethodResponse(&methods[i]))
	}
	return items, nil
}
