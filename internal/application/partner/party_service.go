package partner

import (
	"context"

	"github.com/comercio/backoffice/internal/domain/partner"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PartyService manages the counterparty reference data
type PartyService struct {
	parties partner.PartyRepository
	logger  *zap.Logger
}

// NewPartyService creates a new party service
func NewPartyService(parties partner.PartyRepository, logger *zap.Logger) *PartyService {
	return &PartyService{parties: parties, logger: logger}
}

// Create registers a new party
func (s *PartyService) Create(ctx context.Context, tenantID uuid.UUID, req *CreatePartyRequest) (*PartyResponse, error) {
	if req.TaxID != "" {
		exists, err := s.parties.ExistsByTaxID(ctx, tenantID, req.TaxID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A party with this tax ID already exists")
		}
	}

	party, err := partner.NewParty(tenantID, req.Name, req.IsCustomer, req.IsSupplier)
	if err != nil {
		return nil, err
	}
	party.WithTaxID(req.TaxID).WithContact(req.Email, req.Phone, req.Address)
	if req.OperatorID != nil {
		party.SetCreatedBy(*req.OperatorID)
	}

	if err := s.parties.Create(ctx, party); err != nil {
		return nil, err
	}

	s.logger.Info("party created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("party_id", party.ID.String()),
		zap.String("name", party.Name))

	return toPartyResponse(party), nil
}

// Update modifies a party's reference data
func (s *PartyService) Update(ctx context.Context, tenantID, partyID uuid.UUID, req *UpdatePartyRequest) (*PartyResponse, error) {
	party, err := s.parties.FindByIDForTenant(ctx, tenantID, partyID)
	if err != nil {
		return nil, err
	}

	if err := party.UpdateInfo(req.Name, req.TaxID, req.Email, req.Phone, req.Address); err != nil {
		return nil, err
	}
	if req.IsCustomer != nil || req.IsSupplier != nil {
		isCustomer := party.IsCustomer
		isSupplier := party.IsSupplier
		if req.IsCustomer != nil {
			isCustomer = *req.IsCustomer
		}
		if req.IsSupplier != nil {
			isSupplier = *req.IsSupplier
		}
		if err := party.SetRoles(isCustomer, isSupplier); err != nil {
			return nil, err
		}
	}

	if err := s.parties.Save(ctx, party); err != nil {
		return nil, err
	}
	return toPartyResponse(party), nil
}

// Deactivate marks a party inactive; its ledger history stays intact
func (s *PartyService) Deactivate(ctx context.Context, tenantID, partyID uuid.UUID) error {
	party, err := s.parties.FindByIDForTenant(ctx, tenantID, partyID)
	if err != nil {
		return err
	}
	party.Deactivate()
	if err := s.parties.Save(ctx, party); err != nil {
		return err
	}

	s.logger.Info("party deactivated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("party_id", partyID.String()))
	return nil
}

// GetByID returns one party
func (s *PartyService) GetByID(ctx context.Context, tenantID, partyID uuid.UUID) (*PartyResponse, error) {
	party, err := s.parties.FindByIDForTenant(ctx, tenantID, partyID)
	if err != nil {
		return nil, err
	}
	return toPartyResponse(party), nil
}

// List returns parties matching the filter
func (s *PartyService) List(ctx context.Context, tenantID uuid.UUID, filter PartyListFilter) (*shared.Paginated[PartyResponse], error) {
	page, err := s.parties.FindAllForTenant(ctx, tenantID, partner.PartyFilter{
		Search:     filter.Search,
		IsCustomer: filter.IsCustomer,
		IsSupplier: filter.IsSupplier,
		Active:     filter.Active,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
	})
	if err != nil {
		return nil, err
	}

	items := make([]PartyResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *toPartyResponse(&page.Items[i]))
	}
	result := shared.NewPaginated(items, page.Total, page.Page, page.PageSize)
	return &result, nil
}
