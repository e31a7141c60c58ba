package persistence

import (
	"context"
	"errors"

	"github.com/comercio/backoffice/internal/domain/partner"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPartyRepository implements partner.PartyRepository using GORM
type GormPartyRepository struct {
	db *gorm.DB
}

// NewGormPartyRepository creates a new GormPartyRepository
func NewGormPartyRepository(db *gorm.DB) *GormPartyRepository {
	return &GormPartyRepository{db: db}
}

// Create creates a new party
func (r *GormPartyRepository) Create(ctx context.Context, party *partner.Party) error {
	return r.db.WithContext(ctx).Create(party).Error
}

// Save persists an existing party
func (r *GormPartyRepository) Save(ctx context.Context, party *partner.Party) error {
	return r.db.WithContext(ctx).Save(party).Error
}

// FindByIDForTenant finds a party by ID within a tenant
func (r *GormPartyRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Party, error) {
	var party partner.Party
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&party).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &party, nil
}

// FindForUpdate locks the party row. Ledger postings take this lock first so
// concurrent postings against the same party execute one at a time.
func (r *GormPartyRepository) FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*partner.Party, error) {
	var party partner.Party
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&party).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &party, nil
}

// FindAllForTenant lists parties matching the filter
func (r *GormPartyRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter partner.PartyFilter) (*shared.Paginated[partner.Party], error) {
	var parties []partner.Party
	var total int64

	base := r.db.WithContext(ctx).Model(&partner.Party{}).
		Where("tenant_id = ?", tenantID)
	base = r.applyFilter(base, filter)

	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	if err := base.Session(&gorm.Session{}).
		Order("name ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&parties).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(parties, total, page, pageSize)
	return &result, nil
}

// ExistsByTaxID reports whether a party with the tax ID exists
func (r *GormPartyRepository) ExistsByTaxID(ctx context.Context, tenantID uuid.UUID, taxID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&partner.Party{}).
		Where("tenant_id = ? AND tax_id = ?", tenantID, taxID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormPartyRepository) applyFilter(query *gorm.DB, filter partner.PartyFilter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR tax_id LIKE ?", pattern, pattern)
	}
	if filter.IsCustomer != nil {
		query = query.Where("is_customer = ?", *filter.IsCustomer)
	}
	if filter.IsSupplier != nil {
		query = query.Where("is_supplier = ?", *filter.IsSupplier)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	return query
}

var _ partner.PartyRepository = (*GormPartyRepository)(nil)
