package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/comercio/backoffice/internal/domain/catalog"
	"github.com/comercio/backoffice/internal/domain/ledger"
	"github.com/comercio/backoffice/internal/domain/partner"
	"github.com/comercio/backoffice/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service posts party movements and answers balance and statement queries.
// All writes go through the transaction scope and lock the party row before
// reading the previous balance, so postings for one party never interleave.
type Service struct {
	txScope        TransactionScope
	movements      ledger.MovementRepository
	payments       ledger.PaymentRepository
	parties        partner.PartyRepository
	paymentMethods catalog.PaymentMethodRepository
	logger         *zap.Logger
}

// NewService creates a new ledger service
func NewService(
	txScope TransactionScope,
	movements ledger.MovementRepository,
	payments ledger.PaymentRepository,
	parties partner.PartyRepository,
	paymentMethods catalog.PaymentMethodRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		txScope:        txScope,
		movements:      movements,
		payments:       payments,
		parties:        parties,
		paymentMethods: paymentMethods,
		logger:         logger,
	}
}

// MovementCommand is the internal form of a ledger posting
type MovementCommand struct {
	TenantID     uuid.UUID
	EntityID     uuid.UUID
	MovementType ledger.MovementType
	Nature       ledger.Nature
	Amount       decimal.Decimal
	MovementDate time.Time
	Description  string
	SaleID       *uuid.UUID
	PurchaseID   *uuid.UUID
	PaymentID    *uuid.UUID
	OperatorID   *uuid.UUID
}

// PostMovement appends one movement to a party's ledger
func (s *Service) PostMovement(ctx context.Context, tenantID uuid.UUID, req *PostMovementRequest) (*MovementResponse, error) {
	movementDate := time.Now()
	if req.MovementDate != nil {
		movementDate = *req.MovementDate
	}

	cmd := MovementCommand{
		TenantID:     tenantID,
		EntityID:     req.EntityID,
		MovementType: ledger.MovementType(req.MovementType),
		Nature:       ledger.Nature(req.Nature),
		Amount:       req.Amount,
		MovementDate: movementDate,
		Description:  req.Description,
		SaleID:       req.SaleID,
		PurchaseID:   req.PurchaseID,
		OperatorID:   req.OperatorID,
	}

	var movement *ledger.Movement
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var txErr error
		movement, txErr = s.ApplyMovement(ctx, repos, cmd)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("party movement posted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("entity_id", cmd.EntityID.String()),
		zap.String("movement_type", cmd.MovementType.String()),
		zap.String("amount", cmd.Amount.String()),
		zap.String("balance", movement.Balance.String()))

	return toMovementResponse(movement), nil
}

// ApplyMovement performs one ledger posting inside an already open
// transaction scope. It locks the party row, reads the last committed
// balance and appends the movement. The caller owns the transaction.
func (s *Service) ApplyMovement(ctx context.Context, repos TransactionalRepositories, cmd MovementCommand) (*ledger.Movement, error) {
	if _, err := repos.Parties().FindForUpdate(ctx, cmd.TenantID, cmd.EntityID); err != nil {
		return nil, err
	}

	previous := decimal.Zero
	last, err := repos.Movements().FindLastForEntity(ctx, cmd.TenantID, cmd.EntityID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if last != nil {
		previous = last.Balance
	}

	movement, err := ledger.NewMovement(cmd.TenantID, cmd.EntityID, cmd.MovementType, cmd.Nature, cmd.Amount, previous, cmd.MovementDate)
	if err != nil {
		return nil, err
	}
	if cmd.Description != "" {
		movement.WithDescription(cmd.Description)
	}
	if cmd.SaleID != nil {
		movement.WithSaleID(*cmd.SaleID)
	}
	if cmd.PurchaseID != nil {
		movement.WithPurchaseID(*cmd.PurchaseID)
	}
	if cmd.PaymentID != nil {
		movement.WithPaymentID(*cmd.PaymentID)
	}
	if cmd.OperatorID != nil {
		movement.WithOperatorID(*cmd.OperatorID)
	}

	if err := repos.Movements().Create(ctx, movement); err != nil {
		return nil, err
	}
	return movement, nil
}

// PostInitialBalance opens a party's ledger. It is rejected once the party
// has any movement; later corrections go through ADJUSTMENT movements.
func (s *Service) PostInitialBalance(ctx context.Context, tenantID uuid.UUID, req *PostInitialBalanceRequest) (*MovementResponse, error) {
	var movement *ledger.Movement
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.Parties().FindForUpdate(ctx, tenantID, req.EntityID); err != nil {
			return err
		}

		count, err := repos.Movements().CountForEntity(ctx, tenantID, req.EntityID)
		if err != nil {
			return err
		}
		if count > 0 {
			return shared.NewDomainError("INVALID_STATE", "Party already has movements; use an adjustment instead")
		}

		movement, err = ledger.NewMovement(tenantID, req.EntityID, ledger.MovementTypeInitialBalance, ledger.Nature(req.Nature), req.Amount, decimal.Zero, time.Now())
		if err != nil {
			return err
		}
		if req.Description != "" {
			movement.WithDescription(req.Description)
		}
		if req.OperatorID != nil {
			movement.WithOperatorID(*req.OperatorID)
		}
		return repos.Movements().Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("initial balance posted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("entity_id", req.EntityID.String()),
		zap.String("balance", movement.Balance.String()))

	return toMovementResponse(movement), nil
}

// RegisterCustomerPayment records money received from a customer: one
// payment row plus one CREDIT movement, atomically.
func (s *Service) RegisterCustomerPayment(ctx context.Context, tenantID uuid.UUID, req *RegisterPaymentRequest) (*PaymentResponse, error) {
	return s.registerPayment(ctx, tenantID, ledger.PaymentTypeCustomer, req)
}

// RegisterSupplierPayment records money paid to a supplier: one payment row
// plus one CREDIT movement, atomically.
func (s *Service) RegisterSupplierPayment(ctx context.Context, tenantID uuid.UUID, req *RegisterPaymentRequest) (*PaymentResponse, error) {
	return s.registerPayment(ctx, tenantID, ledger.PaymentTypeSupplier, req)
}

func (s *Service) registerPayment(ctx context.Context, tenantID uuid.UUID, paymentType ledger.PaymentType, req *RegisterPaymentRequest) (*PaymentResponse, error) {
	method, err := s.paymentMethods.FindByIDForTenant(ctx, tenantID, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	var payment *ledger.Payment
	var movement *ledger.Movement
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		party, err := repos.Parties().FindForUpdate(ctx, tenantID, req.EntityID)
		if err != nil {
			return err
		}
		if paymentType == ledger.PaymentTypeCustomer && !party.IsCustomer {
			return shared.NewDomainError("INVALID_ROLE", "Party is not a customer")
		}
		if paymentType == ledger.PaymentTypeSupplier && !party.IsSupplier {
			return shared.NewDomainError("INVALID_ROLE", "Party is not a supplier")
		}

		payment, err = ledger.NewPayment(tenantID, req.EntityID, paymentType, req.Amount, method.ID, method.Name, paymentDate)
		if err != nil {
			return err
		}
		if req.Reference != "" {
			payment.WithReference(req.Reference, req.ReferenceDate)
		}
		if req.Notes != "" {
			payment.WithNotes(req.Notes)
		}
		if req.OperatorID != nil {
			payment.WithOperatorID(*req.OperatorID)
		}
		if err := repos.Payments().Create(ctx, payment); err != nil {
			return err
		}

		previous := decimal.Zero
		last, err := repos.Movements().FindLastForEntity(ctx, tenantID, req.EntityID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
		if last != nil {
			previous = last.Balance
		}

		movement, err = ledger.NewMovement(tenantID, req.EntityID, payment.MovementType(), ledger.NatureCredit, req.Amount, previous, paymentDate)
		if err != nil {
			return err
		}
		movement.WithPaymentID(payment.ID).WithDescription(req.Notes)
		if req.OperatorID != nil {
			movement.WithOperatorID(*req.OperatorID)
		}
		return repos.Movements().Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("party payment registered",
		zap.String("tenant_id", tenantID.String()),
		zap.String("entity_id", req.EntityID.String()),
		zap.String("payment_type", paymentType.String()),
		zap.String("amount", req.Amount.String()),
		zap.String("balance", movement.Balance.String()))

	return toPaymentResponse(payment, movement.Balance), nil
}

// GetBalance returns a party's current running balance. A party with no
// movements has a zero balance.
func (s *Service) GetBalance(ctx context.Context, tenantID, entityID uuid.UUID) (*BalanceResponse, error) {
	if _, err := s.parties.FindByIDForTenant(ctx, tenantID, entityID); err != nil {
		return nil, err
	}

	last, err := s.movements.FindLastForEntity(ctx, tenantID, entityID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &BalanceResponse{
				EntityID:     entityID,
				Balance:      decimal.Zero,
				TotalDebits:  decimal.Zero,
				TotalCredits: decimal.Zero,
			}, nil
		}
		return nil, err
	}

	debits, err := s.movements.SumByNature(ctx, tenantID, entityID, ledger.NatureDebit, ledger.MovementFilter{})
	if err != nil {
		return nil, err
	}
	credits, err := s.movements.SumByNature(ctx, tenantID, entityID, ledger.NatureCredit, ledger.MovementFilter{})
	if err != nil {
		return nil, err
	}
	count, err := s.movements.CountForEntity(ctx, tenantID, entityID)
	if err != nil {
		return nil, err
	}

	return &BalanceResponse{
		EntityID:       entityID,
		Balance:        last.Balance,
		TotalDebits:    debits,
		TotalCredits:   credits,
		MovementCount:  count,
		LastMovementAt: &last.MovementDate,
	}, nil
}

// GetStatement returns a party's movements inside the window together with
// the opening balance, window totals and the closing balance. The identity
// closing = opening + debits - credits always holds for the full window.
func (s *Service) GetStatement(ctx context.Context, tenantID, entityID uuid.UUID, filter StatementFilter) (*StatementResponse, error) {
	if _, err := s.parties.FindByIDForTenant(ctx, tenantID, entityID); err != nil {
		return nil, err
	}

	opening := decimal.Zero
	if filter.DateFrom != nil {
		before, err := s.movements.FindLastBefore(ctx, tenantID, entityID, *filter.DateFrom)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		if before != nil {
			opening = before.Balance
		}
	}

	domainFilter := ledger.MovementFilter{
		DateFrom:     filter.DateFrom,
		DateTo:       filter.DateTo,
		MovementType: (*ledger.MovementType)(filter.MovementType),
		Page:         filter.Page,
		PageSize:     filter.PageSize,
	}

	movements, total, err := s.movements.FindForEntity(ctx, tenantID, entityID, domainFilter)
	if err != nil {
		return nil, err
	}

	windowFilter := ledger.MovementFilter{DateFrom: filter.DateFrom, DateTo: filter.DateTo}
	debits, err := s.movements.SumByNature(ctx, tenantID, entityID, ledger.NatureDebit, windowFilter)
	if err != nil {
		return nil, err
	}
	credits, err := s.movements.SumByNature(ctx, tenantID, entityID, ledger.NatureCredit, windowFilter)
	if err != nil {
		return nil, err
	}

	items := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		items = append(items, *toMovementResponse(&movements[i]))
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 50
	}

	return &StatementResponse{
		EntityID:       entityID,
		OpeningBalance: opening,
		TotalDebits:    debits,
		TotalCredits:   credits,
		ClosingBalance: opening.Add(debits).Sub(credits),
		Movements:      items,
		Total:          total,
		Page:           page,
		PageSize:       pageSize,
	}, nil
}

// ListEntityBalances returns parties with their current balances
func (s *Service) ListEntityBalances(ctx context.Context, tenantID uuid.UUID, filter partner.PartyFilter) (*shared.Paginated[EntityBalanceResponse], error) {
	parties, err := s.parties.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(parties.Items))
	for _, p := range parties.Items {
		ids = append(ids, p.ID)
	}
	balances, err := s.movements.LatestBalances(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	items := make([]EntityBalanceResponse, 0, len(parties.Items))
	for _, p := range parties.Items {
		items = append(items, EntityBalanceResponse{
			EntityID:   p.ID,
			Name:       p.Name,
			IsCustomer: p.IsCustomer,
			IsSupplier: p.IsSupplier,
			Balance:    balances[p.ID],
		})
	}

	result := shared.NewPaginated(items, parties.Total, parties.Page, parties.PageSize)
	return &result, nil
}

// GetMovement returns a single party movement
func (s *Service) GetMovement(ctx context.Context, tenantID, movementID uuid.UUID) (*MovementResponse, error) {
	movement, err := s.movements.FindByIDForTenant(ctx, tenantID, movementID)
	if err != nil {
		return nil, err
	}
	return toMovementResponse(movement), nil
}

// ListPayments returns a party's payments, newest first
func (s *Service) ListPayments(ctx context.Context, tenantID, entityID uuid.UUID, filter StatementFilter) (*shared.Paginated[PaymentResponse], error) {
	payments, total, err := s.payments.FindForEntity(ctx, tenantID, entityID, ledger.MovementFilter{
		DateFrom: filter.DateFrom,
		DateTo:   filter.DateTo,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, err
	}

	items := make([]PaymentResponse, 0, len(payments))
	for i := range payments {
		items = append(items, *toPaymentResponse(&payments[i], decimal.Zero))
	}

	page, pageSize := filter.Page, filter.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	result := shared.NewPaginated(items, total, page, pageSize)
	return &result, nil
}
