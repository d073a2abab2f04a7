package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/infrastructure/metrics"
)

// CardUseCase handles credit card business logic.
type CardUseCase struct {
	cardRepo CardRepository
	idGen    IDGenerator
	metrics  *metrics.Metrics
}

// NewCardUseCase creates a new CardUseCase.
func NewCardUseCase(cardRepo CardRepository, idGen IDGenerator) *CardUseCase {
	return &CardUseCase{
		cardRepo: cardRepo,
		idGen:    idGen,
	}
}

// WithMetrics enables Prometheus instrumentation.
func (uc *CardUseCase) WithMetrics(m *metrics.Metrics) *CardUseCase {
	uc.metrics = m
	return uc
}

// CreateCardInput represents input for creating a credit card.
type CreateCardInput struct {
	Name          string
	CardNumber    string
	CreditLimit   decimal.Decimal
	CreditBalance decimal.Decimal
}

// CreateCard creates a new credit card.
func (uc *CardUseCase) CreateCard(ctx context.Context, input CreateCardInput) (*domain.CreditCard, error) {
	if err := domain.ValidateName(input.Name); err != nil {
		return nil, err
	}

	if input.CreditLimit.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	now := time.Now().UTC()

	card := &domain.CreditCard{
		ID:             uc.idGen.Generate(),
		Name:           input.Name,
		CardNumber:     input.CardNumber,
		CreditLimit:    input.CreditLimit,
		CreditBalance:  input.CreditBalance,
		InitialBalance: input.CreditBalance,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.cardRepo.Create(ctx, card); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CardsCreated.Inc()
	}

	return card, nil
}

// GetCard retrieves a credit card by ID.
func (uc *CardUseCase) GetCard(ctx context.Context, id string) (*domain.CreditCard, error) {
	return uc.cardRepo.GetByID(ctx, id)
}

// UpdateCard applies a partial update to a credit card. The running balance
// only moves through transaction writes.
func (uc *CardUseCase) UpdateCard(ctx context.Context, id string, patch domain.CreditCardPatch) (*domain.CreditCard, error) {
	if patch.Name != nil {
		if err := domain.ValidateName(*patch.Name); err != nil {
			return nil, err
		}
	}

	if patch.CreditLimit != nil && patch.CreditLimit.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	return uc.cardRepo.Update(ctx, id, patch, time.Now().UTC())
}

// DeleteCard removes a credit card.
func (uc *CardUseCase) DeleteCard(ctx context.Context, id string) error {
	return uc.cardRepo.Delete(ctx, id)
}

// ListCardsInput represents input for listing credit cards.
type ListCardsInput struct {
	Limit  int
	Offset int
}

// ListCards lists credit cards.
func (uc *CardUseCase) ListCards(ctx context.Context, input ListCardsInput) ([]*domain.CreditCard, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.cardRepo.List(ctx, limit, offset)
}
