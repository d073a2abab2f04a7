package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aman-soni-070202/my-finances/internal/adapter/http/dto"
	"github.com/aman-soni-070202/my-finances/internal/domain"
	"github.com/aman-soni-070202/my-finances/internal/usecase"
)

// CardService defines the behavior needed by CardHandler.
type CardService interface {
	CreateCard(ctx context.Context, input usecase.CreateCardInput) (*domain.CreditCard, error)
	GetCard(ctx context.Context, id string) (*domain.CreditCard, error)
	UpdateCard(ctx context.Context, id string, patch domain.CreditCardPatch) (*domain.CreditCard, error)
	DeleteCard(ctx context.Context, id string) error
	ListCards(ctx context.Context, input usecase.ListCardsInput) ([]*domain.CreditCard, error)
}

// CardHandler handles credit card HTTP requests.
type CardHandler struct {
	cardUC CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cardUC CardService) *CardHandler {
	return &CardHandler{cardUC: cardUC}
}

// Create creates a new credit card.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	card, err := h.cardUC.CreateCard(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create card", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CardFromDomain(card))
}

// Get retrieves a credit card by ID.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing card ID", "")
		return
	}

	card, err := h.cardUC.GetCard(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get card", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CardFromDomain(card))
}

// Update applies a partial update to the user-owned card fields.
func (h *CardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing card ID", "")
		return
	}

	var req dto.UpdateCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	card, err := h.cardUC.UpdateCard(r.Context(), id, req.ToPatch())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update card", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CardFromDomain(card))
}

// Delete removes a credit card.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing card ID", "")
		return
	}

	if err := h.cardUC.DeleteCard(r.Context(), id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete card", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists credit cards.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 0)
	offset := parseIntQuery(r, "offset", 0)

	cards, err := h.cardUC.ListCards(r.Context(), usecase.ListCardsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list cards", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListCardsResponse{
		Cards: dto.CardsFromDomain(cards),
		Total: int64(len(cards)),
	})
}
