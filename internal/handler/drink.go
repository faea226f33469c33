package handler

import (
	"log/slog"
	"net/http"
	"time"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/domain/models"
	"coffeeshop/internal/domain/services"
	"coffeeshop/internal/httputil"
)

// DrinkHandler handles drink HTTP requests
type DrinkHandler struct {
	drinkService services.DrinkService
	logger       *slog.Logger
}

// NewDrinkHandler creates a new drink handler
func NewDrinkHandler(drinkService services.DrinkService, logger *slog.Logger) *DrinkHandler {
	return &DrinkHandler{
		drinkService: drinkService,
		logger:       logger,
	}
}

// ListDrinks returns the public menu in short form
// GET /drinks
func (h *DrinkHandler) ListDrinks(w http.ResponseWriter, r *http.Request) {
	drinks, err := h.drinkService.ListDrinks(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	short := make([]models.DrinkShort, 0, len(drinks))
	for i := range drinks {
		short = append(short, drinks[i].Short())
	}
	httputil.RespondDrinks(w, short)
}

// ListDrinkDetails returns every drink in long form
// GET /drinks-detail (get:drinks-detail)
func (h *DrinkHandler) ListDrinkDetails(w http.ResponseWriter, r *http.Request) {
	drinks, err := h.drinkService.ListDrinks(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	long := make([]models.Drink, 0, len(drinks))
	for i := range drinks {
		long = append(long, drinks[i].Long())
	}
	httputil.RespondDrinks(w, long)
}

// CreateDrink creates a new drink
// POST /drinks (post:drinks)
func (h *DrinkHandler) CreateDrink(w http.ResponseWriter, r *http.Request) {
	var req services.CreateDrinkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, domain.NewValidationError(err.Error()))
		return
	}

	drink, err := h.drinkService.CreateDrink(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondDrinks(w, []models.Drink{drink.Long()})
}

// UpdateDrink overwrites a drink's title and recipe
// PATCH /drinks/{id} (patch:drinks)
func (h *DrinkHandler) UpdateDrink(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathID(r, "id")
	if !ok {
		handleError(w, r, h.logger, domain.ErrNotFound)
		return
	}

	var req services.UpdateDrinkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, domain.NewValidationError(err.Error()))
		return
	}

	drink, err := h.drinkService.UpdateDrink(r.Context(), id, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondDrinks(w, []models.Drink{drink.Long()})
}

// DeleteDrink deletes a drink
// DELETE /drinks/{id} (delete:drinks)
func (h *DrinkHandler) DeleteDrink(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathID(r, "id")
	if !ok {
		handleError(w, r, h.logger, domain.ErrNotFound)
		return
	}

	deleted, err := h.drinkService.DeleteDrink(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondDeleted(w, deleted)
}

// HealthCheck is a simple health check endpoint
func (h *DrinkHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}
