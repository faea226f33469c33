package handler

import (
	"net/http"

	"coffeeshop/internal/auth"
	"coffeeshop/internal/middleware"
)

// RegisterRoutes mounts the drinks API on mux. Protected routes go through
// guard before the handler runs.
func (h *DrinkHandler) RegisterRoutes(mux *http.ServeMux, guard *middleware.Guard) {
	mux.HandleFunc("GET /health", h.HealthCheck)

	mux.HandleFunc("GET /drinks", h.ListDrinks)
	mux.HandleFunc("GET /drinks-detail", guard.RequirePermission(auth.PermGetDrinksDetail, h.ListDrinkDetails))
	mux.HandleFunc("POST /drinks", guard.RequirePermission(auth.PermPostDrinks, h.CreateDrink))
	mux.HandleFunc("PATCH /drinks/{id}", guard.RequirePermission(auth.PermPatchDrinks, h.UpdateDrink))
	mux.HandleFunc("DELETE /drinks/{id}", guard.RequirePermission(auth.PermDeleteDrinks, h.DeleteDrink))
}
