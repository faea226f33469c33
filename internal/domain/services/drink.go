package services

import (
	"context"

	"coffeeshop/internal/domain/models"
)

// CreateDrinkRequest is the body of POST /drinks.
// Pointer fields let validation tell a missing key from a zero value.
type CreateDrinkRequest struct {
	Title  *string        `json:"title"`
	Recipe *models.Recipe `json:"recipe"`
}

// UpdateDrinkRequest is the body of PATCH /drinks/{id}
type UpdateDrinkRequest struct {
	Title  *string        `json:"title"`
	Recipe *models.Recipe `json:"recipe"`
}

// DrinkService defines business logic operations for drinks
type DrinkService interface {
	// ListDrinks returns every drink on the menu
	ListDrinks(ctx context.Context) ([]models.Drink, error)

	// CreateDrink validates and persists a new drink
	CreateDrink(ctx context.Context, req *CreateDrinkRequest) (*models.Drink, error)

	// UpdateDrink overwrites title and recipe of an existing drink.
	// Returns domain.ErrNotFound before any write if the drink is missing.
	UpdateDrink(ctx context.Context, id int64, req *UpdateDrinkRequest) (*models.Drink, error)

	// DeleteDrink removes a drink and returns the deleted id
	DeleteDrink(ctx context.Context, id int64) (int64, error)
}
