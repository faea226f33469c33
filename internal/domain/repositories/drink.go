package repositories

import (
	"context"

	"coffeeshop/internal/domain/models"
)

// DrinkRepository defines data access operations for drinks
type DrinkRepository interface {
	// List returns every drink ordered by id. Never returns a nil slice.
	List(ctx context.Context) ([]models.Drink, error)

	// GetByID returns domain.ErrNotFound if no drink has the given id
	GetByID(ctx context.Context, id int64) (*models.Drink, error)

	// Create inserts the drink and sets its generated ID
	Create(ctx context.Context, drink *models.Drink) error

	// Update overwrites title and recipe of an existing drink
	Update(ctx context.Context, drink *models.Drink) error

	// Delete removes the drink with the given id
	Delete(ctx context.Context, id int64) error

	// EnsureSchema creates the drinks table if it does not exist
	EnsureSchema(ctx context.Context) error

	// ResetSchema drops and recreates the drinks table
	ResetSchema(ctx context.Context) error
}
