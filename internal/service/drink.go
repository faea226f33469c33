package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"coffeeshop/internal/config"
	"coffeeshop/internal/domain"
	"coffeeshop/internal/domain/models"
	"coffeeshop/internal/domain/repositories"
	"coffeeshop/internal/domain/services"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// drinkService implements the DrinkService interface
type drinkService struct {
	drinkRepo repositories.DrinkRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewDrinkService creates a new drink service
func NewDrinkService(
	drinkRepo repositories.DrinkRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.DrinkService {
	return &drinkService{
		drinkRepo: drinkRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// ListDrinks retrieves every drink
func (s *drinkService) ListDrinks(ctx context.Context) ([]models.Drink, error) {
	return s.drinkRepo.List(ctx)
}

// CreateDrink creates a new drink
func (s *drinkService) CreateDrink(ctx context.Context, req *services.CreateDrinkRequest) (*models.Drink, error) {
	title, recipe, err := s.validateDrink(req.Title, req.Recipe)
	if err != nil {
		return nil, err
	}

	drink := &models.Drink{Title: title, Recipe: recipe}
	if err := s.drinkRepo.Create(ctx, drink); err != nil {
		return nil, err
	}

	s.logger.Info("drink created",
		"id", drink.ID,
		"title", drink.Title,
	)

	return drink, nil
}

// UpdateDrink replaces title and recipe of an existing drink
func (s *drinkService) UpdateDrink(ctx context.Context, id int64, req *services.UpdateDrinkRequest) (*models.Drink, error) {
	title, recipe, err := s.validateDrink(req.Title, req.Recipe)
	if err != nil {
		return nil, err
	}

	var drink *models.Drink
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		existing, err := s.drinkRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		existing.Title = title
		existing.Recipe = recipe
		if err := s.drinkRepo.Update(ctx, existing); err != nil {
			return err
		}
		drink = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("drink updated",
		"id", drink.ID,
		"title", drink.Title,
	)

	return drink, nil
}

// DeleteDrink deletes a drink
func (s *drinkService) DeleteDrink(ctx context.Context, id int64) (int64, error) {
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		// Verify the drink exists first so a miss never reaches the DELETE
		if _, err := s.drinkRepo.GetByID(ctx, id); err != nil {
			return err
		}
		return s.drinkRepo.Delete(ctx, id)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("drink deleted", "id", id)

	return id, nil
}

// drinkInput is the shape shared by create and update bodies
type drinkInput struct {
	Title  *string        `json:"title"`
	Recipe *models.Recipe `json:"recipe"`
}

// validateDrink checks a create/update body and returns the normalized values
func (s *drinkService) validateDrink(title *string, recipe *models.Recipe) (string, models.Recipe, error) {
	if title != nil {
		trimmed := strings.TrimSpace(*title)
		title = &trimmed
	}

	in := drinkInput{Title: title, Recipe: recipe}
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Title,
			validation.Required,
			validation.RuneLength(1, config.MaxDrinkTitleLength),
		),
		validation.Field(&in.Recipe,
			validation.Required,
			validation.By(validateRecipe),
		),
	)
	if err != nil {
		return "", nil, domain.NewValidationError(err.Error())
	}

	return *in.Title, *in.Recipe, nil
}

// validateRecipe validates every ingredient of a non-empty recipe
func validateRecipe(value interface{}) error {
	recipe, ok := value.(*models.Recipe)
	if !ok || recipe == nil {
		return fmt.Errorf("must be a list of ingredients")
	}
	if len(*recipe) > config.MaxRecipeIngredients {
		return fmt.Errorf("must have at most %d ingredients", config.MaxRecipeIngredients)
	}
	return validation.Validate([]models.Ingredient(*recipe), validation.Each(validation.By(validateIngredient)))
}

func validateIngredient(value interface{}) error {
	ing, ok := value.(models.Ingredient)
	if !ok {
		return fmt.Errorf("must be an ingredient")
	}
	return validation.ValidateStruct(&ing,
		validation.Field(&ing.Name, validation.Required, validation.RuneLength(1, config.MaxIngredientNameLength)),
		validation.Field(&ing.Color, validation.Required, validation.RuneLength(1, config.MaxIngredientNameLength)),
		validation.Field(&ing.Parts, validation.Required, validation.Min(1)),
	)
}
