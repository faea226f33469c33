package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/domain/models"
	"coffeeshop/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDrinkRepository implements repositories.DrinkRepository
type PostgresDrinkRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewDrinkRepository creates a new drink repository
func NewDrinkRepository(config *RepositoryConfig) repositories.DrinkRepository {
	return &PostgresDrinkRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// List retrieves all drinks ordered by id
func (r *PostgresDrinkRepository) List(ctx context.Context) ([]models.Drink, error) {
	query := fmt.Sprintf(`
		SELECT id, title, recipe
		FROM %s
		ORDER BY id
	`, r.tables.Drinks)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query)
	if err != nil {
		return nil, classify(fmt.Errorf("list drinks: %w", err))
	}
	defer rows.Close()

	drinks := []models.Drink{}
	for rows.Next() {
		var (
			drink models.Drink
			raw   string
		)
		if err := rows.Scan(&drink.ID, &drink.Title, &raw); err != nil {
			return nil, classify(fmt.Errorf("scan drink: %w", err))
		}
		if drink.Recipe, err = decodeStoredRecipe(drink.ID, raw); err != nil {
			return nil, err
		}
		drinks = append(drinks, drink)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("iterate drinks: %w", err))
	}

	return drinks, nil
}

// GetByID retrieves a drink by ID
func (r *PostgresDrinkRepository) GetByID(ctx context.Context, id int64) (*models.Drink, error) {
	query := fmt.Sprintf(`
		SELECT id, title, recipe
		FROM %s
		WHERE id = $1
	`, r.tables.Drinks)

	var (
		drink models.Drink
		raw   string
	)
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, id).Scan(&drink.ID, &drink.Title, &raw)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("drink %d: %w", id, domain.ErrNotFound)
		}
		return nil, classify(fmt.Errorf("get drink: %w", err))
	}

	if drink.Recipe, err = decodeStoredRecipe(drink.ID, raw); err != nil {
		return nil, err
	}
	return &drink, nil
}

// Create inserts a drink and sets its generated ID
func (r *PostgresDrinkRepository) Create(ctx context.Context, drink *models.Drink) error {
	raw, err := drink.Recipe.Encode()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnprocessable, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (title, recipe)
		VALUES ($1, $2)
		RETURNING id
	`, r.tables.Drinks)

	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, drink.Title, raw).Scan(&drink.ID); err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("drink '%s': %w", drink.Title, domain.ErrConflict)
		}
		return classify(fmt.Errorf("create drink: %w", err))
	}

	return nil
}

// Update overwrites title and recipe
func (r *PostgresDrinkRepository) Update(ctx context.Context, drink *models.Drink) error {
	raw, err := drink.Recipe.Encode()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnprocessable, err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, recipe = $2
		WHERE id = $3
	`, r.tables.Drinks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, drink.Title, raw, drink.ID)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("drink '%s': %w", drink.Title, domain.ErrConflict)
		}
		return classify(fmt.Errorf("update drink: %w", err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("drink %d: %w", drink.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a drink
func (r *PostgresDrinkRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Drinks)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return classify(fmt.Errorf("delete drink: %w", err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("drink %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// EnsureSchema creates the drinks table if it does not exist
func (r *PostgresDrinkRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id     SERIAL PRIMARY KEY,
			title  VARCHAR(80) NOT NULL UNIQUE,
			recipe TEXT NOT NULL
		)
	`, r.tables.Drinks)

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return classify(fmt.Errorf("create %s: %w", r.tables.Drinks, err))
	}
	return nil
}

// ResetSchema drops and recreates the drinks table
func (r *PostgresDrinkRepository) ResetSchema(ctx context.Context) error {
	query := fmt.Sprintf(`DROP TABLE IF EXISTS %s CASCADE`, r.tables.Drinks)
	if _, err := r.pool.Exec(ctx, query); err != nil {
		return classify(fmt.Errorf("drop %s: %w", r.tables.Drinks, err))
	}

	r.logger.Warn("drinks table dropped", "table", r.tables.Drinks)
	return r.EnsureSchema(ctx)
}

func decodeStoredRecipe(id int64, raw string) (models.Recipe, error) {
	recipe, err := models.DecodeRecipe(raw)
	if err != nil {
		return nil, fmt.Errorf("drink %d: %w: %w", id, domain.ErrUnprocessable, err)
	}
	return recipe, nil
}
