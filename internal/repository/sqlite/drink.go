package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"coffeeshop/internal/domain"
	"coffeeshop/internal/domain/models"
	"coffeeshop/internal/domain/repositories"
)

// DrinkRepository implements repositories.DrinkRepository on SQLite
type DrinkRepository struct {
	db     *sql.DB
	table  string
	logger *slog.Logger
}

// NewDrinkRepository creates a drink repository using table prefix+"drinks"
func NewDrinkRepository(db *sql.DB, tablePrefix string, logger *slog.Logger) repositories.DrinkRepository {
	return &DrinkRepository{
		db:     db,
		table:  tablePrefix + "drinks",
		logger: logger,
	}
}

// List retrieves all drinks ordered by id
func (r *DrinkRepository) List(ctx context.Context) ([]models.Drink, error) {
	query := fmt.Sprintf(`SELECT id, title, recipe FROM %s ORDER BY id`, r.table)

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, classify(fmt.Errorf("list drinks: %w", err))
	}
	defer rows.Close()

	drinks := []models.Drink{}
	for rows.Next() {
		drink, err := scanDrink(rows)
		if err != nil {
			return nil, err
		}
		drinks = append(drinks, *drink)
	}

	if err := rows.Err(); err != nil {
		return nil, classify(fmt.Errorf("iterate drinks: %w", err))
	}
	return drinks, nil
}

// GetByID retrieves a drink by ID
func (r *DrinkRepository) GetByID(ctx context.Context, id int64) (*models.Drink, error) {
	query := fmt.Sprintf(`SELECT id, title, recipe FROM %s WHERE id = ?`, r.table)

	drink, err := scanDrink(getExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("drink %d: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return drink, nil
}

// Create inserts a drink and sets its generated ID
func (r *DrinkRepository) Create(ctx context.Context, drink *models.Drink) error {
	raw, err := drink.Recipe.Encode()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnprocessable, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (title, recipe) VALUES (?, ?)`, r.table)
	res, err := getExecutor(ctx, r.db).ExecContext(ctx, query, drink.Title, raw)
	if err != nil {
		if IsDuplicateError(err) {
			return fmt.Errorf("drink '%s': %w", drink.Title, domain.ErrConflict)
		}
		return classify(fmt.Errorf("create drink: %w", err))
	}

	if drink.ID, err = res.LastInsertId(); err != nil {
		return classify(fmt.Errorf("read drink id: %w", err))
	}
	return nil
}

// Update overwrites title and recipe
func (r *DrinkRepository) Update(ctx context.Context, drink *models.Drink) error {
	raw, err := drink.Recipe.Encode()
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnprocessable, err)
	}

	query := fmt.Sprintf(`UPDATE %s SET title = ?, recipe = ? WHERE id = ?`, r.table)
	res, err := getExecutor(ctx, r.db).ExecContext(ctx, query, drink.Title, raw, drink.ID)
	if err != nil {
		if IsDuplicateError(err) {
			return fmt.Errorf("drink '%s': %w", drink.Title, domain.ErrConflict)
		}
		return classify(fmt.Errorf("update drink: %w", err))
	}
	return requireAffected(res, drink.ID)
}

// Delete removes a drink
func (r *DrinkRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.table)
	res, err := getExecutor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return classify(fmt.Errorf("delete drink: %w", err))
	}
	return requireAffected(res, id)
}

// EnsureSchema creates the drinks table if it does not exist
func (r *DrinkRepository) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			title  VARCHAR(80) NOT NULL UNIQUE,
			recipe TEXT NOT NULL
		)`, r.table)

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return classify(fmt.Errorf("create %s: %w", r.table, err))
	}
	return nil
}

// ResetSchema drops and recreates the drinks table
func (r *DrinkRepository) ResetSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, r.table)); err != nil {
		return classify(fmt.Errorf("drop %s: %w", r.table, err))
	}

	r.logger.Warn("drinks table dropped", "table", r.table)
	return r.EnsureSchema(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDrink(row scanner) (*models.Drink, error) {
	var (
		drink models.Drink
		raw   string
	)
	if err := row.Scan(&drink.ID, &drink.Title, &raw); err != nil {
		return nil, classify(fmt.Errorf("scan drink: %w", err))
	}

	recipe, err := models.DecodeRecipe(raw)
	if err != nil {
		return nil, fmt.Errorf("drink %d: %w: %w", drink.ID, domain.ErrUnprocessable, err)
	}
	drink.Recipe = recipe
	return &drink, nil
}

func requireAffected(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return classify(fmt.Errorf("rows affected: %w", err))
	}
	if n == 0 {
		return fmt.Errorf("drink %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
