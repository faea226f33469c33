// Package seed loads starter drinks into an empty menu.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"

	"coffeeshop/internal/domain/models"
	"coffeeshop/internal/domain/services"

	"gopkg.in/yaml.v3"
)

//go:embed drinks.yaml
var defaultDrinks []byte

// File is the layout of a seed file
type File struct {
	Drinks []Entry `yaml:"drinks"`
}

// Entry is one drink entry of a seed file
type Entry struct {
	Title  string        `yaml:"title"`
	Recipe models.Recipe `yaml:"recipe"`
}

// Parse decodes a seed file
func Parse(r io.Reader) ([]Entry, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return f.Drinks, nil
}

// Default returns the embedded starter menu
func Default() ([]Entry, error) {
	return Parse(bytes.NewReader(defaultDrinks))
}

// LoadFile reads drinks from path, or the embedded menu when path is empty
func LoadFile(path string) ([]Entry, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Seeder creates seed drinks through the drink service so they pass the
// same validation as API writes
type Seeder struct {
	drinks services.DrinkService
	logger *slog.Logger
}

// NewSeeder creates a new seeder
func NewSeeder(drinks services.DrinkService, logger *slog.Logger) *Seeder {
	return &Seeder{drinks: drinks, logger: logger}
}

// Result counts what Apply did
type Result struct {
	Created int
	Skipped int
}

// Apply creates every drink whose title is not on the menu yet.
// A failing entry aborts the run; entries created before it are kept.
func (s *Seeder) Apply(ctx context.Context, drinks []Entry) (Result, error) {
	var res Result

	existing, err := s.drinks.ListDrinks(ctx)
	if err != nil {
		return res, fmt.Errorf("list drinks: %w", err)
	}
	titles := make(map[string]struct{}, len(existing))
	for _, d := range existing {
		titles[d.Title] = struct{}{}
	}

	for _, d := range drinks {
		if _, ok := titles[d.Title]; ok {
			s.logger.Info("drink already present, skipping", "title", d.Title)
			res.Skipped++
			continue
		}

		title, recipe := d.Title, d.Recipe
		drink, err := s.drinks.CreateDrink(ctx, &services.CreateDrinkRequest{Title: &title, Recipe: &recipe})
		if err != nil {
			return res, fmt.Errorf("seed drink %q: %w", d.Title, err)
		}
		titles[drink.Title] = struct{}{}
		res.Created++
	}

	return res, nil
}
