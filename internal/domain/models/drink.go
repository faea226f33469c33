package models

import (
	"encoding/json"
	"fmt"
)

// Ingredient is one layer of a drink's recipe
type Ingredient struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	Parts int    `json:"parts" yaml:"parts"`
}

// Recipe is the ordered list of ingredients that make up a drink.
// It is stored as JSON text in the drinks table.
type Recipe []Ingredient

// Drink is a menu entry
type Drink struct {
	ID     int64  `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Recipe Recipe `json:"recipe" db:"recipe"`
}

// ShortIngredient is the public projection of an ingredient (no name)
type ShortIngredient struct {
	Color string `json:"color"`
	Parts int    `json:"parts"`
}

// DrinkShort is the public projection of a drink
type DrinkShort struct {
	ID     int64             `json:"id"`
	Title  string            `json:"title"`
	Recipe []ShortIngredient `json:"recipe"`
}

// Short returns the representation served on the public menu
func (d *Drink) Short() DrinkShort {
	recipe := make([]ShortIngredient, 0, len(d.Recipe))
	for _, ing := range d.Recipe {
		recipe = append(recipe, ShortIngredient{Color: ing.Color, Parts: ing.Parts})
	}
	return DrinkShort{ID: d.ID, Title: d.Title, Recipe: recipe}
}

// Long returns the full representation, including ingredient names
func (d *Drink) Long() Drink {
	recipe := make(Recipe, len(d.Recipe))
	copy(recipe, d.Recipe)
	return Drink{ID: d.ID, Title: d.Title, Recipe: recipe}
}

// Encode serializes the recipe for storage
func (r Recipe) Encode() (string, error) {
	if r == nil {
		r = Recipe{}
	}
	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode recipe: %w", err)
	}
	return string(data), nil
}

// DecodeRecipe parses a stored recipe column
func DecodeRecipe(raw string) (Recipe, error) {
	var recipe Recipe
	if err := json.Unmarshal([]byte(raw), &recipe); err != nil {
		return nil, fmt.Errorf("decode recipe: %w", err)
	}
	if recipe == nil {
		recipe = Recipe{}
	}
	return recipe, nil
}
