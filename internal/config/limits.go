package config

const (
	// MaxDrinkTitleLength matches the VARCHAR(80) title column.
	MaxDrinkTitleLength = 80

	// MaxIngredientNameLength bounds ingredient names and colors.
	MaxIngredientNameLength = 80

	// MaxRecipeIngredients is the most layers a drink may have.
	MaxRecipeIngredients = 20
)
