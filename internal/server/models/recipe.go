package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is a catalog entry. Numeric fields are kept as exact decimals and
// only converted to float64 when rendered.
//
// Ingredients is a free-form ordered list: strings, numbers, nested lists
// and objects are all accepted. Numbers anywhere inside it are held as
// decimal.Decimal.
type Recipe struct {
	ID           string          `mapstructure:"ID"`
	Title        string          `mapstructure:"title"`
	Description  string          `mapstructure:"description"`
	Ingredients  []any           `mapstructure:"ingredients"`
	Instructions string          `mapstructure:"instructions"`
	PrepTime     decimal.Decimal `mapstructure:"prepTime"`
	CookTime     decimal.Decimal `mapstructure:"cookTime"`
	Servings     decimal.Decimal `mapstructure:"servings"`
	ImageKey     string          `mapstructure:"image_key"`
	CreatedAt    time.Time       `mapstructure:"-"`
	UpdatedAt    time.Time       `mapstructure:"-"`
}

// RecipeView is the API shape of a Recipe.
type RecipeView struct {
	ID           string    `json:"ID"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Ingredients  []any     `json:"ingredients"`
	Instructions string    `json:"instructions"`
	PrepTime     float64   `json:"prepTime"`
	CookTime     float64   `json:"cookTime"`
	Servings     float64   `json:"servings"`
	ImageKey     string    `json:"image_key,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// View converts r to its API shape, turning every decimal, including the
// ones nested in Ingredients, into a float64.
func (r *Recipe) View() RecipeView {
	return RecipeView{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  WalkList(r.Ingredients, ToFloat),
		Instructions: r.Instructions,
		PrepTime:     r.PrepTime.InexactFloat64(),
		CookTime:     r.CookTime.InexactFloat64(),
		Servings:     r.Servings.InexactFloat64(),
		ImageKey:     r.ImageKey,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// Clone returns a copy of r that shares no mutable state with it.
func (r *Recipe) Clone() Recipe {
	c := *r
	c.Ingredients = WalkList(r.Ingredients, keep)
	return c
}
