package recipes

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/dbx"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
)

const recipeColumns = `id, title, description, ingredients, instructions, prep_time, cook_time, servings, image_key, created_at, updated_at`

// PostgresRepository keeps numeric fields in NUMERIC columns and the
// ingredient list as JSONB.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns a repository over db.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Put(ctx context.Context, recipe *models.Recipe) error {
	ingredients, err := json.Marshal(models.WalkList(nonNil(recipe.Ingredients), models.ToJSONNumber))
	if err != nil {
		return fmt.Errorf("encode ingredients: %w", err)
	}

	query :=
		`INSERT INTO recipes (id, title, description, ingredients, instructions, prep_time, cook_time, servings, image_key, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET
		   title = EXCLUDED.title,
		   description = EXCLUDED.description,
		   ingredients = EXCLUDED.ingredients,
		   instructions = EXCLUDED.instructions,
		   prep_time = EXCLUDED.prep_time,
		   cook_time = EXCLUDED.cook_time,
		   servings = EXCLUDED.servings,
		   image_key = EXCLUDED.image_key,
		   created_at = EXCLUDED.created_at,
		   updated_at = EXCLUDED.updated_at`

	_, err = r.db.ExecContext(ctx, query,
		recipe.ID, recipe.Title, recipe.Description, ingredients, recipe.Instructions,
		recipe.PrepTime, recipe.CookTime, recipe.Servings, recipe.ImageKey,
		recipe.CreatedAt, recipe.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Recipe, error) {
	query := `SELECT ` + recipeColumns + ` FROM recipes WHERE id = $1`

	recipe, err := scanRecipe(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return recipe, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Scan(ctx context.Context) ([]*models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+recipeColumns+` FROM recipes`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, recipe)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*models.Recipe, error) {
	recipe := &models.Recipe{}
	var ingredients []byte
	var imageKey sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(&recipe.ID, &recipe.Title, &recipe.Description, &ingredients, &recipe.Instructions,
		&recipe.PrepTime, &recipe.CookTime, &recipe.Servings, &imageKey, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if len(ingredients) > 0 {
		list, err := decodeIngredients(ingredients)
		if err != nil {
			return nil, fmt.Errorf("decode ingredients: %w", err)
		}
		recipe.Ingredients = list
	}
	recipe.ImageKey = imageKey.String
	recipe.CreatedAt = createdAt.Time
	recipe.UpdatedAt = updatedAt.Time

	return recipe, nil
}

// decodeIngredients reads a JSONB list back with numbers as decimals.
func decodeIngredients(data []byte) ([]any, error) {
	var list []any
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	if err := d.Decode(&list); err != nil {
		return nil, err
	}
	return models.WalkList(list, models.ToDecimal), nil
}

func nonNil(s []any) []any {
	if s == nil {
		return []any{}
	}
	return s
}
