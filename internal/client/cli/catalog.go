package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Me prints the caller's account. Admins get every account.
func (a *App) Me(ctx context.Context) error {
	accounts, err := a.api.Accounts(ctx, a.token)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	for _, acc := range accounts {
		fmt.Fprintf(a.out, "%s  %s  %s %s  role=%s confirmed=%s\n",
			acc.ID, acc.Email, acc.FirstName, acc.LastName, acc.Role, acc.ConfirmedEmail)
	}
	return nil
}

// Recipes prints the catalog, most recently updated first.
func (a *App) Recipes(ctx context.Context) error {
	recipes, err := a.api.Recipes(ctx, a.token)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}

	if len(recipes) == 0 {
		fmt.Fprintln(a.out, "No recipes")
		return nil
	}

	for _, r := range recipes {
		fmt.Fprintf(a.out, "%s  %s (prep %g min, cook %g min, serves %g)\n",
			r.ID, r.Title, r.PrepTime, r.CookTime, r.Servings)
		if r.Description != "" {
			fmt.Fprintf(a.out, "    %s\n", r.Description)
		}
		if len(r.Ingredients) > 0 {
			fmt.Fprintf(a.out, "    ingredients: %s\n", ingredientList(r.Ingredients))
		}
		if r.ImageURL != "" {
			fmt.Fprintf(a.out, "    image: %s\n", r.ImageURL)
		}
	}
	return nil
}

// ingredientList renders strings as they are and anything else as JSON.
func ingredientList(items []any) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok {
			parts = append(parts, s)
			continue
		}
		b, err := json.Marshal(it)
		if err != nil {
			parts = append(parts, fmt.Sprint(it))
			continue
		}
		parts = append(parts, string(b))
	}
	return strings.Join(parts, ", ")
}
