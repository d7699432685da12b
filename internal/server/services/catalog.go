package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
	"github.com/dmitrijs2005/recipebox/internal/server/policy"
	"github.com/dmitrijs2005/recipebox/internal/server/repositories/recipes"
	"github.com/google/uuid"
)

const msgRecipeNotFound = "Recipe not found"

// requiredRecipeFields are checked for presence on create, in this order.
// image_key may also be set but is optional.
var (
	requiredRecipeFields  = []string{"title", "description", "ingredients", "instructions", "prepTime", "cookTime", "servings"}
	updatableRecipeFields = append(append([]string{}, requiredRecipeFields...), "image_key")
)

// ImageStore is satisfied by *objectstore.S3ImageStore.
type ImageStore interface {
	Delete(ctx context.Context, key string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// CatalogStore handles the recipe CRUD verbs. Reads are open to any
// verified caller; writes need the Admin role.
type CatalogStore struct {
	recipes recipes.Repository
	tokens  TokenVerifier
	policy  Checker
	images  ImageStore
	logger  logging.Logger
	now     func() time.Time
	newID   func() string
}

// CatalogOption configures a CatalogStore.
type CatalogOption func(*CatalogStore)

// WithCatalogClock sets the clock used for createdAt and updatedAt.
func WithCatalogClock(now func() time.Time) CatalogOption {
	return func(c *CatalogStore) { c.now = now }
}

// WithCatalogIDs sets the generator of new recipe IDs.
func WithCatalogIDs(newID func() string) CatalogOption {
	return func(c *CatalogStore) { c.newID = newID }
}

// WithImageStore enables image cleanup on delete and presigned image URLs
// on read.
func WithImageStore(images ImageStore) CatalogOption {
	return func(c *CatalogStore) { c.images = images }
}

// NewCatalogStore returns a CatalogStore over repo.
func NewCatalogStore(repo recipes.Repository, tokens TokenVerifier, checker Checker, l logging.Logger, opts ...CatalogOption) *CatalogStore {
	c := &CatalogStore{
		recipes: repo,
		tokens:  tokens,
		policy:  checker,
		logger:  l.With("module", "catalog"),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *CatalogStore) Handle(ctx context.Context, req Request) (Response, error) {
	var op policy.Operation
	switch req.Method {
	case http.MethodGet:
		op = policy.CatalogRead
	case http.MethodPost:
		op = policy.CatalogCreate
	case http.MethodPut:
		op = policy.CatalogUpdate
	case http.MethodDelete:
		op = policy.CatalogDelete
	default:
		return methodNotAllowed()
	}

	claims, err := callerClaims(c.tokens, req)
	if err != nil {
		return unauthenticated(err)
	}
	if c.policy.Check(claims.Role, op, policy.Any) == policy.Deny {
		return notAuthorized()
	}

	switch op {
	case policy.CatalogRead:
		return c.read(ctx)
	case policy.CatalogCreate:
		return c.create(ctx, req)
	case policy.CatalogUpdate:
		return c.update(ctx, req)
	default:
		return c.delete(ctx, req)
	}
}

func (c *CatalogStore) read(ctx context.Context) (Response, error) {
	all, err := c.recipes.Scan(ctx)
	if err != nil {
		return Response{}, err
	}

	// zero UpdatedAt sorts last
	sort.SliceStable(all, func(i, j int) bool { return all[i].UpdatedAt.After(all[j].UpdatedAt) })

	views := make([]models.RecipeView, 0, len(all))
	for _, r := range all {
		v := r.View()
		if c.images != nil && r.ImageKey != "" {
			url, err := c.images.PresignGet(ctx, r.ImageKey)
			if err != nil {
				c.logger.Warn(ctx, "presign failed", "id", r.ID, "error", err.Error())
			} else {
				v.ImageURL = url
			}
		}
		views = append(views, v)
	}

	return respond(http.StatusOK, views)
}

func (c *CatalogStore) create(ctx context.Context, req Request) (Response, error) {
	data, err := decodeObject(req.Body)
	if err != nil {
		return respond(http.StatusBadRequest, msgInvalidJSON)
	}

	for _, f := range requiredRecipeFields {
		if _, ok := data[f]; !ok {
			return respond(http.StatusBadRequest, fmt.Sprintf("%s is a mandatory field", f))
		}
	}

	recipe := &models.Recipe{}
	if err := merge(recipe, ConvertFloats(data).(map[string]any), updatableRecipeFields); err != nil {
		return respond(http.StatusBadRequest, msgInvalidJSON)
	}

	now := c.now().UTC()
	recipe.ID = c.newID()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now

	if err := c.recipes.Put(ctx, recipe); err != nil {
		return Response{}, err
	}

	c.logger.Info(ctx, "recipe created", "id", recipe.ID, "title", recipe.Title)
	return respond(http.StatusCreated, fmt.Sprintf("%s recipe created successfully!", recipe.Title))
}

// update merges the body into the stored recipe. CreatedAt and UpdatedAt
// are both left as they were.
func (c *CatalogStore) update(ctx context.Context, req Request) (Response, error) {
	data, err := decodeObject(req.Body)
	if err != nil {
		return respond(http.StatusBadRequest, msgInvalidJSON)
	}

	id := req.Header(common.RecipeIDHeaderName)
	if id == "" {
		return respond(http.StatusBadRequest, msgMissingID)
	}

	existing, err := c.recipes.Get(ctx, id)
	if errors.Is(err, common.ErrorNotFound) {
		return respond(http.StatusNotFound, msgRecipeNotFound)
	}
	if err != nil {
		return Response{}, err
	}

	patch := ConvertFloats(data).(map[string]any)
	if err := merge(existing, patch, updatableRecipeFields); err != nil {
		return respond(http.StatusBadRequest, msgInvalidJSON)
	}

	if err := c.recipes.Put(ctx, existing); err != nil {
		return Response{}, err
	}

	c.logger.Info(ctx, "recipe updated", "id", existing.ID)
	return respond(http.StatusOK, fmt.Sprintf("%s recipe updated successfully!", existing.Title))
}

// delete answers 200 whether or not the recipe existed.
func (c *CatalogStore) delete(ctx context.Context, req Request) (Response, error) {
	id := req.Header(common.RecipeIDHeaderName)
	if id == "" {
		return respond(http.StatusBadRequest, msgMissingID)
	}

	existing, err := c.recipes.Get(ctx, id)
	if err != nil && !errors.Is(err, common.ErrorNotFound) {
		return Response{}, err
	}

	if err := c.recipes.Delete(ctx, id); err != nil {
		return Response{}, err
	}

	title := "Recipe"
	if existing != nil {
		if existing.Title != "" {
			title = existing.Title
		}
		if existing.ImageKey != "" && c.images != nil {
			if err := c.images.Delete(ctx, existing.ImageKey); err != nil {
				c.logger.Warn(ctx, "image cleanup failed", "id", id, "key", existing.ImageKey, "error", err.Error())
			}
		}
	}

	c.logger.Info(ctx, "recipe deleted", "id", id)
	return respond(http.StatusOK, fmt.Sprintf("%s is deleted successfully!", title))
}
