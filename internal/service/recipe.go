package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pantrychef/backend/internal/models"
	"github.com/pantrychef/backend/internal/repository"
	"github.com/pantrychef/backend/internal/types"
)

// minGenerationIngredients is the floor for generation input. Stored
// recipes only need one ingredient; generation needs enough to work with.
const minGenerationIngredients = 3

// RecipeService orchestrates recipe operations: validation, ownership
// scoping, the generation/warning pipeline and repository access. It holds
// no state between requests.
type RecipeService struct {
	recipes   repository.RecipeRepository
	prefs     repository.PreferenceRepository
	generator RecipeGenerator
	log       *logrus.Logger
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(recipes repository.RecipeRepository, prefs repository.PreferenceRepository, generator RecipeGenerator, log *logrus.Logger) *RecipeService {
	return &RecipeService{
		recipes:   recipes,
		prefs:     prefs,
		generator: generator,
		log:       log,
	}
}

// GenerateRecipe produces a draft from the given ingredients and checks it
// against the caller's avoidance list. Nothing is persisted; the draft is
// discarded unless the caller later creates it with source "ai".
func (s *RecipeService) GenerateRecipe(ctx context.Context, ownerID uuid.UUID, ingredients []string) (*types.RecipeDraft, []types.IngredientWarning, error) {
	verr := NewValidationError()
	nonEmpty := 0
	for _, ing := range ingredients {
		if strings.TrimSpace(ing) != "" {
			nonEmpty++
		}
	}
	if nonEmpty < minGenerationIngredients {
		verr.Add("ingredients", fmt.Sprintf("at least %d non-empty ingredients are required", minGenerationIngredients))
	}
	if verr.HasErrors() {
		return nil, nil, verr
	}

	draft, err := s.generator.Generate(ctx, ingredients)
	if err != nil {
		return nil, nil, err
	}

	avoid, err := s.avoidanceList(ctx, ownerID)
	if err != nil {
		return nil, nil, err
	}

	return draft, CheckIngredients(draft.Ingredients, avoid), nil
}

// avoidanceList fetches the caller's avoidance terms. A missing profile is
// an empty list, not an error.
func (s *RecipeService) avoidanceList(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	profile, err := s.prefs.GetByOwner(ctx, ownerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, s.persistence("fetch preferences", ownerID, err)
	}
	return []string(profile.IngredientsToAvoid), nil
}

// CreateRecipe validates the payload and persists a new recipe for the
// owner. The source tag is caller-declared and only checked for range.
func (s *RecipeService) CreateRecipe(ctx context.Context, ownerID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	verr := NewValidationError()
	title := strings.TrimSpace(req.Title)
	if title == "" {
		verr.Add("title", "title is required")
	} else if len(title) > 255 {
		verr.Add("title", "title must be at most 255 characters")
	}
	validateStringList(verr, "ingredients", req.Ingredients)
	validateStringList(verr, "preparation_steps", req.PreparationSteps)
	if req.Source != models.SourceAI && req.Source != models.SourceManual {
		verr.Add("source", `source must be "ai" or "manual"`)
	}
	if verr.HasErrors() {
		return nil, verr
	}

	recipe := &models.Recipe{
		UserID:           ownerID,
		Title:            title,
		Ingredients:      models.JSONBStringArray(req.Ingredients),
		PreparationSteps: models.JSONBStringArray(req.PreparationSteps),
		Source:           req.Source,
	}
	if err := s.recipes.Create(ctx, recipe); err != nil {
		return nil, s.persistence("create recipe", ownerID, err)
	}
	return recipe, nil
}

// GetRecipe fetches an owned recipe. A recipe belonging to someone else is
// indistinguishable from one that does not exist.
func (s *RecipeService) GetRecipe(ctx context.Context, id, ownerID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.recipes.Get(ctx, id, ownerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, s.persistence("get recipe", ownerID, err)
	}
	return recipe, nil
}

// ListRecipes validates pagination and filter parameters, then returns one
// page of the owner's recipes.
func (s *RecipeService) ListRecipes(ctx context.Context, ownerID uuid.UUID, params types.ListRecipesParams) ([]models.Recipe, types.PaginationInfo, error) {
	verr := NewValidationError()
	if params.Page == 0 {
		params.Page = types.DefaultPage
	} else if params.Page < 1 {
		verr.Add("page", "page must be a positive integer")
	}
	if params.Limit == 0 {
		params.Limit = types.DefaultLimit
	} else if params.Limit < 1 {
		verr.Add("limit", "limit must be a positive integer")
	} else if params.Limit > types.MaxLimit {
		// Over-limit requests are rejected, not clamped.
		verr.Add("limit", fmt.Sprintf("limit must be at most %d", types.MaxLimit))
	}
	if params.Sort == "" {
		params.Sort = types.SortByCreatedAt
	} else if params.Sort != types.SortByCreatedAt && params.Sort != types.SortByUpdatedAt && params.Sort != types.SortByTitle {
		verr.Add("sort", "sort must be one of created_at, updated_at, title")
	}
	if params.Order == "" {
		params.Order = types.OrderDesc
	} else if params.Order != types.OrderAsc && params.Order != types.OrderDesc {
		verr.Add("order", "order must be asc or desc")
	}
	if params.Source != "" && params.Source != models.SourceAI && params.Source != models.SourceManual {
		verr.Add("source", `source must be "ai" or "manual"`)
	}
	if verr.HasErrors() {
		return nil, types.PaginationInfo{}, verr
	}

	recipes, total, err := s.recipes.List(ctx, ownerID, params)
	if err != nil {
		return nil, types.PaginationInfo{}, s.persistence("list recipes", ownerID, err)
	}
	return recipes, types.NewPaginationInfo(params.Page, params.Limit, total), nil
}

// UpdateRecipe applies a partial update to an owned recipe. At least one
// mutable field must be present; supplying none is a validation failure,
// not a no-op success.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, ownerID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	verr := NewValidationError()
	if req.Empty() {
		verr.Add("fields", "at least one of title, ingredients or preparation_steps must be provided")
		return nil, verr
	}

	fields := make(map[string]interface{})
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			verr.Add("title", "title is required")
		} else if len(title) > 255 {
			verr.Add("title", "title must be at most 255 characters")
		} else {
			fields["title"] = title
		}
	}
	if req.Ingredients != nil {
		validateStringList(verr, "ingredients", *req.Ingredients)
		fields["ingredients"] = models.JSONBStringArray(*req.Ingredients)
	}
	if req.PreparationSteps != nil {
		validateStringList(verr, "preparation_steps", *req.PreparationSteps)
		fields["preparation_steps"] = models.JSONBStringArray(*req.PreparationSteps)
	}
	if verr.HasErrors() {
		return nil, verr
	}

	recipe, err := s.recipes.Update(ctx, id, ownerID, fields)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, s.persistence("update recipe", ownerID, err)
	}
	return recipe, nil
}

// DeleteRecipe removes an owned recipe. The bool reports whether a row was
// actually removed; deleting the same id twice returns true then false.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	deleted, err := s.recipes.Delete(ctx, id, ownerID)
	if err != nil {
		return false, s.persistence("delete recipe", ownerID, err)
	}
	return deleted, nil
}

// AttachImage records a stored image URL on an owned recipe.
func (s *RecipeService) AttachImage(ctx context.Context, id, ownerID uuid.UUID, url string) (*models.Recipe, error) {
	recipe, err := s.recipes.SetImageURL(ctx, id, ownerID, url)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, s.persistence("attach recipe image", ownerID, err)
	}
	return recipe, nil
}

func validateStringList(verr *ValidationError, field string, values []string) {
	if len(values) == 0 {
		verr.Add(field, field+" must contain at least one entry")
		return
	}
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			verr.Add(field, field+" entries must be non-empty")
			return
		}
	}
}

// persistence logs the storage failure with its operation and owner, then
// returns the opaque taxonomy error. Payloads and credentials never reach
// the log.
func (s *RecipeService) persistence(op string, ownerID uuid.UUID, err error) error {
	s.log.WithFields(logrus.Fields{
		"operation": op,
		"owner_id":  ownerID,
	}).WithError(err).Error("storage operation failed")
	return &PersistenceError{Op: op, Err: err}
}
