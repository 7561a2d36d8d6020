package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pantrychef/backend/internal/mocks"
	"github.com/pantrychef/backend/internal/models"
	"github.com/pantrychef/backend/internal/repository"
	"github.com/pantrychef/backend/internal/types"
)

func newTestRecipeService() (*RecipeService, *repository.MemoryRecipeRepository, *repository.MemoryPreferenceRepository, *mocks.MockRecipeGenerator) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	recipes := repository.NewMemoryRecipeRepository()
	prefs := repository.NewMemoryPreferenceRepository()
	generator := new(mocks.MockRecipeGenerator)
	return NewRecipeService(recipes, prefs, generator, log), recipes, prefs, generator
}

func validCreateRequest() *types.CreateRecipeRequest {
	return &types.CreateRecipeRequest{
		Title:            "Garlic Pasta",
		Ingredients:      []string{"8 oz spaghetti", "4 cloves garlic", "olive oil"},
		PreparationSteps: []string{"Boil pasta", "Saute garlic", "Combine"},
		Source:           models.SourceManual,
	}
}

func TestCreateAndGetRecipe(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateRecipe(ctx, owner, validCreateRequest())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, owner, created.UserID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := svc.GetRecipe(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "Garlic Pasta", got.Title)
	assert.Equal(t, []string{"8 oz spaghetti", "4 cloves garlic", "olive oil"}, []string(got.Ingredients))
	assert.Equal(t, models.SourceManual, got.Source)
}

func TestCreateRecipeValidation(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()

	tests := []struct {
		name   string
		mutate func(*types.CreateRecipeRequest)
		field  string
	}{
		{"empty title", func(r *types.CreateRecipeRequest) { r.Title = "   " }, "title"},
		{"title too long", func(r *types.CreateRecipeRequest) {
			r.Title = strings.Repeat("a", 256)
		}, "title"},
		{"no ingredients", func(r *types.CreateRecipeRequest) { r.Ingredients = nil }, "ingredients"},
		{"blank ingredient entry", func(r *types.CreateRecipeRequest) {
			r.Ingredients = []string{"flour", "  "}
		}, "ingredients"},
		{"no steps", func(r *types.CreateRecipeRequest) { r.PreparationSteps = []string{} }, "preparation_steps"},
		{"bad source", func(r *types.CreateRecipeRequest) { r.Source = "imported" }, "source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, err := svc.CreateRecipe(ctx, owner, req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestCreateRecipeTrimsTitle(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()

	req := validCreateRequest()
	req.Title = "  Garlic Pasta  "
	created, err := svc.CreateRecipe(context.Background(), uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, "Garlic Pasta", created.Title)
}

func TestGetRecipeOwnershipScoping(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	created, err := svc.CreateRecipe(ctx, owner, validCreateRequest())
	require.NoError(t, err)

	// A non-owner sees the same error as a missing recipe.
	_, err = svc.GetRecipe(ctx, created.ID, stranger)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetRecipe(ctx, uuid.New(), owner)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRecipePartial(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateRecipe(ctx, owner, validCreateRequest())
	require.NoError(t, err)

	newTitle := "Spicy Garlic Pasta"
	updated, err := svc.UpdateRecipe(ctx, created.ID, owner, &types.UpdateRecipeRequest{Title: &newTitle})
	require.NoError(t, err)

	// Absent fields stay untouched; updated_at advances past created_at.
	assert.Equal(t, "Spicy Garlic Pasta", updated.Title)
	assert.Equal(t, []string(created.Ingredients), []string(updated.Ingredients))
	assert.Equal(t, []string(created.PreparationSteps), []string(updated.PreparationSteps))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUpdateRecipeEmptyPayload(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateRecipe(ctx, owner, validCreateRequest())
	require.NoError(t, err)

	_, err = svc.UpdateRecipe(ctx, created.ID, owner, &types.UpdateRecipeRequest{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "fields")
}

func TestUpdateRecipeNotOwned(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateRecipe(ctx, owner, validCreateRequest())
	require.NoError(t, err)

	newTitle := "Hijacked"
	_, err = svc.UpdateRecipe(ctx, created.ID, uuid.New(), &types.UpdateRecipeRequest{Title: &newTitle})
	assert.ErrorIs(t, err, ErrNotFound)

	unchanged, err := svc.GetRecipe(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Garlic Pasta", unchanged.Title)
}

func TestDeleteRecipeIdempotent(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateRecipe(ctx, owner, validCreateRequest())
	require.NoError(t, err)

	deleted, err := svc.DeleteRecipe(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteRecipe(ctx, created.ID, owner)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteRecipeNotOwned(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()

	created, err := svc.CreateRecipe(ctx, owner, validCreateRequest())
	require.NoError(t, err)

	deleted, err := svc.DeleteRecipe(ctx, created.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = svc.GetRecipe(ctx, created.ID, owner)
	assert.NoError(t, err)
}

func seedRecipes(t *testing.T, svc *RecipeService, owner uuid.UUID, n int, source string) {
	t.Helper()
	for i := 0; i < n; i++ {
		req := validCreateRequest()
		req.Title = string(rune('A'+i)) + " Recipe"
		req.Source = source
		_, err := svc.CreateRecipe(context.Background(), owner, req)
		require.NoError(t, err)
	}
}

func TestListRecipesPagination(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()
	seedRecipes(t, svc, owner, 7, models.SourceManual)

	seen := make(map[uuid.UUID]bool)
	var fetched int
	for page := 1; page <= 3; page++ {
		recipes, pagination, err := svc.ListRecipes(ctx, owner, types.ListRecipesParams{Page: page, Limit: 3})
		require.NoError(t, err)

		assert.Equal(t, int64(7), pagination.TotalItems)
		assert.Equal(t, 3, pagination.TotalPages)
		assert.Equal(t, page, pagination.CurrentPage)
		assert.Equal(t, page < 3, pagination.HasNext)
		assert.Equal(t, page > 1, pagination.HasPrev)

		for _, r := range recipes {
			assert.False(t, seen[r.ID], "recipe appeared on two pages")
			seen[r.ID] = true
		}
		fetched += len(recipes)
	}
	assert.Equal(t, 7, fetched)
}

func TestListRecipesDefaults(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()
	owner := uuid.New()
	seedRecipes(t, svc, owner, 2, models.SourceManual)

	recipes, pagination, err := svc.ListRecipes(context.Background(), owner, types.ListRecipesParams{})
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
	assert.Equal(t, 1, pagination.CurrentPage)
	assert.Equal(t, types.DefaultLimit, pagination.Limit)
	assert.False(t, pagination.HasNext)
	assert.False(t, pagination.HasPrev)
}

func TestListRecipesParamValidation(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()

	tests := []struct {
		name   string
		params types.ListRecipesParams
		field  string
	}{
		{"negative page", types.ListRecipesParams{Page: -1}, "page"},
		{"negative limit", types.ListRecipesParams{Limit: -5}, "limit"},
		{"limit over ceiling", types.ListRecipesParams{Limit: types.MaxLimit + 1}, "limit"},
		{"unknown sort", types.ListRecipesParams{Sort: "calories"}, "sort"},
		{"unknown order", types.ListRecipesParams{Order: "sideways"}, "order"},
		{"unknown source", types.ListRecipesParams{Source: "imported"}, "source"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.ListRecipes(ctx, owner, tt.params)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestListRecipesSourceFilter(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()
	seedRecipes(t, svc, owner, 2, models.SourceAI)
	seedRecipes(t, svc, owner, 3, models.SourceManual)

	recipes, pagination, err := svc.ListRecipes(ctx, owner, types.ListRecipesParams{Source: models.SourceAI})
	require.NoError(t, err)
	assert.Len(t, recipes, 2)
	// The filter applies before counting, not after.
	assert.Equal(t, int64(2), pagination.TotalItems)
	for _, r := range recipes {
		assert.Equal(t, models.SourceAI, r.Source)
	}
}

func TestListRecipesOwnerIsolation(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()
	seedRecipes(t, svc, owner, 3, models.SourceManual)
	seedRecipes(t, svc, other, 2, models.SourceManual)

	recipes, pagination, err := svc.ListRecipes(ctx, owner, types.ListRecipesParams{})
	require.NoError(t, err)
	assert.Len(t, recipes, 3)
	assert.Equal(t, int64(3), pagination.TotalItems)
	for _, r := range recipes {
		assert.Equal(t, owner, r.UserID)
	}
}

func TestListRecipesSortByTitle(t *testing.T) {
	svc, _, _, _ := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()
	for _, title := range []string{"Banana Bread", "Apple Pie", "Carrot Cake"} {
		req := validCreateRequest()
		req.Title = title
		_, err := svc.CreateRecipe(ctx, owner, req)
		require.NoError(t, err)
	}

	recipes, _, err := svc.ListRecipes(ctx, owner, types.ListRecipesParams{Sort: types.SortByTitle, Order: types.OrderAsc})
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, "Apple Pie", recipes[0].Title)
	assert.Equal(t, "Banana Bread", recipes[1].Title)
	assert.Equal(t, "Carrot Cake", recipes[2].Title)
}

func TestGenerateRecipeRequiresThreeIngredients(t *testing.T) {
	svc, _, _, generator := newTestRecipeService()

	_, _, err := svc.GenerateRecipe(context.Background(), uuid.New(), []string{"flour", "sugar"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "ingredients")

	// Blank entries do not count toward the minimum.
	_, _, err = svc.GenerateRecipe(context.Background(), uuid.New(), []string{"flour", "sugar", "   "})
	require.ErrorAs(t, err, &verr)

	generator.AssertNotCalled(t, "Generate")
}

func TestGenerateRecipeReturnsDraftAndWarnings(t *testing.T) {
	svc, _, prefs, generator := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()

	require.NoError(t, prefs.Create(ctx, &models.PreferenceProfile{
		UserID:             owner,
		IngredientsToAvoid: models.JSONBStringArray{"peanut"},
	}))

	draft := &types.RecipeDraft{
		Title:            "Peanut Noodles",
		Ingredients:      []string{"8 oz noodles", "2 tbsp peanut butter"},
		PreparationSteps: []string{"Boil", "Toss"},
	}
	generator.On("Generate", mock.Anything, mock.Anything).Return(draft, nil)

	got, warnings, err := svc.GenerateRecipe(ctx, owner, []string{"noodles", "peanut butter", "soy sauce"})
	require.NoError(t, err)
	assert.Equal(t, draft, got)
	require.Len(t, warnings, 1)
	assert.Equal(t, "peanut", warnings[0].Ingredient)
	generator.AssertExpectations(t)
}

func TestGenerateRecipeNoProfileMeansNoWarnings(t *testing.T) {
	svc, _, _, generator := newTestRecipeService()

	draft := &types.RecipeDraft{
		Title:            "Plain Noodles",
		Ingredients:      []string{"noodles", "peanut butter"},
		PreparationSteps: []string{"Boil"},
	}
	generator.On("Generate", mock.Anything, mock.Anything).Return(draft, nil)

	_, warnings, err := svc.GenerateRecipe(context.Background(), uuid.New(), []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestGenerateRecipeUpstreamFailure(t *testing.T) {
	svc, recipes, _, generator := newTestRecipeService()
	ctx := context.Background()
	owner := uuid.New()

	generator.On("Generate", mock.Anything, mock.Anything).Return(nil, ErrGenerationUnavailable)

	_, _, err := svc.GenerateRecipe(ctx, owner, []string{"a", "b", "c"})
	assert.ErrorIs(t, err, ErrGenerationUnavailable)

	// Nothing was persisted along the way.
	listed, total, err := recipes.List(ctx, owner, types.ListRecipesParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, listed)
	assert.Zero(t, total)
}
