package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrychef/backend/internal/models"
	"github.com/pantrychef/backend/internal/types"
)

// MemoryRecipeRepository is an in-memory RecipeRepository for tests. It
// mirrors the GORM implementation's semantics: owner scoping, filtered
// counts, deterministic sort with id tiebreak, and storage-managed
// timestamps.
type MemoryRecipeRepository struct {
	mu      sync.RWMutex
	recipes map[uuid.UUID]models.Recipe
}

var _ RecipeRepository = (*MemoryRecipeRepository)(nil)

// NewMemoryRecipeRepository creates an empty in-memory repository.
func NewMemoryRecipeRepository() *MemoryRecipeRepository {
	return &MemoryRecipeRepository{recipes: make(map[uuid.UUID]models.Recipe)}
}

func (r *MemoryRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	now := time.Now()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	r.recipes[recipe.ID] = cloneRecipe(*recipe)
	return nil
}

func (r *MemoryRecipeRepository) Get(ctx context.Context, id, ownerID uuid.UUID) (*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.recipes[id]
	if !ok || rec.UserID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	out := cloneRecipe(rec)
	return &out, nil
}

func (r *MemoryRecipeRepository) List(ctx context.Context, ownerID uuid.UUID, params types.ListRecipesParams) ([]models.Recipe, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Recipe
	for _, rec := range r.recipes {
		if rec.UserID != ownerID {
			continue
		}
		if params.Source != "" && rec.Source != params.Source {
			continue
		}
		matched = append(matched, cloneRecipe(rec))
	}

	total := int64(len(matched))
	sortRecipes(matched, params.Sort, params.Order)

	start := params.Offset()
	if start >= len(matched) {
		return []models.Recipe{}, total, nil
	}
	end := start + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *MemoryRecipeRepository) Update(ctx context.Context, id, ownerID uuid.UUID, fields map[string]interface{}) (*models.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recipes[id]
	if !ok || rec.UserID != ownerID {
		return nil, gorm.ErrRecordNotFound
	}

	for key, value := range fields {
		switch key {
		case "title":
			rec.Title = value.(string)
		case "ingredients":
			rec.Ingredients = toStringArray(value)
		case "preparation_steps":
			rec.PreparationSteps = toStringArray(value)
		case "image_url":
			rec.ImageURL = value.(string)
		}
	}

	now := time.Now()
	if !now.After(rec.UpdatedAt) {
		now = rec.UpdatedAt.Add(time.Nanosecond)
	}
	rec.UpdatedAt = now
	r.recipes[id] = cloneRecipe(rec)

	out := cloneRecipe(rec)
	return &out, nil
}

func (r *MemoryRecipeRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.recipes[id]
	if !ok || rec.UserID != ownerID {
		return false, nil
	}
	delete(r.recipes, id)
	return true, nil
}

func (r *MemoryRecipeRepository) SetImageURL(ctx context.Context, id, ownerID uuid.UUID, url string) (*models.Recipe, error) {
	return r.Update(ctx, id, ownerID, map[string]interface{}{"image_url": url})
}

// MemoryPreferenceRepository is an in-memory PreferenceRepository for tests.
type MemoryPreferenceRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]models.PreferenceProfile
}

var _ PreferenceRepository = (*MemoryPreferenceRepository)(nil)

// NewMemoryPreferenceRepository creates an empty in-memory repository.
func NewMemoryPreferenceRepository() *MemoryPreferenceRepository {
	return &MemoryPreferenceRepository{profiles: make(map[uuid.UUID]models.PreferenceProfile)}
}

func (r *MemoryPreferenceRepository) Create(ctx context.Context, profile *models.PreferenceProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[profile.UserID]; exists {
		return gorm.ErrDuplicatedKey
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.profiles[profile.UserID] = cloneProfile(*profile)
	return nil
}

func (r *MemoryPreferenceRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.PreferenceProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[ownerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := cloneProfile(profile)
	return &out, nil
}

func (r *MemoryPreferenceRepository) Update(ctx context.Context, ownerID uuid.UUID, ingredientsToAvoid []string) (*models.PreferenceProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[ownerID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	profile.IngredientsToAvoid = append(models.JSONBStringArray{}, ingredientsToAvoid...)
	profile.UpdatedAt = time.Now()
	r.profiles[ownerID] = cloneProfile(profile)

	out := cloneProfile(profile)
	return &out, nil
}

func cloneRecipe(r models.Recipe) models.Recipe {
	r.Ingredients = append(models.JSONBStringArray{}, r.Ingredients...)
	r.PreparationSteps = append(models.JSONBStringArray{}, r.PreparationSteps...)
	return r
}

func cloneProfile(p models.PreferenceProfile) models.PreferenceProfile {
	p.IngredientsToAvoid = append(models.JSONBStringArray{}, p.IngredientsToAvoid...)
	return p
}

func toStringArray(value interface{}) models.JSONBStringArray {
	switch v := value.(type) {
	case models.JSONBStringArray:
		return append(models.JSONBStringArray{}, v...)
	case []string:
		return models.JSONBStringArray(append([]string{}, v...))
	default:
		return models.JSONBStringArray{}
	}
}

func sortRecipes(recipes []models.Recipe, field, order string) {
	desc := order != types.OrderAsc
	sort.SliceStable(recipes, func(i, j int) bool {
		a, b := recipes[i], recipes[j]
		var less, equal bool
		switch field {
		case types.SortByTitle:
			cmp := strings.Compare(a.Title, b.Title)
			less, equal = cmp < 0, cmp == 0
		case types.SortByUpdatedAt:
			less, equal = a.UpdatedAt.Before(b.UpdatedAt), a.UpdatedAt.Equal(b.UpdatedAt)
		default:
			less, equal = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		}
		if equal {
			// id tiebreak keeps pagination deterministic, same as the
			// SQL implementation.
			return a.ID.String() < b.ID.String()
		}
		if desc {
			return !less
		}
		return less
	})
}
