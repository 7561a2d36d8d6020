package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrychef/backend/internal/models"
	"github.com/pantrychef/backend/internal/types"
)

// sortColumns whitelists the sortable fields. Validation happens in the
// service layer; the map here is the last line of defense against raw
// column injection.
var sortColumns = map[string]string{
	types.SortByCreatedAt: "created_at",
	types.SortByUpdatedAt: "updated_at",
	types.SortByTitle:     "title",
}

// GormRecipeRepository implements RecipeRepository on a *gorm.DB.
type GormRecipeRepository struct {
	db *gorm.DB
}

var _ RecipeRepository = (*GormRecipeRepository)(nil)

// NewGormRecipeRepository creates a new GormRecipeRepository instance.
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// Create inserts a recipe. ID and both timestamps are assigned by the
// storage layer.
func (r *GormRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

// Get fetches a recipe scoped by id and owner.
func (r *GormRecipeRepository) Get(ctx context.Context, id, ownerID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		First(&recipe, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// List returns one page of the owner's recipes plus the filtered total.
// The source filter applies before counting so total_items reflects the
// filtered set. Ties on the sort column fall back to id so pages stay
// stable across calls.
func (r *GormRecipeRepository) List(ctx context.Context, ownerID uuid.UUID, params types.ListRecipesParams) ([]models.Recipe, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Recipe{}).Where("user_id = ?", ownerID)
	if params.Source != "" {
		query = query.Where("source = ?", params.Source)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[params.Sort]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if params.Order == types.OrderAsc {
		direction = "ASC"
	}

	var recipes []models.Recipe
	err := query.
		Order(fmt.Sprintf("%s %s", column, direction)).
		Order("id ASC").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// Update applies a partial field map to an owned recipe and reloads the
// row. GORM refreshes updated_at on its own.
func (r *GormRecipeRepository) Update(ctx context.Context, id, ownerID uuid.UUID, fields map[string]interface{}) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.WithContext(ctx).
		First(&recipe, "id = ? AND user_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(fields).Error
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, id, ownerID)
}

// Delete removes an owned recipe. Returns false when nothing matched, so a
// second delete of the same id is a no-op rather than an error.
func (r *GormRecipeRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&models.Recipe{}, "id = ? AND user_id = ?", id, ownerID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetImageURL records the stored image location on an owned recipe.
func (r *GormRecipeRepository) SetImageURL(ctx context.Context, id, ownerID uuid.UUID, url string) (*models.Recipe, error) {
	return r.Update(ctx, id, ownerID, map[string]interface{}{"image_url": url})
}

// GormPreferenceRepository implements PreferenceRepository on a *gorm.DB.
type GormPreferenceRepository struct {
	db *gorm.DB
}

var _ PreferenceRepository = (*GormPreferenceRepository)(nil)

// NewGormPreferenceRepository creates a new GormPreferenceRepository instance.
func NewGormPreferenceRepository(db *gorm.DB) *GormPreferenceRepository {
	return &GormPreferenceRepository{db: db}
}

// Create inserts a profile, refusing a second one for the same owner.
func (r *GormPreferenceRepository) Create(ctx context.Context, profile *models.PreferenceProfile) error {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.PreferenceProfile{}).
		Where("user_id = ?", profile.UserID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return gorm.ErrDuplicatedKey
	}
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetByOwner fetches the owner's profile.
func (r *GormPreferenceRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.PreferenceProfile, error) {
	var profile models.PreferenceProfile
	err := r.db.WithContext(ctx).
		First(&profile, "user_id = ?", ownerID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update replaces the avoidance list on an existing profile.
func (r *GormPreferenceRepository) Update(ctx context.Context, ownerID uuid.UUID, ingredientsToAvoid []string) (*models.PreferenceProfile, error) {
	var profile models.PreferenceProfile
	err := r.db.WithContext(ctx).
		First(&profile, "user_id = ?", ownerID).Error
	if err != nil {
		return nil, err
	}

	profile.IngredientsToAvoid = models.JSONBStringArray(ingredientsToAvoid)
	if err := r.db.WithContext(ctx).Save(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// IsNotFound reports whether err is the store's missing-row condition.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is the store's unique-violation condition.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
