// Package repository owns persistence for recipes and preference profiles.
// Implementations report missing rows with gorm.ErrRecordNotFound and
// unique violations with gorm.ErrDuplicatedKey; translation into the
// service error taxonomy happens one layer up.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/pantrychef/backend/internal/models"
	"github.com/pantrychef/backend/internal/types"
)

// RecipeRepository is the store abstraction for recipe rows. Every
// operation that targets a specific recipe is scoped by (id, owner); a
// mismatch on either behaves as not found.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	Get(ctx context.Context, id, ownerID uuid.UUID) (*models.Recipe, error)
	List(ctx context.Context, ownerID uuid.UUID, params types.ListRecipesParams) ([]models.Recipe, int64, error)
	Update(ctx context.Context, id, ownerID uuid.UUID, fields map[string]interface{}) (*models.Recipe, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
	SetImageURL(ctx context.Context, id, ownerID uuid.UUID, url string) (*models.Recipe, error)
}

// PreferenceRepository is the store abstraction for preference profiles,
// one row per owner.
type PreferenceRepository interface {
	Create(ctx context.Context, profile *models.PreferenceProfile) error
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*models.PreferenceProfile, error)
	Update(ctx context.Context, ownerID uuid.UUID, ingredientsToAvoid []string) (*models.PreferenceProfile, error)
}
