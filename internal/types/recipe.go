package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pantrychef/backend/internal/models"
)

// RecipeResponse is the wire representation of a persisted recipe.
type RecipeResponse struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Ingredients      []string  `json:"ingredients"`
	PreparationSteps []string  `json:"preparation_steps"`
	Source           string    `json:"source"`
	ImageURL         string    `json:"image_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateRecipeRequest is the payload for creating a recipe, either from
// manual entry or from an accepted AI draft.
type CreateRecipeRequest struct {
	Title            string   `json:"title" binding:"required"`
	Ingredients      []string `json:"ingredients" binding:"required"`
	PreparationSteps []string `json:"preparation_steps" binding:"required"`
	Source           string   `json:"source" binding:"required"`
}

// UpdateRecipeRequest carries a partial update. Nil pointers mean the
// field was absent from the payload and must be left untouched.
type UpdateRecipeRequest struct {
	Title            *string   `json:"title,omitempty"`
	Ingredients      *[]string `json:"ingredients,omitempty"`
	PreparationSteps *[]string `json:"preparation_steps,omitempty"`
}

// Empty reports whether no mutable field was supplied at all.
func (r *UpdateRecipeRequest) Empty() bool {
	return r.Title == nil && r.Ingredients == nil && r.PreparationSteps == nil
}

// NewRecipeResponse maps the storage representation to the wire shape.
func NewRecipeResponse(r *models.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:               r.ID,
		Title:            r.Title,
		Ingredients:      []string(r.Ingredients),
		PreparationSteps: []string(r.PreparationSteps),
		Source:           r.Source,
		ImageURL:         r.ImageURL,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// NewRecipeListResponse maps a page of recipes.
func NewRecipeListResponse(recipes []models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		out[i] = NewRecipeResponse(&recipes[i])
	}
	return out
}
