package types

// GenerateRecipeRequest is the payload for an AI generation request.
type GenerateRecipeRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
}

// RecipeDraft is a generated recipe that has not been persisted. It becomes
// a Recipe only if the caller issues a create call with source "ai".
type RecipeDraft struct {
	Title            string   `json:"title"`
	Ingredients      []string `json:"ingredients"`
	PreparationSteps []string `json:"preparation_steps"`
}

// IngredientWarning flags a generated ingredient line that contains a term
// from the user's avoidance list. Warnings are informational and never
// block the draft from being returned or saved.
type IngredientWarning struct {
	Ingredient string `json:"ingredient"`
	Message    string `json:"message"`
}

// GenerateRecipeResponse bundles the draft with any avoidance warnings.
type GenerateRecipeResponse struct {
	Draft    RecipeDraft         `json:"draft"`
	Warnings []IngredientWarning `json:"warnings"`
}

// PreferenceRequest is the payload for creating or replacing a user's
// ingredient avoidance list.
type PreferenceRequest struct {
	IngredientsToAvoid []string `json:"ingredients_to_avoid"`
}
