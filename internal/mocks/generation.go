package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pantrychef/backend/internal/types"
)

// MockRecipeGenerator is a mock implementation of the recipe generator.
type MockRecipeGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method.
func (m *MockRecipeGenerator) Generate(ctx context.Context, ingredients []string) (*types.RecipeDraft, error) {
	args := m.Called(ctx, ingredients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.RecipeDraft), args.Error(1)
}
