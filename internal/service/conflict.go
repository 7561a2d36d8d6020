package service

import (
	"fmt"
	"strings"

	"github.com/pantrychef/backend/internal/types"
)

// CheckIngredients compares a draft's ingredient lines against the user's
// avoidance list and returns a warning for each avoided term that appears
// somewhere in the draft. Matching is case-insensitive substring
// containment, so "nut" flags "2 tbsp peanut butter".
//
// Warnings follow the iteration order of the ingredient lines. Each line
// contributes at most one warning (the first avoided term that matches),
// and each avoided term warns at most once overall. Warnings never block
// the draft from being returned or saved later.
func CheckIngredients(ingredients []string, avoid []string) []types.IngredientWarning {
	if len(avoid) == 0 {
		return nil
	}

	terms := make([]string, 0, len(avoid))
	for _, t := range avoid {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return nil
	}

	var warnings []types.IngredientWarning
	warned := make(map[string]bool, len(terms))
	for _, line := range ingredients {
		lower := strings.ToLower(line)
		for _, term := range terms {
			if warned[term] || !strings.Contains(lower, term) {
				continue
			}
			warned[term] = true
			warnings = append(warnings, types.IngredientWarning{
				Ingredient: term,
				Message:    fmt.Sprintf("This recipe contains %q, which is on your list of ingredients to avoid.", term),
			})
			break
		}
	}
	return warnings
}
