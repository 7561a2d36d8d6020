package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pantrychef/backend/config"
	"github.com/pantrychef/backend/internal/database"
	"github.com/pantrychef/backend/internal/models"
	"github.com/pantrychef/backend/internal/repository"
)

// Seeds a demo owner with a few recipes and a preference profile for
// local development.
func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	ctx := context.Background()
	ownerID := uuid.MustParse("00000000-0000-0000-0000-000000000001")

	recipes := repository.NewGormRecipeRepository(db)
	prefs := repository.NewGormPreferenceRepository(db)

	seedRecipes := []models.Recipe{
		{
			UserID:           ownerID,
			Title:            "Spaghetti Aglio e Olio",
			Ingredients:      models.JSONBStringArray{"400g spaghetti", "6 cloves garlic", "120ml olive oil", "1 tsp chili flakes", "fresh parsley"},
			PreparationSteps: models.JSONBStringArray{"Cook the spaghetti until al dente", "Gently fry sliced garlic in olive oil", "Toss pasta with the oil and chili flakes", "Finish with chopped parsley"},
			Source:           models.SourceManual,
		},
		{
			UserID:           ownerID,
			Title:            "Chickpea Curry",
			Ingredients:      models.JSONBStringArray{"2 cans chickpeas", "1 onion", "2 tbsp curry paste", "400ml coconut milk", "rice to serve"},
			PreparationSteps: models.JSONBStringArray{"Soften the onion", "Stir in curry paste", "Add chickpeas and coconut milk, simmer 15 minutes", "Serve over rice"},
			Source:           models.SourceAI,
		},
	}

	for i := range seedRecipes {
		if err := recipes.Create(ctx, &seedRecipes[i]); err != nil {
			log.WithError(err).Fatal("failed to seed recipe")
		}
	}

	profile := &models.PreferenceProfile{
		UserID:             ownerID,
		IngredientsToAvoid: models.JSONBStringArray{"peanut", "shellfish"},
	}
	if err := prefs.Create(ctx, profile); err != nil {
		log.WithError(err).Warn("preference profile already seeded")
	}

	log.WithField("owner_id", ownerID).Info("seed data created")
}
