package main

import (
	"github.com/sirupsen/logrus"

	"github.com/pantrychef/backend/config"
	"github.com/pantrychef/backend/internal/database"
)

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
	log.Info("migration complete")
}
