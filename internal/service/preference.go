package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pantrychef/backend/internal/models"
	"github.com/pantrychef/backend/internal/repository"
)

// PreferenceService manages the per-user ingredient avoidance list.
type PreferenceService struct {
	prefs repository.PreferenceRepository
	log   *logrus.Logger
}

// NewPreferenceService creates a new PreferenceService instance.
func NewPreferenceService(prefs repository.PreferenceRepository, log *logrus.Logger) *PreferenceService {
	return &PreferenceService{prefs: prefs, log: log}
}

// GetProfile fetches the owner's preference profile.
func (s *PreferenceService) GetProfile(ctx context.Context, ownerID uuid.UUID) (*models.PreferenceProfile, error) {
	profile, err := s.prefs.GetByOwner(ctx, ownerID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, s.persistence("get preferences", ownerID, err)
	}
	return profile, nil
}

// CreateProfile creates the owner's profile. A second create for the same
// owner fails with ErrConflict.
func (s *PreferenceService) CreateProfile(ctx context.Context, ownerID uuid.UUID, ingredientsToAvoid []string) (*models.PreferenceProfile, error) {
	profile := &models.PreferenceProfile{
		UserID:             ownerID,
		IngredientsToAvoid: models.JSONBStringArray(normalizeAvoidList(ingredientsToAvoid)),
	}
	if err := s.prefs.Create(ctx, profile); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrConflict
		}
		return nil, s.persistence("create preferences", ownerID, err)
	}
	return profile, nil
}

// UpdateProfile replaces the avoidance list on an existing profile.
func (s *PreferenceService) UpdateProfile(ctx context.Context, ownerID uuid.UUID, ingredientsToAvoid []string) (*models.PreferenceProfile, error) {
	profile, err := s.prefs.Update(ctx, ownerID, normalizeAvoidList(ingredientsToAvoid))
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, s.persistence("update preferences", ownerID, err)
	}
	return profile, nil
}

// normalizeAvoidList lowercases, trims and deduplicates avoidance terms.
// The stored list is a set; comparison downstream is case-insensitive.
func normalizeAvoidList(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func (s *PreferenceService) persistence(op string, ownerID uuid.UUID, err error) error {
	s.log.WithFields(logrus.Fields{
		"operation": op,
		"owner_id":  ownerID,
	}).WithError(err).Error("storage operation failed")
	return &PersistenceError{Op: op, Err: err}
}
