package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-discover/backend/internal/events"
	"github.com/pageza/alchemorsel-discover/backend/internal/models"
	"github.com/pageza/alchemorsel-discover/backend/internal/storage"
)

// PreferencesKey is the storage key of the serialized UserPreferences.
const PreferencesKey = "user_preferences"

// PreferencesService owns the user's preferences. Every applied change is
// written through to the store and then announced on the bus.
type PreferencesService struct {
	store  storage.KeyValueStore
	bus    *events.Bus
	logger *zap.Logger

	// writeMu serializes mutate-persist-publish so writes and events keep the same order.
	writeMu sync.Mutex

	mu     sync.RWMutex
	prefs  models.UserPreferences
	loaded bool
}

var _ IPreferencesService = (*PreferencesService)(nil)

// NewPreferencesService creates a PreferencesService holding defaults until Load runs.
func NewPreferencesService(store storage.KeyValueStore, bus *events.Bus, logger *zap.Logger) *PreferencesService {
	return &PreferencesService{
		store:  store,
		bus:    bus,
		logger: logger,
		prefs:  models.DefaultUserPreferences(),
	}
}

// Load reads the stored preferences over the defaults and enables writes.
// A read failure keeps the defaults, still completes the load and returns ErrPersistence.
func (s *PreferencesService) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	prefs := models.DefaultUserPreferences()
	_, err := storage.LoadJSON(ctx, s.store, PreferencesKey, &prefs)
	if err != nil {
		s.logger.Warn("failed to load preferences, using defaults", zap.String("key", PreferencesKey), zap.Error(err))
		prefs = models.DefaultUserPreferences()
	}
	normalizePreferences(&prefs)

	s.mu.Lock()
	s.prefs = prefs
	s.loaded = true
	snapshot := s.prefs.Clone()
	s.mu.Unlock()

	s.bus.Publish(events.Event{Type: events.PreferencesLoaded, Payload: snapshot})

	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Loaded reports whether Load has completed.
func (s *PreferencesService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Preferences returns a copy of the current preferences.
func (s *PreferencesService) Preferences() models.UserPreferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.Clone()
}

// IsFavorite reports whether recipeID is in the favorites list.
func (s *PreferencesService) IsFavorite(recipeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.IsFavorite(recipeID)
}

func (s *PreferencesService) SetUnitType(ctx context.Context, unit models.UnitType) (models.UserPreferences, error) {
	if !unit.Valid() {
		return s.Preferences(), ErrInvalidUnitType
	}
	return s.mutate(ctx, events.PreferencesUpdated, func(p *models.UserPreferences) bool {
		if p.UnitType == unit {
			return false
		}
		p.UnitType = unit
		return true
	})
}

func (s *PreferencesService) AddAllergy(ctx context.Context, allergy string) (models.UserPreferences, error) {
	allergy = strings.TrimSpace(allergy)
	if allergy == "" {
		return s.Preferences(), ErrEmptyValue
	}
	return s.mutate(ctx, events.PreferencesAllergies, func(p *models.UserPreferences) bool {
		return addUnique(&p.Allergies, allergy)
	})
}

func (s *PreferencesService) RemoveAllergy(ctx context.Context, allergy string) (models.UserPreferences, error) {
	return s.mutate(ctx, events.PreferencesAllergies, func(p *models.UserPreferences) bool {
		return removeAll(&p.Allergies, allergy)
	})
}

func (s *PreferencesService) AddExcludedIngredient(ctx context.Context, ingredient string) (models.UserPreferences, error) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return s.Preferences(), ErrEmptyValue
	}
	return s.mutate(ctx, events.PreferencesExcludedIngredients, func(p *models.UserPreferences) bool {
		return addUnique(&p.ExcludedIngredients, ingredient)
	})
}

func (s *PreferencesService) RemoveExcludedIngredient(ctx context.Context, ingredient string) (models.UserPreferences, error) {
	return s.mutate(ctx, events.PreferencesExcludedIngredients, func(p *models.UserPreferences) bool {
		return removeAll(&p.ExcludedIngredients, ingredient)
	})
}

// ToggleFavorite adds or removes recipeID from the favorites list.
func (s *PreferencesService) ToggleFavorite(ctx context.Context, recipeID string) (models.UserPreferences, error) {
	if strings.TrimSpace(recipeID) == "" {
		return s.Preferences(), ErrEmptyValue
	}
	return s.mutate(ctx, events.PreferencesFavorites, func(p *models.UserPreferences) bool {
		if !removeAll(&p.FavoriteRecipes, recipeID) {
			p.FavoriteRecipes = append(p.FavoriteRecipes, recipeID)
		}
		return true
	})
}

func (s *PreferencesService) SetIsVegan(ctx context.Context, vegan bool) (models.UserPreferences, error) {
	return s.mutate(ctx, events.PreferencesVegan, func(p *models.UserPreferences) bool {
		if p.IsVegan == vegan {
			return false
		}
		p.IsVegan = vegan
		return true
	})
}

func (s *PreferencesService) SetUserName(ctx context.Context, name string) (models.UserPreferences, error) {
	name = strings.TrimSpace(name)
	return s.mutate(ctx, events.PreferencesUpdated, func(p *models.UserPreferences) bool {
		if p.UserName == name {
			return false
		}
		p.UserName = name
		return true
	})
}

func (s *PreferencesService) ToggleNutritionalInfo(ctx context.Context) (models.UserPreferences, error) {
	return s.mutate(ctx, events.PreferencesUpdated, func(p *models.UserPreferences) bool {
		p.ShowNutritionalInfo = !p.ShowNutritionalInfo
		return true
	})
}

// Reset restores the defaults. Subscribers clear reviews and rebuild filters.
func (s *PreferencesService) Reset(ctx context.Context) (models.UserPreferences, error) {
	return s.mutate(ctx, events.PreferencesReset, func(p *models.UserPreferences) bool {
		*p = models.DefaultUserPreferences()
		return true
	})
}

// mutate applies fn to a copy of the preferences. When fn reports a change the
// copy becomes current, is persisted and evt is published. A persistence
// failure keeps the new in-memory value and returns ErrPersistence.
func (s *PreferencesService) mutate(ctx context.Context, evt events.Type, fn func(p *models.UserPreferences) bool) (models.UserPreferences, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return models.DefaultUserPreferences(), ErrNotLoaded
	}
	next := s.prefs.Clone()
	if !fn(&next) {
		s.mu.Unlock()
		return next, nil
	}
	s.prefs = next
	snapshot := next.Clone()
	s.mu.Unlock()

	var persistErr error
	if err := storage.SaveJSON(ctx, s.store, PreferencesKey, snapshot); err != nil {
		s.logger.Warn("failed to save preferences", zap.String("key", PreferencesKey), zap.Error(err))
		persistErr = fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.bus.Publish(events.Event{Type: evt, Payload: snapshot.Clone()})
	return snapshot, persistErr
}

// normalizePreferences replaces missing lists and unknown unit types from a stored blob.
func normalizePreferences(p *models.UserPreferences) {
	if p.Allergies == nil {
		p.Allergies = []string{}
	}
	if p.ExcludedIngredients == nil {
		p.ExcludedIngredients = []string{}
	}
	if p.FavoriteRecipes == nil {
		p.FavoriteRecipes = []string{}
	}
	if !p.UnitType.Valid() {
		p.UnitType = models.UnitMetric
	}
}

func addUnique(list *[]string, v string) bool {
	for _, item := range *list {
		if item == v {
			return false
		}
	}
	*list = append(*list, v)
	return true
}

func removeAll(list *[]string, v string) bool {
	out := (*list)[:0]
	removed := false
	for _, item := range *list {
		if item == v {
			removed = true
			continue
		}
		out = append(out, item)
	}
	*list = out
	return removed
}
