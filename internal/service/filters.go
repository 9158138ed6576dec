package service

import (
	"sync"

	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-discover/backend/internal/catalog"
	"github.com/pageza/alchemorsel-discover/backend/internal/events"
	"github.com/pageza/alchemorsel-discover/backend/internal/favorites"
	"github.com/pageza/alchemorsel-discover/backend/internal/filter"
	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

// PreferencesReader is the read side of the preferences the filter session depends on.
type PreferencesReader interface {
	Preferences() models.UserPreferences
	IsFavorite(recipeID string) bool
}

// FilterState is a snapshot of the browsing session's filters.
type FilterState struct {
	Filters       models.FilterOptions `json:"filters"`
	FavoritesOnly bool                 `json:"favorites_only"`
	ActiveCount   int                  `json:"active_count"`
	IsActive      bool                 `json:"is_active"`
}

// FilterService holds the session's working FilterOptions and keeps the
// profile-derived parts in step with preference changes.
type FilterService struct {
	catalog *catalog.Catalog
	prefs   PreferencesReader
	ledger  *favorites.Ledger
	bus     *events.Bus
	logger  *zap.Logger

	mu            sync.RWMutex
	filters       models.FilterOptions
	favoritesOnly bool
}

var _ IFilterService = (*FilterService)(nil)

// NewFilterService creates the filter session and subscribes it to preference events.
func NewFilterService(cat *catalog.Catalog, prefs PreferencesReader, bus *events.Bus, logger *zap.Logger) *FilterService {
	s := &FilterService{
		catalog: cat,
		prefs:   prefs,
		ledger:  favorites.NewLedger(prefs),
		bus:     bus,
		logger:  logger,
		filters: filter.Baseline(prefs.Preferences()),
	}
	bus.Subscribe(s.handlePreferences,
		events.PreferencesLoaded,
		events.PreferencesReset,
		events.PreferencesAllergies,
		events.PreferencesExcludedIngredients,
		events.PreferencesVegan,
	)
	return s
}

func (s *FilterService) handlePreferences(e events.Event) {
	prefs, ok := e.Payload.(models.UserPreferences)
	if !ok {
		prefs = s.prefs.Preferences()
	}

	switch e.Type {
	case events.PreferencesLoaded, events.PreferencesReset:
		s.update(func(f *models.FilterOptions) {
			*f = filter.Baseline(prefs)
		})
	case events.PreferencesAllergies, events.PreferencesExcludedIngredients:
		s.update(func(f *models.FilterOptions) {
			*f = filter.SyncProfile(*f, prefs)
		})
	case events.PreferencesVegan:
		// Dropping vegan from the profile leaves a vegan filter in place; it
		// then counts as hand-chosen until the user clears it.
		if !prefs.IsVegan {
			break
		}
		s.update(func(f *models.FilterOptions) {
			f.Dietary.Vegan = true
		})
	}
	s.logger.Debug("filters reconciled with preferences", zap.String("event", string(e.Type)))
}

// Filters returns a copy of the working filters.
func (s *FilterService) Filters() models.FilterOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters.Clone()
}

// State returns the filters with their derived counters.
func (s *FilterService) State() FilterState {
	prefs := s.prefs.Preferences()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterState{
		Filters:       s.filters.Clone(),
		FavoritesOnly: s.favoritesOnly,
		ActiveCount:   filter.ActiveFilterCount(s.filters, prefs),
		IsActive:      filter.IsFilterActive(s.filters, prefs),
	}
}

// SetFilters replaces the working filters wholesale.
func (s *FilterService) SetFilters(f models.FilterOptions) FilterState {
	s.update(func(cur *models.FilterOptions) {
		*cur = f.Clone()
	})
	return s.State()
}

func (s *FilterService) SetSearchQuery(q string) FilterState {
	s.update(func(f *models.FilterOptions) {
		f.SearchQuery = q
	})
	return s.State()
}

func (s *FilterService) SetFavoritesOnly(only bool) FilterState {
	s.mu.Lock()
	s.favoritesOnly = only
	s.mu.Unlock()
	s.publish()
	return s.State()
}

// ToggleSort selects option, flipping the direction when it is already selected.
func (s *FilterService) ToggleSort(option models.SortOption) FilterState {
	s.update(func(f *models.FilterOptions) {
		*f = filter.ToggleSort(*f, option)
	})
	return s.State()
}

// Initialize resets the filters to the profile baseline.
func (s *FilterService) Initialize() FilterState {
	prefs := s.prefs.Preferences()
	s.update(func(f *models.FilterOptions) {
		*f = filter.Baseline(prefs)
	})
	return s.State()
}

// Sync copies the profile allergies and excluded ingredients into the filters.
func (s *FilterService) Sync() FilterState {
	prefs := s.prefs.Preferences()
	s.update(func(f *models.FilterOptions) {
		*f = filter.SyncProfile(*f, prefs)
	})
	return s.State()
}

// Clear drops every hand-chosen filter, the search query and the
// favorites-only view, keeping the profile baseline.
func (s *FilterService) Clear() FilterState {
	prefs := s.prefs.Preferences()
	s.mu.Lock()
	s.filters = filter.Baseline(prefs)
	s.favoritesOnly = false
	s.mu.Unlock()
	s.publish()
	return s.State()
}

// ActiveCount returns the number of hand-chosen filter facets.
func (s *FilterService) ActiveCount() int {
	return s.State().ActiveCount
}

// IsActive reports whether any hand-chosen filter or a search query is set.
func (s *FilterService) IsActive() bool {
	return s.State().IsActive
}

// Results evaluates the working filters over the catalog, sorts them and
// applies the favorites-only view.
func (s *FilterService) Results() []models.Recipe {
	s.mu.RLock()
	f := s.filters.Clone()
	only := s.favoritesOnly
	s.mu.RUnlock()

	out := filter.Apply(s.catalog.All(), f, s.ledger.Count)
	if !only {
		return out
	}
	favs := out[:0]
	for _, r := range out {
		if s.prefs.IsFavorite(r.ID) {
			favs = append(favs, r)
		}
	}
	return favs
}

// Evaluate runs f over the catalog without touching the session.
func (s *FilterService) Evaluate(f models.FilterOptions) []models.Recipe {
	return filter.Apply(s.catalog.All(), f, s.ledger.Count)
}

// MatchCount returns how many recipes f would match, for previewing a change.
func (s *FilterService) MatchCount(f models.FilterOptions) int {
	return len(filter.FilterRecipes(s.catalog.All(), f))
}

// FavoriteCount returns the displayed favorite count of recipeID.
func (s *FilterService) FavoriteCount(recipeID string) int {
	return s.ledger.Count(recipeID)
}

func (s *FilterService) update(fn func(f *models.FilterOptions)) {
	s.mu.Lock()
	fn(&s.filters)
	s.mu.Unlock()
	s.publish()
}

func (s *FilterService) publish() {
	s.bus.Publish(events.Event{Type: events.FiltersChanged, Payload: s.Filters()})
}
