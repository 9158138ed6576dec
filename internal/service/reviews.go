package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-discover/backend/internal/events"
	"github.com/pageza/alchemorsel-discover/backend/internal/models"
	"github.com/pageza/alchemorsel-discover/backend/internal/storage"
)

const (
	// ReviewsKey is the storage key of the serialized review map.
	ReviewsKey = "user_reviews"

	currentUserID   = "current-user"
	currentUserName = "You"
	reviewDateFmt   = "2006-01-02"
)

// ReviewService keeps per-recipe reviews, newest first.
type ReviewService struct {
	store  storage.KeyValueStore
	bus    *events.Bus
	logger *zap.Logger
	seeds  models.ReviewMap
	now    func() time.Time

	writeMu sync.Mutex

	mu      sync.RWMutex
	reviews models.ReviewMap
	loaded  bool
}

var _ IReviewService = (*ReviewService)(nil)

// NewReviewService creates a ReviewService. seeds are used when nothing is
// stored yet. The service clears its reviews when preferences are reset.
func NewReviewService(store storage.KeyValueStore, seeds models.ReviewMap, bus *events.Bus, logger *zap.Logger) *ReviewService {
	if seeds == nil {
		seeds = models.ReviewMap{}
	}
	s := &ReviewService{
		store:   store,
		bus:     bus,
		logger:  logger,
		seeds:   seeds.Clone(),
		now:     time.Now,
		reviews: models.ReviewMap{},
	}
	bus.Subscribe(s.handlePreferencesReset, events.PreferencesReset)
	return s
}

// Load reads stored reviews, falling back to the catalog seeds.
func (s *ReviewService) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var stored models.ReviewMap
	found, err := storage.LoadJSON(ctx, s.store, ReviewsKey, &stored)
	if err != nil {
		s.logger.Warn("failed to load reviews, using catalog reviews", zap.String("key", ReviewsKey), zap.Error(err))
	}
	if !found || stored == nil {
		stored = s.seeds.Clone()
	}

	s.mu.Lock()
	s.reviews = stored
	s.loaded = true
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// Loaded reports whether Load has completed.
func (s *ReviewService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// AddReview records a review by the current user at the front of the recipe's list.
func (s *ReviewService) AddReview(ctx context.Context, recipeID string, rating float64, comment string) (models.Review, error) {
	if rating < 1 || rating > 5 {
		return models.Review{}, ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return models.Review{}, ErrEmptyComment
	}

	review := models.Review{
		ID:       uuid.NewString(),
		UserID:   currentUserID,
		UserName: currentUserName,
		Rating:   rating,
		Comment:  comment,
		Date:     s.now().Format(reviewDateFmt),
	}

	err := s.apply(ctx, func(m models.ReviewMap) {
		m[recipeID] = append([]models.Review{review}, m[recipeID]...)
	})
	if errors.Is(err, ErrNotLoaded) {
		return models.Review{}, err
	}
	return review, err
}

// Reviews returns the reviews of recipeID, newest first.
func (s *ReviewService) Reviews(recipeID string) []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Review{}, s.reviews[recipeID]...)
}

// AverageRating returns the mean rating of recipeID's reviews, or 0 without reviews.
func (s *ReviewService) AverageRating(recipeID string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.reviews[recipeID]
	if len(list) == 0 {
		return 0
	}
	var sum float64
	for _, r := range list {
		sum += r.Rating
	}
	return sum / float64(len(list))
}

// Clear removes every review.
func (s *ReviewService) Clear(ctx context.Context) error {
	return s.apply(ctx, func(m models.ReviewMap) {
		for id := range m {
			delete(m, id)
		}
	})
}

func (s *ReviewService) handlePreferencesReset(events.Event) {
	if err := s.Clear(context.Background()); errors.Is(err, ErrNotLoaded) {
		s.logger.Debug("reviews not loaded, nothing to clear on reset")
	}
}

// apply mutates a copy of the reviews, persists it and publishes ReviewsChanged.
func (s *ReviewService) apply(ctx context.Context, fn func(m models.ReviewMap)) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return ErrNotLoaded
	}
	next := s.reviews.Clone()
	fn(next)
	s.reviews = next
	snapshot := next.Clone()
	s.mu.Unlock()

	var persistErr error
	if err := storage.SaveJSON(ctx, s.store, ReviewsKey, snapshot); err != nil {
		s.logger.Warn("failed to save reviews", zap.String("key", ReviewsKey), zap.Error(err))
		persistErr = fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	s.bus.Publish(events.Event{Type: events.ReviewsChanged, Payload: snapshot})
	return persistErr
}
