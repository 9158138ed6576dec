// Package catalog holds the read-only recipe collection for a session and
// the providers that load it.
package catalog

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrInvalidRecipe  = errors.New("invalid recipe")
)

// Catalog is an immutable, ordered set of recipes indexed by id.
type Catalog struct {
	recipes []models.Recipe
	byID    map[string]int
}

// New validates recipes and builds a catalog from them. Vegan recipes not
// marked vegetarian are normalized to vegetarian.
func New(recipes []models.Recipe, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Catalog{
		recipes: make([]models.Recipe, 0, len(recipes)),
		byID:    make(map[string]int, len(recipes)),
	}
	for i, r := range recipes {
		if err := Validate(r); err != nil {
			return nil, fmt.Errorf("recipe at position %d: %w", i, err)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidRecipe, r.ID)
		}
		if r.Vegan && !r.Vegetarian {
			logger.Warn("vegan recipe not marked vegetarian, normalizing", zap.String("recipe_id", r.ID))
			r.Vegetarian = true
		}
		c.byID[r.ID] = len(c.recipes)
		c.recipes = append(c.recipes, r.Clone())
	}
	return c, nil
}

// Validate checks the invariants a catalog recipe must hold.
func Validate(r models.Recipe) error {
	switch {
	case r.ID == "":
		return fmt.Errorf("%w: empty id", ErrInvalidRecipe)
	case r.PrepTime <= 0:
		return fmt.Errorf("%w: %s: prep time must be positive", ErrInvalidRecipe, r.ID)
	case r.Rating < 0 || r.Rating > 5:
		return fmt.Errorf("%w: %s: rating must be within 0-5", ErrInvalidRecipe, r.ID)
	case r.ServingSize < 1:
		return fmt.Errorf("%w: %s: serving size must be at least 1", ErrInvalidRecipe, r.ID)
	}
	return nil
}

// All returns deep copies of the recipes in catalog order.
func (c *Catalog) All() []models.Recipe {
	out := make([]models.Recipe, len(c.recipes))
	for i, r := range c.recipes {
		out[i] = r.Clone()
	}
	return out
}

// Get returns a deep copy of the recipe with id or ErrRecipeNotFound.
func (c *Catalog) Get(id string) (models.Recipe, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Recipe{}, fmt.Errorf("%w: %s", ErrRecipeNotFound, id)
	}
	return c.recipes[i].Clone(), nil
}

// Len returns the number of recipes.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

// SeedReviews returns the reviews bundled with catalog recipes keyed by recipe id.
func (c *Catalog) SeedReviews() models.ReviewMap {
	out := models.ReviewMap{}
	for _, r := range c.recipes {
		if len(r.Reviews) > 0 {
			out[r.ID] = append([]models.Review{}, r.Reviews...)
		}
	}
	return out
}
