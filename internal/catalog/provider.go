package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

//go:embed data/recipes.json
var embeddedRecipes []byte

// Provider loads the raw recipe list a catalog is built from.
type Provider interface {
	Recipes(ctx context.Context) ([]models.Recipe, error)
}

// Load fetches recipes from p and builds a validated catalog.
func Load(ctx context.Context, p Provider, logger *zap.Logger) (*Catalog, error) {
	recipes, err := p.Recipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	return New(recipes, logger)
}

// EmbeddedProvider serves the recipe set compiled into the binary.
type EmbeddedProvider struct{}

func (EmbeddedProvider) Recipes(ctx context.Context) ([]models.Recipe, error) {
	return DecodeRecipes(embeddedRecipes)
}

// DecodeRecipes parses a JSON array of recipes.
func DecodeRecipes(data []byte) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}
	return recipes, nil
}

// DBProvider reads recipes from the recipes table in position order.
type DBProvider struct {
	db *gorm.DB
}

func NewDBProvider(db *gorm.DB) *DBProvider {
	return &DBProvider{db: db}
}

func (p *DBProvider) Recipes(ctx context.Context) ([]models.Recipe, error) {
	var records []models.RecipeRecord
	if err := p.db.WithContext(ctx).Order("position ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	recipes := make([]models.Recipe, len(records))
	for i, rec := range records {
		recipes[i] = rec.ToRecipe()
	}
	return recipes, nil
}

// HTTPProvider fetches a JSON recipe array from a remote URL.
type HTTPProvider struct {
	client *resty.Client
	url    string
}

// NewHTTPProvider returns a provider for url with the given request timeout.
func NewHTTPProvider(url string, timeout time.Duration) *HTTPProvider {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetHeader("Accept", "application/json")
	return &HTTPProvider{client: client, url: url}
}

func (p *HTTPProvider) Recipes(ctx context.Context) ([]models.Recipe, error) {
	resp, err := p.client.R().SetContext(ctx).Get(p.url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch catalog, status: %d", resp.StatusCode())
	}
	return DecodeRecipes(resp.Body())
}

// Seed replaces the recipes table with recipes, keeping their order.
func Seed(ctx context.Context, db *gorm.DB, recipes []models.Recipe) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.RecipeRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipes: %w", err)
		}
		for i, r := range recipes {
			rec := models.NewRecipeRecord(r, i)
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("failed to insert recipe %s: %w", r.ID, err)
			}
		}
		return nil
	})
}
