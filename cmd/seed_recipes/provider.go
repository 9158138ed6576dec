package main

import (
	"context"

	"github.com/pageza/alchemorsel-discover/backend/internal/models"
)

type staticProvider []models.Recipe

func (p staticProvider) Recipes(ctx context.Context) ([]models.Recipe, error) {
	return p, nil
}
