// Package cache met les lectures produit derrière Redis avec un TTL
// court. Le checkout n'y passe PAS : les instantanés de commande exigent
// le prix courant, pas une valeur vieille de dix minutes.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"lumera_back_end/internal/database"
	"lumera_back_end/internal/models"
	"lumera_back_end/internal/store"
)

const (
	ProductCacheTTL  = 10 * time.Minute
	productKeyPrefix = "product:"
	productsListKey  = "products:all"
)

type CachedCatalog struct {
	catalog store.Catalog
}

func NewCachedCatalog(catalog store.Catalog) *CachedCatalog {
	return &CachedCatalog{catalog: catalog}
}

// GetProduct tente Redis d'abord, puis le catalogue, et remplit le cache.
func (c *CachedCatalog) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	key := productKeyPrefix + productID

	if data, err := database.Redis.Get(ctx, key).Result(); err == nil {
		var product models.Product
		if json.Unmarshal([]byte(data), &product) == nil {
			return &product, nil
		}
	}

	product, err := c.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(product); err == nil {
		database.Redis.Set(ctx, key, data, ProductCacheTTL)
	}

	return product, nil
}

func (c *CachedCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	if data, err := database.Redis.Get(ctx, productsListKey).Result(); err == nil && data != "" {
		var products []models.Product
		if json.Unmarshal([]byte(data), &products) == nil {
			return products, nil
		}
	}

	products, err := c.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(products); err == nil {
		database.Redis.Set(ctx, productsListKey, data, ProductCacheTTL)
	}

	return products, nil
}

// InvalidateProduct purge un produit et la liste après mutation admin.
func InvalidateProduct(ctx context.Context, productID string) {
	database.Redis.Del(ctx, productKeyPrefix+productID, productsListKey)
}
