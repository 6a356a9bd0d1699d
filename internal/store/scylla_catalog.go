package store

import (
	"context"
	"errors"
	"fmt"

	"lumera_back_end/internal/common"
	"lumera_back_end/internal/database"
	"lumera_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ScyllaCatalog lit et écrit la table `products` du keyspace products.
// Le cœur (checkout) ne s'en sert qu'en lecture ; les mutations sont
// derrière la garde admin.
type ScyllaCatalog struct{}

func NewScyllaCatalog() *ScyllaCatalog {
	return &ScyllaCatalog{}
}

func (s *ScyllaCatalog) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	pid, err := parseUUID(productID)
	if err != nil {
		return nil, common.ErrNotFound
	}

	product := models.Product{ID: productID}
	if err := session.Query(`SELECT name, description, price, stock, image_urls, tags, created_at, updated_at
		FROM products WHERE product_id = ?`, pid).WithContext(ctx).Scan(
		&product.Name, &product.Description, &product.Price, &product.Stock,
		&product.ImageURLs, &product.Tags, &product.CreatedAt, &product.UpdatedAt); err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	return &product, nil
}

func (s *ScyllaCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	session, err := database.GetProductsSession()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	iter := session.Query(`SELECT product_id, name, description, price, stock, image_urls, tags, created_at, updated_at
		FROM products`).WithContext(ctx).Iter()

	products := []models.Product{}
	var pid gocql.UUID
	var p models.Product
	for iter.Scan(&pid, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.ImageURLs, &p.Tags, &p.CreatedAt, &p.UpdatedAt) {
		p.ID = pid.String()
		products = append(products, p)
		p = models.Product{}
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	return products, nil
}

func (s *ScyllaCatalog) CreateProduct(ctx context.Context, product *models.Product) error {
	return s.upsert(ctx, product)
}

func (s *ScyllaCatalog) UpdateProduct(ctx context.Context, product *models.Product) error {
	// Vérifie l'existence d'abord : un UPDATE Scylla créerait la ligne
	if _, err := s.GetProduct(ctx, product.ID); err != nil {
		return err
	}
	return s.upsert(ctx, product)
}

func (s *ScyllaCatalog) upsert(ctx context.Context, product *models.Product) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	pid, err := parseUUID(product.ID)
	if err != nil {
		return err
	}

	if err := session.Query(`INSERT INTO products (product_id, name, description, price, stock, image_urls, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pid, product.Name, product.Description, product.Price, product.Stock,
		product.ImageURLs, product.Tags, product.CreatedAt, product.UpdatedAt).
		WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return nil
}

func (s *ScyllaCatalog) DeleteProduct(ctx context.Context, productID string) error {
	session, err := database.GetProductsSession()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	pid, err := parseUUID(productID)
	if err != nil {
		return common.ErrNotFound
	}

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, pid).
		WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return nil
}
