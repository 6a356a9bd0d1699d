package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"lumera_back_end/internal/common"
	"lumera_back_end/internal/models"

	"github.com/redis/go-redis/v9"
)

const cartTTL = 30 * 24 * time.Hour

// RedisCarts stocke chaque panier comme un document JSON sous la clé
// cart:<userID>. Lecture-modification-écriture, dernier écrivain gagnant.
type RedisCarts struct {
	client *redis.Client
}

func NewRedisCarts(client *redis.Client) *RedisCarts {
	return &RedisCarts{client: client}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

func (s *RedisCarts) Get(ctx context.Context, userID string) ([]models.CartItem, error) {
	data, err := s.client.Get(ctx, cartKey(userID)).Result()
	if err == redis.Nil || data == "" {
		return []models.CartItem{}, nil // panier vide, créé paresseusement
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return items, nil
}

func (s *RedisCarts) AddItem(ctx context.Context, userID, productID string, qty int) ([]models.CartItem, error) {
	if qty < 1 {
		return nil, common.ErrValidation
	}

	items, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		items = append(items, models.CartItem{ProductID: productID, Quantity: qty})
	}

	return items, s.save(ctx, userID, items)
}

// UpdateItem fixe la quantité. Une quantité ≤ 0 supprime l'entrée : on ne
// stocke jamais une ligne à zéro.
func (s *RedisCarts) UpdateItem(ctx context.Context, userID, productID string, qty int) ([]models.CartItem, error) {
	items, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := items[:0]
	for _, item := range items {
		if item.ProductID == productID {
			if qty >= 1 {
				item.Quantity = qty
				next = append(next, item)
			}
			continue
		}
		next = append(next, item)
	}

	return next, s.save(ctx, userID, next)
}

func (s *RedisCarts) RemoveItem(ctx context.Context, userID, productID string) ([]models.CartItem, error) {
	items, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}

	// Absent → no-op, pas une erreur
	return next, s.save(ctx, userID, next)
}

// Clear vide le panier sans supprimer la clé : le document survit vide.
func (s *RedisCarts) Clear(ctx context.Context, userID string) error {
	return s.save(ctx, userID, []models.CartItem{})
}

func (s *RedisCarts) save(ctx context.Context, userID string, items []models.CartItem) error {
	if items == nil {
		items = []models.CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	if err := s.client.Set(ctx, cartKey(userID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return nil
}
