// Package store expose la persistance derrière des interfaces afin que
// les services (auth, checkout) soient testables sans Scylla ni Redis.
package store

import (
	"context"

	"lumera_back_end/internal/models"
)

// Users persiste les comptes. L'email est toujours stocké normalisé
// (minuscules, sans espaces) ; la recherche se fait sur cette forme.
type Users interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, fields map[string]string) error
}

// Carts est l'agrégat panier : un document par utilisateur, dernier
// écrivain gagnant. Toutes les quantités stockées sont ≥ 1.
type Carts interface {
	Get(ctx context.Context, userID string) ([]models.CartItem, error)
	AddItem(ctx context.Context, userID, productID string, qty int) ([]models.CartItem, error)
	UpdateItem(ctx context.Context, userID, productID string, qty int) ([]models.CartItem, error)
	RemoveItem(ctx context.Context, userID, productID string) ([]models.CartItem, error)
	Clear(ctx context.Context, userID string) error
}

// Orders persiste les commandes. Les items et le total sont figés à la
// création ; seuls les deux statuts changent ensuite.
type Orders interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, orderID string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	// UpdateStatus ne touche que les champs non vides.
	UpdateStatus(ctx context.Context, orderID, status, paymentStatus string) error
	// LatestUncleared renvoie la dernière commande de l'utilisateur dont le
	// panier n'a pas encore été vidé, ou nil.
	LatestUncleared(ctx context.Context, userID string) (*models.Order, error)
	MarkCartCleared(ctx context.Context, orderID string) error
}

// Catalog est le collaborateur catalogue : lecture produit pour le cœur,
// mutations réservées aux admins.
type Catalog interface {
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, productID string) error
}
