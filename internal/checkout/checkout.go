// Package checkout convertit un panier mutable en commande immuable.
package checkout

import (
	"context"
	"log"
	"time"

	"lumera_back_end/internal/common"
	"lumera_back_end/internal/models"
	"lumera_back_end/internal/store"

	"github.com/google/uuid"
)

const defaultPaymentMethod = "card"

type Request struct {
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
}

// Notifier reçoit la commande créée (confirmation e-mail). Best effort.
type Notifier func(email string, order models.Order)

type Orchestrator struct {
	carts   store.Carts
	orders  store.Orders
	catalog store.Catalog
	notify  Notifier
}

func NewOrchestrator(carts store.Carts, orders store.Orders, catalog store.Catalog, notify Notifier) *Orchestrator {
	return &Orchestrator{carts: carts, orders: orders, catalog: catalog, notify: notify}
}

// Checkout déroule la machine à états :
// lecture du panier → validation → création de commande → vidage du panier.
// Toute validation échouée abandonne AVANT la moindre écriture. La
// commande est persistée strictement avant le vidage du panier : un échec
// d'écriture de commande laisse le panier intact, un échec de vidage
// après commande laisse un panier résiduel rattrapé par Reconcile.
func (o *Orchestrator) Checkout(ctx context.Context, user *models.User, req Request) (*models.Order, error) {
	items, err := o.carts.Get(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, common.ErrEmptyCart
	}
	if !req.ShippingAddress.Complete() {
		return nil, common.ErrMissingAddress
	}

	// Résolution vivante du catalogue : nom, image et prix courants sont
	// figés dans la commande, et le total est calculé ici, jamais accepté
	// du client.
	snapshots := make([]models.OrderItem, 0, len(items))
	var total float64
	for _, item := range items {
		product, err := o.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			ImageURL:  product.FirstImage(),
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
		total += product.Price * float64(item.Quantity)
	}

	method := req.PaymentMethod
	if method == "" {
		method = defaultPaymentMethod
	}

	now := time.Now()
	order := &models.Order{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		Items:           snapshots,
		TotalAmount:     total,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   method,
		PaymentStatus:   models.PaymentStatusPending,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := o.orders.Create(ctx, order); err != nil {
		// Panier intact : rien n'a été vidé avant la persistance
		return nil, err
	}

	if err := o.carts.Clear(ctx, user.ID); err != nil {
		// Commande valide, panier résiduel : Reconcile rattrapera au
		// prochain passage, on ne retente pas ici.
		log.Printf("⚠️ Panier non vidé après la commande %s: %v", order.ID, err)
	} else if err := o.orders.MarkCartCleared(ctx, order.ID); err != nil {
		log.Printf("⚠️ Marquage cart_cleared raté pour la commande %s: %v", order.ID, err)
	} else {
		order.CartCleared = true
	}

	if o.notify != nil {
		go o.notify(user.Email, *order)
	}

	log.Printf("🛒 Commande %s créée pour %s (%.2f €, %d articles)",
		order.ID, user.ID, order.TotalAmount, len(order.Items))

	return order, nil
}

// Reconcile rattrape une commande dont le panier n'a pas été vidé
// (crash entre les deux écritures). Appelé à chaque lecture du panier.
func (o *Orchestrator) Reconcile(ctx context.Context, userID string) error {
	order, err := o.orders.LatestUncleared(ctx, userID)
	if err != nil || order == nil {
		return err
	}

	if err := o.carts.Clear(ctx, userID); err != nil {
		return err
	}
	if err := o.orders.MarkCartCleared(ctx, order.ID); err != nil {
		return err
	}

	log.Printf("🔄 Panier de %s rattrapé pour la commande %s", userID, order.ID)
	return nil
}
