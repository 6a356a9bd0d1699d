package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lumera_back_end/internal/common"
	"lumera_back_end/internal/database"
	"lumera_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ScyllaOrders stocke les commandes dans le keyspace orders :
// table `orders` (partition order_id) et table `orders_by_user`
// (partition user_id, clustering created_at DESC) pour l'historique.
// Les items sont figés en JSON dans la ligne de commande.
type ScyllaOrders struct{}

func NewScyllaOrders() *ScyllaOrders {
	return &ScyllaOrders{}
}

func (s *ScyllaOrders) Create(ctx context.Context, order *models.Order) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	oid, err := parseUUID(order.ID)
	if err != nil {
		return err
	}
	uid, err := parseUUID(order.UserID)
	if err != nil {
		return err
	}

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	if err := session.Query(`INSERT INTO orders (order_id, user_id, items, total_amount,
		street, city, postal_code, country, payment_method, payment_status, status,
		cart_cleared, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		oid, uid, string(itemsJSON), order.TotalAmount,
		order.ShippingAddress.Street, order.ShippingAddress.City,
		order.ShippingAddress.PostalCode, order.ShippingAddress.Country,
		order.PaymentMethod, order.PaymentStatus, order.Status,
		order.CartCleared, order.CreatedAt, order.UpdatedAt).
		WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	if err := session.Query(`INSERT INTO orders_by_user (user_id, created_at, order_id)
		VALUES (?, ?, ?)`, uid, order.CreatedAt, oid).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	return nil
}

func (s *ScyllaOrders) GetByID(ctx context.Context, orderID string) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	oid, err := parseUUID(orderID)
	if err != nil {
		return nil, common.ErrNotFound
	}

	var (
		uid       gocql.UUID
		itemsJSON string
		order     = models.Order{ID: orderID}
	)
	if err := session.Query(`SELECT user_id, items, total_amount, street, city,
		postal_code, country, payment_method, payment_status, status, cart_cleared,
		created_at, updated_at FROM orders WHERE order_id = ?`, oid).
		WithContext(ctx).Scan(
		&uid, &itemsJSON, &order.TotalAmount,
		&order.ShippingAddress.Street, &order.ShippingAddress.City,
		&order.ShippingAddress.PostalCode, &order.ShippingAddress.Country,
		&order.PaymentMethod, &order.PaymentStatus, &order.Status,
		&order.CartCleared, &order.CreatedAt, &order.UpdatedAt); err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	order.UserID = uid.String()
	if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	return &order, nil
}

func (s *ScyllaOrders) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	uid, err := parseUUID(userID)
	if err != nil {
		return nil, common.ErrNotFound
	}

	// orders_by_user est clusterisé par created_at DESC : l'ordre
	// chronologique inverse vient de la table elle-même.
	iter := session.Query(`SELECT order_id FROM orders_by_user WHERE user_id = ?`, uid).
		WithContext(ctx).Iter()

	orders := []models.Order{}
	var oid gocql.UUID
	for iter.Scan(&oid) {
		order, err := s.GetByID(ctx, oid.String())
		if err != nil {
			continue // ligne d'index orpheline, on l'ignore
		}
		orders = append(orders, *order)
	}
	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	return orders, nil
}

// UpdateStatus met à jour les statuts non vides, jamais les items ni le
// total. Aucune table de transitions : n'importe quel statut peut suivre
// n'importe quel autre.
func (s *ScyllaOrders) UpdateStatus(ctx context.Context, orderID, status, paymentStatus string) error {
	if status == "" && paymentStatus == "" {
		return nil
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	oid, err := parseUUID(orderID)
	if err != nil {
		return common.ErrNotFound
	}

	query := `UPDATE orders SET updated_at = ?`
	args := []interface{}{time.Now()}
	if status != "" {
		query += `, status = ?`
		args = append(args, status)
	}
	if paymentStatus != "" {
		query += `, payment_status = ?`
		args = append(args, paymentStatus)
	}
	query += ` WHERE order_id = ?`
	args = append(args, oid)

	if err := session.Query(query, args...).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return nil
}

func (s *ScyllaOrders) LatestUncleared(ctx context.Context, userID string) (*models.Order, error) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	uid, err := parseUUID(userID)
	if err != nil {
		return nil, nil
	}

	var oid gocql.UUID
	if err := session.Query(`SELECT order_id FROM orders_by_user WHERE user_id = ? LIMIT 1`, uid).
		WithContext(ctx).Scan(&oid); err != nil {
		if errors.Is(err, gocql.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	order, err := s.GetByID(ctx, oid.String())
	if err != nil {
		return nil, err
	}
	if order.CartCleared {
		return nil, nil
	}
	return order, nil
}

func (s *ScyllaOrders) MarkCartCleared(ctx context.Context, orderID string) error {
	session, err := database.GetOrdersSession()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}

	oid, err := parseUUID(orderID)
	if err != nil {
		return common.ErrNotFound
	}

	if err := session.Query(`UPDATE orders SET cart_cleared = true, updated_at = ? WHERE order_id = ?`,
		time.Now(), oid).WithContext(ctx).Exec(); err != nil {
		return fmt.Errorf("%w: %v", common.ErrPersistence, err)
	}
	return nil
}
