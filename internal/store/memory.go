package store

import (
	"context"
	"sort"
	"sync"

	"lumera_back_end/internal/common"
	"lumera_back_end/internal/models"
)

// Implémentations en mémoire des quatre interfaces, utilisées par les
// tests à la place de Scylla/Redis. Mêmes invariants que les vraies.

// --- Users ---

type MemoryUsers struct {
	mu    sync.RWMutex
	users map[string]models.User // user_id → user
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: make(map[string]models.User)}
}

func (m *MemoryUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	return nil
}

func (m *MemoryUsers) GetByID(_ context.Context, userID string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &user, nil
}

func (m *MemoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (m *MemoryUsers) UpdateProfile(_ context.Context, userID string, fields map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return common.ErrNotFound
	}
	for column, value := range fields {
		switch column {
		case "name":
			user.Name = value
		case "phone":
			user.Phone = value
		case "street":
			user.Street = value
		case "city":
			user.City = value
		case "postal_code":
			user.PostalCode = value
		case "country":
			user.Country = value
		}
	}
	m.users[userID] = user
	return nil
}

// Delete n'existe pas côté Scylla (pas de suppression en flux normal) ;
// les tests s'en servent pour simuler un sujet disparu après émission
// d'un token.
func (m *MemoryUsers) Delete(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
}

// --- Carts ---

type MemoryCarts struct {
	mu    sync.Mutex
	carts map[string][]models.CartItem

	// FailClear force l'échec de Clear, pour tester l'écart de cohérence
	// commande-créée / panier-non-vidé.
	FailClear bool
}

func NewMemoryCarts() *MemoryCarts {
	return &MemoryCarts{carts: make(map[string][]models.CartItem)}
}

func (m *MemoryCarts) Get(_ context.Context, userID string) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.carts[userID]
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (m *MemoryCarts) AddItem(_ context.Context, userID, productID string, qty int) ([]models.CartItem, error) {
	if qty < 1 {
		return nil, common.ErrValidation
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	items := m.carts[userID]
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
	m.carts[userID] = items
	return items, nil
}

func (m *MemoryCarts) UpdateItem(_ context.Context, userID, productID string, qty int) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := []models.CartItem{}
	for _, item := range m.carts[userID] {
		if item.ProductID == productID {
			if qty >= 1 {
				item.Quantity = qty
				next = append(next, item)
			}
			continue
		}
		next = append(next, item)
	}
	m.carts[userID] = next
	return next, nil
}

func (m *MemoryCarts) RemoveItem(_ context.Context, userID, productID string) ([]models.CartItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next := []models.CartItem{}
	for _, item := range m.carts[userID] {
		if item.ProductID != productID {
			next = append(next, item)
		}
	}
	m.carts[userID] = next
	return next, nil
}

func (m *MemoryCarts) Clear(_ context.Context, userID string) error {
	if m.FailClear {
		return common.ErrPersistence
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[userID] = []models.CartItem{}
	return nil
}

// --- Orders ---

type MemoryOrders struct {
	mu     sync.RWMutex
	orders map[string]models.Order

	// FailCreate force l'échec de Create, pour tester l'abandon
	// PersistenceFailure sans panier touché.
	FailCreate bool
}

func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{orders: make(map[string]models.Order)}
}

func (m *MemoryOrders) Create(_ context.Context, order *models.Order) error {
	if m.FailCreate {
		return common.ErrPersistence
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = *order
	return nil
}

func (m *MemoryOrders) GetByID(_ context.Context, orderID string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	order, ok := m.orders[orderID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &order, nil
}

func (m *MemoryOrders) ListByUser(_ context.Context, userID string) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	orders := []models.Order{}
	for _, order := range m.orders {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (m *MemoryOrders) UpdateStatus(_ context.Context, orderID, status, paymentStatus string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return common.ErrNotFound
	}
	if status != "" {
		order.Status = status
	}
	if paymentStatus != "" {
		order.PaymentStatus = paymentStatus
	}
	m.orders[orderID] = order
	return nil
}

func (m *MemoryOrders) LatestUncleared(ctx context.Context, userID string) (*models.Order, error) {
	orders, err := m.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 || orders[0].CartCleared {
		return nil, nil
	}
	latest := orders[0]
	return &latest, nil
}

func (m *MemoryOrders) MarkCartCleared(_ context.Context, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return common.ErrNotFound
	}
	order.CartCleared = true
	m.orders[orderID] = order
	return nil
}

func (m *MemoryOrders) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.orders)
}

// --- Catalog ---

type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{products: make(map[string]models.Product)}
}

func (m *MemoryCatalog) GetProduct(_ context.Context, productID string) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	product, ok := m.products[productID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &product, nil
}

func (m *MemoryCatalog) ListProducts(_ context.Context) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	products := []models.Product{}
	for _, p := range m.products {
		products = append(products, p)
	}
	return products, nil
}

func (m *MemoryCatalog) CreateProduct(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[product.ID] = *product
	return nil
}

func (m *MemoryCatalog) UpdateProduct(_ context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ID]; !ok {
		return common.ErrNotFound
	}
	m.products[product.ID] = *product
	return nil
}

func (m *MemoryCatalog) DeleteProduct(_ context.Context, productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.products, productID)
	return nil
}
