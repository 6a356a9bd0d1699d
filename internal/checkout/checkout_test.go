package checkout

import (
	"context"
	"sync"
	"testing"

	"lumera_back_end/internal/common"
	"lumera_back_end/internal/models"
	"lumera_back_end/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID = "aaaaaaaa-0000-0000-0000-000000000001"
	productP1  = "bbbbbbbb-0000-0000-0000-000000000001"
	productP2  = "bbbbbbbb-0000-0000-0000-000000000002"
)

var validAddress = models.ShippingAddress{
	Street:     "12 rue des Lilas",
	City:       "Namur",
	PostalCode: "5000",
	Country:    "BE",
}

type fixture struct {
	carts   *store.MemoryCarts
	orders  *store.MemoryOrders
	catalog *store.MemoryCatalog
	orch    *Orchestrator
	user    *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{
		carts:   store.NewMemoryCarts(),
		orders:  store.NewMemoryOrders(),
		catalog: store.NewMemoryCatalog(),
		user:    &models.User{ID: testUserID, Email: "client@exemple.fr", Role: "user"},
	}
	f.orch = NewOrchestrator(f.carts, f.orders, f.catalog, nil)

	require.NoError(t, f.catalog.CreateProduct(ctx, &models.Product{
		ID: productP1, Name: "Lampe", Price: 10,
		ImageURLs: []string{"https://img/lampe.jpg"},
	}))
	require.NoError(t, f.catalog.CreateProduct(ctx, &models.Product{
		ID: productP2, Name: "Vase", Price: 5,
	}))

	return f
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.orch.Checkout(ctx, f.user, Request{ShippingAddress: validAddress})
	assert.ErrorIs(t, err, common.ErrEmptyCart)
	assert.Equal(t, 0, f.orders.Count())
}

func TestCheckoutMissingAddress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.AddItem(ctx, testUserID, productP1, 1)
	require.NoError(t, err)

	incomplete := validAddress
	incomplete.PostalCode = ""

	for _, addr := range []models.ShippingAddress{{}, incomplete} {
		_, err := f.orch.Checkout(ctx, f.user, Request{ShippingAddress: addr})
		assert.ErrorIs(t, err, common.ErrMissingAddress)
	}
	assert.Equal(t, 0, f.orders.Count())
}

func TestCheckoutSuccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// {P1: 2 × 10€, P2: 1 × 5€} → total 25€
	_, err := f.carts.AddItem(ctx, testUserID, productP1, 2)
	require.NoError(t, err)
	_, err = f.carts.AddItem(ctx, testUserID, productP2, 1)
	require.NoError(t, err)

	order, err := f.orch.Checkout(ctx, f.user, Request{ShippingAddress: validAddress})
	require.NoError(t, err)

	assert.InDelta(t, 25.0, order.TotalAmount, 0.001)
	require.Len(t, order.Items, 2)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, "card", order.PaymentMethod)
	assert.True(t, order.CartCleared)

	// Instantané figé : nom, prix et image copiés depuis le catalogue
	assert.Equal(t, "Lampe", order.Items[0].Name)
	assert.InDelta(t, 10.0, order.Items[0].Price, 0.001)
	assert.Equal(t, "https://img/lampe.jpg", order.Items[0].ImageURL)

	// Panier vidé après succès
	items, err := f.carts.Get(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

// L'instantané survit aux changements ultérieurs du catalogue.
func TestSnapshotImmutability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.AddItem(ctx, testUserID, productP1, 1)
	require.NoError(t, err)

	order, err := f.orch.Checkout(ctx, f.user, Request{ShippingAddress: validAddress})
	require.NoError(t, err)

	require.NoError(t, f.catalog.UpdateProduct(ctx, &models.Product{
		ID: productP1, Name: "Lampe solde", Price: 3,
	}))

	stored, err := f.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lampe", stored.Items[0].Name)
	assert.InDelta(t, 10.0, stored.Items[0].Price, 0.001)
	assert.InDelta(t, 10.0, stored.TotalAmount, 0.001)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.AddItem(ctx, testUserID, "cccccccc-0000-0000-0000-000000000099", 1)
	require.NoError(t, err)

	_, err = f.orch.Checkout(ctx, f.user, Request{ShippingAddress: validAddress})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, 0, f.orders.Count())
}

// Échec d'écriture de la commande : le panier reste intact.
func TestPersistenceFailureLeavesCartUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.AddItem(ctx, testUserID, productP1, 2)
	require.NoError(t, err)

	f.orders.FailCreate = true
	_, err = f.orch.Checkout(ctx, f.user, Request{ShippingAddress: validAddress})
	assert.ErrorIs(t, err, common.ErrPersistence)

	items, err := f.carts.Get(ctx, testUserID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

// Échec du vidage APRÈS persistance : la commande reste valide, le
// panier résiduel est rattrapé par Reconcile à la lecture suivante.
func TestClearFailureThenReconcile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.AddItem(ctx, testUserID, productP1, 1)
	require.NoError(t, err)

	f.carts.FailClear = true
	order, err := f.orch.Checkout(ctx, f.user, Request{ShippingAddress: validAddress})
	require.NoError(t, err)
	assert.False(t, order.CartCleared)
	assert.Equal(t, 1, f.orders.Count())

	// Panier résiduel à côté d'une commande valide
	items, err := f.carts.Get(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	// Le vidage refonctionne : la réconciliation auto-répare
	f.carts.FailClear = false
	require.NoError(t, f.orch.Reconcile(ctx, testUserID))

	items, err = f.carts.Get(ctx, testUserID)
	require.NoError(t, err)
	assert.Empty(t, items)

	repaired, err := f.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, repaired.CartCleared)
}

// Reconcile sans commande en attente : aucun effet.
func TestReconcileNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.AddItem(ctx, testUserID, productP1, 1)
	require.NoError(t, err)

	require.NoError(t, f.orch.Reconcile(ctx, testUserID))

	items, err := f.carts.Get(ctx, testUserID)
	require.NoError(t, err)
	assert.Len(t, items, 1, "un panier sans commande en attente ne doit pas être vidé")
}

func TestCheckoutCustomPaymentMethod(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.AddItem(ctx, testUserID, productP1, 1)
	require.NoError(t, err)

	order, err := f.orch.Checkout(ctx, f.user, Request{
		ShippingAddress: validAddress,
		PaymentMethod:   "paypal",
	})
	require.NoError(t, err)
	assert.Equal(t, "paypal", order.PaymentMethod)
}

// Le notifier reçoit la commande créée, hors chemin critique.
func TestCheckoutNotifies(t *testing.T) {
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		gotEmail string
		gotOrder models.Order
	)

	f := newFixture(t)
	wg.Add(1)
	f.orch = NewOrchestrator(f.carts, f.orders, f.catalog, func(email string, order models.Order) {
		defer wg.Done()
		gotEmail = email
		gotOrder = order
	})

	_, err := f.carts.AddItem(ctx, testUserID, productP1, 1)
	require.NoError(t, err)

	_, err = f.orch.Checkout(ctx, f.user, Request{ShippingAddress: validAddress})
	require.NoError(t, err)

	wg.Wait()
	assert.Equal(t, "client@exemple.fr", gotEmail)
	assert.NotEmpty(t, gotOrder.ID)
}
