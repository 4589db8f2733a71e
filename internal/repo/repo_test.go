package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory_admin/internal/db/dbtest"
	"github.com/Skotchmaster/inventory_admin/internal/models"
	"github.com/Skotchmaster/inventory_admin/internal/repo"
)

func newStore(t *testing.T) *repo.Store {
	t.Helper()
	return repo.NewStore(dbtest.InitTestDB(t))
}

func TestGormRepo_CreateGetList(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	p := &models.Product{Name: "Widget", Price: decimal.RequireFromString("9.99"), Quantity: 3}
	require.NoError(t, store.Products.Create(ctx, p))
	require.NotZero(t, p.ID)
	assert.EqualValues(t, 1, p.Version)

	got, err := store.Products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("9.99")))

	require.NoError(t, store.Products.Create(ctx, &models.Product{Name: "Gadget"}))
	items, err := store.Products.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Widget", items[0].Name)
	assert.Equal(t, "Gadget", items[1].Name)
}

func TestGormRepo_GetMissing(t *testing.T) {
	store := newStore(t)

	_, err := store.Products.Get(context.Background(), 42)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = store.Products.Get(context.Background(), 0)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestGormRepo_UpdateChecksVersion(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	s := &models.Supplier{Name: "Acme"}
	require.NoError(t, store.Suppliers.Create(ctx, s))

	first := *s
	second := *s

	first.Country = "PT"
	require.NoError(t, store.Suppliers.Update(ctx, &first))
	assert.EqualValues(t, 2, first.Version)

	second.Country = "ES"
	err := store.Suppliers.Update(ctx, &second)
	require.ErrorIs(t, err, repo.ErrStale)
	assert.EqualValues(t, 1, second.Version)

	got, err := store.Suppliers.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "PT", got.Country)

	ghost := models.Supplier{Record: models.Record{ID: 999, Version: 1}, Name: "Ghost"}
	assert.ErrorIs(t, store.Suppliers.Update(ctx, &ghost), repo.ErrNotFound)
}

func TestGormRepo_DeleteReferenced(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	p := &models.Product{Name: "Widget"}
	require.NoError(t, store.Products.Create(ctx, p))
	sale := &models.Sale{Title: "S1", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ProductID: p.ID}
	require.NoError(t, store.Sales.Create(ctx, sale))

	err := store.Products.Delete(ctx, p.ID)
	require.ErrorIs(t, err, repo.ErrInUse)
	assert.Contains(t, err.Error(), "sales")

	require.NoError(t, store.Sales.Delete(ctx, sale.ID))
	require.NoError(t, store.Products.Delete(ctx, p.ID))
	assert.ErrorIs(t, store.Products.Delete(ctx, p.ID), repo.ErrNotFound)
}

func TestGormRepo_DeleteForeignKeyFallback(t *testing.T) {
	gdb := dbtest.InitTestDB(t)
	ctx := context.Background()
	store := repo.NewStore(gdb)

	role := uint(2)
	u := &models.User{Name: "alice", Password: "pw", RoleID: &role}
	require.NoError(t, store.Users.Create(ctx, u))

	p := &models.Product{Name: "Widget"}
	require.NoError(t, store.Products.Create(ctx, p))
	require.NoError(t, store.Sales.Create(ctx, &models.Sale{Title: "S1", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ProductID: p.ID}))

	// no reference guards: only the database constraint stands in the way
	tests := []struct {
		name string
		del  func() error
	}{
		{"role held by user", func() error { return repo.New[models.Role](gdb).Delete(ctx, role) }},
		{"product on sale", func() error { return repo.New[models.Product](gdb).Delete(ctx, p.ID) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.del(), repo.ErrInUse)
		})
	}

	got, err := store.Users.Get(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RoleID)
	assert.Equal(t, role, *got.RoleID)

	ok, err := store.Products.Exists(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGormRepo_Preloads(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	p := &models.Product{Name: "Widget"}
	require.NoError(t, store.Products.Create(ctx, p))
	s := &models.Supplier{Name: "Acme"}
	require.NoError(t, store.Suppliers.Create(ctx, s))

	pur := &models.Purchase{Title: "P1", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ProductID: p.ID, SupplierID: s.ID}
	require.NoError(t, store.Purchases.Create(ctx, pur))

	got, err := store.Purchases.Get(ctx, pur.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Product)
	require.NotNil(t, got.Supplier)
	assert.Equal(t, "Widget", got.Product.Name)
	assert.Equal(t, "Acme", got.Supplier.Name)
}

func TestGormRepo_CountExistsOptions(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	n, err := store.Roles.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	ok, err := store.Roles.Exists(ctx, models.DefaultRoleID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Roles.Exists(ctx, 77)
	require.NoError(t, err)
	assert.False(t, ok)

	opts, err := repo.Options(ctx, store.DB, &models.Role{})
	require.NoError(t, err)
	assert.Equal(t, []repo.Option{{Value: 1, Label: "admin"}, {Value: 2, Label: "user"}}, opts)
}
