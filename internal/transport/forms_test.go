package transport

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/inventory_admin/internal/models"
	"github.com/Skotchmaster/inventory_admin/internal/service"
)

func TestProductForm_Model(t *testing.T) {
	f := ProductForm{ID: "7", Version: "3", Name: "Widget", Price: "9.99", Quantity: "5"}

	m, err := f.Model()
	require.NoError(t, err)
	assert.EqualValues(t, 7, m.ID)
	assert.EqualValues(t, 3, m.Version)
	assert.True(t, m.Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, 5, m.Quantity)
}

func TestProductForm_ParseErrors(t *testing.T) {
	f := ProductForm{Name: "Widget", Price: "cheap", Quantity: "many"}

	_, err := f.Model()
	require.ErrorIs(t, err, service.ErrValidation)

	fields := service.FieldErrors(err)
	assert.Contains(t, fields, "price")
	assert.Contains(t, fields, "quantity")
	assert.NotContains(t, fields, "name")
}

func TestForms_IDOutOfRange(t *testing.T) {
	for _, id := range []string{"9223372036854775808", "18446744073709551615", "-3", "x"} {
		_, err := SaleForm{Title: "S", Date: "2024-05-06", ProductID: id}.Model()
		require.ErrorIs(t, err, service.ErrValidation, id)
		assert.Contains(t, service.FieldErrors(err), "product_id", id)
	}

	m, err := SaleForm{Title: "S", Date: "2024-05-06", ProductID: "9223372036854775807"}.Model()
	require.NoError(t, err)
	assert.EqualValues(t, uint64(9223372036854775807), m.ProductID)
}

func TestPurchaseForm_Date(t *testing.T) {
	m, err := PurchaseForm{Title: "P", Date: "2024-05-06", ProductID: "1", SupplierID: "2"}.Model()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), m.Date)

	_, err = PurchaseForm{Title: "P", Date: "06/05/2024"}.Model()
	require.Error(t, err)
	assert.Contains(t, service.FieldErrors(err), "date")
}

func TestUserForm_RoundTripHidesPassword(t *testing.T) {
	role := uint(1)
	f := UserFormFrom(&models.User{Record: models.Record{ID: 4, Version: 2}, Name: "alice", Password: "hash", RoleID: &role})

	assert.Equal(t, UserForm{ID: "4", Version: "2", Name: "alice", RoleID: "1"}, f)

	m, err := UserForm{Name: "bob", Password: "pw"}.Model()
	require.NoError(t, err)
	assert.Nil(t, m.RoleID)
	assert.Equal(t, "pw", m.Password)
}

func TestSaleFormFrom(t *testing.T) {
	f := SaleFormFrom(&models.Sale{
		Record:    models.Record{ID: 1, Version: 1},
		Title:     "S",
		Customer:  "Ana",
		Date:      time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Total:     decimal.RequireFromString("5"),
		ProductID: 9,
	})
	assert.Equal(t, "2023-12-31", f.Date)
	assert.Equal(t, "5.00", f.Total)
	assert.Equal(t, "9", f.ProductID)
}
