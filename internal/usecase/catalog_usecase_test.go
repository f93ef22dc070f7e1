package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct_Validation(t *testing.T) {
	_, products, _, _ := setupUseCases(t)

	_, err := products.CreateProduct("  ", 1000, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")

	_, err = products.CreateProduct("Gasket", -1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be negative")

	_, err = products.CreateProduct("Gasket", 1000, -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be negative")

	// zero price is fine, a freebie is still catalogued
	p, err := products.CreateProduct("Sticker", 0, 5)
	require.NoError(t, err)
	assert.Equal(t, float64(0), p.Price)
}

func TestCreateProduct_GeneratesDistinctIDs(t *testing.T) {
	_, products, _, _ := setupUseCases(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		p, err := products.CreateProduct("Washer", 500, 100)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(p.ProductID, "P-"))
		assert.False(t, seen[p.ProductID], "duplicate product id %s", p.ProductID)
		seen[p.ProductID] = true
	}
}

func TestProductUpdateAndDelete(t *testing.T) {
	_, products, _, _ := setupUseCases(t)

	p, err := products.CreateProduct("Headlight", 95000, 3)
	require.NoError(t, err)

	updated, err := products.UpdateProduct(p.ProductID, "Headlight LED", 120000, 4)
	require.NoError(t, err)
	assert.Equal(t, "Headlight LED", updated.Name)
	assert.Equal(t, 4, updated.Stock)

	_, err = products.UpdateProduct("P-404", "X", 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	require.NoError(t, products.DeleteProduct(p.ProductID))
	err = products.DeleteProduct(p.ProductID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListProducts_NewestFirst(t *testing.T) {
	_, products, _, _ := setupUseCases(t)

	first, err := products.CreateProduct("First", 1, 1)
	require.NoError(t, err)
	second, err := products.CreateProduct("Second", 1, 1)
	require.NoError(t, err)

	list, err := products.ListProducts()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ProductID, list[0].ProductID)
	assert.Equal(t, first.ProductID, list[1].ProductID)
}

func TestServiceUseCase_CRUD(t *testing.T) {
	_, _, services, _ := setupUseCases(t)

	s, err := services.CreateService("Tune-up", 75000)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s.ServiceID, "J-"))

	_, err = services.CreateService("", 1000)
	require.Error(t, err)

	_, err = services.CreateService("Oil Change", -5)
	require.Error(t, err)

	updated, err := services.UpdateService(s.ServiceID, "Full Tune-up", 90000)
	require.NoError(t, err)
	assert.Equal(t, "Full Tune-up", updated.Name)
	assert.Equal(t, float64(90000), updated.Price)

	_, err = services.UpdateService("J-404", "X", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	list, err := services.ListServices()
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, services.DeleteService(s.ServiceID))
	err = services.DeleteService(s.ServiceID)
	require.Error(t, err)
}
