package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"go-smart-inventory/internal/model"
	"go-smart-inventory/internal/repository"
)

func newSaleService(t *testing.T) (SaleService, repository.ProductRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	return NewSaleService(saleRepo, productRepo, db, nil), productRepo, db
}

func createProduct(t *testing.T, repo repository.ProductRepository, price float64, quantity int) *model.Product {
	t.Helper()
	product := &model.Product{Name: "Widget", Price: price, Quantity: quantity}
	require.NoError(t, repo.Create(product))
	return product
}

func TestCreateSale_DeductsStock(t *testing.T) {
	svc, productRepo, _ := newSaleService(t)
	product := createProduct(t, productRepo, 100, 10)

	sale, err := svc.Create(&model.Sale{
		ProductID:  product.ID,
		Quantity:   3,
		TotalPrice: 300,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, sale.ID)
	assert.False(t, sale.SaleDate.IsZero())
	assert.Equal(t, "UTC", sale.SaleDate.Location().String())

	got, err := productRepo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Quantity)
}

func TestCreateSale_ProductNotFound(t *testing.T) {
	svc, _, _ := newSaleService(t)

	_, err := svc.Create(&model.Sale{
		ProductID:  uuid.New(),
		Quantity:   1,
		TotalPrice: 10,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	svc, productRepo, _ := newSaleService(t)
	product := createProduct(t, productRepo, 50, 5)

	_, err := svc.Create(&model.Sale{
		ProductID:  product.ID,
		Quantity:   6,
		TotalPrice: 300,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// Stock must be untouched after the rejection
	got, err := productRepo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
}

func TestCreateSale_ExactStockAllowed(t *testing.T) {
	svc, productRepo, _ := newSaleService(t)
	product := createProduct(t, productRepo, 10, 4)

	_, err := svc.Create(&model.Sale{ProductID: product.ID, Quantity: 4, TotalPrice: 40})
	require.NoError(t, err)

	got, err := productRepo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity)
}

func TestCreateSale_RejectsInvalidInput(t *testing.T) {
	svc, productRepo, _ := newSaleService(t)
	product := createProduct(t, productRepo, 10, 10)

	cases := []struct {
		name string
		sale model.Sale
	}{
		{"zero quantity", model.Sale{ProductID: product.ID, Quantity: 0, TotalPrice: 10}},
		{"missing product id", model.Sale{Quantity: 1, TotalPrice: 10}},
		{"negative total", model.Sale{ProductID: product.ID, Quantity: 1, TotalPrice: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(&tc.sale)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestDeleteSale_RestoresStock(t *testing.T) {
	svc, productRepo, _ := newSaleService(t)
	product := createProduct(t, productRepo, 100, 10)

	sale, err := svc.Create(&model.Sale{ProductID: product.ID, Quantity: 3, TotalPrice: 300})
	require.NoError(t, err)

	got, err := productRepo.FindByID(product.ID)
	require.NoError(t, err)
	require.Equal(t, 7, got.Quantity)

	require.NoError(t, svc.Delete(sale.ID))

	// Round trip: back to the pre-sale quantity
	got, err = productRepo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Quantity)

	sales, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestDeleteSale_NotFound(t *testing.T) {
	svc, _, _ := newSaleService(t)
	err := svc.Delete(uuid.New())
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestDeleteSale_ProductGoneSkipsRestore(t *testing.T) {
	svc, productRepo, _ := newSaleService(t)
	product := createProduct(t, productRepo, 100, 10)

	sale, err := svc.Create(&model.Sale{ProductID: product.ID, Quantity: 2, TotalPrice: 200})
	require.NoError(t, err)

	require.NoError(t, productRepo.Delete(product.ID))

	// No error even though the product is gone; the sale is removed
	require.NoError(t, svc.Delete(sale.ID))

	sales, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestListSales(t *testing.T) {
	svc, productRepo, _ := newSaleService(t)
	product := createProduct(t, productRepo, 10, 100)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(&model.Sale{ProductID: product.ID, Quantity: 1, TotalPrice: 10})
		require.NoError(t, err)
	}

	sales, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, sales, 3)
}
