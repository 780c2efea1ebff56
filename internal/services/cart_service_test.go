package services_test

import (
	"testing"

	"butik/internal/models"
	"butik/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCartService_GetCart_Totals(t *testing.T) {
	cartRepo := new(MockCartRepository)
	service := services.NewCartService(cartRepo, new(MockProductRepository))

	cartRepo.On("ListByUser", "u-1").Return([]models.CartItem{
		{ID: "c-1", Quantity: 2, Product: &models.Product{ID: "p-1", Price: decimal.RequireFromString("499.50")}},
		{ID: "c-2", Quantity: 1, Product: &models.Product{ID: "p-2", Price: decimal.RequireFromString("100.00")}},
		{ID: "c-3", Quantity: 4, Product: nil},
	}, nil).Once()

	view, err := service.GetCart("u-1")

	require.NoError(t, err)
	assert.Len(t, view.Items, 3)
	assert.Equal(t, "1099.00", view.Subtotal)
	assert.Equal(t, "197.82", view.Tax)
	assert.Equal(t, "0.00", view.Shipping)
	assert.Equal(t, "1296.82", view.Total)
}

func TestCartService_GetCart_Empty(t *testing.T) {
	cartRepo := new(MockCartRepository)
	service := services.NewCartService(cartRepo, new(MockProductRepository))

	cartRepo.On("ListByUser", "u-1").Return([]models.CartItem(nil), nil).Once()

	view, err := service.GetCart("u-1")

	require.NoError(t, err)
	assert.NotNil(t, view.Items)
	assert.Equal(t, "0.00", view.Total)
}

func TestCartService_AddItem_MergesExistingLine(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := services.NewCartService(cartRepo, productRepo)

	productRepo.On("GetByID", "p-1").Return(&models.Product{ID: "p-1"}, nil)
	cartRepo.On("FindLine", "u-1", "p-1", "M", "Pink").
		Return(&models.CartItem{ID: "c-1", Quantity: 2}, nil).Once()
	cartRepo.On("SetQuantity", "u-1", "c-1", 5).
		Return(&models.CartItem{ID: "c-1", Quantity: 5}, nil).Once()

	item, err := service.AddItem("u-1", services.AddToCartInput{ProductID: "p-1", Quantity: 3, Size: "M", Color: "Pink"})

	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	cartRepo.AssertNotCalled(t, "Create", mock.Anything)
	cartRepo.AssertExpectations(t)
}

func TestCartService_AddItem_NewLineDefaultsToOne(t *testing.T) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	service := services.NewCartService(cartRepo, productRepo)

	productRepo.On("GetByID", "p-1").Return(&models.Product{ID: "p-1"}, nil)
	cartRepo.On("FindLine", "u-1", "p-1", "", "").Return(nil, notFound("cart line")).Once()
	cartRepo.On("Create", mock.MatchedBy(func(item *models.CartItem) bool {
		return item.UserID == "u-1" && item.ProductID == "p-1" && item.Quantity == 1
	})).Return(nil).Once()

	item, err := service.AddItem("u-1", services.AddToCartInput{ProductID: "p-1"})

	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
	cartRepo.AssertExpectations(t)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	productRepo := new(MockProductRepository)
	cartRepo := new(MockCartRepository)
	service := services.NewCartService(cartRepo, productRepo)

	productRepo.On("GetByID", "gone").Return(nil, notFound("product")).Once()

	_, err := service.AddItem("u-1", services.AddToCartInput{ProductID: "gone"})
	assert.ErrorIs(t, err, services.ErrNotFound)
	cartRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCartService_UpdateItem(t *testing.T) {
	cartRepo := new(MockCartRepository)
	service := services.NewCartService(cartRepo, new(MockProductRepository))

	cartRepo.On("Delete", "u-1", "c-1").Return(nil).Twice()
	cartRepo.On("SetQuantity", "u-1", "c-1", 5).Return(&models.CartItem{ID: "c-1", Quantity: 5}, nil).Once()

	item, err := service.UpdateItem("u-1", "c-1", 0)
	assert.NoError(t, err)
	assert.Nil(t, item)

	item, err = service.UpdateItem("u-1", "c-1", -3)
	assert.NoError(t, err)
	assert.Nil(t, item)

	item, err = service.UpdateItem("u-1", "c-1", 5)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	cartRepo.AssertExpectations(t)
}
