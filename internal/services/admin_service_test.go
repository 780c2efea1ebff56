package services_test

import (
	"bytes"
	"testing"
	"time"

	"butik/internal/models"
	"butik/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func orderWith(id string, status models.OrderStatus, amount string) models.Order {
	return models.Order{ID: id, Status: status, TotalAmount: decimal.RequireFromString(amount)}
}

func TestAdminService_Stats(t *testing.T) {
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(productRepo, orderRepo, userRepo)

	orders := []models.Order{
		orderWith("o-7", models.OrderStatusDelivered, "500.00"),
		orderWith("o-6", models.OrderStatusPending, "1000.00"),
		orderWith("o-5", models.OrderStatusCancelled, "250.00"),
		orderWith("o-4", models.OrderStatusPaid, "99.99"),
		orderWith("o-3", models.OrderStatusShipped, "0.01"),
		orderWith("o-2", models.OrderStatusProcessing, "10.00"),
	}
	productRepo.On("GetAll").Return(make([]models.Product, 3), nil)
	orderRepo.On("GetAll").Return(orders, nil)
	userRepo.On("GetAll").Return(make([]models.User, 2), nil)

	stats, err := service.Stats()

	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 6, stats.TotalOrders)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, "610.00", stats.TotalRevenue)
	require.Len(t, stats.RecentOrders, services.RecentOrdersLimit)
	assert.Equal(t, "o-7", stats.RecentOrders[0].ID)
}

func TestAdminService_Stats_DeliveredOrderAddsExactly(t *testing.T) {
	productRepo := new(MockProductRepository)
	orderRepo := new(MockOrderRepository)
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(productRepo, orderRepo, userRepo)

	base := []models.Order{orderWith("o-1", models.OrderStatusPaid, "123.45")}
	productRepo.On("GetAll").Return([]models.Product{}, nil)
	userRepo.On("GetAll").Return([]models.User{}, nil)
	orderRepo.On("GetAll").Return(base, nil).Once()
	orderRepo.On("GetAll").Return(append([]models.Order{orderWith("o-2", models.OrderStatusDelivered, "500")}, base...), nil).Once()

	before, err := service.Stats()
	require.NoError(t, err)
	after, err := service.Stats()
	require.NoError(t, err)

	b := decimal.RequireFromString(before.TotalRevenue)
	a := decimal.RequireFromString(after.TotalRevenue)
	assert.Equal(t, "500.00", a.Sub(b).StringFixed(2))
}

func TestAdminService_ListOrders(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	service := services.NewAdminService(new(MockProductRepository), orderRepo, new(MockUserRepository))

	orderRepo.On("GetAll").Return([]models.Order{
		{ID: "o-1", User: &models.User{ID: "u-1", Email: "a@b.c", Name: "A", Role: "user"}},
		{ID: "o-2"},
	}, nil)

	rows, err := service.ListOrders()

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, &services.UserSummary{ID: "u-1", Email: "a@b.c", Name: "A"}, rows[0].User)
	assert.Nil(t, rows[1].User)
}

func TestAdminService_ListUsers(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := services.NewAdminService(new(MockProductRepository), new(MockOrderRepository), userRepo)

	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	userRepo.On("GetAll").Return([]models.User{
		{ID: "u-1", Email: "a@b.c", Name: "A", Role: "admin", Phone: "99", City: "Pune", Address: "secret", CreatedAt: created},
	}, nil)

	users, err := service.ListUsers()

	require.NoError(t, err)
	assert.Equal(t, []services.UserListing{
		{ID: "u-1", Email: "a@b.c", Name: "A", Role: "admin", Phone: "99", City: "Pune", CreatedAt: created},
	}, users)
}

func TestExportService_WriteProductsXLSX(t *testing.T) {
	productRepo := new(MockProductRepository)
	service := services.NewExportService(productRepo)

	categoryID := "c-1"
	productRepo.On("GetAll").Return([]models.Product{
		{
			ID:            "p-1",
			Name:          "Pink Ruffle Top",
			Slug:          "pink-ruffle-top",
			Price:         decimal.RequireFromString("799"),
			OriginalPrice: decimal.NewNullDecimal(decimal.RequireFromString("1199")),
			CategoryID:    &categoryID,
			Stock:         100,
			InStock:       true,
		},
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, service.WriteProductsXLSX(&buf))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet := file.Sheet["Products"]
	require.NotNil(t, sheet)
	require.Len(t, sheet.Rows, 2)

	assert.Equal(t, "ID", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "p-1", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "Pink Ruffle Top", sheet.Rows[1].Cells[1].String())
	assert.Equal(t, "799.00", sheet.Rows[1].Cells[4].String())
	assert.Equal(t, "1199.00", sheet.Rows[1].Cells[5].String())
	assert.Equal(t, "c-1", sheet.Rows[1].Cells[6].String())
}
