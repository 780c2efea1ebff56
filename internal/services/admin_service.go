package services

import (
	"time"

	"butik/internal/models"
	"butik/internal/repositories"

	"github.com/shopspring/decimal"
)

// RecentOrdersLimit is how many orders the dashboard shows.
const RecentOrdersLimit = 5

// Stats is the admin dashboard summary.
type Stats struct {
	TotalProducts int            `json:"totalProducts"`
	TotalOrders   int            `json:"totalOrders"`
	TotalUsers    int            `json:"totalUsers"`
	TotalRevenue  string         `json:"totalRevenue"`
	RecentOrders  []models.Order `json:"recentOrders"`
}

// UserSummary is the public part of a user shown next to an order.
type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OrderWithUser pairs an order with its owner.
type OrderWithUser struct {
	Order models.Order `json:"order"`
	User  *UserSummary `json:"user"`
}

// UserListing is one row of the admin users table.
type UserListing struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"createdAt"`
}

// AdminService builds back-office reports. Everything is computed in memory
// from full table loads.
type AdminService struct {
	productRepo repositories.ProductRepository
	orderRepo   repositories.OrderRepository
	userRepo    repositories.UserRepository
}

// NewAdminService creates a new AdminService.
func NewAdminService(productRepo repositories.ProductRepository, orderRepo repositories.OrderRepository, userRepo repositories.UserRepository) *AdminService {
	return &AdminService{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
	}
}

// Stats counts products, orders and users and sums revenue over orders that
// are neither pending nor cancelled.
func (s *AdminService) Stats() (*Stats, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for _, o := range orders {
		if o.Status.CountsAsRevenue() {
			revenue = revenue.Add(o.TotalAmount)
		}
	}

	recent := orders
	if len(recent) > RecentOrdersLimit {
		recent = recent[:RecentOrdersLimit]
	}
	if recent == nil {
		recent = []models.Order{}
	}

	return &Stats{
		TotalProducts: len(products),
		TotalOrders:   len(orders),
		TotalUsers:    len(users),
		TotalRevenue:  revenue.StringFixed(2),
		RecentOrders:  recent,
	}, nil
}

// ListOrders returns every order with its owner, newest first. The owner is
// nil when the user row no longer exists.
func (s *AdminService) ListOrders() ([]OrderWithUser, error) {
	orders, err := s.orderRepo.GetAll()
	if err != nil {
		return nil, err
	}

	out := make([]OrderWithUser, 0, len(orders))
	for _, o := range orders {
		row := OrderWithUser{Order: o}
		if o.User != nil {
			row.User = &UserSummary{ID: o.User.ID, Email: o.User.Email, Name: o.User.Name}
		}
		out = append(out, row)
	}
	return out, nil
}

// ListUsers returns every user, newest first.
func (s *AdminService) ListUsers() ([]UserListing, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}

	out := make([]UserListing, 0, len(users))
	for _, u := range users {
		out = append(out, UserListing{
			ID:        u.ID,
			Email:     u.Email,
			Name:      u.Name,
			Role:      u.Role,
			Phone:     u.Phone,
			City:      u.City,
			CreatedAt: u.CreatedAt,
		})
	}
	return out, nil
}
