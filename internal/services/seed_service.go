package services

import (
	"errors"
	"fmt"

	"butik/internal/models"
	"butik/internal/repositories"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type seedUser struct {
	email, name, password, role string
}

var seedUsers = []seedUser{
	{"user@sanor.com", "Demo User", "user123", models.RoleUser},
	{"admin@sanor.com", "Admin User", "admin123", models.RoleAdmin},
}

var seedCategories = []models.Category{
	{Name: "Sarees", Slug: "sarees", Description: "Traditional & designer sarees", ImageURL: "https://images.unsplash.com/photo-1610030469983-98e550d6193c?w=400&h=400&fit=crop"},
	{Name: "Kurtis", Slug: "kurtis", Description: "Elegant kurtis & kurtas", ImageURL: "https://images.unsplash.com/photo-1594938298603-c8148c4dae35?w=400&h=400&fit=crop"},
	{Name: "Tops", Slug: "tops", Description: "Trendy tops & blouses", ImageURL: "https://images.unsplash.com/photo-1564257631407-4deb1f99d992?w=400&h=400&fit=crop"},
	{Name: "Jeans", Slug: "jeans", Description: "Stylish jeans & denims", ImageURL: "https://images.unsplash.com/photo-1542272604-787c3835535d?w=400&h=400&fit=crop"},
	{Name: "Dresses", Slug: "dresses", Description: "Beautiful dresses for every occasion", ImageURL: "https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?w=400&h=400&fit=crop"},
	{Name: "Lehengas", Slug: "lehengas", Description: "Bridal & party lehengas", ImageURL: "https://images.unsplash.com/photo-1583391733956-3750e0ff4e8b?w=400&h=400&fit=crop"},
	{Name: "Bags", Slug: "bags", Description: "Handbags, clutches & totes", ImageURL: "https://images.unsplash.com/photo-1548036328-c9fa89d128fa?w=400&h=400&fit=crop"},
	{Name: "Jewelry", Slug: "jewelry", Description: "Earrings, necklaces & more", ImageURL: "https://images.unsplash.com/photo-1599643478518-a784e5dc4c8f?w=400&h=400&fit=crop"},
	{Name: "Footwear", Slug: "footwear", Description: "Heels, flats & sandals", ImageURL: "https://images.unsplash.com/photo-1543163521-1bf539c55dd2?w=400&h=400&fit=crop"},
	{Name: "Ethnic Wear", Slug: "ethnic-wear", Description: "Traditional Indian wear", ImageURL: "https://images.unsplash.com/photo-1583391733956-3750e0ff4e8b?w=400&h=400&fit=crop"},
}

type seedProduct struct {
	name, slug, description string
	price, originalPrice    string
	category                string
	imageURL                string
	sizes, colors           string
	featured, newArrival    bool
}

var seedProducts = []seedProduct{
	{"Pink Banarasi Silk Saree", "pink-banarasi-silk-saree", "Elegant pink Banarasi silk saree with golden zari work", "4999.00", "6999.00", "sarees", "https://images.unsplash.com/photo-1610030469983-98e550d6193c?w=400&h=500&fit=crop", "Free Size", "Pink,Magenta,Red", true, true},
	{"Purple Chiffon Saree", "purple-chiffon-saree", "Lightweight purple chiffon saree perfect for parties", "2499.00", "", "sarees", "https://images.unsplash.com/photo-1617627143750-d86bc21e42bb?w=400&h=500&fit=crop", "Free Size", "Purple,Lavender", true, false},
	{"Floral Print Anarkali Kurti", "floral-anarkali-kurti", "Beautiful floral print Anarkali style kurti", "1499.00", "1999.00", "kurtis", "https://images.unsplash.com/photo-1594938298603-c8148c4dae35?w=400&h=500&fit=crop", "S,M,L,XL,XXL", "Pink,Yellow,Blue", true, false},
	{"Cotton Straight Kurti", "cotton-straight-kurti", "Comfortable cotton straight cut kurti", "899.00", "", "kurtis", "https://images.unsplash.com/photo-1583391733981-8b530c8a89c0?w=400&h=500&fit=crop", "S,M,L,XL", "White,Black,Navy", false, true},
	{"Pink Ruffle Top", "pink-ruffle-top", "Trendy pink top with ruffle details", "799.00", "1199.00", "tops", "https://images.unsplash.com/photo-1564257631407-4deb1f99d992?w=400&h=500&fit=crop", "XS,S,M,L,XL", "Pink,White,Black", true, true},
	{"Lavender Peplum Top", "lavender-peplum-top", "Elegant lavender peplum style top", "999.00", "", "tops", "https://images.unsplash.com/photo-1551163943-3f6a855d1153?w=400&h=500&fit=crop", "S,M,L,XL", "Lavender,Pink,Mint", true, false},
	{"High Waist Skinny Jeans", "high-waist-skinny-jeans", "Flattering high waist skinny fit jeans", "1499.00", "1999.00", "jeans", "https://images.unsplash.com/photo-1542272604-787c3835535d?w=400&h=500&fit=crop", "26,28,30,32,34", "Blue,Black,Grey", true, false},
	{"Mom Fit Jeans", "mom-fit-jeans", "Comfortable mom fit relaxed jeans", "1299.00", "", "jeans", "https://images.unsplash.com/photo-1541099649105-f69ad21f3246?w=400&h=500&fit=crop", "26,28,30,32,34", "Light Blue,Medium Blue", false, true},
	{"Pink Floral Maxi Dress", "pink-floral-maxi-dress", "Gorgeous pink floral print maxi dress", "2499.00", "3499.00", "dresses", "https://images.unsplash.com/photo-1572804013309-59a88b7e92f1?w=400&h=500&fit=crop", "XS,S,M,L,XL", "Pink,Blue,Yellow", true, true},
	{"Little Black Dress", "little-black-dress", "Classic little black dress for parties", "1999.00", "", "dresses", "https://images.unsplash.com/photo-1595777457583-95e059d581b8?w=400&h=500&fit=crop", "XS,S,M,L", "Black", true, false},
	{"Bridal Red Lehenga", "bridal-red-lehenga", "Stunning bridal red lehenga with heavy embroidery", "24999.00", "34999.00", "lehengas", "https://images.unsplash.com/photo-1583391733956-3750e0ff4e8b?w=400&h=500&fit=crop", "S,M,L,XL", "Red,Maroon", true, false},
	{"Pink Leather Tote Bag", "pink-leather-tote", "Spacious pink leather tote bag", "2999.00", "3999.00", "bags", "https://images.unsplash.com/photo-1548036328-c9fa89d128fa?w=400&h=500&fit=crop", "One Size", "Pink,Black,Brown", true, false},
	{"Pearl Drop Earrings", "pearl-drop-earrings", "Elegant pearl drop earrings", "799.00", "", "jewelry", "https://images.unsplash.com/photo-1599643478518-a784e5dc4c8f?w=400&h=500&fit=crop", "One Size", "Gold,Silver", true, false},
	{"Kundan Jewelry Set", "kundan-jewelry-set", "Traditional kundan necklace set", "3499.00", "4999.00", "jewelry", "https://images.unsplash.com/photo-1611591437281-460bfbe1220a?w=400&h=500&fit=crop", "One Size", "Gold,Multicolor", false, false},
	{"Pink Block Heels", "pink-block-heels", "Comfortable pink block heels", "1799.00", "2499.00", "footwear", "https://images.unsplash.com/photo-1543163521-1bf539c55dd2?w=400&h=500&fit=crop", "36,37,38,39,40,41", "Pink,Nude,Black", true, false},
	{"White Sneakers", "white-sneakers", "Classic white sneakers for casual wear", "1499.00", "", "footwear", "https://images.unsplash.com/photo-1560769629-975ec94e6a86?w=400&h=500&fit=crop", "36,37,38,39,40", "White,Pink,Black", false, true},
}

// SeedService bootstraps demo data. Every step is skipped when its data is
// already present, so running it twice is harmless.
type SeedService struct {
	userRepo     repositories.UserRepository
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	log          *zap.Logger
}

// NewSeedService creates a new SeedService.
func NewSeedService(
	userRepo repositories.UserRepository,
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
	log *zap.Logger,
) *SeedService {
	return &SeedService{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		log:          log,
	}
}

// Seed inserts demo users, categories and products and reports what it did.
func (s *SeedService) Seed() ([]string, error) {
	results := []string{}

	for _, su := range seedUsers {
		_, err := s.userRepo.GetByEmail(su.email)
		if err == nil {
			continue
		}
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}

		hashed, err := HashPassword(su.password)
		if err != nil {
			return nil, err
		}
		user := &models.User{Email: su.email, Name: su.name, PasswordHash: hashed, Role: su.role}
		if err := s.userRepo.Create(user); err != nil {
			return nil, err
		}
		if su.role == models.RoleAdmin {
			results = append(results, "Admin created: "+su.email)
		} else {
			results = append(results, "User created: "+su.email)
		}
	}

	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		for i := range seedCategories {
			c := seedCategories[i]
			if err := s.categoryRepo.Create(&c); err != nil {
				return nil, err
			}
			categories = append(categories, c)
		}
		results = append(results, fmt.Sprintf("Categories seeded: %d", len(seedCategories)))
	}

	categoryIDs := make(map[string]string, len(categories))
	for _, c := range categories {
		categoryIDs[c.Slug] = c.ID
	}

	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		for _, sp := range seedProducts {
			product := sp.toModel(categoryIDs)
			if err := s.productRepo.Create(product); err != nil {
				return nil, err
			}
		}
		results = append(results, fmt.Sprintf("Products seeded: %d", len(seedProducts)))
	}

	s.log.Info("seed completed", zap.Strings("results", results))
	return results, nil
}

func (sp seedProduct) toModel(categoryIDs map[string]string) *models.Product {
	p := &models.Product{
		Name:        sp.name,
		Slug:        sp.slug,
		Description: sp.description,
		Price:       decimal.RequireFromString(sp.price),
		ImageURL:    sp.imageURL,
		Sizes:       sp.sizes,
		Colors:      sp.colors,
		Stock:       DefaultStock,
		InStock:     true,
		Featured:    sp.featured,
		NewArrival:  sp.newArrival,
	}
	if sp.originalPrice != "" {
		p.OriginalPrice = decimal.NewNullDecimal(decimal.RequireFromString(sp.originalPrice))
	}
	if id, ok := categoryIDs[sp.category]; ok {
		p.CategoryID = &id
	}
	return p
}
