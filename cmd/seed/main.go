package main

import (
	"github.com/storefront-next/storefront/internal/config"
	"github.com/storefront-next/storefront/internal/logger"
	"github.com/storefront-next/storefront/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	})
	if err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(db); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	products := []models.Product{
		{
			Slug:        "polo-sporting-stretch-shirt",
			Name:        "Polo Sporting Stretch Shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Polo",
			Description: "Classic Polo style with modern comfort",
			Images:      models.StringArray{"/images/sample-products/p1-1.jpg", "/images/sample-products/p1-2.jpg"},
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("59.99")),
			Stock:       5,
			Rating:      4.5,
			NumReviews:  10,
			IsFeatured:  true,
			Banner:      "/images/banner-1.jpg",
		},
		{
			Slug:        "brooks-brothers-long-sleeved-shirt",
			Name:        "Brooks Brothers Long Sleeved Shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Brooks Brothers",
			Description: "Timeless style and premium comfort",
			Images:      models.StringArray{"/images/sample-products/p2-1.jpg", "/images/sample-products/p2-2.jpg"},
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("85.90")),
			Stock:       10,
			Rating:      4.2,
			NumReviews:  8,
			IsFeatured:  true,
			Banner:      "/images/banner-2.jpg",
		},
		{
			Slug:        "tommy-hilfiger-classic-fit-dress-shirt",
			Name:        "Tommy Hilfiger Classic Fit Dress Shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Tommy Hilfiger",
			Description: "A perfect blend of sophistication and comfort",
			Images:      models.StringArray{"/images/sample-products/p3-1.jpg", "/images/sample-products/p3-2.jpg"},
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("99.95")),
			Stock:       0,
			Rating:      4.9,
			NumReviews:  3,
		},
		{
			Slug:        "calvin-klein-slim-fit-stretch-shirt",
			Name:        "Calvin Klein Slim Fit Stretch Shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Calvin Klein",
			Description: "Streamlined design with flexible stretch fabric",
			Images:      models.StringArray{"/images/sample-products/p4-1.jpg", "/images/sample-products/p4-2.jpg"},
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("39.95")),
			Stock:       10,
			Rating:      3.6,
			NumReviews:  5,
		},
		{
			Slug:        "polo-ralph-lauren-oxford-shirt",
			Name:        "Polo Ralph Lauren Oxford Shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Polo",
			Description: "Iconic Polo design with refined oxford fabric",
			Images:      models.StringArray{"/images/sample-products/p5-1.jpg", "/images/sample-products/p5-2.jpg"},
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("79.99")),
			Stock:       6,
			Rating:      4.7,
			NumReviews:  18,
		},
		{
			Slug:        "polo-classic-pink-hoodie",
			Name:        "Polo Classic Pink Hoodie",
			Category:    "Men's Sweatshirts",
			Brand:       "Polo",
			Description: "Soft, stylish, and perfect for laid-back days",
			Images:      models.StringArray{"/images/sample-products/p6-1.jpg", "/images/sample-products/p6-2.jpg"},
			Price:       models.NewMoneyFromDecimal(decimal.RequireFromString("99.99")),
			Stock:       8,
			Rating:      4.6,
			NumReviews:  12,
		},
	}

	for i := range products {
		product := products[i]
		var existing models.Product
		if err := db.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := db.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	users := []struct {
		Name     string
		Email    string
		Password string
	}{
		{Name: "John", Email: "admin@example.com", Password: "123456"},
		{Name: "Jane", Email: "user@example.com", Password: "123456"},
	}

	for _, item := range users {
		var existing models.User
		if err := db.Where("email = ?", item.Email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", item.Email)
			continue
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(item.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", item.Email, err)
			continue
		}
		user := models.User{
			Name:         item.Name,
			Email:        item.Email,
			PasswordHash: string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", item.Email, err)
		} else {
			stdLog.Printf("Created user: %s", item.Email)
		}
	}

	stdLog.Printf("Seed finished")
}
