package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/storefront-next/storefront/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_repo_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createTestProduct(t *testing.T, repo *GormProductRepository, slug, category string, price float64, stock int, featured bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Slug:       slug,
		Name:       "product " + slug,
		Category:   category,
		Brand:      "Acme",
		Images:     models.StringArray{"/images/" + slug + ".jpg"},
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		Stock:      stock,
		IsFeatured: featured,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductRepositoryListFilters(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)
	createTestProduct(t, repo, "blue-shirt", "shirts", 20, 5, true)
	createTestProduct(t, repo, "red-shirt", "shirts", 25, 5, false)
	createTestProduct(t, repo, "black-hat", "hats", 15, 5, false)

	products, total, err := repo.List(ProductListFilter{Category: "shirts", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list by category failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("category filter want 2 got total=%d len=%d", total, len(products))
	}

	products, total, err = repo.List(ProductListFilter{Featured: true, Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list featured failed: %v", err)
	}
	if total != 1 || products[0].Slug != "blue-shirt" {
		t.Fatalf("featured filter unexpected result: total=%d %+v", total, products)
	}

	_, total, err = repo.List(ProductListFilter{Search: "hat", Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("search want 1 got %d", total)
	}
}

func TestProductRepositoryGetBySlugMissing(t *testing.T) {
	repo, _ := setupProductRepositoryTest(t)

	product, err := repo.GetBySlug("missing")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if product != nil {
		t.Fatalf("missing slug should return nil, got %+v", product)
	}
}

func TestProductRepositoryDecrementStock(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "stock-shirt", "shirts", 20, 5, false)

	rows, err := repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows want 1 got %d", rows)
	}
	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Stock != 2 {
		t.Fatalf("stock want 2 got %d", reloaded.Stock)
	}

	// 剩余 2 件扣 3 件，条件不满足不更新任何行
	rows, err = repo.DecrementStock(product.ID, 3)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if rows != 0 {
		t.Fatalf("insufficient stock should update no rows, got %d", rows)
	}
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Stock != 2 {
		t.Fatalf("stock should be unchanged, got %d", reloaded.Stock)
	}

	if _, err := repo.DecrementStock(product.ID, 0); err == nil {
		t.Fatalf("non-positive quantity should be rejected")
	}
}

func TestProductRepositoryClearStock(t *testing.T) {
	repo, db := setupProductRepositoryTest(t)
	product := createTestProduct(t, repo, "clear-shirt", "shirts", 20, 5, false)

	if err := repo.ClearStock(product.ID); err != nil {
		t.Fatalf("clear stock failed: %v", err)
	}
	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Stock != 0 {
		t.Fatalf("stock want 0 got %d", reloaded.Stock)
	}
}
