package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/storefront-next/storefront/internal/models"
	"github.com/storefront-next/storefront/internal/provider"
	"github.com/storefront-next/storefront/internal/repository"
	"github.com/storefront-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartHandlerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:cart_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	h := &Handler{Container: &provider.Container{
		CartService: service.NewCartService(db, cartRepo, productRepo),
	}}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("session_token", "handler-session")
		c.Next()
	})
	r.GET("/cart", h.GetCart)
	r.POST("/cart/items", h.AddCartItem)
	r.DELETE("/cart/items/:product_id", h.RemoveCartItem)
	return r, db
}

func seedCartHandlerProduct(t *testing.T, db *gorm.DB, slug string, price float64) models.Product {
	t.Helper()
	row := models.Product{
		Slug:   slug,
		Name:   "product " + slug,
		Images: models.StringArray{"/images/" + slug + ".jpg"},
		Price:  models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
		Stock:  10,
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return row
}

type cartEnvelope struct {
	StatusCode int      `json:"status_code"`
	Msg        string   `json:"msg"`
	Data       CartView `json:"data"`
}

func doCartRequest(t *testing.T, r *gin.Engine, method, path, body string) cartEnvelope {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s status want 200 got %d", method, path, w.Code)
	}

	var envelope cartEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response failed: %v body=%s", err, w.Body.String())
	}
	return envelope
}

func TestCartHandlerGetEmptyCart(t *testing.T) {
	r, _ := setupCartHandlerTest(t)

	resp := doCartRequest(t, r, http.MethodGet, "/cart", "")
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	if len(resp.Data.Items) != 0 {
		t.Fatalf("empty cart should have no items, got %+v", resp.Data.Items)
	}
}

func TestCartHandlerAddAndRemove(t *testing.T) {
	r, db := setupCartHandlerTest(t)
	product := seedCartHandlerProduct(t, db, "handler-shirt", 30.00)

	resp := doCartRequest(t, r, http.MethodPost, "/cart/items",
		fmt.Sprintf(`{"product_id": %d, "quantity": 2}`, product.ID))
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	if len(resp.Data.Items) != 1 || resp.Data.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart after add: %+v", resp.Data.Items)
	}

	// 省略数量时默认加一件
	resp = doCartRequest(t, r, http.MethodPost, "/cart/items",
		fmt.Sprintf(`{"product_id": %d}`, product.ID))
	if resp.Data.Items[0].Quantity != 3 {
		t.Fatalf("quantity want 3 got %d", resp.Data.Items[0].Quantity)
	}

	resp = doCartRequest(t, r, http.MethodDelete, fmt.Sprintf("/cart/items/%d", product.ID), "")
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d msg=%s", resp.StatusCode, resp.Msg)
	}
	if resp.Data.Items[0].Quantity != 2 {
		t.Fatalf("remove should decrement by one, got %d", resp.Data.Items[0].Quantity)
	}
}

func TestCartHandlerAddUnknownProduct(t *testing.T) {
	r, _ := setupCartHandlerTest(t)

	resp := doCartRequest(t, r, http.MethodPost, "/cart/items", `{"product_id": 9999}`)
	if resp.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}
}

func TestCartHandlerRemoveInvalidProductID(t *testing.T) {
	r, _ := setupCartHandlerTest(t)

	resp := doCartRequest(t, r, http.MethodDelete, "/cart/items/abc", "")
	if resp.StatusCode != 400 {
		t.Fatalf("status_code want 400 got %d", resp.StatusCode)
	}
}
