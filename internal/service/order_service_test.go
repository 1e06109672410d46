package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/storefront-next/storefront/internal/constants"
	"github.com/storefront-next/storefront/internal/models"
	"github.com/storefront-next/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderServiceTest(t *testing.T) (*OrderService, *CartService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:order_service_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{}, &models.Product{},
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.PaymentResult{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderSvc := NewOrderService(db, orderRepo, cartRepo, userRepo)
	cartSvc := NewCartService(db, cartRepo, productRepo)
	return orderSvc, cartSvc, db
}

func completeTestAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:      "Test Buyer",
		StreetAddress: "1 Main St",
		City:          "Springfield",
		PostalCode:    "12345",
		Country:       "US",
	}
}

func createOrderTestUser(t *testing.T, db *gorm.DB, email string, address *models.ShippingAddress, paymentMethod string) models.User {
	t.Helper()

	row := models.User{
		Name:          "tester",
		Email:         email,
		PasswordHash:  "hash",
		Address:       address,
		PaymentMethod: paymentMethod,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := db.Create(&row).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return row
}

func TestOrderServiceCreateFromCart(t *testing.T) {
	orderSvc, cartSvc, db := setupOrderServiceTest(t)
	address := completeTestAddress()
	user := createOrderTestUser(t, db, "buyer@example.com", &address, constants.PaymentMethodPayPal)
	shirt := createCartTestProduct(t, db, "order-shirt", 15.00, 10)
	hat := createCartTestProduct(t, db, "order-hat", 45.00, 10)

	identity := CartIdentity{UserID: &user.ID}
	if _, err := cartSvc.AddItem(identity, shirt.ID, 3); err != nil {
		t.Fatalf("add shirt failed: %v", err)
	}
	if _, err := cartSvc.AddItem(identity, hat.ID, 1); err != nil {
		t.Fatalf("add hat failed: %v", err)
	}

	order, err := orderSvc.Create(user.ID)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if !strings.HasPrefix(order.OrderNo, "SF") {
		t.Fatalf("unexpected order no: %s", order.OrderNo)
	}
	if order.PaymentMethod != constants.PaymentMethodPayPal {
		t.Fatalf("payment method want PayPal got %s", order.PaymentMethod)
	}
	if order.ShippingAddress.City != "Springfield" {
		t.Fatalf("shipping address not snapshotted: %+v", order.ShippingAddress)
	}
	if len(order.Items) != 2 {
		t.Fatalf("order items want 2 got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.Name == "" || item.Slug == "" {
			t.Fatalf("order item should snapshot product fields: %+v", item)
		}
	}

	// 15*3 + 45 = 90，不满 100 收运费 10，税 13.5，合计 113.5
	if order.ItemsPrice.String() != "90" {
		t.Fatalf("items price want 90 got %s", order.ItemsPrice.String())
	}
	if order.ShippingPrice.String() != "10" {
		t.Fatalf("shipping price want 10 got %s", order.ShippingPrice.String())
	}
	if order.TaxPrice.String() != "13.5" {
		t.Fatalf("tax price want 13.5 got %s", order.TaxPrice.String())
	}
	if order.TotalPrice.String() != "113.5" {
		t.Fatalf("total price want 113.5 got %s", order.TotalPrice.String())
	}
	if order.IsPaid {
		t.Fatalf("new order should not be paid")
	}

	cart, err := cartSvc.Get(identity)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if cart != nil {
		t.Fatalf("cart should be deleted after order creation, got %+v", cart)
	}
}

func TestOrderServiceCreateRollsBackOnItemFailure(t *testing.T) {
	svc, cartSvc, db := setupOrderServiceTest(t)
	address := completeTestAddress()
	user := createOrderTestUser(t, db, "rollback@example.com", &address, constants.PaymentMethodPayPal)
	product := createCartTestProduct(t, db, "rollback-shirt", 30.00, 10)

	identity := CartIdentity{UserID: &user.ID}
	if _, err := cartSvc.AddItem(identity, product.ID, 2); err != nil {
		t.Fatalf("seed cart failed: %v", err)
	}

	// 去掉订单项表，让订单头写入后订单项写入必然失败
	if err := db.Migrator().DropTable(&models.OrderItem{}); err != nil {
		t.Fatalf("drop table failed: %v", err)
	}

	if _, err := svc.Create(user.ID); err == nil {
		t.Fatalf("create should fail when order items cannot be written")
	}

	var orderCount int64
	if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if orderCount != 0 {
		t.Fatalf("failed create must leave no order rows, got %d", orderCount)
	}

	cart, err := cartSvc.Get(identity)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if cart == nil {
		t.Fatalf("cart must survive a failed create")
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("cart line must stay intact after rollback, got %+v", cart.Items)
	}
}

func TestOrderServiceCreateFreeShippingOverThreshold(t *testing.T) {
	orderSvc, cartSvc, db := setupOrderServiceTest(t)
	address := completeTestAddress()
	user := createOrderTestUser(t, db, "big@example.com", &address, constants.PaymentMethodStripe)
	product := createCartTestProduct(t, db, "big-ticket", 100.01, 5)

	identity := CartIdentity{UserID: &user.ID}
	if _, err := cartSvc.AddItem(identity, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	order, err := orderSvc.Create(user.ID)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.ShippingPrice.String() != "0" {
		t.Fatalf("shipping price want 0 got %s", order.ShippingPrice.String())
	}
}

func TestOrderServiceCreateValidation(t *testing.T) {
	orderSvc, cartSvc, db := setupOrderServiceTest(t)
	address := completeTestAddress()
	product := createCartTestProduct(t, db, "validation-shirt", 10.00, 5)

	if _, err := orderSvc.Create(9999); err != ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	noAddress := createOrderTestUser(t, db, "noaddr@example.com", nil, constants.PaymentMethodPayPal)
	if _, err := orderSvc.Create(noAddress.ID); err != ErrMissingAddress {
		t.Fatalf("expected ErrMissingAddress, got %v", err)
	}

	partial := completeTestAddress()
	partial.PostalCode = ""
	incomplete := createOrderTestUser(t, db, "partial@example.com", &partial, constants.PaymentMethodPayPal)
	if _, err := orderSvc.Create(incomplete.ID); err != ErrIncompleteAddress {
		t.Fatalf("expected ErrIncompleteAddress, got %v", err)
	}

	noMethod := createOrderTestUser(t, db, "nomethod@example.com", &address, "")
	if _, err := orderSvc.Create(noMethod.ID); err != ErrMissingPaymentMethod {
		t.Fatalf("expected ErrMissingPaymentMethod, got %v", err)
	}

	badMethod := createOrderTestUser(t, db, "badmethod@example.com", &address, "Bitcoin")
	if _, err := orderSvc.Create(badMethod.ID); err != ErrInvalidPaymentMethod {
		t.Fatalf("expected ErrInvalidPaymentMethod, got %v", err)
	}

	emptyCart := createOrderTestUser(t, db, "empty@example.com", &address, constants.PaymentMethodPayPal)
	if _, err := orderSvc.Create(emptyCart.ID); err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	// 有车但被清空同样视为空车
	identity := CartIdentity{UserID: &emptyCart.ID}
	if _, err := cartSvc.AddItem(identity, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := cartSvc.RemoveItem(identity, product.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := orderSvc.Create(emptyCart.ID); err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart for emptied cart, got %v", err)
	}
}

func TestOrderServiceGetByIDScopedToUser(t *testing.T) {
	orderSvc, cartSvc, db := setupOrderServiceTest(t)
	address := completeTestAddress()
	owner := createOrderTestUser(t, db, "owner@example.com", &address, constants.PaymentMethodPayPal)
	other := createOrderTestUser(t, db, "other@example.com", &address, constants.PaymentMethodPayPal)
	product := createCartTestProduct(t, db, "scoped-shirt", 10.00, 5)

	if _, err := cartSvc.AddItem(CartIdentity{UserID: &owner.ID}, product.ID, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	order, err := orderSvc.Create(owner.ID)
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	got, err := orderSvc.GetByID(order.ID, owner.ID)
	if err != nil {
		t.Fatalf("owner should see own order: %v", err)
	}
	if got.ID != order.ID {
		t.Fatalf("order id want %d got %d", order.ID, got.ID)
	}

	if _, err := orderSvc.GetByID(order.ID, other.ID); err != ErrOrderNotFound {
		t.Fatalf("foreign order should be not found, got %v", err)
	}
}

func TestOrderServiceListByUser(t *testing.T) {
	orderSvc, cartSvc, db := setupOrderServiceTest(t)
	address := completeTestAddress()
	user := createOrderTestUser(t, db, "list@example.com", &address, constants.PaymentMethodPayPal)
	product := createCartTestProduct(t, db, "list-shirt", 10.00, 50)

	for i := 0; i < 3; i++ {
		if _, err := cartSvc.AddItem(CartIdentity{UserID: &user.ID}, product.ID, 1); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if _, err := orderSvc.Create(user.ID); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	orders, total, err := orderSvc.ListByUser(user.ID, 1, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total want 3 got %d", total)
	}
	if len(orders) != 2 {
		t.Fatalf("page size want 2 got %d", len(orders))
	}
}

func TestGenerateOrderNo(t *testing.T) {
	no := generateOrderNo()
	if !strings.HasPrefix(no, "SF") {
		t.Fatalf("order no should start with SF, got %s", no)
	}
	if len(no) != 2+14+6 {
		t.Fatalf("unexpected order no length: %s", no)
	}
	if no == generateOrderNo() && no == generateOrderNo() {
		t.Fatalf("order no should not repeat: %s", no)
	}
}
