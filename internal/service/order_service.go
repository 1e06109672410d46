package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/storefront-next/storefront/internal/constants"
	"github.com/storefront-next/storefront/internal/models"
	"github.com/storefront-next/storefront/internal/pricing"
	"github.com/storefront-next/storefront/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	db        *gorm.DB
	orderRepo *repository.GormOrderRepository
	cartRepo  *repository.GormCartRepository
	userRepo  repository.UserRepository
}

// NewOrderService 创建订单服务
func NewOrderService(db *gorm.DB, orderRepo *repository.GormOrderRepository, cartRepo *repository.GormCartRepository, userRepo repository.UserRepository) *OrderService {
	return &OrderService{
		db:        db,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
	}
}

// Create 由用户购物车创建订单。校验、落单、删车在同一事务内完成：
// 任一步失败则购物车保持原样，不会出现半成品订单。
func (s *OrderService) Create(userID uint) (*models.Order, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.Address == nil {
		return nil, ErrMissingAddress
	}
	if !user.Address.IsComplete() {
		return nil, ErrIncompleteAddress
	}
	if strings.TrimSpace(user.PaymentMethod) == "" {
		return nil, ErrMissingPaymentMethod
	}
	if !constants.PaymentMethodSupported(user.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	totals, err := pricing.CalcTotals(pricing.LinesFromCartItems(cart.Items))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:         generateOrderNo(),
		UserID:          userID,
		ShippingAddress: *user.Address,
		PaymentMethod:   user.PaymentMethod,
		ItemsPrice:      totals.ItemsPrice,
		ShippingPrice:   totals.ShippingPrice,
		TaxPrice:        totals.TaxPrice,
		TotalPrice:      totals.TotalPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	for i := range cart.Items {
		cartItem := cart.Items[i]
		orderItem := models.OrderItem{
			ProductID: cartItem.ProductID,
			Quantity:  cartItem.Quantity,
			Price:     cartItem.UnitPrice,
		}
		if cartItem.Product != nil {
			orderItem.Name = cartItem.Product.Name
			orderItem.Slug = cartItem.Product.Slug
			orderItem.Image = cartItem.Product.FirstImage()
		}
		items = append(items, orderItem)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		return cartRepo.Delete(cart.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(order.ID)
}

// GetByID 获取用户自己的订单详情
func (s *OrderService) GetByID(orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("SF%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
