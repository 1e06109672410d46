package service

import (
	"github.com/storefront-next/storefront/internal/models"
	"github.com/storefront-next/storefront/internal/pricing"
	"github.com/storefront-next/storefront/internal/repository"

	"gorm.io/gorm"
)

// CartIdentity 购物车归属标识。用户 ID 存在时优先于匿名会话令牌。
type CartIdentity struct {
	UserID       *uint
	SessionToken string
}

// Valid 判断标识是否可定位一个购物车
func (id CartIdentity) Valid() bool {
	return id.UserID != nil || id.SessionToken != ""
}

// CartService 购物车服务
type CartService struct {
	db          *gorm.DB
	cartRepo    *repository.GormCartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(db *gorm.DB, cartRepo *repository.GormCartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get 按标识获取购物车，不存在时返回 nil（视为空购物车，不报错）
func (s *CartService) Get(identity CartIdentity) (*models.Cart, error) {
	if !identity.Valid() {
		return nil, ErrNoCartIdentity
	}
	if identity.UserID != nil {
		cart, err := s.cartRepo.GetByUserID(*identity.UserID)
		if err != nil {
			return nil, err
		}
		if cart != nil {
			return cart, nil
		}
		// 登录用户名下无车时回落到会话车：刚登录还未合并的场景
		if identity.SessionToken != "" {
			return s.adoptSessionCart(identity)
		}
		return nil, nil
	}
	return s.cartRepo.GetBySessionToken(identity.SessionToken)
}

// adoptSessionCart 将匿名会话购物车归属到已登录用户
func (s *CartService) adoptSessionCart(identity CartIdentity) (*models.Cart, error) {
	cart, err := s.cartRepo.GetBySessionToken(identity.SessionToken)
	if err != nil || cart == nil {
		return cart, err
	}
	if err := s.cartRepo.AttachUser(cart.ID, *identity.UserID); err != nil {
		return nil, err
	}
	cart.UserID = identity.UserID
	return cart, nil
}

// getOrCreate 获取或创建购物车
func (s *CartService) getOrCreate(identity CartIdentity) (*models.Cart, error) {
	cart, err := s.Get(identity)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}
	cart = &models.Cart{
		UserID:       identity.UserID,
		SessionToken: identity.SessionToken,
	}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem 添加商品到购物车。已存在的行累加数量，单价以当前商品价格为准，
// 金额快照在同一事务内重算。
func (s *CartService) AddItem(identity CartIdentity, productID uint, quantity int) (*models.Cart, error) {
	if !identity.Valid() {
		return nil, ErrNoCartIdentity
	}
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.getOrCreate(identity)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  quantity,
			UnitPrice: product.Price,
		}
		if err := cartRepo.UpsertItem(item); err != nil {
			return err
		}
		return recalcCartTotals(cartRepo, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.cartRepo.GetByID(cart.ID)
}

// RemoveItem 移除一件商品：数量减一，减到零时删除整行，随后重算金额。
// 行不存在时不报错，直接返回当前购物车。
func (s *CartService) RemoveItem(identity CartIdentity, productID uint) (*models.Cart, error) {
	if !identity.Valid() {
		return nil, ErrNoCartIdentity
	}

	cart, err := s.Get(identity)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		item, err := cartRepo.GetItem(cart.ID, productID)
		if err != nil {
			return err
		}
		if item == nil {
			return nil
		}
		if item.Quantity <= 1 {
			if err := cartRepo.DeleteItem(item.ID); err != nil {
				return err
			}
		} else {
			if err := cartRepo.UpdateItemQuantity(item.ID, item.Quantity-1); err != nil {
				return err
			}
		}
		return recalcCartTotals(cartRepo, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.cartRepo.GetByID(cart.ID)
}

// MergeOnLogin 登录时合并匿名会话购物车到用户名下。
// 用户已有购物车时逐行并入会话车内容并删除会话车；否则直接改归属。
func (s *CartService) MergeOnLogin(userID uint, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	sessionCart, err := s.cartRepo.GetBySessionToken(sessionToken)
	if err != nil || sessionCart == nil {
		return err
	}
	userCart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return err
	}

	if userCart == nil {
		return s.cartRepo.AttachUser(sessionCart.ID, userID)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		for i := range sessionCart.Items {
			item := sessionCart.Items[i]
			merged := &models.CartItem{
				CartID:    userCart.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			}
			if err := cartRepo.UpsertItem(merged); err != nil {
				return err
			}
		}
		if err := cartRepo.Delete(sessionCart.ID); err != nil {
			return err
		}
		return recalcCartTotals(cartRepo, userCart.ID)
	})
}

// recalcCartTotals 重算并写回购物车金额快照
func recalcCartTotals(cartRepo *repository.GormCartRepository, cartID uint) error {
	items, err := cartRepo.ListItems(cartID)
	if err != nil {
		return err
	}
	totals, err := pricing.CalcTotals(pricing.LinesFromCartItems(items))
	if err != nil {
		return err
	}
	return cartRepo.UpdateTotals(cartID, models.CartTotals{
		ItemsPrice:    totals.ItemsPrice,
		ShippingPrice: totals.ShippingPrice,
		TaxPrice:      totals.TaxPrice,
		TotalPrice:    totals.TotalPrice,
	})
}
