package repository

import (
	"errors"

	"github.com/storefront-next/storefront/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUserID(userID uint) (*models.Cart, error)
	GetBySessionToken(token string) (*models.Cart, error)
	GetByID(id uint) (*models.Cart, error)
	Create(cart *models.Cart) error
	AttachUser(cartID, userID uint) error
	GetItem(cartID, productID uint) (*models.CartItem, error)
	UpsertItem(item *models.CartItem) error
	UpdateItemQuantity(itemID uint, quantity int) error
	DeleteItem(itemID uint) error
	ListItems(cartID uint) ([]models.CartItem, error)
	UpdateTotals(cartID uint, totals models.CartTotals) error
	Delete(cartID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

func (r *GormCartRepository) getBy(query *gorm.DB) (*models.Cart, error) {
	var cart models.Cart
	err := query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Preload("Items.Product").First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GetByUserID 获取用户购物车
func (r *GormCartRepository) GetByUserID(userID uint) (*models.Cart, error) {
	return r.getBy(r.db.Where("user_id = ?", userID))
}

// GetBySessionToken 获取匿名会话购物车（不含已归属用户的车）
func (r *GormCartRepository) GetBySessionToken(token string) (*models.Cart, error) {
	if token == "" {
		return nil, nil
	}
	return r.getBy(r.db.Where("session_token = ? AND user_id IS NULL", token))
}

// GetByID 根据 ID 获取购物车
func (r *GormCartRepository) GetByID(id uint) (*models.Cart, error) {
	return r.getBy(r.db.Where("id = ?", id))
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// AttachUser 将匿名购物车归属到用户
func (r *GormCartRepository) AttachUser(cartID, userID uint) error {
	return r.db.Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("user_id", userID).Error
}

// GetItem 获取购物车中指定商品的行
func (r *GormCartRepository) GetItem(cartID, productID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertItem 添加或累加购物车项
func (r *GormCartRepository) UpsertItem(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	existing, err := r.GetItem(item.CartID, item.ProductID)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(item).Error
	}
	updates := map[string]interface{}{
		"quantity":   existing.Quantity + item.Quantity,
		"unit_price": item.UnitPrice,
	}
	return r.db.Model(existing).Updates(updates).Error
}

// UpdateItemQuantity 更新购物车项数量
func (r *GormCartRepository) UpdateItemQuantity(itemID uint, quantity int) error {
	return r.db.Model(&models.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(itemID uint) error {
	return r.db.Delete(&models.CartItem{}, itemID).Error
}

// ListItems 获取购物车全部行
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Preload("Product").
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateTotals 更新购物车金额快照
func (r *GormCartRepository) UpdateTotals(cartID uint, totals models.CartTotals) error {
	return r.db.Model(&models.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"items_price":    totals.ItemsPrice,
			"shipping_price": totals.ShippingPrice,
			"tax_price":      totals.TaxPrice,
			"total_price":    totals.TotalPrice,
		}).Error
}

// Delete 删除购物车及其全部行
func (r *GormCartRepository) Delete(cartID uint) error {
	if err := r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Cart{}, cartID).Error
}
