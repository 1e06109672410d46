package models

import (
	"time"
)

// Cart 购物车表。归属人是用户或匿名会话，用户 ID 一旦出现即优先。
// 四个金额字段永远由当前购物车项经定价规则重算写入，不单独更新。
// 购物车是临时数据，下单即整体删除，因此不做软删除。
type Cart struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                        // 主键
	UserID        *uint     `gorm:"index" json:"user_id,omitempty"`                              // 用户ID（匿名购物车为空）
	SessionToken  string    `gorm:"index;not null" json:"-"`                                     // 匿名会话令牌
	ItemsPrice    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"items_price"`    // 商品小计
	ShippingPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_price"` // 运费
	TaxPrice      Money     `gorm:"type:decimal(20,2);not null;default:0" json:"tax_price"`      // 税费
	TotalPrice    Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`    // 总计
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time `gorm:"index" json:"updated_at"`                                     // 更新时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车项
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// CartTotals 购物车金额快照，由定价规则重算后整体写入
type CartTotals struct {
	ItemsPrice    Money
	ShippingPrice Money
	TaxPrice      Money
	TotalPrice    Money
}

// CartItem 购物车项。同一购物车内商品唯一，数量恒 ≥ 1。
// 行删除是物理删除，唯一索引 (cart_id, product_id) 随之释放，删后可再加。
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                         // 主键
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_item_product" json:"cart_id"`    // 购物车ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_item_product" json:"product_id"` // 商品ID
	Quantity  int       `gorm:"not null" json:"quantity"`                                     // 数量
	UnitPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`      // 加入时单价快照
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                      // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
