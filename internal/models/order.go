package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表。创建后金额与地址均为快照，不再重算。
type Order struct {
	ID              uint            `gorm:"primarykey" json:"id"`                                       // 主键
	OrderNo         string          `gorm:"uniqueIndex;not null" json:"order_no"`                       // 订单编号
	UserID          uint            `gorm:"index;not null" json:"user_id"`                              // 用户ID
	ShippingAddress ShippingAddress `gorm:"type:json;not null" json:"shipping_address"`                 // 收货地址快照
	PaymentMethod   string          `gorm:"type:varchar(40);not null" json:"payment_method"`            // 支付方式
	ItemsPrice      Money           `gorm:"type:decimal(20,2);not null;default:0" json:"items_price"`   // 商品小计
	ShippingPrice   Money           `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_price"` // 运费
	TaxPrice        Money           `gorm:"type:decimal(20,2);not null;default:0" json:"tax_price"`     // 税费
	TotalPrice      Money           `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`   // 总计
	IsPaid          bool            `gorm:"not null;default:false;index" json:"is_paid"`                // 是否已支付
	PaidAt          *time.Time      `gorm:"index" json:"paid_at"`                                       // 支付时间
	IsDelivered     bool            `gorm:"not null;default:false" json:"is_delivered"`                 // 是否已发货
	DeliveredAt     *time.Time      `json:"delivered_at"`                                               // 发货时间
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt       time.Time       `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`                                             // 软删除时间

	Items         []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`          // 订单项
	PaymentResult *PaymentResult `gorm:"foreignKey:OrderID" json:"payment_result,omitempty"` // 支付结果
	User          *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`            // 下单用户
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderItem 订单项表。商品信息为下单时刻快照，与在售商品解耦。
type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                    // 主键
	OrderID   uint           `gorm:"index;not null" json:"order_id"`                          // 订单ID
	ProductID uint           `gorm:"index;not null" json:"product_id"`                        // 商品ID
	Name      string         `gorm:"not null" json:"name"`                                    // 商品名称快照
	Slug      string         `gorm:"not null" json:"slug"`                                    // 商品标识快照
	Image     string         `gorm:"type:varchar(500)" json:"image"`                          // 商品图片快照
	Price     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`      // 单价快照
	Quantity  int            `gorm:"not null" json:"quantity"`                                // 数量
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
