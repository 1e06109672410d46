package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentResult 支付结果记录。发起支付时写入待定状态，捕获成功后定稿。
// 仅作留痕，不参与任何金额重算。
type PaymentResult struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                      // 主键
	OrderID       uint           `gorm:"uniqueIndex;not null" json:"order_id"`                      // 订单ID
	ProviderRef   string         `gorm:"index;not null" json:"provider_ref"`                        // 第三方交易号
	Status        string         `gorm:"not null" json:"status"`                                    // 第三方状态
	PayerEmail    string         `json:"payer_email"`                                               // 付款人邮箱
	CapturedTotal Money          `gorm:"type:decimal(20,2);not null;default:0" json:"captured_total"` // 实际捕获金额
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                   // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                   // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                            // 软删除时间
}

// TableName 指定表名
func (PaymentResult) TableName() string {
	return "payment_results"
}
