package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID            uint             `gorm:"primarykey" json:"id"`                      // 主键
	Name          string           `gorm:"not null" json:"name"`                      // 昵称
	Email         string           `gorm:"uniqueIndex;not null" json:"email"`         // 邮箱（小写存储）
	PasswordHash  string           `gorm:"not null" json:"-"`                         // 密码哈希（不返回给前端）
	Address       *ShippingAddress `gorm:"type:json" json:"address,omitempty"`        // 收货地址（规范形态）
	PaymentMethod string           `gorm:"type:varchar(40)" json:"payment_method"`    // 首选支付方式
	TokenVersion  uint64           `gorm:"not null;default:0" json:"-"`               // Token 版本（用于全量失效）
	LastLoginAt   *time.Time       `json:"last_login_at"`                             // 最后登录时间
	CreatedAt     time.Time        `gorm:"index" json:"created_at"`                   // 创建时间
	UpdatedAt     time.Time        `gorm:"index" json:"updated_at"`                   // 更新时间
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`                            // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
