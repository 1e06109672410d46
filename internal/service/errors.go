package service

import "errors"

// 业务错误定义，由 handler 层统一映射为响应状态码
var (
	ErrInvalidEmail       = errors.New("邮箱格式不正确")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrPasswordTooShort   = errors.New("密码长度不足")
	ErrUserNotFound       = errors.New("用户不存在")

	ErrNoCartIdentity  = errors.New("缺少购物车归属标识")
	ErrCartNotFound    = errors.New("购物车不存在")
	ErrEmptyCart       = errors.New("购物车为空")
	ErrInvalidQuantity = errors.New("商品数量必须为正整数")

	ErrProductNotFound = errors.New("商品不存在")

	ErrOrderNotFound         = errors.New("订单不存在")
	ErrMissingAddress        = errors.New("缺少收货地址")
	ErrIncompleteAddress     = errors.New("收货地址不完整")
	ErrMissingPaymentMethod  = errors.New("缺少支付方式")
	ErrInvalidPaymentMethod  = errors.New("不支持的支付方式")
	ErrOrderAlreadyPaid      = errors.New("订单已支付")
	ErrPaymentNotCompleted   = errors.New("支付未完成")
	ErrPaymentNotInitiated   = errors.New("支付未发起")
	ErrPaymentProviderFailed = errors.New("支付提供方请求失败")
)
