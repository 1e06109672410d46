package constants

// 支付方式常量
const (
	PaymentMethodPayPal         = "PayPal"
	PaymentMethodStripe         = "Stripe"
	PaymentMethodCashOnDelivery = "CashOnDelivery"
)

// 支付结果状态常量
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// PaymentMethodSupported 判断支付方式是否受支持
func PaymentMethodSupported(method string) bool {
	switch method {
	case PaymentMethodPayPal, PaymentMethodStripe, PaymentMethodCashOnDelivery:
		return true
	default:
		return false
	}
}
