package public

import (
	"errors"

	"github.com/storefront-next/storefront/internal/http/response"
	"github.com/storefront-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// InitiatePayment 为订单在支付提供方创建可支付单
func (h *Handler) InitiatePayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	result, err := h.PaymentService.InitiateCapture(c.Request.Context(), orderID, uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.NotFound(c, "order not found")
		case errors.Is(err, service.ErrOrderAlreadyPaid):
			response.Conflict(c, "order already paid")
		case errors.Is(err, service.ErrPaymentProviderFailed):
			response.Error(c, response.CodeInternal, "payment provider unavailable")
		default:
			response.Error(c, response.CodeInternal, "initiate payment failed")
		}
		return
	}
	response.Success(c, result)
}

// CapturePayment 捕获支付并落账
func (h *Handler) CapturePayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.PaymentService.ConfirmCapture(c.Request.Context(), orderID, uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			response.NotFound(c, "order not found")
		case errors.Is(err, service.ErrOrderAlreadyPaid):
			response.Conflict(c, "order already paid")
		case errors.Is(err, service.ErrPaymentNotInitiated):
			response.BadRequest(c, "payment not initiated")
		case errors.Is(err, service.ErrPaymentNotCompleted):
			response.BadRequest(c, "payment not completed")
		case errors.Is(err, service.ErrPaymentProviderFailed):
			response.Error(c, response.CodeInternal, "payment provider unavailable")
		default:
			response.Error(c, response.CodeInternal, "capture payment failed")
		}
		return
	}
	response.Success(c, toOrderView(order))
}
