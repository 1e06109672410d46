package public

import (
	"errors"
	"strconv"

	"github.com/storefront-next/storefront/internal/http/response"
	"github.com/storefront-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrder 由购物车创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	order, err := h.OrderService.Create(uid)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.Unauthorized(c, "login required")
		case errors.Is(err, service.ErrEmptyCart):
			response.BadRequest(c, "cart is empty")
		case errors.Is(err, service.ErrMissingAddress), errors.Is(err, service.ErrIncompleteAddress):
			response.BadRequest(c, "shipping address is missing or incomplete")
		case errors.Is(err, service.ErrMissingPaymentMethod), errors.Is(err, service.ErrInvalidPaymentMethod):
			response.BadRequest(c, "payment method is missing or unsupported")
		default:
			response.Error(c, response.CodeInternal, "create order failed")
		}
		return
	}
	response.Success(c, toOrderView(order))
}

// ListOrders 用户订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize <= 0 {
		pageSize = 10
	}

	orders, total, err := h.OrderService.ListByUser(uid, page, pageSize)
	if err != nil {
		response.Error(c, response.CodeInternal, "fetch orders failed")
		return
	}
	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, toOrderViews(orders), response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.OrderService.GetByID(orderID, uid)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		response.Error(c, response.CodeInternal, "fetch order failed")
		return
	}
	response.Success(c, toOrderView(order))
}

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid order id")
		return 0, false
	}
	return uint(id), true
}
