package public

import (
	"errors"
	"strconv"

	"github.com/storefront-next/storefront/internal/http/response"
	"github.com/storefront-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 添加购物车项请求
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// GetCart 获取购物车。不存在时返回空车。
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.CartService.Get(cartIdentity(c))
	if err != nil {
		if errors.Is(err, service.ErrNoCartIdentity) {
			response.BadRequest(c, "cart identity missing")
			return
		}
		response.Error(c, response.CodeInternal, "fetch cart failed")
		return
	}
	response.Success(c, toCartView(cart))
}

// AddCartItem 添加商品到购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	cart, err := h.CartService.AddItem(cartIdentity(c), req.ProductID, quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoCartIdentity):
			response.BadRequest(c, "cart identity missing")
		case errors.Is(err, service.ErrInvalidQuantity):
			response.BadRequest(c, "quantity must be a positive integer")
		case errors.Is(err, service.ErrProductNotFound):
			response.NotFound(c, "product not found")
		default:
			response.Error(c, response.CodeInternal, "add cart item failed")
		}
		return
	}
	response.Success(c, toCartView(cart))
}

// RemoveCartItem 从购物车移除一件商品
func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		response.BadRequest(c, "invalid product id")
		return
	}

	cart, err := h.CartService.RemoveItem(cartIdentity(c), uint(productID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoCartIdentity):
			response.BadRequest(c, "cart identity missing")
		case errors.Is(err, service.ErrCartNotFound):
			response.NotFound(c, "cart not found")
		default:
			response.Error(c, response.CodeInternal, "remove cart item failed")
		}
		return
	}
	response.Success(c, toCartView(cart))
}
