package public

import (
	"errors"
	"time"

	"github.com/storefront-next/storefront/internal/http/response"
	"github.com/storefront-next/storefront/internal/models"
	"github.com/storefront-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse 认证响应
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      UserView  `json:"user"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			response.BadRequest(c, "invalid email address")
		case errors.Is(err, service.ErrPasswordTooShort):
			response.BadRequest(c, "password is too short")
		case errors.Is(err, service.ErrEmailExists):
			response.BadRequest(c, "email already registered")
		default:
			response.Error(c, response.CodeInternal, "register failed")
		}
		return
	}

	h.mergeSessionCart(c, user.ID)

	response.Success(c, AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserView(user),
	})
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, "invalid email or password")
		default:
			response.Error(c, response.CodeInternal, "login failed")
		}
		return
	}

	h.mergeSessionCart(c, user.ID)

	response.Success(c, AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toUserView(user),
	})
}

// mergeSessionCart 登录/注册成功后把匿名会话购物车并入用户
func (h *Handler) mergeSessionCart(c *gin.Context, userID uint) {
	cookieName := h.Config.Session.CookieName
	if cookieName == "" {
		cookieName = "cart_session"
	}
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		return
	}
	_ = h.CartService.MergeOnLogin(userID, token)
}

// GetCurrentUser 获取当前用户
func (h *Handler) GetCurrentUser(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserAuthService.GetByID(uid)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.Error(c, response.CodeInternal, "fetch user failed")
		return
	}
	response.Success(c, toUserView(user))
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateProfile 更新用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	user, err := h.UserAuthService.UpdateProfile(uid, req.Name)
	if err != nil {
		response.Error(c, response.CodeInternal, "update profile failed")
		return
	}
	response.Success(c, toUserView(user))
}

// UpdateAddress 更新收货地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req models.ShippingAddress
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	user, err := h.UserAuthService.UpdateAddress(uid, req)
	if err != nil {
		if errors.Is(err, service.ErrIncompleteAddress) {
			response.BadRequest(c, "shipping address is incomplete")
			return
		}
		response.Error(c, response.CodeInternal, "update address failed")
		return
	}
	response.Success(c, toUserView(user))
}

// UpdatePaymentMethodRequest 更新支付方式请求
type UpdatePaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// UpdatePaymentMethod 更新首选支付方式
func (h *Handler) UpdatePaymentMethod(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	user, err := h.UserAuthService.UpdatePaymentMethod(uid, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingPaymentMethod), errors.Is(err, service.ErrInvalidPaymentMethod):
			response.BadRequest(c, "unsupported payment method")
		default:
			response.Error(c, response.CodeInternal, "update payment method failed")
		}
		return
	}
	response.Success(c, toUserView(user))
}
