package public

import (
	"github.com/storefront-next/storefront/internal/http/response"
	"github.com/storefront-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// getUserID 从上下文取登录用户 ID，缺失时响应 401
func getUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "login required")
		return 0, false
	}
	uid, ok := value.(uint)
	if !ok || uid == 0 {
		response.Unauthorized(c, "login required")
		return 0, false
	}
	return uid, true
}

// optionalUserID 从上下文取登录用户 ID，匿名时返回 nil
func optionalUserID(c *gin.Context) *uint {
	value, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	if uid, ok := value.(uint); ok && uid != 0 {
		return &uid
	}
	return nil
}

func sessionToken(c *gin.Context) string {
	value, exists := c.Get("session_token")
	if !exists {
		return ""
	}
	if token, ok := value.(string); ok {
		return token
	}
	return ""
}

// cartIdentity 组装购物车归属标识（用户优先，匿名会话兜底）
func cartIdentity(c *gin.Context) service.CartIdentity {
	return service.CartIdentity{
		UserID:       optionalUserID(c),
		SessionToken: sessionToken(c),
	}
}
