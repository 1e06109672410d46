package public

import (
	"errors"
	"strconv"
	"time"

	"github.com/storefront-next/storefront/internal/cache"
	"github.com/storefront-next/storefront/internal/http/response"
	"github.com/storefront-next/storefront/internal/repository"
	"github.com/storefront-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

const featuredCacheKey = "products:featured"
const featuredCacheTTL = 5 * time.Minute

// GetProducts 商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "12"))

	filter := repository.ProductListFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}
	products, total, err := h.ProductService.List(filter)
	if err != nil {
		response.Error(c, response.CodeInternal, "fetch products failed")
		return
	}

	totalPage := int64(0)
	if filter.PageSize > 0 {
		totalPage = (total + int64(filter.PageSize) - 1) / int64(filter.PageSize)
	}
	response.SuccessWithPage(c, toProductViews(products), response.Pagination{
		Page:      page,
		PageSize:  filter.PageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// GetFeaturedProducts 精选商品，短缓存
func (h *Handler) GetFeaturedProducts(c *gin.Context) {
	var cached []ProductView
	if hit, err := cache.GetJSON(c.Request.Context(), featuredCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	products, err := h.ProductService.ListFeatured()
	if err != nil {
		response.Error(c, response.CodeInternal, "fetch products failed")
		return
	}
	views := toProductViews(products)
	_ = cache.SetJSON(c.Request.Context(), featuredCacheKey, views, featuredCacheTTL)
	response.Success(c, views)
}

// GetProductBySlug 商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	product, err := h.ProductService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		response.Error(c, response.CodeInternal, "fetch product failed")
		return
	}
	response.Success(c, toProductView(product))
}
