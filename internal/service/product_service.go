package service

import (
	"github.com/storefront-next/storefront/internal/models"
	"github.com/storefront-next/storefront/internal/repository"
)

const (
	defaultPageSize  = 12
	featuredPageSize = 4
)

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = defaultPageSize
	}
	return s.productRepo.List(filter)
}

// GetBySlug 商品详情
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListFeatured 首页精选商品
func (s *ProductService) ListFeatured() ([]models.Product, error) {
	products, _, err := s.productRepo.List(repository.ProductListFilter{
		Featured: true,
		Page:     1,
		PageSize: featuredPageSize,
	})
	return products, err
}
