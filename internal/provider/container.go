package provider

import (
	"github.com/storefront-next/storefront/internal/cache"
	"github.com/storefront-next/storefront/internal/config"
	"github.com/storefront-next/storefront/internal/logger"
	"github.com/storefront-next/storefront/internal/repository"
	"github.com/storefront-next/storefront/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config
	DB     *gorm.DB

	// Repositories
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	CartRepo    *repository.GormCartRepository
	OrderRepo   *repository.GormOrderRepository

	// Services
	UserAuthService *service.UserAuthService
	ProductService  *service.ProductService
	CartService     *service.CartService
	OrderService    *service.OrderService
	PaymentService  *service.PaymentService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config, db *gorm.DB) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{
		Config: cfg,
		DB:     db,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	c.UserRepo = repository.NewUserRepository(c.DB)
	c.ProductRepo = repository.NewProductRepository(c.DB)
	c.CartRepo = repository.NewCartRepository(c.DB)
	c.OrderRepo = repository.NewOrderRepository(c.DB)
}

func (c *Container) initServices() {
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.DB, c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.DB, c.OrderRepo, c.CartRepo, c.UserRepo)
	c.PaymentService = service.NewPaymentService(c.DB, c.Config, c.OrderRepo, c.ProductRepo)
}
