package public

import (
	"time"

	"github.com/storefront-next/storefront/internal/models"
)

// ProductView 商品视图
type ProductView struct {
	ID          uint               `json:"id"`
	Slug        string             `json:"slug"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Brand       string             `json:"brand"`
	Description string             `json:"description"`
	Images      models.StringArray `json:"images"`
	Price       models.Money       `json:"price"`
	Stock       int                `json:"stock"`
	Rating      float64            `json:"rating"`
	NumReviews  int                `json:"num_reviews"`
	IsFeatured  bool               `json:"is_featured"`
	Banner      string             `json:"banner"`
}

func toProductView(p *models.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Category:    p.Category,
		Brand:       p.Brand,
		Description: p.Description,
		Images:      p.Images,
		Price:       p.Price,
		Stock:       p.Stock,
		Rating:      p.Rating,
		NumReviews:  p.NumReviews,
		IsFeatured:  p.IsFeatured,
		Banner:      p.Banner,
	}
}

func toProductViews(products []models.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for i := range products {
		views = append(views, toProductView(&products[i]))
	}
	return views
}

// CartItemView 购物车项视图
type CartItemView struct {
	ProductID uint         `json:"product_id"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
	Image     string       `json:"image"`
	UnitPrice models.Money `json:"unit_price"`
	Quantity  int          `json:"quantity"`
}

// CartView 购物车视图
type CartView struct {
	Items         []CartItemView `json:"items"`
	ItemsPrice    models.Money   `json:"items_price"`
	ShippingPrice models.Money   `json:"shipping_price"`
	TaxPrice      models.Money   `json:"tax_price"`
	TotalPrice    models.Money   `json:"total_price"`
}

func toCartView(cart *models.Cart) CartView {
	view := CartView{Items: []CartItemView{}}
	if cart == nil {
		return view
	}
	for i := range cart.Items {
		item := cart.Items[i]
		itemView := CartItemView{
			ProductID: item.ProductID,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			itemView.Name = item.Product.Name
			itemView.Slug = item.Product.Slug
			itemView.Image = item.Product.FirstImage()
		}
		view.Items = append(view.Items, itemView)
	}
	view.ItemsPrice = cart.ItemsPrice
	view.ShippingPrice = cart.ShippingPrice
	view.TaxPrice = cart.TaxPrice
	view.TotalPrice = cart.TotalPrice
	return view
}

// OrderItemView 订单项视图
type OrderItemView struct {
	ProductID uint         `json:"product_id"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
	Image     string       `json:"image"`
	Price     models.Money `json:"price"`
	Quantity  int          `json:"quantity"`
}

// PaymentResultView 支付结果视图
type PaymentResultView struct {
	ProviderRef   string       `json:"provider_ref"`
	Status        string       `json:"status"`
	PayerEmail    string       `json:"payer_email,omitempty"`
	CapturedTotal models.Money `json:"captured_total"`
}

// OrderView 订单视图
type OrderView struct {
	ID              uint                   `json:"id"`
	OrderNo         string                 `json:"order_no"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
	Items           []OrderItemView        `json:"items"`
	ItemsPrice      models.Money           `json:"items_price"`
	ShippingPrice   models.Money           `json:"shipping_price"`
	TaxPrice        models.Money           `json:"tax_price"`
	TotalPrice      models.Money           `json:"total_price"`
	IsPaid          bool                   `json:"is_paid"`
	PaidAt          *time.Time             `json:"paid_at,omitempty"`
	IsDelivered     bool                   `json:"is_delivered"`
	DeliveredAt     *time.Time             `json:"delivered_at,omitempty"`
	PaymentResult   *PaymentResultView     `json:"payment_result,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

func toOrderView(order *models.Order) OrderView {
	view := OrderView{
		ID:              order.ID,
		OrderNo:         order.OrderNo,
		ShippingAddress: order.ShippingAddress,
		PaymentMethod:   order.PaymentMethod,
		Items:           []OrderItemView{},
		ItemsPrice:      order.ItemsPrice,
		ShippingPrice:   order.ShippingPrice,
		TaxPrice:        order.TaxPrice,
		TotalPrice:      order.TotalPrice,
		IsPaid:          order.IsPaid,
		PaidAt:          order.PaidAt,
		IsDelivered:     order.IsDelivered,
		DeliveredAt:     order.DeliveredAt,
		CreatedAt:       order.CreatedAt,
	}
	for i := range order.Items {
		item := order.Items[i]
		view.Items = append(view.Items, OrderItemView{
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			Image:     item.Image,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}
	if order.PaymentResult != nil {
		view.PaymentResult = &PaymentResultView{
			ProviderRef:   order.PaymentResult.ProviderRef,
			Status:        order.PaymentResult.Status,
			PayerEmail:    order.PaymentResult.PayerEmail,
			CapturedTotal: order.PaymentResult.CapturedTotal,
		}
	}
	return view
}

func toOrderViews(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, toOrderView(&orders[i]))
	}
	return views
}

// UserView 用户视图
type UserView struct {
	ID            uint                    `json:"id"`
	Name          string                  `json:"name"`
	Email         string                  `json:"email"`
	Address       *models.ShippingAddress `json:"address,omitempty"`
	PaymentMethod string                  `json:"payment_method,omitempty"`
}

func toUserView(user *models.User) UserView {
	return UserView{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Address:       user.Address,
		PaymentMethod: user.PaymentMethod,
	}
}
