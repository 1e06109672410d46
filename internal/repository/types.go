package repository

// ProductListFilter 商品列表查询条件
type ProductListFilter struct {
	Category string
	Search   string
	Featured bool
	Page     int
	PageSize int
}

// OrderListFilter 订单列表查询条件
type OrderListFilter struct {
	UserID   uint
	Page     int
	PageSize int
}
