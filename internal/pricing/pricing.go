package pricing

import (
	"errors"

	"github.com/storefront-next/storefront/internal/models"

	"github.com/shopspring/decimal"
)

var ErrInvalidQuantity = errors.New("pricing: quantity must be a positive integer")

// 固定计价策略：满 100 免运费，否则收取 10 的固定运费；税率 15%。
var (
	freeShippingThreshold = decimal.NewFromInt(100)
	flatShippingRate      = decimal.NewFromInt(10)
	taxRate               = decimal.NewFromFloat(0.15)
)

// Line 计价输入行
type Line struct {
	UnitPrice models.Money
	Quantity  int
}

// Totals 计价结果，各金额在最终一步做四舍五入（保留 2 位）
type Totals struct {
	ItemsPrice    models.Money
	ShippingPrice models.Money
	TaxPrice      models.Money
	TotalPrice    models.Money
}

// CalcTotals 由行项目列表计算购物车/订单金额。纯函数，无副作用。
func CalcTotals(lines []Line) (Totals, error) {
	sum := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			return Totals{}, ErrInvalidQuantity
		}
		sum = sum.Add(line.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	itemsPrice := sum.Round(2)

	shipping := flatShippingRate
	if itemsPrice.GreaterThan(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	taxPrice := taxRate.Mul(itemsPrice).Round(2)
	totalPrice := itemsPrice.Add(shipping).Add(taxPrice).Round(2)

	return Totals{
		ItemsPrice:    models.NewMoneyFromDecimal(itemsPrice),
		ShippingPrice: models.NewMoneyFromDecimal(shipping),
		TaxPrice:      models.NewMoneyFromDecimal(taxPrice),
		TotalPrice:    models.NewMoneyFromDecimal(totalPrice),
	}, nil
}

// LinesFromCartItems 由购物车项构建计价输入
func LinesFromCartItems(items []models.CartItem) []Line {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	return lines
}
