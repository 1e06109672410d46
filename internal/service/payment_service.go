package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/storefront-next/storefront/internal/config"
	"github.com/storefront-next/storefront/internal/constants"
	"github.com/storefront-next/storefront/internal/logger"
	"github.com/storefront-next/storefront/internal/models"
	"github.com/storefront-next/storefront/internal/payment/paypal"
	"github.com/storefront-next/storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentService 支付服务。负责向提供方下单与捕获确认。
type PaymentService struct {
	db          *gorm.DB
	cfg         *config.Config
	orderRepo   *repository.GormOrderRepository
	productRepo repository.ProductRepository
}

// NewPaymentService 创建支付服务
func NewPaymentService(db *gorm.DB, cfg *config.Config, orderRepo *repository.GormOrderRepository, productRepo repository.ProductRepository) *PaymentService {
	return &PaymentService{
		db:          db,
		cfg:         cfg,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// InitiateResult 发起支付返回
type InitiateResult struct {
	ProviderOrderID string `json:"provider_order_id"`
	ApprovalURL     string `json:"approval_url,omitempty"`
}

func (s *PaymentService) paypalConfig() *paypal.Config {
	cfg := &paypal.Config{
		ClientID:       s.cfg.PayPal.ClientID,
		ClientSecret:   s.cfg.PayPal.ClientSecret,
		BaseURL:        s.cfg.PayPal.BaseURL,
		Currency:       s.cfg.PayPal.Currency,
		TimeoutSeconds: s.cfg.PayPal.TimeoutSeconds,
	}
	cfg.Normalize()
	return cfg
}

// InitiateCapture 为订单在提供方创建可支付单。
// 已有未完成的提供方单时直接复用，不重复下单。
func (s *PaymentService) InitiateCapture(ctx context.Context, orderID, userID uint) (*InitiateResult, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.IsPaid {
		return nil, ErrOrderAlreadyPaid
	}

	if order.PaymentResult != nil &&
		order.PaymentResult.Status == constants.PaymentStatusPending &&
		strings.TrimSpace(order.PaymentResult.ProviderRef) != "" {
		return &InitiateResult{ProviderOrderID: order.PaymentResult.ProviderRef}, nil
	}

	created, err := paypal.CreateOrder(ctx, s.paypalConfig(), paypal.CreateInput{
		OrderNo: order.OrderNo,
		Amount:  order.TotalPrice.String(),
	})
	if err != nil {
		logger.Warnw("paypal_create_order_failed", "order_id", order.ID, "error", err)
		return nil, mapProviderError(err)
	}

	result := &models.PaymentResult{
		OrderID:     order.ID,
		ProviderRef: created.OrderID,
		Status:      constants.PaymentStatusPending,
	}
	if err := s.orderRepo.SavePaymentResult(result); err != nil {
		return nil, err
	}

	return &InitiateResult{
		ProviderOrderID: created.OrderID,
		ApprovalURL:     created.ApprovalURL,
	}, nil
}

// ConfirmCapture 捕获提供方订单并落账。库存扣减与订单置为已支付在同一
// 事务内完成；订单已支付时直接拒绝，不会二次扣库存。
func (s *PaymentService) ConfirmCapture(ctx context.Context, orderID, userID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.IsPaid {
		return nil, ErrOrderAlreadyPaid
	}
	if order.PaymentResult == nil || strings.TrimSpace(order.PaymentResult.ProviderRef) == "" {
		return nil, ErrPaymentNotInitiated
	}

	captured, err := paypal.CaptureOrder(ctx, s.paypalConfig(), order.PaymentResult.ProviderRef)
	if err != nil {
		logger.Warnw("paypal_capture_failed", "order_id", order.ID, "error", err)
		return nil, mapProviderError(err)
	}
	if !captured.Completed() {
		return nil, ErrPaymentNotCompleted
	}

	paidAt := time.Now()
	if captured.PaidAt != nil {
		paidAt = *captured.PaidAt
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		rows, err := orderRepo.MarkPaid(order.ID, paidAt)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrOrderAlreadyPaid
		}

		for i := range order.Items {
			item := order.Items[i]
			affected, err := productRepo.DecrementStock(item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				// 库存不足以完整扣减时清零兜底，保证不出现负库存
				if err := productRepo.ClearStock(item.ProductID); err != nil {
					return err
				}
			}
		}

		result := &models.PaymentResult{
			OrderID:     order.ID,
			ProviderRef: captured.OrderID,
			Status:      constants.PaymentStatusCompleted,
			PayerEmail:  captured.PayerEmail,
		}
		if amount := strings.TrimSpace(captured.Amount); amount != "" {
			if parsed, parseErr := decimal.NewFromString(amount); parseErr == nil {
				result.CapturedTotal = models.NewMoneyFromDecimal(parsed)
			}
		}
		return orderRepo.SavePaymentResult(result)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_paid", "order_id", order.ID, "order_no", order.OrderNo, "provider_ref", captured.OrderID)
	return s.orderRepo.GetByID(order.ID)
}

func mapProviderError(err error) error {
	switch {
	case errors.Is(err, paypal.ErrConfigInvalid):
		return ErrPaymentProviderFailed
	case errors.Is(err, paypal.ErrAuthFailed), errors.Is(err, paypal.ErrRequestFailed), errors.Is(err, paypal.ErrResponseInvalid):
		return ErrPaymentProviderFailed
	default:
		return err
	}
}
