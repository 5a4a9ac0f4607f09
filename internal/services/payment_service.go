// internal/services/payment_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/webhook"
	"gorm.io/gorm"

	"github.com/sokomarket/soko-backend/internal/config"
	"github.com/sokomarket/soko-backend/internal/models"
	"github.com/sokomarket/soko-backend/internal/utils"
)

type PaymentService struct {
	db     *gorm.DB
	config *config.Config
	orders *OrderService
}

type CreatePaymentIntentRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
	OrderID         uuid.UUID `json:"order_id" validate:"required"`
}

func NewPaymentService(db *gorm.DB, config *config.Config, orders *OrderService) *PaymentService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:     db,
		config: config,
		orders: orders,
	}
}

// CreatePaymentIntent opens a Stripe PaymentIntent for a pending order.
// The amount is read from the order, never from the client.
func (s *PaymentService) CreatePaymentIntent(buyerID uuid.UUID, req *CreatePaymentIntentRequest) (*PaymentIntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var order models.Order
	if err := s.db.First(&order, req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.BuyerID != buyerID {
		return nil, errors.New("order not found")
	}
	if order.Status != models.OrderStatusPending {
		return nil, errors.New("order is not payable")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(order.TotalCents),
		Currency: stripe.String(strings.ToLower(order.Currency)),
	}
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("buyer_id", buyerID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}

// ConfirmPayment checks the PaymentIntent with Stripe and marks the
// order paid when the charge succeeded.
func (s *PaymentService) ConfirmPayment(buyerID uuid.UUID, req *ConfirmPaymentRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("payment not completed (status %s)", pi.Status)
	}

	var order models.Order
	if err := s.db.First(&order, req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if order.BuyerID != buyerID {
		return nil, errors.New("order not found")
	}

	return s.orders.MarkPaid(order.ID)
}

// HandleWebhook verifies a Stripe event signature and applies the
// events we care about. Unknown event types are acknowledged and
// ignored so Stripe stops retrying them.
func (s *PaymentService) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.config.Payment.StripeWebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	switch event.Type {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return fmt.Errorf("failed to parse payment intent event: %w", err)
		}
		orderIDStr, ok := pi.Metadata["order_id"]
		if !ok {
			logrus.WithField("payment_intent", pi.ID).Warn("Payment intent without order metadata")
			return nil
		}
		orderID, err := uuid.Parse(orderIDStr)
		if err != nil {
			return fmt.Errorf("invalid order id in event metadata: %w", err)
		}
		if _, err := s.orders.MarkPaid(orderID); err != nil {
			return fmt.Errorf("failed to settle order %s: %w", orderID, err)
		}
		logrus.WithFields(logrus.Fields{
			"order_id":       orderID,
			"payment_intent": pi.ID,
		}).Info("Order settled via webhook")

	case "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return fmt.Errorf("failed to parse payment intent event: %w", err)
		}
		logrus.WithField("payment_intent", pi.ID).Warn("Payment failed")

	default:
		logrus.WithField("type", event.Type).Debug("Ignoring webhook event")
	}

	return nil
}
