package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionPurchase = "purchase"
	TransactionGiftSent = "gift_sent"

	TransactionPending   = "pending"
	TransactionCompleted = "completed"
)

// WalletTransaction records coin purchases and gift spending
type WalletTransaction struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	UserID           uint            `json:"user_id" gorm:"index"`
	Type             string          `json:"type" gorm:"size:20;not null"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Coins            int64           `json:"coins"`
	Status           string          `json:"status" gorm:"size:20;index;not null"`
	GatewayOrderID   *string         `json:"order_id,omitempty" gorm:"uniqueIndex"`
	GatewayPaymentID string          `json:"payment_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (WalletTransaction) TableName() string {
	return "transactions"
}

type CreateOrderRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}
