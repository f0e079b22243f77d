package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"github.com/anonto42/snapgram/backend/pkg/payment"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const currencyINR = "INR"

// OrderResult is what the client needs to open the gateway checkout
type OrderResult struct {
	OrderID  string          `json:"order_id"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	KeyID    string          `json:"key_id"`
}

// WalletService moves coins: purchases through the gateway and gift spending
type WalletService struct {
	db            *gorm.DB
	gateway       payment.Gateway
	coinsPerRupee int64
}

func NewWalletService(db *gorm.DB, gateway payment.Gateway, coinsPerRupee int64) *WalletService {
	return &WalletService{db: db, gateway: gateway, coinsPerRupee: coinsPerRupee}
}

func (s *WalletService) Balance(ctx context.Context, userID uint) (int64, error) {
	user, err := repositories.NewPostgresUserRepository(s.db.WithContext(ctx)).GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return user.Coins, nil
}

func (s *WalletService) Transactions(ctx context.Context, userID uint) ([]models.WalletTransaction, error) {
	txns, err := repositories.NewPostgresWalletRepository(s.db.WithContext(ctx)).GetByUserID(userID, 100)
	if txns == nil {
		txns = []models.WalletTransaction{}
	}
	return txns, err
}

// CreateOrder opens a gateway order for amount rupees and records it as a
// pending purchase.
func (s *WalletService) CreateOrder(ctx context.Context, userID uint, amount decimal.Decimal) (*OrderResult, error) {
	if !amount.IsPositive() || !amount.Equal(amount.Round(2)) {
		return nil, ErrInvalidAmount
	}
	if s.gateway == nil {
		return nil, payment.ErrUnavailable
	}

	paise := amount.Shift(2).IntPart()
	receipt := fmt.Sprintf("rcpt_%d_%d", userID, time.Now().UnixNano())
	order, err := s.gateway.CreateOrder(ctx, paise, currencyINR, receipt)
	if err != nil {
		return nil, err
	}

	orderID := order.ID
	txn := &models.WalletTransaction{
		UserID:         userID,
		Type:           models.TransactionPurchase,
		Amount:         amount,
		Status:         models.TransactionPending,
		GatewayOrderID: &orderID,
	}
	if err := repositories.NewPostgresWalletRepository(s.db.WithContext(ctx)).CreateTransaction(txn); err != nil {
		return nil, err
	}
	return &OrderResult{OrderID: orderID, Amount: amount, Currency: currencyINR, KeyID: s.gateway.KeyID()}, nil
}

// VerifyPayment credits coins for a signed payment of the caller's pending
// order. An order is credited at most once.
func (s *WalletService) VerifyPayment(ctx context.Context, userID uint, req models.VerifyPaymentRequest) (int64, error) {
	if s.gateway == nil {
		return 0, payment.ErrUnavailable
	}
	if !s.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		return 0, ErrPaymentVerification
	}

	var coins int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		wallet := repositories.NewPostgresWalletRepository(tx)
		txn, err := wallet.GetPendingByOrderIDForUpdate(req.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentVerification
			}
			return err
		}
		if txn.UserID != userID {
			return ErrPaymentVerification
		}

		coins = txn.Amount.Mul(decimal.NewFromInt(s.coinsPerRupee)).IntPart()
		if err := wallet.MarkCompleted(txn.ID, req.PaymentID, coins); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentVerification
			}
			return err
		}
		return repositories.NewPostgresUserRepository(tx).AdjustCoins(userID, coins)
	})
	if err != nil {
		return 0, err
	}
	return coins, nil
}

func (s *WalletService) Gifts(ctx context.Context) ([]models.Gift, error) {
	gifts, err := repositories.NewPostgresGiftRepository(s.db.WithContext(ctx)).GetGifts()
	if gifts == nil {
		gifts = []models.Gift{}
	}
	return gifts, err
}

// SendGift debits the sender and delivers the gift as a chat message, all in
// one transaction with the sender row locked.
func (s *WalletService) SendGift(ctx context.Context, senderID, receiverID, giftID uint) (*models.Message, error) {
	var message *models.Message
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewPostgresUserRepository(tx)

		gift, err := repositories.NewPostgresGiftRepository(tx).GetGiftByID(giftID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrGiftNotFound
			}
			return err
		}
		if _, err := users.GetActiveUserByID(receiverID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		sender, err := users.GetUserByIDForUpdate(senderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if sender.Coins < gift.Price {
			return ErrInsufficientCoins
		}

		if err := users.AdjustCoins(senderID, -gift.Price); err != nil {
			return err
		}

		message = &models.Message{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Body:       "Sent a gift: " + gift.Name,
			GiftID:     &gift.ID,
		}
		if err := repositories.NewPostgresMessageRepository(tx).CreateMessage(message); err != nil {
			return err
		}

		if err := repositories.NewPostgresWalletRepository(tx).CreateTransaction(&models.WalletTransaction{
			UserID: senderID,
			Type:   models.TransactionGiftSent,
			Amount: decimal.NewFromInt(gift.Price),
			Coins:  gift.Price,
			Status: models.TransactionCompleted,
		}); err != nil {
			return err
		}

		return notify(repositories.NewPostgresNotificationRepository(tx), &models.Notification{
			Type:        models.NotificationGift,
			ActorID:     senderID,
			RecipientID: receiverID,
			GiftID:      &gift.ID,
		})
	})
	if err != nil {
		return nil, err
	}
	return message, nil
}
