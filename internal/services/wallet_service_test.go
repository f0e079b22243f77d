package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/testutil"
	"github.com/anonto42/snapgram/backend/pkg/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGateway struct {
	secret string
	orders int
	amount int64
}

func (g *fakeGateway) CreateOrder(_ context.Context, amountPaise int64, _, _ string) (*payment.Order, error) {
	g.orders++
	g.amount = amountPaise
	return &payment.Order{ID: fmt.Sprintf("order_%d", g.orders), Amount: amountPaise, Currency: "INR"}, nil
}

func (g *fakeGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return payment.VerifySignature(g.secret, orderID, paymentID, signature)
}

func (g *fakeGateway) KeyID() string { return "rzp_test" }

func giveCoins(t *testing.T, db *gorm.DB, userID uint, coins int64) {
	t.Helper()
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", userID).Update("coins", coins).Error)
}

func TestPurchaseFlowCreditsOnce(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	gw := &fakeGateway{secret: "s3cret"}
	svc := NewWalletService(db, gw, 10)
	user := testutil.CreateUser(t, db, "buyer", false)

	order, err := svc.CreateOrder(ctx, user.ID, decimal.RequireFromString("49.50"))
	require.NoError(t, err)
	assert.Equal(t, int64(4950), gw.amount)
	assert.Equal(t, "rzp_test", order.KeyID)

	bad := models.VerifyPaymentRequest{OrderID: order.OrderID, PaymentID: "pay_1", Signature: "deadbeef"}
	_, err = svc.VerifyPayment(ctx, user.ID, bad)
	assert.ErrorIs(t, err, ErrPaymentVerification)

	good := models.VerifyPaymentRequest{
		OrderID:   order.OrderID,
		PaymentID: "pay_1",
		Signature: payment.Sign("s3cret", order.OrderID, "pay_1"),
	}
	coins, err := svc.VerifyPayment(ctx, user.ID, good)
	require.NoError(t, err)
	assert.Equal(t, int64(495), coins)

	_, err = svc.VerifyPayment(ctx, user.ID, good)
	assert.ErrorIs(t, err, ErrPaymentVerification)

	balance, err := svc.Balance(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(495), balance)

	var txn models.WalletTransaction
	require.NoError(t, db.Where("gateway_order_id = ?", order.OrderID).First(&txn).Error)
	assert.Equal(t, models.TransactionCompleted, txn.Status)
	assert.Equal(t, "pay_1", txn.GatewayPaymentID)
}

func TestVerifyPaymentOfAnotherUsersOrder(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	gw := &fakeGateway{secret: "k"}
	svc := NewWalletService(db, gw, 10)
	buyer := testutil.CreateUser(t, db, "buyer", false)
	thief := testutil.CreateUser(t, db, "thief", false)

	order, err := svc.CreateOrder(ctx, buyer.ID, decimal.NewFromInt(10))
	require.NoError(t, err)

	_, err = svc.VerifyPayment(ctx, thief.ID, models.VerifyPaymentRequest{
		OrderID: order.OrderID, PaymentID: "p", Signature: payment.Sign("k", order.OrderID, "p"),
	})
	assert.ErrorIs(t, err, ErrPaymentVerification)
}

func TestCreateOrderRejectsBadAmounts(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewWalletService(db, &fakeGateway{}, 10)
	user := testutil.CreateUser(t, db, "buyer", false)

	for _, amount := range []string{"0", "-5", "1.005"} {
		_, err := svc.CreateOrder(context.Background(), user.ID, decimal.RequireFromString(amount))
		assert.ErrorIs(t, err, ErrInvalidAmount, amount)
	}

	gw := &fakeGateway{}
	svc = NewWalletService(db, gw, 10)
	_, err := svc.CreateOrder(context.Background(), user.ID, decimal.RequireFromString("100.000"))
	require.NoError(t, err)
	assert.Equal(t, int64(10000), gw.amount)
}

func TestSendGift(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewWalletService(db, nil, 10)
	sender := testutil.CreateUser(t, db, "sender", false)
	receiver := testutil.CreateUser(t, db, "receiver", false)
	gift := &models.Gift{Name: "Rose", Icon: "rose", Price: 30}
	require.NoError(t, db.Create(gift).Error)

	_, err := svc.SendGift(ctx, sender.ID, receiver.ID, gift.ID)
	assert.ErrorIs(t, err, ErrInsufficientCoins)
	assert.Equal(t, int64(0), testutil.Count(t, db, &models.Message{}, ""))

	giveCoins(t, db, sender.ID, 50)
	msg, err := svc.SendGift(ctx, sender.ID, receiver.ID, gift.ID)
	require.NoError(t, err)
	require.NotNil(t, msg.GiftID)
	assert.Equal(t, gift.ID, *msg.GiftID)

	balance, err := svc.Balance(ctx, sender.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), balance)

	assert.Equal(t, int64(1), testutil.Count(t, db, &models.WalletTransaction{}, "type = ?", models.TransactionGiftSent))

	views, _, err := NewNotificationService(db).List(ctx, receiver.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "sent you a Rose", views[0].Message)
	assert.Equal(t, "sender", views[0].Username)

	_, err = svc.SendGift(ctx, sender.ID, receiver.ID, 999)
	assert.ErrorIs(t, err, ErrGiftNotFound)
}

func TestGiftsSortedByPrice(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewWalletService(db, nil, 10)
	require.NoError(t, db.Create(&[]models.Gift{{Name: "Car", Price: 500}, {Name: "Rose", Price: 10}}).Error)

	gifts, err := svc.Gifts(context.Background())
	require.NoError(t, err)
	require.Len(t, gifts, 2)
	assert.Equal(t, "Rose", gifts[0].Name)
}
