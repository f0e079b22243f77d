package handlers

import (
	"net/http"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// WalletHandler handles coin balance and top-ups
type WalletHandler struct {
	wallet *services.WalletService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(wallet *services.WalletService) *WalletHandler {
	return &WalletHandler{wallet: wallet}
}

// RegisterWalletRoutes registers wallet and payment routes
func (h *WalletHandler) RegisterWalletRoutes(g *echo.Group) {
	g.GET("/wallet", h.GetWallet)
	g.POST("/payments/order", h.CreateOrder)
	g.POST("/payments/verify", h.VerifyPayment)
}

// GetWallet returns the coin balance and recent transactions
func (h *WalletHandler) GetWallet(c echo.Context) error {
	ctx := c.Request().Context()
	userID := getUserIDFromContext(c)

	coins, err := h.wallet.Balance(ctx, userID)
	if err != nil {
		return serviceError(err, "Unable to load wallet")
	}
	txns, err := h.wallet.Transactions(ctx, userID)
	if err != nil {
		return serviceError(err, "Unable to load wallet")
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"coins":        coins,
		"transactions": txns,
	})
}

// CreateOrder opens a gateway order for the requested rupee amount
func (h *WalletHandler) CreateOrder(c echo.Context) error {
	var req models.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid amount")
	}

	order, err := h.wallet.CreateOrder(c.Request().Context(), getUserIDFromContext(c), req.Amount)
	if err != nil {
		return serviceError(err, "Unable to create order")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": order})
}

// VerifyPayment checks the gateway signature and credits the coins
func (h *WalletHandler) VerifyPayment(c echo.Context) error {
	var req models.VerifyPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	userID := getUserIDFromContext(c)
	credited, err := h.wallet.VerifyPayment(ctx, userID, req)
	if err != nil {
		return serviceError(err, "Payment verification failed")
	}
	balance, err := h.wallet.Balance(ctx, userID)
	if err != nil {
		return serviceError(err, "Unable to load wallet")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":     true,
		"message":     "Payment verified",
		"coins_added": credited,
		"total_coins": balance,
	})
}
