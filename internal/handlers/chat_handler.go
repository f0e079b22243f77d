package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ChatHandler serves direct messages and gifts sent in chat
type ChatHandler struct {
	chat   *services.ChatService
	wallet *services.WalletService
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(chat *services.ChatService, wallet *services.WalletService) *ChatHandler {
	return &ChatHandler{chat: chat, wallet: wallet}
}

// RegisterChatRoutes registers chat and gift routes
func (h *ChatHandler) RegisterChatRoutes(g *echo.Group) {
	g.GET("/chats", h.GetChats)
	g.GET("/messages/:userId", h.GetConversation)
	g.POST("/messages", h.SendMessage)
	g.GET("/gifts", h.GetGifts)
	g.POST("/gifts/send", h.SendGift)
}

// GetChats lists conversation partners with the latest message
func (h *ChatHandler) GetChats(c echo.Context) error {
	chats, err := h.chat.Chats(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return serviceError(err, "Unable to load chats")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "chats": chats})
}

// GetConversation returns messages with one user. after_id limits the result
// to messages newer than the last one the client has.
func (h *ChatHandler) GetConversation(c echo.Context) error {
	otherID, err := parseIDParam(c, "userId", "Invalid user ID")
	if err != nil {
		return err
	}
	var afterID uint
	if raw := c.QueryParam("after_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid after_id")
		}
		afterID = uint(id)
	}

	messages, err := h.chat.Conversation(c.Request().Context(), getUserIDFromContext(c), otherID, afterID)
	if err != nil {
		return serviceError(err, "Unable to load messages")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "messages": messages})
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req models.SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := h.chat.SendMessage(c.Request().Context(), getUserIDFromContext(c), req.ReceiverID, req.Message)
	if err != nil {
		return serviceError(err, "Unable to send message")
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "message": "Message sent", "data": message})
}

// GetGifts returns the gift catalog, cheapest first
func (h *ChatHandler) GetGifts(c echo.Context) error {
	gifts, err := h.wallet.Gifts(c.Request().Context())
	if err != nil {
		return serviceError(err, "Unable to load gifts")
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "gifts": gifts})
}

// SendGift spends the caller's coins on a gift delivered as a chat message
func (h *ChatHandler) SendGift(c echo.Context) error {
	var req models.SendGiftRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	userID := getUserIDFromContext(c)
	message, err := h.wallet.SendGift(ctx, userID, req.ReceiverID, req.GiftID)
	if err != nil {
		return serviceError(err, "Unable to send gift")
	}
	balance, err := h.wallet.Balance(ctx, userID)
	if err != nil {
		return serviceError(err, "Unable to send gift")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":   true,
		"message":   "Gift sent",
		"data":      message,
		"new_coins": balance,
	})
}
