package services

import (
	"context"
	"errors"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"gorm.io/gorm"
)

// ErrNotAllowedToMessage is returned when the sender does not follow the receiver
var ErrNotAllowedToMessage = errors.New("must follow user to send a message")

const conversationLimit = 500

// ChatService is polling based: clients re-fetch the conversation with after_id
type ChatService struct {
	db *gorm.DB
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db}
}

func (s *ChatService) SendMessage(ctx context.Context, senderID, receiverID uint, body string) (*models.Message, error) {
	db := s.db.WithContext(ctx)
	if _, err := repositories.NewPostgresUserRepository(db).GetActiveUserByID(receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	following, err := repositories.NewPostgresFollowRepository(db).IsFollowing(senderID, receiverID)
	if err != nil {
		return nil, err
	}
	if !following {
		return nil, ErrNotAllowedToMessage
	}

	message := &models.Message{SenderID: senderID, ReceiverID: receiverID, Body: body}
	if err := repositories.NewPostgresMessageRepository(db).CreateMessage(message); err != nil {
		return nil, err
	}
	return message, nil
}

// Conversation returns messages oldest first, flagged with is_own_message
func (s *ChatService) Conversation(ctx context.Context, userID, otherID, afterID uint) ([]models.MessageView, error) {
	messages, err := repositories.NewPostgresMessageRepository(s.db.WithContext(ctx)).
		GetConversation(userID, otherID, afterID, conversationLimit)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.MessageView{}
	}
	for i := range messages {
		messages[i].IsOwnMessage = messages[i].SenderID == userID
	}
	return messages, nil
}

// Chats lists conversation partners with their last message, newest first
func (s *ChatService) Chats(ctx context.Context, userID uint) ([]models.ChatSummary, error) {
	db := s.db.WithContext(ctx)
	latest, err := repositories.NewPostgresMessageRepository(db).GetLatestPerPartner(userID)
	if err != nil {
		return nil, err
	}

	partnerIDs := make([]uint, len(latest))
	for i, m := range latest {
		partnerIDs[i] = partnerOf(m, userID)
	}
	partners, err := repositories.NewPostgresUserRepository(db).GetUsersByIDs(partnerIDs)
	if err != nil {
		return nil, err
	}

	chats := make([]models.ChatSummary, 0, len(latest))
	for _, m := range latest {
		partner, ok := partners[partnerOf(m, userID)]
		if !ok {
			continue
		}
		chats = append(chats, models.ChatSummary{User: partner, LastMessage: m.Body, LastMessageAt: m.CreatedAt})
	}
	return chats, nil
}

func partnerOf(m models.Message, userID uint) uint {
	if m.SenderID == userID {
		return m.ReceiverID
	}
	return m.SenderID
}
