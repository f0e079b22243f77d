package repositories

import (
	"github.com/anonto42/snapgram/backend/internal/models"
	"gorm.io/gorm"
)

// MessageRepository defines the interface for chat messages
type MessageRepository interface {
	CreateMessage(message *models.Message) error
	GetConversation(userID, otherID, afterID uint, limit int) ([]models.MessageView, error)
	GetLatestPerPartner(userID uint) ([]models.Message, error)
	Count() (int64, error)
}

// PostgresMessageRepository implements MessageRepository for PostgreSQL
type PostgresMessageRepository struct {
	db *gorm.DB
}

// NewPostgresMessageRepository creates a new PostgresMessageRepository
func NewPostgresMessageRepository(db *gorm.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) CreateMessage(message *models.Message) error {
	return r.db.Create(message).Error
}

// GetConversation returns messages between two users oldest first.
// afterID > 0 limits the result to messages newer than that id for polling.
func (r *PostgresMessageRepository) GetConversation(userID, otherID, afterID uint, limit int) ([]models.MessageView, error) {
	var messages []models.MessageView
	q := r.db.Table("messages").
		Select("messages.*, gifts.name AS gift_name, gifts.icon AS gift_icon").
		Joins("LEFT JOIN gifts ON gifts.id = messages.gift_id").
		Where("(messages.sender_id = ? AND messages.receiver_id = ?) OR (messages.sender_id = ? AND messages.receiver_id = ?)",
			userID, otherID, otherID, userID)
	if afterID > 0 {
		q = q.Where("messages.id > ?", afterID)
	}
	err := q.Order("messages.created_at ASC, messages.id ASC").Limit(limit).Scan(&messages).Error
	return messages, err
}

type directionLatest struct {
	SenderID   uint
	ReceiverID uint
	LastID     uint
}

// GetLatestPerPartner returns, newest first, the last message exchanged with
// each conversation partner.
func (r *PostgresMessageRepository) GetLatestPerPartner(userID uint) ([]models.Message, error) {
	var rows []directionLatest
	err := r.db.Model(&models.Message{}).
		Select("sender_id, receiver_id, MAX(id) AS last_id").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Group("sender_id, receiver_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// each partner shows up once per direction
	lastByPartner := make(map[uint]uint)
	for _, row := range rows {
		partner := row.ReceiverID
		if row.ReceiverID == userID {
			partner = row.SenderID
		}
		if row.LastID > lastByPartner[partner] {
			lastByPartner[partner] = row.LastID
		}
	}
	if len(lastByPartner) == 0 {
		return []models.Message{}, nil
	}
	ids := make([]uint, 0, len(lastByPartner))
	for _, id := range lastByPartner {
		ids = append(ids, id)
	}

	var messages []models.Message
	err = r.db.Where("id IN ?", ids).Order("created_at DESC, id DESC").Find(&messages).Error
	return messages, err
}

func (r *PostgresMessageRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Count(&count).Error
	return count, err
}
