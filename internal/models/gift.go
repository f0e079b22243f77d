package models

import "time"

// Gift is a catalog entry priced in coins
type Gift struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:50;uniqueIndex;not null" yaml:"name"`
	Icon  string `json:"icon" yaml:"icon"`
	Price int64  `json:"price" gorm:"not null" yaml:"price"`
}

// Message is a chat line; gift messages carry GiftID
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"index:idx_message_pair"`
	ReceiverID uint      `json:"receiver_id" gorm:"index:idx_message_pair"`
	Body       string    `json:"message"`
	GiftID     *uint     `json:"gift_id,omitempty"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

type MessageView struct {
	Message
	GiftName     string `json:"gift_name,omitempty"`
	GiftIcon     string `json:"gift_icon,omitempty"`
	IsOwnMessage bool   `json:"is_own_message" gorm:"-"`
}

// ChatSummary is one row of the conversation list
type ChatSummary struct {
	User          UserCompact `json:"user"`
	LastMessage   string      `json:"last_message"`
	LastMessageAt time.Time   `json:"last_message_time"`
}

type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	Message    string `json:"message" validate:"required,max=2000"`
}

type SendGiftRequest struct {
	ReceiverID uint `json:"receiver_id" validate:"required"`
	GiftID     uint `json:"gift_id" validate:"required"`
}
