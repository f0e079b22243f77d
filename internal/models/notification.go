package models

import "time"

const (
	NotificationLike          = "like"
	NotificationComment       = "comment"
	NotificationFollow        = "follow"
	NotificationFollowRequest = "follow_request"
	NotificationGift          = "gift"
)

// Notification (PostgreSQL). Message is derived on read.
type Notification struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	Type        string      `json:"type" gorm:"size:30;index"`
	ActorID     uint        `json:"actor_id" gorm:"index"`
	RecipientID uint        `json:"recipient_id" gorm:"index"`
	ContentType ContentKind `json:"content_type,omitempty" gorm:"size:10"`
	ContentID   *uint       `json:"content_id,omitempty"`
	GiftID      *uint       `json:"gift_id,omitempty"`
	IsRead      bool        `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time   `json:"created_at" gorm:"index"`
}

// NotificationView is a notification joined with its actor, gift and preview
type NotificationView struct {
	Notification
	Username     string `json:"username"`
	ProfilePhoto string `json:"profile_photo"`
	GiftName     string `json:"gift_name,omitempty"`
	PreviewURL   string `json:"preview_url,omitempty"`
	Message      string `json:"message" gorm:"-"`
}
