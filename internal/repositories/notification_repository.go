package repositories

import (
	"time"

	"github.com/anonto42/snapgram/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	DeleteLikeNotification(actorID, recipientID uint, kind models.ContentKind, contentID uint) error
	MarkFollowRequestRead(actorID, recipientID uint) error
	DeleteByContent(kind models.ContentKind, contentID uint) error
	GetByRecipientID(recipientID uint, page, limit int) ([]models.NotificationView, int64, error)
	GetGrouped(recipientID uint, now time.Time) (today, yesterday, thisWeek, older []models.NotificationView, err error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(notificationID, recipientID uint) (bool, error)
	MarkAllAsRead(recipientID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// DeleteLikeNotification removes the like notification that a like created
func (r *postgresNotificationRepository) DeleteLikeNotification(actorID, recipientID uint, kind models.ContentKind, contentID uint) error {
	return r.db.Where("type = ? AND actor_id = ? AND recipient_id = ? AND content_type = ? AND content_id = ?",
		models.NotificationLike, actorID, recipientID, kind, contentID).
		Delete(&models.Notification{}).Error
}

func (r *postgresNotificationRepository) MarkFollowRequestRead(actorID, recipientID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("type = ? AND actor_id = ? AND recipient_id = ?", models.NotificationFollowRequest, actorID, recipientID).
		Update("is_read", true).Error
}

func (r *postgresNotificationRepository) DeleteByContent(kind models.ContentKind, contentID uint) error {
	return r.db.Where("content_type = ? AND content_id = ?", kind, contentID).Delete(&models.Notification{}).Error
}

// enriched joins the actor, gift and post preview for display
func (r *postgresNotificationRepository) enriched(recipientID uint) *gorm.DB {
	return r.db.Table("notifications").
		Select(`notifications.*, users.username, users.profile_photo, gifts.name AS gift_name,
			CASE WHEN notifications.content_type = 'post' THEN posts.image_url
			     WHEN notifications.content_type = 'reel' THEN reels.video_url END AS preview_url`).
		Joins("LEFT JOIN users ON users.id = notifications.actor_id").
		Joins("LEFT JOIN gifts ON gifts.id = notifications.gift_id").
		Joins("LEFT JOIN posts ON notifications.content_type = 'post' AND posts.id = notifications.content_id").
		Joins("LEFT JOIN reels ON notifications.content_type = 'reel' AND reels.id = notifications.content_id").
		Where("notifications.recipient_id = ?", recipientID).
		Order("notifications.created_at DESC, notifications.id DESC")
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, page, limit int) ([]models.NotificationView, int64, error) {
	var notifications []models.NotificationView
	var total int64

	if err := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.enriched(recipientID).Offset(offset).Limit(limit).Scan(&notifications).Error
	return notifications, total, err
}

func (r *postgresNotificationRepository) GetGrouped(recipientID uint, now time.Time) (today, yesterday, thisWeek, older []models.NotificationView, retErr error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	weekStart := todayStart.AddDate(0, 0, -7)

	if err := r.enriched(recipientID).Where("notifications.created_at >= ?", todayStart).Scan(&today).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	if err := r.enriched(recipientID).
		Where("notifications.created_at >= ? AND notifications.created_at < ?", yesterdayStart, todayStart).
		Scan(&yesterday).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	// excluding today and yesterday
	if err := r.enriched(recipientID).
		Where("notifications.created_at >= ? AND notifications.created_at < ?", weekStart, yesterdayStart).
		Scan(&thisWeek).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	if err := r.enriched(recipientID).Where("notifications.created_at < ?", weekStart).
		Limit(50).Scan(&older).Error; err != nil {
		return nil, nil, nil, nil, err
	}

	return today, yesterday, thisWeek, older, nil
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = ?", recipientID, false).Count(&count).Error
	return count, err
}

// MarkAsRead is scoped to the recipient; found is false for someone else's notification
func (r *postgresNotificationRepository) MarkAsRead(notificationID, recipientID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}
	err := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", notificationID, recipientID).
		Update("is_read", true).Error
	return err == nil, err
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) error {
	return r.db.Model(&models.Notification{}).Where("recipient_id = ? AND is_read = ?", recipientID, false).Update("is_read", true).Error
}
