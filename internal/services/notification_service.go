package services

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"gorm.io/gorm"
)

// ErrNotificationNotFound covers notifications addressed to someone else
var ErrNotificationNotFound = errors.New("notification not found")

// GroupedNotifications buckets notifications by age
type GroupedNotifications struct {
	Today     []models.NotificationView `json:"today"`
	Yesterday []models.NotificationView `json:"yesterday"`
	ThisWeek  []models.NotificationView `json:"thisWeek"`
	Older     []models.NotificationView `json:"older"`
}

type NotificationService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db, now: time.Now}
}

func (s *NotificationService) repo(ctx context.Context) repositories.NotificationRepository {
	return repositories.NewPostgresNotificationRepository(s.db.WithContext(ctx))
}

// List returns a page of notifications, newest first, with messages rendered
func (s *NotificationService) List(ctx context.Context, recipientID uint, page, limit int) ([]models.NotificationView, int64, error) {
	views, total, err := s.repo(ctx).GetByRecipientID(recipientID, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return WithMessages(views), total, nil
}

func (s *NotificationService) Grouped(ctx context.Context, recipientID uint) (*GroupedNotifications, error) {
	today, yesterday, thisWeek, older, err := s.repo(ctx).GetGrouped(recipientID, s.now())
	if err != nil {
		return nil, err
	}
	return &GroupedNotifications{
		Today:     WithMessages(today),
		Yesterday: WithMessages(yesterday),
		ThisWeek:  WithMessages(thisWeek),
		Older:     WithMessages(older),
	}, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	return s.repo(ctx).GetUnreadCount(recipientID)
}

func (s *NotificationService) MarkRead(ctx context.Context, recipientID, notificationID uint) error {
	found, err := s.repo(ctx).MarkAsRead(notificationID, recipientID)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) error {
	return s.repo(ctx).MarkAllAsRead(recipientID)
}
