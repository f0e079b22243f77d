package services

import (
	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/repositories"
)

// notify writes n unless the actor would notify themselves
func notify(repo repositories.NotificationRepository, n *models.Notification) error {
	if n.ActorID == n.RecipientID {
		return nil
	}
	return repo.CreateNotification(n)
}

// NotificationMessage renders the human-readable text for a notification type
func NotificationMessage(notificationType, giftName string) string {
	switch notificationType {
	case models.NotificationLike:
		return "liked your post"
	case models.NotificationComment:
		return "commented on your post"
	case models.NotificationFollow:
		return "started following you"
	case models.NotificationFollowRequest:
		return "requested to follow you"
	case models.NotificationGift:
		return "sent you a " + giftName
	default:
		return "interacted with your content"
	}
}

// WithMessages fills the derived message of each view in place
func WithMessages(views []models.NotificationView) []models.NotificationView {
	if views == nil {
		return []models.NotificationView{}
	}
	for i := range views {
		views[i].Message = NotificationMessage(views[i].Type, views[i].GiftName)
	}
	return views
}
