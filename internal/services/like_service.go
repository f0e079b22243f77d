package services

import (
	"context"
	"errors"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"gorm.io/gorm"
)

type LikeResult struct {
	Liked      bool   `json:"liked"`
	LikesCount int64  `json:"likes_count"`
	Message    string `json:"message"`
}

// LikeService toggles engagement rows and their notifications together
type LikeService struct {
	db *gorm.DB
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{db: db}
}

// Toggle flips the like state of (user, content). Unliking also removes the
// like notification the like produced.
func (s *LikeService) Toggle(ctx context.Context, userID uint, kind models.ContentKind, contentID uint) (*LikeResult, error) {
	var result *LikeResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		content := repositories.NewPostgresContentRepository(tx)
		likes := repositories.NewPostgresLikeRepository(tx)
		notifications := repositories.NewPostgresNotificationRepository(tx)

		ownerID, err := content.GetOwnerID(kind, contentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContentNotFound
			}
			return err
		}

		existing, err := likes.GetLikeForUpdate(userID, kind, contentID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		result = &LikeResult{}
		if existing != nil {
			if err := likes.DeleteLikeByID(existing.ID); err != nil {
				return err
			}
			if err := notifications.DeleteLikeNotification(userID, ownerID, kind, contentID); err != nil {
				return err
			}
			result.Message = kind.Label() + " unliked"
		} else {
			if err := likes.CreateLike(&models.Like{UserID: userID, ContentType: kind, ContentID: contentID}); err != nil {
				return err
			}
			if err := notify(notifications, &models.Notification{
				Type:        models.NotificationLike,
				ActorID:     userID,
				RecipientID: ownerID,
				ContentType: kind,
				ContentID:   &contentID,
			}); err != nil {
				return err
			}
			result.Liked = true
			result.Message = kind.Label() + " liked"
		}

		result.LikesCount, err = likes.CountByContent(kind, contentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
