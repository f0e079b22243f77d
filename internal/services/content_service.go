package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"github.com/anonto42/snapgram/backend/pkg/storage"
	"gorm.io/gorm"
)

const (
	feedLimit     = 20
	reelsLimit    = 20
	commentsLimit = 100
)

// Upload is a media file taken from a multipart request
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// CreatedContent is returned by CreatePost and CreateReel
type CreatedContent struct {
	ID          uint   `json:"id"`
	MediaURL    string `json:"media_url"`
	StreakCount int    `json:"streak_count"`
}

// ContentService handles posts, reels and comments
type ContentService struct {
	db    *gorm.DB
	media storage.Store
	now   func() time.Time
}

func NewContentService(db *gorm.DB, media storage.Store) *ContentService {
	return &ContentService{db: db, media: media, now: time.Now}
}

// CreatePost stores the image, then inserts the post and advances the
// author's streak in one transaction.
func (s *ContentService) CreatePost(ctx context.Context, userID uint, content string, image Upload) (*CreatedContent, error) {
	url, err := s.media.Save(ctx, "posts", storage.ObjectName(image.Filename), image.Body, image.ContentType)
	if err != nil {
		return nil, err
	}
	post := &models.Post{UserID: userID, Content: content, ImageURL: url}
	streak, err := s.createWithStreak(ctx, userID, func(content repositories.ContentRepository) error {
		return content.CreatePost(post)
	})
	if err != nil {
		return nil, err
	}
	return &CreatedContent{ID: post.ID, MediaURL: url, StreakCount: streak}, nil
}

func (s *ContentService) CreateReel(ctx context.Context, userID uint, caption string, video Upload) (*CreatedContent, error) {
	url, err := s.media.Save(ctx, "reels", storage.ObjectName(video.Filename), video.Body, video.ContentType)
	if err != nil {
		return nil, err
	}
	reel := &models.Reel{UserID: userID, Caption: caption, VideoURL: url}
	streak, err := s.createWithStreak(ctx, userID, func(content repositories.ContentRepository) error {
		return content.CreateReel(reel)
	})
	if err != nil {
		return nil, err
	}
	return &CreatedContent{ID: reel.ID, MediaURL: url, StreakCount: streak}, nil
}

func (s *ContentService) createWithStreak(ctx context.Context, userID uint, insert func(repositories.ContentRepository) error) (int, error) {
	var streak int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewPostgresUserRepository(tx)

		user, err := users.GetUserByIDForUpdate(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := insert(repositories.NewPostgresContentRepository(tx)); err != nil {
			return err
		}

		today := s.now()
		streak = NextStreak(user.LastPostDate, user.StreakCount, today)
		return users.UpdateStreak(userID, streak, today.Format(dateLayout))
	})
	return streak, err
}

// Feed returns the newest posts of the viewer and the accounts they follow
func (s *ContentService) Feed(ctx context.Context, viewerID uint) ([]models.PostView, error) {
	db := s.db.WithContext(ctx)
	ids, err := repositories.NewPostgresFollowRepository(db).GetFollowingIDs(viewerID)
	if err != nil {
		return nil, err
	}
	posts, err := repositories.NewPostgresContentRepository(db).GetFeed(append(ids, viewerID), feedLimit)
	if err != nil {
		return nil, err
	}
	return s.postViews(db, viewerID, posts)
}

// UserPosts lists owner's posts if viewer may see them
func (s *ContentService) UserPosts(ctx context.Context, viewerID, ownerID uint) ([]models.PostView, error) {
	db := s.db.WithContext(ctx)
	owner, err := repositories.NewPostgresUserRepository(db).GetActiveUserByID(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	ok, err := NewFollowService(s.db).CanViewContent(ctx, viewerID, owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPrivateAccount
	}
	posts, err := repositories.NewPostgresContentRepository(db).GetPostsByUserID(ownerID, 50)
	if err != nil {
		return nil, err
	}
	return s.postViews(db, viewerID, posts)
}

func (s *ContentService) GetPost(ctx context.Context, viewerID, postID uint) (*models.PostView, error) {
	db := s.db.WithContext(ctx)
	post, err := repositories.NewPostgresContentRepository(db).GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	owner, err := repositories.NewPostgresUserRepository(db).GetUserByID(post.UserID)
	if err != nil {
		return nil, err
	}
	ok, err := NewFollowService(s.db).CanViewContent(ctx, viewerID, owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPrivateAccount
	}
	views, err := s.postViews(db, viewerID, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// Reels returns a random selection of reels
func (s *ContentService) Reels(ctx context.Context, viewerID uint) ([]models.ReelView, error) {
	db := s.db.WithContext(ctx)
	reels, err := repositories.NewPostgresContentRepository(db).GetRandomReels(reelsLimit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(reels))
	authorIDs := make([]uint, len(reels))
	for i, r := range reels {
		ids[i] = r.ID
		authorIDs[i] = r.UserID
	}
	stats, authors, err := s.stats(db, viewerID, models.ContentReel, ids, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.ReelView, len(reels))
	for i, r := range reels {
		views[i] = models.ReelView{Reel: r, ContentStats: stats[r.ID], Author: authors[r.UserID]}
	}
	return views, nil
}

func (s *ContentService) postViews(db *gorm.DB, viewerID uint, posts []models.Post) ([]models.PostView, error) {
	ids := make([]uint, len(posts))
	authorIDs := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		authorIDs[i] = p.UserID
	}
	stats, authors, err := s.stats(db, viewerID, models.ContentPost, ids, authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.PostView, len(posts))
	for i, p := range posts {
		views[i] = models.PostView{Post: p, ContentStats: stats[p.ID], Author: authors[p.UserID]}
	}
	return views, nil
}

func (s *ContentService) stats(db *gorm.DB, viewerID uint, kind models.ContentKind, ids, authorIDs []uint) (map[uint]models.ContentStats, map[uint]models.UserCompact, error) {
	likes := repositories.NewPostgresLikeRepository(db)
	likeCounts, err := likes.CountsByContent(kind, ids)
	if err != nil {
		return nil, nil, err
	}
	liked, err := likes.LikedContentIDs(viewerID, kind, ids)
	if err != nil {
		return nil, nil, err
	}
	commentCounts, err := repositories.NewPostgresCommentRepository(db).CountsByContent(kind, ids)
	if err != nil {
		return nil, nil, err
	}
	authors, err := repositories.NewPostgresUserRepository(db).GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, nil, err
	}

	stats := make(map[uint]models.ContentStats, len(ids))
	for _, id := range ids {
		stats[id] = models.ContentStats{
			LikesCount:    likeCounts[id],
			CommentsCount: commentCounts[id],
			IsLiked:       liked[id],
		}
	}
	return stats, authors, nil
}

// AddComment appends a comment and notifies the content owner
func (s *ContentService) AddComment(ctx context.Context, userID uint, kind models.ContentKind, contentID uint, text string) (*models.Comment, error) {
	comment := &models.Comment{UserID: userID, ContentType: kind, ContentID: contentID, Text: text}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownerID, err := repositories.NewPostgresContentRepository(tx).GetOwnerID(kind, contentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContentNotFound
			}
			return err
		}
		if err := repositories.NewPostgresCommentRepository(tx).CreateComment(comment); err != nil {
			return err
		}
		return notify(repositories.NewPostgresNotificationRepository(tx), &models.Notification{
			Type:        models.NotificationComment,
			ActorID:     userID,
			RecipientID: ownerID,
			ContentType: kind,
			ContentID:   &contentID,
		})
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *ContentService) Comments(ctx context.Context, kind models.ContentKind, contentID uint) ([]models.CommentView, error) {
	db := s.db.WithContext(ctx)
	if _, err := repositories.NewPostgresContentRepository(db).GetOwnerID(kind, contentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	comments, err := repositories.NewPostgresCommentRepository(db).GetComments(kind, contentID, commentsLimit)
	if comments == nil {
		comments = []models.CommentView{}
	}
	return comments, err
}

// DeletePost removes a post together with its likes, comments and notifications
func (s *ContentService) DeletePost(ctx context.Context, postID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewPostgresContentRepository(tx).DeletePost(postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrContentNotFound
			}
			return err
		}
		if err := repositories.NewPostgresLikeRepository(tx).DeleteByContent(models.ContentPost, postID); err != nil {
			return err
		}
		if err := repositories.NewPostgresCommentRepository(tx).DeleteByContent(models.ContentPost, postID); err != nil {
			return err
		}
		return repositories.NewPostgresNotificationRepository(tx).DeleteByContent(models.ContentPost, postID)
	})
}

// AllPosts is the admin listing, newest first
func (s *ContentService) AllPosts(ctx context.Context, page, limit int) ([]models.PostView, int64, error) {
	db := s.db.WithContext(ctx)
	posts, total, err := repositories.NewPostgresContentRepository(db).GetAllPosts(page, limit)
	if err != nil {
		return nil, 0, err
	}
	views, err := s.postViews(db, 0, posts)
	return views, total, err
}
