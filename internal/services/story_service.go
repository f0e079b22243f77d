package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"github.com/anonto42/snapgram/backend/pkg/storage"
	"gorm.io/gorm"
)

// ErrMissingMedia is returned when a story has neither an upload nor a media URL
var ErrMissingMedia = errors.New("media is required")

const storyItemSeconds = 5

// StoryFeed is the story tray: the viewer's own stories and those of followees
type StoryFeed struct {
	CurrentUserStory *models.StoryView  `json:"currentUserStory"`
	Stories          []models.StoryView `json:"stories"`
}

type StoryService struct {
	db      *gorm.DB
	stories repositories.StoryRepository
	media   storage.Store
}

func NewStoryService(db *gorm.DB, stories repositories.StoryRepository, media storage.Store) *StoryService {
	return &StoryService{db: db, stories: stories, media: media}
}

// CreateStory stores an uploaded file, or uses mediaURL when no upload is given
func (s *StoryService) CreateStory(ctx context.Context, userID uint, mediaType, mediaURL string, upload *Upload) (*models.Story, error) {
	if upload != nil {
		url, err := s.media.Save(ctx, "stories", storage.ObjectName(upload.Filename), upload.Body, upload.ContentType)
		if err != nil {
			return nil, err
		}
		mediaURL = url
	}
	if mediaURL == "" {
		return nil, ErrMissingMedia
	}

	now := time.Now()
	story := &models.Story{
		UserID: userID,
		Items: []models.StoryItem{{
			ID:        fmt.Sprintf("item_%d", now.UnixNano()),
			Type:      mediaType,
			URL:       mediaURL,
			Duration:  storyItemSeconds,
			CreatedAt: now,
		}},
	}
	if err := s.stories.CreateStory(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

// Feed lists active stories of the viewer and of accepted followees
func (s *StoryService) Feed(ctx context.Context, viewerID uint) (*StoryFeed, error) {
	db := s.db.WithContext(ctx)
	ids, err := repositories.NewPostgresFollowRepository(db).GetFollowingIDs(viewerID)
	if err != nil {
		return nil, err
	}
	ids = append(ids, viewerID)

	stories, err := s.stories.GetStoriesByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	views, err := s.views(db, viewerID, stories)
	if err != nil {
		return nil, err
	}

	feed := &StoryFeed{Stories: make([]models.StoryView, 0, len(views))}
	for i := range views {
		if views[i].Author.ID == viewerID {
			if feed.CurrentUserStory == nil {
				feed.CurrentUserStory = &views[i]
			}
			continue
		}
		feed.Stories = append(feed.Stories, views[i])
	}
	return feed, nil
}

// GetStory returns a story visible to the viewer
func (s *StoryService) GetStory(ctx context.Context, viewerID uint, storyID string) (*models.StoryView, error) {
	story, err := s.stories.GetStoryByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	owner, err := repositories.NewPostgresUserRepository(db).GetUserByID(story.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrStoryNotFound
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
	views, err := s.views(db, viewerID, []models.Story{*story})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *StoryService) MarkSeen(ctx context.Context, viewerID uint, storyID string) error {
	if _, err := s.stories.GetStoryByID(ctx, storyID); err != nil {
		return err
	}
	return s.stories.MarkSeen(storyID, viewerID)
}

func (s *StoryService) views(db *gorm.DB, viewerID uint, stories []models.Story) ([]models.StoryView, error) {
	storyIDs := make([]string, len(stories))
	authorIDs := make([]uint, len(stories))
	for i, st := range stories {
		storyIDs[i] = st.ID.Hex()
		authorIDs[i] = st.UserID
	}
	seen, err := s.stories.GetSeenStoryIDs(viewerID, storyIDs)
	if err != nil {
		return nil, err
	}
	authors, err := repositories.NewPostgresUserRepository(db).GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.StoryView, len(stories))
	for i, st := range stories {
		views[i] = models.StoryView{
			ID:             st.ID.Hex(),
			Author:         authors[st.UserID],
			Items:          st.Items,
			HasUnseenItems: !seen[st.ID.Hex()],
			ExpiresAt:      st.ExpiresAt,
		}
	}
	return views, nil
}
