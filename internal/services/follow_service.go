package services

import (
	"context"
	"errors"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowResult describes the state a follow operation left the edge in
type FollowResult struct {
	Status  string `json:"status"` // follow_status of the requester towards the target
	Message string `json:"message"`
}

// FollowCounts are derived from accepted edges only
type FollowCounts struct {
	Followers int64 `json:"followers_count"`
	Following int64 `json:"following_count"`
}

// FollowService owns the follow edge state machine
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// RequestFollow toggles the edge requester -> target. An existing edge of any
// status is removed; otherwise a pending (private target) or accepted edge is
// created along with the matching notification.
func (s *FollowService) RequestFollow(ctx context.Context, requesterID, targetID uint) (*FollowResult, error) {
	if requesterID == targetID {
		return nil, ErrSelfFollow
	}

	var result *FollowResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewPostgresUserRepository(tx)
		follows := repositories.NewPostgresFollowRepository(tx)
		notifications := repositories.NewPostgresNotificationRepository(tx)

		target, err := users.GetActiveUserByID(targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		existing, err := follows.GetFollowForUpdate(requesterID, targetID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if existing != nil {
			if err := follows.DeleteFollowByID(existing.ID); err != nil {
				return err
			}
			result = &FollowResult{Status: models.RelationNotFollowing, Message: "Unfollowed successfully"}
			if existing.Status == models.FollowPending {
				return notifications.MarkFollowRequestRead(requesterID, targetID)
			}
			return nil
		}

		edge := &models.Follow{FollowerID: requesterID, FollowingID: targetID, Status: models.FollowAccepted}
		notificationType := models.NotificationFollow
		result = &FollowResult{Status: models.RelationFollowing, Message: "Followed successfully"}
		if target.IsPrivate {
			edge.Status = models.FollowPending
			notificationType = models.NotificationFollowRequest
			result = &FollowResult{Status: models.RelationRequested, Message: "Follow request sent"}
		}

		if err := follows.CreateFollow(edge); err != nil {
			return err
		}
		return notify(notifications, &models.Notification{
			Type:        notificationType,
			ActorID:     requesterID,
			RecipientID: targetID,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RespondToRequest accepts or declines requester's pending request to owner.
// Without a pending edge nothing changes and ErrNoPendingRequest is returned.
func (s *FollowService) RespondToRequest(ctx context.Context, ownerID, requesterID uint, action string) (string, error) {
	if action != "accept" && action != "decline" {
		return "", ErrInvalidAction
	}

	var message string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follows := repositories.NewPostgresFollowRepository(tx)
		notifications := repositories.NewPostgresNotificationRepository(tx)

		edge, err := follows.GetFollowForUpdate(requesterID, ownerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoPendingRequest
			}
			return err
		}
		if edge.Status != models.FollowPending {
			return ErrNoPendingRequest
		}

		if action == "accept" {
			if err := follows.UpdateStatus(edge.ID, models.FollowAccepted); err != nil {
				return err
			}
			if err := notify(notifications, &models.Notification{
				Type:        models.NotificationFollow,
				ActorID:     ownerID,
				RecipientID: requesterID,
			}); err != nil {
				return err
			}
			message = "Follow request accepted"
		} else {
			if err := follows.DeleteFollowByID(edge.ID); err != nil {
				return err
			}
			message = "Follow request declined"
		}

		return notifications.MarkFollowRequestRead(requesterID, ownerID)
	})
	if err != nil {
		return "", err
	}
	return message, nil
}

// Unfollow removes an accepted edge only
func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	return s.removeEdge(ctx, followerID, targetID, models.FollowAccepted, ErrNotFollowing)
}

// CancelRequest withdraws a pending request only
func (s *FollowService) CancelRequest(ctx context.Context, followerID, targetID uint) error {
	return s.removeEdge(ctx, followerID, targetID, models.FollowPending, ErrNoPendingRequest)
}

func (s *FollowService) removeEdge(ctx context.Context, followerID, targetID uint, status string, missing error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		follows := repositories.NewPostgresFollowRepository(tx)
		edge, err := follows.GetFollowForUpdate(followerID, targetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return missing
			}
			return err
		}
		if edge.Status != status {
			return missing
		}
		if err := follows.DeleteFollowByID(edge.ID); err != nil {
			return err
		}
		if status == models.FollowPending {
			return repositories.NewPostgresNotificationRepository(tx).MarkFollowRequestRead(followerID, targetID)
		}
		return nil
	})
}

// Relationship reports follow_status from viewer towards target
func (s *FollowService) Relationship(ctx context.Context, viewerID, targetID uint) (string, error) {
	statuses, err := s.Relationships(ctx, viewerID, []uint{targetID})
	if err != nil {
		return "", err
	}
	return statuses[targetID], nil
}

// Relationships reports follow_status from viewer towards each target
func (s *FollowService) Relationships(ctx context.Context, viewerID uint, targetIDs []uint) (map[uint]string, error) {
	raw, err := repositories.NewPostgresFollowRepository(s.db.WithContext(ctx)).GetStatuses(viewerID, targetIDs)
	if err != nil {
		return nil, err
	}
	result := make(map[uint]string, len(targetIDs))
	for _, id := range targetIDs {
		switch raw[id] {
		case models.FollowAccepted:
			result[id] = models.RelationFollowing
		case models.FollowPending:
			result[id] = models.RelationRequested
		default:
			result[id] = models.RelationNotFollowing
		}
	}
	return result, nil
}

func (s *FollowService) Counts(ctx context.Context, userID uint) (FollowCounts, error) {
	follows := repositories.NewPostgresFollowRepository(s.db.WithContext(ctx))
	followers, err := follows.GetFollowersCount(userID)
	if err != nil {
		return FollowCounts{}, err
	}
	following, err := follows.GetFollowingCount(userID)
	if err != nil {
		return FollowCounts{}, err
	}
	return FollowCounts{Followers: followers, Following: following}, nil
}

// CanViewContent reports whether viewerID may see owner's posts and stories
func (s *FollowService) CanViewContent(ctx context.Context, viewerID uint, owner *models.User) (bool, error) {
	if viewerID == owner.ID || !owner.IsPrivate {
		return true, nil
	}
	return repositories.NewPostgresFollowRepository(s.db.WithContext(ctx)).IsFollowing(viewerID, owner.ID)
}

func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.UserCompact, error) {
	users, err := repositories.NewPostgresFollowRepository(s.db.WithContext(ctx)).GetFollowers(userID)
	return compact(users), err
}

func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.UserCompact, error) {
	users, err := repositories.NewPostgresFollowRepository(s.db.WithContext(ctx)).GetFollowing(userID)
	return compact(users), err
}

// PendingRequests lists users waiting for userID to respond
func (s *FollowService) PendingRequests(ctx context.Context, userID uint) ([]models.UserCompact, error) {
	users, err := repositories.NewPostgresFollowRepository(s.db.WithContext(ctx)).GetPendingRequesters(userID)
	return compact(users), err
}

func compact(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, len(users))
	for i := range users {
		out[i] = users[i].ToCompact()
	}
	return out
}
