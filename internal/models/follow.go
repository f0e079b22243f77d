package models

import "time"

const (
	FollowPending  = "pending"
	FollowAccepted = "accepted"
)

// Relationship states as seen from the follower side
const (
	RelationNotFollowing = "not_following"
	RelationRequested    = "requested"
	RelationFollowing    = "following"
)

// Follow is a directed edge from follower to followee
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	Status      string    `json:"status" gorm:"size:10;not null;default:pending"`
	CreatedAt   time.Time `json:"created_at"`
}

type FollowRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

type RespondFollowRequest struct {
	UserID uint   `json:"user_id" validate:"required"`
	Action string `json:"action" validate:"required,oneof=accept decline"`
}
