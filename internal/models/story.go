package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoryTTL is how long a story stays visible
const StoryTTL = 24 * time.Hour

// Story is a user's 24h story stored in MongoDB
type Story struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    uint               `json:"user_id" bson:"user_id"`
	Items     []StoryItem        `json:"items" bson:"items"`
	ExpiresAt time.Time          `json:"expires_at" bson:"expires_at"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

type StoryItem struct {
	ID        string    `json:"id" bson:"id"`
	Type      string    `json:"type" bson:"type"` // image or video
	URL       string    `json:"url" bson:"url"`
	Duration  int       `json:"duration" bson:"duration"` // seconds
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// StorySeen tracks which stories a user has viewed (PostgreSQL)
type StorySeen struct {
	ID      uint      `json:"id" gorm:"primaryKey"`
	StoryID string    `json:"story_id" gorm:"size:24;index;uniqueIndex:idx_story_user_seen"`
	UserID  uint      `json:"user_id" gorm:"index;uniqueIndex:idx_story_user_seen"`
	SeenAt  time.Time `json:"seen_at"`
}

type CreateStoryRequest struct {
	MediaURL string `json:"media_url" form:"media_url"`
	Type     string `json:"type" form:"type" validate:"required,oneof=image video"`
}

// StoryView is a story with its author and the viewer's seen state
type StoryView struct {
	ID             string      `json:"id"`
	Author         UserCompact `json:"author"`
	Items          []StoryItem `json:"items"`
	HasUnseenItems bool        `json:"has_unseen_items"`
	ExpiresAt      time.Time   `json:"expires_at"`
}
