package models

import "time"

// ContentKind addresses the table a like or comment points at
type ContentKind string

const (
	ContentPost ContentKind = "post"
	ContentReel ContentKind = "reel"
)

func (k ContentKind) Valid() bool {
	return k == ContentPost || k == ContentReel
}

func (k ContentKind) Table() string {
	if k == ContentReel {
		return "reels"
	}
	return "posts"
}

// Label is used in user-facing messages ("Post not found")
func (k ContentKind) Label() string {
	if k == ContentReel {
		return "Reel"
	}
	return "Post"
}

type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

type Reel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Caption   string    `json:"caption"`
	VideoURL  string    `json:"video_url"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

// ContentStats are the per-viewer counters attached to a content item
type ContentStats struct {
	LikesCount    int64 `json:"likes_count"`
	CommentsCount int64 `json:"comments_count"`
	IsLiked       bool  `json:"is_liked"`
}

type PostView struct {
	Post
	ContentStats
	Author UserCompact `json:"author"`
}

type ReelView struct {
	Reel
	ContentStats
	Author UserCompact `json:"author"`
}
