package models

import "time"

// Comment is append-only
type Comment struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"index"`
	ContentType ContentKind `json:"content_type" gorm:"size:10;index:idx_comment_content"`
	ContentID   uint        `json:"content_id" gorm:"index:idx_comment_content"`
	Text        string      `json:"comment" gorm:"not null"`
	CreatedAt   time.Time   `json:"created_at"`
}

type CommentView struct {
	Comment
	Username     string `json:"username"`
	ProfilePhoto string `json:"profile_photo"`
}

type CreateCommentRequest struct {
	Comment string `json:"comment" validate:"required,min=1,max=500"`
}
