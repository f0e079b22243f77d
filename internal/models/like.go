package models

import "time"

// Like is the engagement row; its presence is the liked state
type Like struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	UserID      uint        `json:"user_id" gorm:"uniqueIndex:idx_user_content"`
	ContentType ContentKind `json:"content_type" gorm:"size:10;uniqueIndex:idx_user_content;index:idx_like_content"`
	ContentID   uint        `json:"content_id" gorm:"uniqueIndex:idx_user_content;index:idx_like_content"`
	CreatedAt   time.Time   `json:"created_at"`
}

// LikeRequest accepts either post_id or reel_id
type LikeRequest struct {
	PostID uint `json:"post_id"`
	ReelID uint `json:"reel_id"`
}

// Target resolves the request to a content reference. ok is false when
// neither or both ids were given.
func (r LikeRequest) Target() (ContentKind, uint, bool) {
	switch {
	case r.PostID != 0 && r.ReelID == 0:
		return ContentPost, r.PostID, true
	case r.ReelID != 0 && r.PostID == 0:
		return ContentReel, r.ReelID, true
	}
	return "", 0, false
}
