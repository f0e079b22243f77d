package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// User represents an account (PostgreSQL)
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password     string    `json:"-"` // bcrypt hash
	FullName     string    `json:"full_name" gorm:"size:100"`
	Bio          string    `json:"bio"`
	ProfilePhoto string    `json:"profile_photo"`
	IsPrivate    bool      `json:"is_private" gorm:"default:false"`
	IsActive     bool      `json:"is_active" gorm:"default:true;index"`
	Coins        int64     `json:"coins" gorm:"default:0"`
	StreakCount  int       `json:"streak_count" gorm:"default:0"`
	LastPostDate string    `json:"last_post_date" gorm:"size:10"` // YYYY-MM-DD
	FirebaseUID  *string   `json:"-" gorm:"uniqueIndex"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserCompact is the author/actor shape embedded in other responses
type UserCompact struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	FullName     string `json:"full_name"`
	ProfilePhoto string `json:"profile_photo"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		ProfilePhoto: u.ProfilePhoto,
	}
}

// NormalizeUsername folds a username so that visually identical names collide
// on the unique index.
func NormalizeUsername(s string) string {
	return cases.Fold().String(norm.NFKC.String(strings.TrimSpace(s)))
}

type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" validate:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName  *string `json:"full_name" form:"full_name" validate:"omitempty,max=100"`
	Bio       *string `json:"bio" form:"bio" validate:"omitempty,max=500"`
	IsPrivate *bool   `json:"is_private" form:"is_private"`
}
