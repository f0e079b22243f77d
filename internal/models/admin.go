package models

import "time"

type Admin struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:50;uniqueIndex;not null"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminStats struct {
	TotalUsers    int64  `json:"total_users"`
	TotalPosts    int64  `json:"total_posts"`
	TotalMessages int64  `json:"total_messages"`
	TotalRevenue  string `json:"total_revenue"`
}
