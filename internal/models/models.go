package models

// AllModels lists the PostgreSQL tables in migration order
func AllModels() []any {
	return []any{
		&User{},
		&Follow{},
		&Post{},
		&Reel{},
		&Like{},
		&Comment{},
		&Notification{},
		&Gift{},
		&Message{},
		&WalletTransaction{},
		&Admin{},
		&StorySeen{},
	}
}
