// Package testutil provides a throwaway SQLite database with the full schema.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password is the plain-text password of every user created by CreateUser
const Password = "password123"

// NewDB opens a migrated SQLite database that lives for the duration of t
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// CreateUser inserts an active account named username
func CreateUser(t *testing.T, db *gorm.DB, username string, private bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username:  username,
		Email:     username + "@example.com",
		Password:  string(hash),
		FullName:  username,
		IsPrivate: private,
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreatePost inserts a post owned by userID
func CreatePost(t *testing.T, db *gorm.DB, userID uint) *models.Post {
	t.Helper()
	post := &models.Post{UserID: userID, Content: "hello", ImageURL: "http://img/1.jpg"}
	require.NoError(t, db.Create(post).Error)
	return post
}

// CreateReel inserts a reel owned by userID
func CreateReel(t *testing.T, db *gorm.DB, userID uint) *models.Reel {
	t.Helper()
	reel := &models.Reel{UserID: userID, Caption: "clip", VideoURL: "http://vid/1.mp4"}
	require.NoError(t, db.Create(reel).Error)
	return reel
}

// Follow inserts an edge with the given status
func Follow(t *testing.T, db *gorm.DB, followerID, followingID uint, status string) {
	t.Helper()
	require.NoError(t, db.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID, Status: status}).Error)
}

// Count returns the number of rows of model matching the optional condition
func Count(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

// FailInserts makes every insert into table abort until the test ends
func FailInserts(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	trigger := "fail_insert_" + table
	require.NoError(t, db.Exec("CREATE TRIGGER "+trigger+" BEFORE INSERT ON "+table+
		" BEGIN SELECT RAISE(ABORT, '"+table+" insert rejected'); END").Error)
	t.Cleanup(func() { _ = db.Exec("DROP TRIGGER IF EXISTS " + trigger).Error })
}
