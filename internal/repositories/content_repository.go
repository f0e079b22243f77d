package repositories

import (
	"github.com/anonto42/snapgram/backend/internal/models"
	"gorm.io/gorm"
)

// ContentRepository covers posts and reels
type ContentRepository interface {
	GetOwnerID(kind models.ContentKind, id uint) (uint, error)
	CreatePost(post *models.Post) error
	CreateReel(reel *models.Reel) error
	GetPostByID(id uint) (*models.Post, error)
	GetFeed(userIDs []uint, limit int) ([]models.Post, error)
	GetPostsByUserID(userID uint, limit int) ([]models.Post, error)
	GetRandomReels(limit int) ([]models.Reel, error)
	GetAllPosts(page, limit int) ([]models.Post, int64, error)
	CountPosts() (int64, error)
	CountPostsByUserID(userID uint) (int64, error)
	DeletePost(id uint) error
}

// PostgresContentRepository implements ContentRepository for PostgreSQL
type PostgresContentRepository struct {
	db *gorm.DB
}

// NewPostgresContentRepository creates a new PostgresContentRepository
func NewPostgresContentRepository(db *gorm.DB) *PostgresContentRepository {
	return &PostgresContentRepository{db: db}
}

// GetOwnerID returns gorm.ErrRecordNotFound for a missing item
func (r *PostgresContentRepository) GetOwnerID(kind models.ContentKind, id uint) (uint, error) {
	var owners []uint
	err := r.db.Table(kind.Table()).Where("id = ?", id).Limit(1).Pluck("user_id", &owners).Error
	if err != nil {
		return 0, err
	}
	if len(owners) == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return owners[0], nil
}

func (r *PostgresContentRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

func (r *PostgresContentRepository) CreateReel(reel *models.Reel) error {
	return r.db.Create(reel).Error
}

func (r *PostgresContentRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetFeed returns the newest posts authored by any of userIDs
func (r *PostgresContentRepository) GetFeed(userIDs []uint, limit int) ([]models.Post, error) {
	var posts []models.Post
	if len(userIDs) == 0 {
		return posts, nil
	}
	err := r.db.Where("user_id IN ?", userIDs).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostgresContentRepository) GetPostsByUserID(userID uint, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Limit(limit).Find(&posts).Error
	return posts, err
}

// GetRandomReels uses RANDOM(), understood by both PostgreSQL and SQLite
func (r *PostgresContentRepository) GetRandomReels(limit int) ([]models.Reel, error) {
	var reels []models.Reel
	err := r.db.Order("RANDOM()").Limit(limit).Find(&reels).Error
	return reels, err
}

func (r *PostgresContentRepository) GetAllPosts(page, limit int) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64
	if err := r.db.Model(&models.Post{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC, id DESC").Offset((page - 1) * limit).Limit(limit).Find(&posts).Error
	return posts, total, err
}

func (r *PostgresContentRepository) CountPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *PostgresContentRepository) CountPostsByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresContentRepository) DeletePost(id uint) error {
	res := r.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
