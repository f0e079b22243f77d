package repositories

import (
	"github.com/anonto42/snapgram/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	CreateLike(like *models.Like) error
	GetLikeForUpdate(userID uint, kind models.ContentKind, contentID uint) (*models.Like, error)
	DeleteLikeByID(id uint) error
	DeleteByContent(kind models.ContentKind, contentID uint) error
	HasUserLiked(userID uint, kind models.ContentKind, contentID uint) (bool, error)
	CountByContent(kind models.ContentKind, contentID uint) (int64, error)
	CountsByContent(kind models.ContentKind, contentIDs []uint) (map[uint]int64, error)
	LikedContentIDs(userID uint, kind models.ContentKind, contentIDs []uint) (map[uint]bool, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

func (r *PostgresLikeRepository) GetLikeForUpdate(userID uint, kind models.ContentKind, contentID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND content_type = ? AND content_id = ?", userID, kind, contentID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *PostgresLikeRepository) DeleteLikeByID(id uint) error {
	return r.db.Delete(&models.Like{}, id).Error
}

func (r *PostgresLikeRepository) DeleteByContent(kind models.ContentKind, contentID uint) error {
	return r.db.Where("content_type = ? AND content_id = ?", kind, contentID).Delete(&models.Like{}).Error
}

func (r *PostgresLikeRepository) HasUserLiked(userID uint, kind models.ContentKind, contentID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND content_type = ? AND content_id = ?", userID, kind, contentID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresLikeRepository) CountByContent(kind models.ContentKind, contentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("content_type = ? AND content_id = ?", kind, contentID).Count(&count).Error
	return count, err
}

type contentCount struct {
	ContentID uint
	Total     int64
}

func (r *PostgresLikeRepository) CountsByContent(kind models.ContentKind, contentIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(contentIDs))
	if len(contentIDs) == 0 {
		return result, nil
	}
	var rows []contentCount
	err := r.db.Model(&models.Like{}).
		Select("content_id, COUNT(*) AS total").
		Where("content_type = ? AND content_id IN ?", kind, contentIDs).
		Group("content_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ContentID] = row.Total
	}
	return result, nil
}

func (r *PostgresLikeRepository) LikedContentIDs(userID uint, kind models.ContentKind, contentIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool, len(contentIDs))
	if len(contentIDs) == 0 {
		return result, nil
	}
	var ids []uint
	err := r.db.Model(&models.Like{}).
		Where("user_id = ? AND content_type = ? AND content_id IN ?", userID, kind, contentIDs).
		Pluck("content_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
