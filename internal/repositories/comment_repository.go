package repositories

import (
	"github.com/anonto42/snapgram/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetComments(kind models.ContentKind, contentID uint, limit int) ([]models.CommentView, error)
	CountsByContent(kind models.ContentKind, contentIDs []uint) (map[uint]int64, error)
	DeleteByContent(kind models.ContentKind, contentID uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetComments returns the newest comments first, joined with the author
func (r *PostgresCommentRepository) GetComments(kind models.ContentKind, contentID uint, limit int) ([]models.CommentView, error) {
	var comments []models.CommentView
	err := r.db.Table("comments").
		Select("comments.*, users.username, users.profile_photo").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.content_type = ? AND comments.content_id = ?", kind, contentID).
		Order("comments.created_at DESC, comments.id DESC").
		Limit(limit).
		Scan(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) CountsByContent(kind models.ContentKind, contentIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(contentIDs))
	if len(contentIDs) == 0 {
		return result, nil
	}
	var rows []contentCount
	err := r.db.Model(&models.Comment{}).
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

func (r *PostgresCommentRepository) DeleteByContent(kind models.ContentKind, contentID uint) error {
	return r.db.Where("content_type = ? AND content_id = ?", kind, contentID).Delete(&models.Comment{}).Error
}
