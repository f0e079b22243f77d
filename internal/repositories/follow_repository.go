package repositories

import (
	"github.com/anonto42/snapgram/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow edge operations
type FollowRepository interface {
	CreateFollow(follow *models.Follow) error
	GetFollow(followerID, followingID uint) (*models.Follow, error)
	GetFollowForUpdate(followerID, followingID uint) (*models.Follow, error)
	UpdateStatus(id uint, status string) error
	DeleteFollowByID(id uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	GetStatuses(followerID uint, targetIDs []uint) (map[uint]string, error)
	GetFollowers(userID uint) ([]models.User, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetPendingRequesters(userID uint) ([]models.User, error)
	GetFollowersCount(userID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
	GetFollowingIDs(userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(follow *models.Follow) error {
	return r.db.Create(follow).Error
}

func (r *PostgresFollowRepository) GetFollow(followerID, followingID uint) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).First(&follow).Error
	if err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *PostgresFollowRepository) GetFollowForUpdate(followerID, followingID uint) (*models.Follow, error) {
	var follow models.Follow
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&follow).Error
	if err != nil {
		return nil, err
	}
	return &follow, nil
}

func (r *PostgresFollowRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Follow{}).Where("id = ?", id).Update("status", status).Error
}

func (r *PostgresFollowRepository) DeleteFollowByID(id uint) error {
	return r.db.Delete(&models.Follow{}, id).Error
}

// IsFollowing reports an accepted edge only
func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ? AND status = ?", followerID, followingID, models.FollowAccepted).
		Count(&count).Error
	return count > 0, err
}

// GetStatuses returns the edge status from followerID to each target that has one
func (r *PostgresFollowRepository) GetStatuses(followerID uint, targetIDs []uint) (map[uint]string, error) {
	result := make(map[uint]string, len(targetIDs))
	if len(targetIDs) == 0 {
		return result, nil
	}
	var follows []models.Follow
	err := r.db.Where("follower_id = ? AND following_id IN ?", followerID, targetIDs).Find(&follows).Error
	if err != nil {
		return nil, err
	}
	for _, f := range follows {
		result[f.FollowingID] = f.Status
	}
	return result, nil
}

func (r *PostgresFollowRepository) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").Where("following_id = ? AND status = ?", userID, models.FollowAccepted),
	).Order("username ASC").Find(&users).Error
	return users, err
}

func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("following_id").Where("follower_id = ? AND status = ?", userID, models.FollowAccepted),
	).Order("username ASC").Find(&users).Error
	return users, err
}

// GetPendingRequesters lists users waiting for userID to respond
func (r *PostgresFollowRepository) GetPendingRequesters(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").Where("following_id = ? AND status = ?", userID, models.FollowPending),
	).Find(&users).Error
	return users, err
}

func (r *PostgresFollowRepository) GetFollowersCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ? AND status = ?", userID, models.FollowAccepted).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ? AND status = ?", userID, models.FollowAccepted).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND status = ?", userID, models.FollowAccepted).
		Pluck("following_id", &ids).Error
	return ids, err
}
