package repositories

import (
	"strings"

	"github.com/anonto42/snapgram/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetActiveUserByID(id uint) (*models.User, error)
	GetUserByIDForUpdate(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	FindUserByEmail(email string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	GetUsersByIDs(ids []uint) (map[uint]models.UserCompact, error)
	GetUsers(page, limit int) ([]models.User, int64, error)
	UpdateUser(user *models.User) error
	UpdateStreak(id uint, streak int, lastPostDate string) error
	AdjustCoins(id uint, delta int64) error
	SetActive(id uint, active bool) error
	SearchUsers(query string, excludeID uint, limit int) ([]models.User, error)
	Count() (int64, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetActiveUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Where("is_active = ?", true).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByIDForUpdate locks the row until the surrounding transaction ends
func (r *PostgresUserRepository) GetUserByIDForUpdate(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail only returns active accounts
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail returns the account with email whatever its status
func (r *PostgresUserRepository) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresUserRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ? OR email = ?", username, email).Count(&count).Error
	return count > 0, err
}

// GetUsersByIDs loads compact profiles keyed by id
func (r *PostgresUserRepository) GetUsersByIDs(ids []uint) (map[uint]models.UserCompact, error) {
	result := make(map[uint]models.UserCompact, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		result[users[i].ID] = users[i].ToCompact()
	}
	return result, nil
}

func (r *PostgresUserRepository) GetUsers(page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64
	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&users).Error
	return users, total, err
}

func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *PostgresUserRepository) UpdateStreak(id uint, streak int, lastPostDate string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]any{
		"streak_count":   streak,
		"last_post_date": lastPostDate,
	}).Error
}

// AdjustCoins adds delta (possibly negative) to the balance in place
func (r *PostgresUserRepository) AdjustCoins(id uint, delta int64) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("coins", gorm.Expr("coins + ?", delta)).Error
}

func (r *PostgresUserRepository) SetActive(id uint, active bool) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchUsers matches username or full name among active users
func (r *PostgresUserRepository) SearchUsers(query string, excludeID uint, limit int) ([]models.User, error) {
	var users []models.User
	pattern := "%" + likeEscaper.Replace(query) + "%"
	err := r.db.Where(`(LOWER(username) LIKE LOWER(?) ESCAPE '\' OR LOWER(full_name) LIKE LOWER(?) ESCAPE '\') AND id <> ? AND is_active = ?`,
		pattern, pattern, excludeID, true).
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *PostgresUserRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
