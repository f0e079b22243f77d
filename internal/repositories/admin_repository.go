package repositories

import (
	"github.com/anonto42/snapgram/backend/internal/models"
	"gorm.io/gorm"
)

// AdminRepository defines the interface for console accounts
type AdminRepository interface {
	GetByUsername(username string) (*models.Admin, error)
	CreateAdmin(admin *models.Admin) error
}

// PostgresAdminRepository implements AdminRepository for PostgreSQL
type PostgresAdminRepository struct {
	db *gorm.DB
}

// NewPostgresAdminRepository creates a new PostgresAdminRepository
func NewPostgresAdminRepository(db *gorm.DB) *PostgresAdminRepository {
	return &PostgresAdminRepository{db: db}
}

func (r *PostgresAdminRepository) GetByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *PostgresAdminRepository) CreateAdmin(admin *models.Admin) error {
	return r.db.Create(admin).Error
}
