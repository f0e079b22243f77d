package repositories

import (
	"github.com/anonto42/snapgram/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GiftRepository defines the interface for the gift catalog
type GiftRepository interface {
	GetGifts() ([]models.Gift, error)
	GetGiftByID(id uint) (*models.Gift, error)
	UpsertGifts(gifts []models.Gift) error
}

// PostgresGiftRepository implements GiftRepository for PostgreSQL
type PostgresGiftRepository struct {
	db *gorm.DB
}

// NewPostgresGiftRepository creates a new PostgresGiftRepository
func NewPostgresGiftRepository(db *gorm.DB) *PostgresGiftRepository {
	return &PostgresGiftRepository{db: db}
}

// GetGifts returns the catalog cheapest first
func (r *PostgresGiftRepository) GetGifts() ([]models.Gift, error) {
	var gifts []models.Gift
	err := r.db.Order("price ASC, id ASC").Find(&gifts).Error
	return gifts, err
}

func (r *PostgresGiftRepository) GetGiftByID(id uint) (*models.Gift, error) {
	var gift models.Gift
	if err := r.db.First(&gift, id).Error; err != nil {
		return nil, err
	}
	return &gift, nil
}

// UpsertGifts inserts gifts by name, refreshing icon and price of existing ones
func (r *PostgresGiftRepository) UpsertGifts(gifts []models.Gift) error {
	if len(gifts) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"icon", "price"}),
	}).Create(&gifts).Error
}
