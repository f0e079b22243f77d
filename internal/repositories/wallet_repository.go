package repositories

import (
	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletRepository defines the interface for coin transactions
type WalletRepository interface {
	CreateTransaction(txn *models.WalletTransaction) error
	GetPendingByOrderIDForUpdate(orderID string) (*models.WalletTransaction, error)
	MarkCompleted(id uint, paymentID string, coins int64) error
	GetByUserID(userID uint, limit int) ([]models.WalletTransaction, error)
	TotalRevenue() (decimal.Decimal, error)
}

// PostgresWalletRepository implements WalletRepository for PostgreSQL
type PostgresWalletRepository struct {
	db *gorm.DB
}

// NewPostgresWalletRepository creates a new PostgresWalletRepository
func NewPostgresWalletRepository(db *gorm.DB) *PostgresWalletRepository {
	return &PostgresWalletRepository{db: db}
}

func (r *PostgresWalletRepository) CreateTransaction(txn *models.WalletTransaction) error {
	return r.db.Create(txn).Error
}

func (r *PostgresWalletRepository) GetPendingByOrderIDForUpdate(orderID string) (*models.WalletTransaction, error) {
	var txn models.WalletTransaction
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("gateway_order_id = ? AND status = ? AND type = ?", orderID, models.TransactionPending, models.TransactionPurchase).
		First(&txn).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// MarkCompleted completes a pending purchase. It returns gorm.ErrRecordNotFound
// when the row is no longer pending.
func (r *PostgresWalletRepository) MarkCompleted(id uint, paymentID string, coins int64) error {
	res := r.db.Model(&models.WalletTransaction{}).
		Where("id = ? AND status = ?", id, models.TransactionPending).
		Updates(map[string]any{
			"status":             models.TransactionCompleted,
			"gateway_payment_id": paymentID,
			"coins":              coins,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PostgresWalletRepository) GetByUserID(userID uint, limit int) ([]models.WalletTransaction, error) {
	var txns []models.WalletTransaction
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Limit(limit).Find(&txns).Error
	return txns, err
}

// TotalRevenue sums completed purchases
func (r *PostgresWalletRepository) TotalRevenue() (decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := r.db.Model(&models.WalletTransaction{}).
		Where("type = ? AND status = ?", models.TransactionPurchase, models.TransactionCompleted).
		Pluck("amount", &amounts).Error
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.Sum(decimal.Zero, amounts...), nil
}
