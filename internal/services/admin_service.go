package services

import (
	"context"
	"errors"

	"github.com/anonto42/snapgram/backend/internal/auth"
	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrAdminNotFound is kept apart from ErrUserNotFound for its message
var ErrAdminNotFound = errors.New("admin not found")

type AdminService struct {
	db     *gorm.DB
	tokens *auth.TokenManager
}

func NewAdminService(db *gorm.DB, tokens *auth.TokenManager) *AdminService {
	return &AdminService{db: db, tokens: tokens}
}

func (s *AdminService) Login(ctx context.Context, username, password string) (string, *models.Admin, error) {
	admin, err := repositories.NewPostgresAdminRepository(s.db.WithContext(ctx)).GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrAdminNotFound
		}
		return "", nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(admin.ID, admin.Username, auth.RoleAdmin)
	if err != nil {
		return "", nil, err
	}
	return token, admin, nil
}

// CreateAdmin is used by the migrate command to bootstrap a console account
func (s *AdminService) CreateAdmin(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return repositories.NewPostgresAdminRepository(s.db.WithContext(ctx)).
		CreateAdmin(&models.Admin{Username: username, Password: string(hash)})
}

func (s *AdminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	db := s.db.WithContext(ctx)
	users, err := repositories.NewPostgresUserRepository(db).Count()
	if err != nil {
		return nil, err
	}
	posts, err := repositories.NewPostgresContentRepository(db).CountPosts()
	if err != nil {
		return nil, err
	}
	messages, err := repositories.NewPostgresMessageRepository(db).Count()
	if err != nil {
		return nil, err
	}
	revenue, err := repositories.NewPostgresWalletRepository(db).TotalRevenue()
	if err != nil {
		return nil, err
	}
	return &models.AdminStats{
		TotalUsers:    users,
		TotalPosts:    posts,
		TotalMessages: messages,
		TotalRevenue:  revenue.StringFixed(2),
	}, nil
}

func (s *AdminService) Users(ctx context.Context, page, limit int) ([]models.User, int64, error) {
	return repositories.NewPostgresUserRepository(s.db.WithContext(ctx)).GetUsers(page, limit)
}

// ToggleUser flips is_active and returns the new value
func (s *AdminService) ToggleUser(ctx context.Context, userID uint) (bool, error) {
	var active bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewPostgresUserRepository(tx)
		user, err := users.GetUserByIDForUpdate(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		active = !user.IsActive
		return users.SetActive(userID, active)
	})
	return active, err
}
