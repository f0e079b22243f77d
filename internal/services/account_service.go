package services

import (
	"context"
	"errors"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/anonto42/snapgram/backend/internal/auth"
	"github.com/anonto42/snapgram/backend/internal/models"
	"github.com/anonto42/snapgram/backend/internal/repositories"
	"github.com/anonto42/snapgram/backend/pkg/storage"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const searchLimit = 20

// IDTokenVerifier is satisfied by the Firebase auth client
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// Session is returned by every successful login
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Profile is a user with counters and, for other users, the viewer's follow state
type Profile struct {
	*models.User
	PostsCount     int64  `json:"posts_count"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
	FollowStatus   string `json:"follow_status,omitempty"`
}

// SearchResult is a user row in search output
type SearchResult struct {
	models.UserCompact
	IsPrivate    bool   `json:"is_private"`
	FollowStatus string `json:"follow_status"`
}

// AccountService handles registration, login and profiles
type AccountService struct {
	db       *gorm.DB
	tokens   *auth.TokenManager
	firebase IDTokenVerifier
	media    storage.Store
}

func NewAccountService(db *gorm.DB, tokens *auth.TokenManager, firebase IDTokenVerifier, media storage.Store) *AccountService {
	return &AccountService{db: db, tokens: tokens, firebase: firebase, media: media}
}

func (s *AccountService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	users := repositories.NewPostgresUserRepository(s.db.WithContext(ctx))

	username := models.NormalizeUsername(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := users.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		FullName: strings.TrimSpace(req.FullName),
		IsActive: true,
	}
	if err := users.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

// Login checks an email/password pair of an active account
func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	users := repositories.NewPostgresUserRepository(s.db.WithContext(ctx))
	user, err := users.GetUserByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.session(user)
}

// FirebaseLogin exchanges a Firebase ID token for a local session, linking or
// creating the account by email.
func (s *AccountService) FirebaseLogin(ctx context.Context, idToken string) (*Session, error) {
	if s.firebase == nil {
		return nil, ErrFederatedUnavailable
	}
	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}
	email, _ := token.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, auth.ErrInvalidToken
	}
	name, _ := token.Claims["name"].(string)
	uid := token.UID

	var user *models.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repositories.NewPostgresUserRepository(tx)

		found, err := users.GetUserByFirebaseUID(uid)
		if err == nil {
			user = found
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		found, err = users.FindUserByEmail(email)
		switch {
		case err == nil && !found.IsActive:
			user = found
			return nil
		case err == nil:
			found.FirebaseUID = &uid
			user = found
			return users.UpdateUser(found)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		user = &models.User{
			Username:    models.NormalizeUsername(strings.SplitN(email, "@", 2)[0] + "_" + uid[:min(6, len(uid))]),
			Email:       email,
			FullName:    name,
			FirebaseUID: &uid,
			IsActive:    true,
		}
		return users.CreateUser(user)
	})
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserNotFound
	}
	return s.session(user)
}

func (s *AccountService) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Username, auth.RoleUser)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: user}, nil
}

func (s *AccountService) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := repositories.NewPostgresUserRepository(s.db.WithContext(ctx)).GetActiveUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Profile builds userID's profile as seen by viewerID
func (s *AccountService) Profile(ctx context.Context, viewerID, userID uint) (*Profile, error) {
	db := s.db.WithContext(ctx)
	user, err := repositories.NewPostgresUserRepository(db).GetActiveUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	follows := NewFollowService(s.db)
	counts, err := follows.Counts(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := repositories.NewPostgresContentRepository(db).CountPostsByUserID(userID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{
		User:           user,
		PostsCount:     posts,
		FollowersCount: counts.Followers,
		FollowingCount: counts.Following,
	}
	if viewerID != userID {
		profile.FollowStatus, err = follows.Relationship(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
	}
	return profile, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, req models.UpdateProfileRequest) (*models.User, error) {
	users := repositories.NewPostgresUserRepository(s.db.WithContext(ctx))
	user, err := users.GetActiveUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.IsPrivate != nil {
		user.IsPrivate = *req.IsPrivate
	}
	if err := users.UpdateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) UpdatePhoto(ctx context.Context, userID uint, photo Upload) (string, error) {
	url, err := s.media.Save(ctx, "profiles", storage.ObjectName(photo.Filename), photo.Body, photo.ContentType)
	if err != nil {
		return "", err
	}
	err = s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Update("profile_photo", url).Error
	if err != nil {
		return "", err
	}
	return url, nil
}

// Search finds active users other than the viewer
func (s *AccountService) Search(ctx context.Context, viewerID uint, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}, nil
	}
	users, err := repositories.NewPostgresUserRepository(s.db.WithContext(ctx)).SearchUsers(query, viewerID, searchLimit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	statuses, err := NewFollowService(s.db).Relationships(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, len(users))
	for i := range users {
		results[i] = SearchResult{
			UserCompact:  users[i].ToCompact(),
			IsPrivate:    users[i].IsPrivate,
			FollowStatus: statuses[users[i].ID],
		}
	}
	return results, nil
}
