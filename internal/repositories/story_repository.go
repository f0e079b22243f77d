package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/anonto42/snapgram/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStoryNotFound covers both unknown and malformed story ids
var ErrStoryNotFound = errors.New("story not found")

// StoryRepository defines the interface for story operations
type StoryRepository interface {
	EnsureIndexes(ctx context.Context) error
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id string) (*models.Story, error)
	GetStoriesByUserIDs(ctx context.Context, userIDs []uint) ([]models.Story, error)
	MarkSeen(storyID string, userID uint) error
	GetSeenStoryIDs(userID uint, storyIDs []string) (map[string]bool, error)
}

type storyRepository struct {
	mongoCollection *mongo.Collection
	pgDB            *gorm.DB
	now             func() time.Time
}

func NewStoryRepository(mongoDB *mongo.Database, pgDB *gorm.DB) StoryRepository {
	return &storyRepository{
		mongoCollection: mongoDB.Collection("stories"),
		pgDB:            pgDB,
		now:             time.Now,
	}
}

// EnsureIndexes lets MongoDB drop expired stories on its own
func (r *storyRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.mongoCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
		{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	return err
}

func (r *storyRepository) CreateStory(ctx context.Context, story *models.Story) error {
	now := r.now()
	story.ID = primitive.NewObjectID()
	story.CreatedAt = now
	story.ExpiresAt = now.Add(models.StoryTTL)
	_, err := r.mongoCollection.InsertOne(ctx, story)
	return err
}

func (r *storyRepository) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrStoryNotFound
	}
	var story models.Story
	err = r.mongoCollection.FindOne(ctx, bson.M{"_id": objID, "expires_at": bson.M{"$gt": r.now()}}).Decode(&story)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrStoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &story, nil
}

// GetStoriesByUserIDs returns unexpired stories, newest first
func (r *storyRepository) GetStoriesByUserIDs(ctx context.Context, userIDs []uint) ([]models.Story, error) {
	if len(userIDs) == 0 {
		return []models.Story{}, nil
	}
	filter := bson.M{
		"user_id":    bson.M{"$in": userIDs},
		"expires_at": bson.M{"$gt": r.now()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.mongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stories []models.Story
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// MarkSeen is idempotent per (story, user)
func (r *storyRepository) MarkSeen(storyID string, userID uint) error {
	seen := &models.StorySeen{StoryID: storyID, UserID: userID, SeenAt: r.now()}
	return r.pgDB.Clauses(clause.OnConflict{DoNothing: true}).Create(seen).Error
}

func (r *storyRepository) GetSeenStoryIDs(userID uint, storyIDs []string) (map[string]bool, error) {
	result := make(map[string]bool)
	if len(storyIDs) == 0 {
		return result, nil
	}
	var seen []models.StorySeen
	err := r.pgDB.Where("user_id = ? AND story_id IN ?", userID, storyIDs).Find(&seen).Error
	if err != nil {
		return nil, err
	}
	for _, s := range seen {
		result[s.StoryID] = true
	}
	return result, nil
}
