package mongo

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const userCollectionName = "users"

// mongoUserRepository implements the repository.UserRepository interface using MongoDB.
type mongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of mongoUserRepository.
// It expects a connected *mongo.Database instance.
func NewMongoUserRepository(db *mongo.Database) repository.UserRepository {
	return &mongoUserRepository{
		collection: db.Collection(userCollectionName),
	}
}

// List returns every member, newest sign-up first.
func (r *mongoUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return findAll[domain.User](ctx, r.collection, bson.D{{Key: "joinDate", Value: -1}})
}

// GetByID retrieves a member by id.
func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return findByID[domain.User](ctx, r.collection, id)
}

// Create inserts a new member into the database.
func (r *mongoUserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.Email == "" || user.Name == "" {
		return "", errors.New("user name and email are required")
	}

	user.ID = newID()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := insert(ctx, r.collection, user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// Update replaces the stored member document.
func (r *mongoUserRepository) Update(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		return errors.New("user ID is required for update")
	}
	user.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.collection, user.ID, user)
}

func (r *mongoUserRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}

// AppendWorkoutLog pushes one log onto the member's progress history.
func (r *mongoUserRepository) AppendWorkoutLog(ctx context.Context, userID string, log domain.WorkoutLog) error {
	update := bson.M{
		"$push": bson.M{"progress": log},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureUserIndexes creates necessary indexes for the users collection.
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Active-subscription counts and revenue scans
			Keys: bson.D{{Key: "subscriptionStatus", Value: 1}, {Key: "subscriptionPlan", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "joinDate", Value: -1}},
		},
	}
	_, err := db.Collection(userCollectionName).Indexes().CreateMany(ctx, indexes)
	return err
}
