package mongo

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const contentCollectionName = "content"

// mongoContentRepository implements repository.ContentRepository
type mongoContentRepository struct {
	collection *mongo.Collection
}

func NewMongoContentRepository(db *mongo.Database) repository.ContentRepository {
	return &mongoContentRepository{
		collection: db.Collection(contentCollectionName),
	}
}

func (r *mongoContentRepository) List(ctx context.Context) ([]domain.FitnessContent, error) {
	return findAll[domain.FitnessContent](ctx, r.collection, bson.D{{Key: "uploadDate", Value: -1}})
}

func (r *mongoContentRepository) GetByID(ctx context.Context, id string) (*domain.FitnessContent, error) {
	return findByID[domain.FitnessContent](ctx, r.collection, id)
}

func (r *mongoContentRepository) Create(ctx context.Context, item *domain.FitnessContent) (string, error) {
	if item.Title == "" {
		return "", errors.New("content title is required")
	}
	item.ID = newID()
	if err := insert(ctx, r.collection, item); err != nil {
		return "", err
	}
	return item.ID, nil
}

func (r *mongoContentRepository) Update(ctx context.Context, item *domain.FitnessContent) error {
	if item.ID == "" {
		return errors.New("content ID is required for update")
	}
	return replaceByID(ctx, r.collection, item.ID, item)
}

func (r *mongoContentRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}

func EnsureContentIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "uploadDate", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}},
			Options: options.Index().SetName("content_text_search"),
		},
	}
	_, err := db.Collection(contentCollectionName).Indexes().CreateMany(ctx, indexes)
	return err
}
