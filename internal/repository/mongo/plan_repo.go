package mongo

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const planCollectionName = "plans"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
}

func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
	}
}

// List returns plans cheapest first, matching the pricing page order.
func (r *mongoPlanRepository) List(ctx context.Context) ([]domain.SubscriptionPlan, error) {
	return findAll[domain.SubscriptionPlan](ctx, r.collection, bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}})
}

func (r *mongoPlanRepository) GetByID(ctx context.Context, id string) (*domain.SubscriptionPlan, error) {
	return findByID[domain.SubscriptionPlan](ctx, r.collection, id)
}

func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.SubscriptionPlan) (string, error) {
	if plan.Name == "" {
		return "", errors.New("plan name is required")
	}
	plan.ID = newID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if err := insert(ctx, r.collection, plan); err != nil {
		return "", err
	}
	return plan.ID, nil
}

func (r *mongoPlanRepository) Update(ctx context.Context, plan *domain.SubscriptionPlan) error {
	if plan.ID == "" {
		return errors.New("plan ID is required for update")
	}
	plan.UpdatedAt = time.Now().UTC()
	return replaceByID(ctx, r.collection, plan.ID, plan)
}

func (r *mongoPlanRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}

// EnsurePlanIndexes indexes plan names, which revenue lookups key on. Names
// are not unique at the storage level.
func EnsurePlanIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(planCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})
	return err
}
