package mongo

import (
	"alcyxob/gym-admin/internal/domain"
	"alcyxob/gym-admin/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const paymentCollectionName = "payments"

// mongoPaymentRepository implements repository.PaymentRepository
type mongoPaymentRepository struct {
	collection *mongo.Collection
}

func NewMongoPaymentRepository(db *mongo.Database) repository.PaymentRepository {
	return &mongoPaymentRepository{
		collection: db.Collection(paymentCollectionName),
	}
}

// List returns requests newest first. The operator ordering (pending first)
// is applied by the service.
func (r *mongoPaymentRepository) List(ctx context.Context) ([]domain.PaymentRequest, error) {
	return findAll[domain.PaymentRequest](ctx, r.collection, bson.D{{Key: "date", Value: -1}})
}

func (r *mongoPaymentRepository) GetByID(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	return findByID[domain.PaymentRequest](ctx, r.collection, id)
}

func (r *mongoPaymentRepository) Create(ctx context.Context, payment *domain.PaymentRequest) (string, error) {
	if payment.UserID == "" || payment.PlanName == "" {
		return "", errors.New("payment user ID and plan name are required")
	}
	payment.ID = newID()
	if err := insert(ctx, r.collection, payment); err != nil {
		return "", err
	}
	return payment.ID, nil
}

func (r *mongoPaymentRepository) Update(ctx context.Context, payment *domain.PaymentRequest) error {
	if payment.ID == "" {
		return errors.New("payment ID is required for update")
	}
	return replaceByID(ctx, r.collection, payment.ID, payment)
}

func (r *mongoPaymentRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.collection, id)
}

func EnsurePaymentIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			// Review queue: pending first, newest first
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "date", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
	}
	_, err := db.Collection(paymentCollectionName).Indexes().CreateMany(ctx, indexes)
	return err
}
