package mongo

import (
	"alcyxob/gym-admin/internal/repository"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// txManager runs units of work inside a MongoDB multi-document transaction.
// Transactions need a replica set or sharded cluster.
type txManager struct {
	client *mongo.Client
}

func NewTxManager(client *mongo.Client) repository.TxManager {
	return &txManager{client: client}
}

// WithinTransaction starts a session and runs fn in a transaction on it. The
// session context handed to fn carries the transaction, so repository calls
// made with it are committed or aborted together.
func (t *txManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// NewStore wires every Mongo repository against db.
func NewStore(client *mongo.Client, db *mongo.Database) *repository.Store {
	return &repository.Store{
		Users:    NewMongoUserRepository(db),
		Plans:    NewMongoPlanRepository(db),
		Content:  NewMongoContentRepository(db),
		Meetings: NewMongoMeetingRepository(db),
		Payments: NewMongoPaymentRepository(db),
		Tx:       NewTxManager(client),
	}
}
