package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	connectTimeout = 10 * time.Second
	pingTimeout   = 5 * time.Second
)

// ErrNoTransactions is returned by ConnectDB when the deployment is a
// standalone server. Payment approval writes two collections in one
// transaction, which MongoDB only offers on replica sets and sharded clusters.
var ErrNoTransactions = errors.New("mongodb deployment does not support transactions (standalone server, start it as a replica set)")

// ConnectDB connects to uri, pings the primary and checks that the deployment
// can run multi-document transactions. The client is disconnected again on
// any failure.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := checkDeployment(ctx, client); err != nil {
		_ = DisconnectDB(client)
		return nil, err
	}
	return client, nil
}

func checkDeployment(ctx context.Context, client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}

	var hello helloReply
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return fmt.Errorf("mongodb hello: %w", err)
	}
	if !hello.supportsTransactions() {
		return ErrNoTransactions
	}
	return nil
}

// helloReply holds the topology fields of the hello command.
type helloReply struct {
	SetName string `bson:"setName"`
	Msg     string `bson:"msg"`
}

// A replica set member reports its set name, a mongos reports "isdbgrid".
func (h helloReply) supportsTransactions() bool {
	return h.SetName != "" || h.Msg == "isdbgrid"
}

func DisconnectDB(client *mongo.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	return client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes every collection relies on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, ensure := range []func(context.Context, *mongo.Database) error{
		EnsureUserIndexes,
		EnsurePlanIndexes,
		EnsureContentIndexes,
		EnsureMeetingIndexes,
		EnsurePaymentIndexes,
	} {
		if err := ensure(ctx, db); err != nil {
			return err
		}
	}
	return nil
}
