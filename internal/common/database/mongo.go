// internal/common/database/mongo.go
package database

import (
	"context"
	"fmt"

	"scholarship-portal/internal/common/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoClient wraps the document store connection
type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// NewMongo creates a new client and verifies the connection
func NewMongo(ctx context.Context, cfg config.MongoConfig) (*MongoClient, error) {
	connCtx, cancel := context.WithTimeout(ctx, config.GetDuration(cfg.ConnTimeout))
	defer cancel()

	client, err := mongo.Connect(connCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect failed: %w", err)
	}

	if err := client.Ping(connCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	return &MongoClient{
		Client:   client,
		Database: client.Database(cfg.Database),
	}, nil
}

// Ping tests the connection
func (c *MongoClient) Ping(ctx context.Context) error {
	if err := c.Client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongo ping failed: %w", err)
	}
	return nil
}

// Close disconnects the client
func (c *MongoClient) Close(ctx context.Context) error {
	if c.Client != nil {
		return c.Client.Disconnect(ctx)
	}
	return nil
}

// Collection returns a handle to a named collection
func (c *MongoClient) Collection(name string) *mongo.Collection {
	return c.Database.Collection(name)
}

// EnsureApplicationIndexes creates the uniqueness backstop on applicationId.
// Identifier generation is random, so this index is the sole serialization
// point for colliding inserts.
func (c *MongoClient) EnsureApplicationIndexes(ctx context.Context, collection string) error {
	_, err := c.Database.Collection(collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "applicationId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create applicationId index: %w", err)
	}
	return nil
}
