// server/internal/database/seeder.go
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"station-request-api-server/config"
	"station-request-api-server/internal/mockdata"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	Workflows        = "workflows"
	Materials        = "materials"
	Containers       = "containers"
	StagingAreas     = "staging_areas"
	Inventory        = "inventory"
	Requests         = "requests"
	ApprovalRequests = "approval_requests"
)

// Connect opens the client and pings it before handing out the database.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, client.Database(cfg.DBName), nil
}

// Seed loads the station reference data and initial ledgers into every
// collection that is still empty, then makes sure the id indexes exist.
// Request timestamps of the initial ledgers are relative to now.
func Seed(ctx context.Context, db *mongo.Database, now time.Time, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	seeds := []struct {
		collection string
		docs       []interface{}
	}{
		{Workflows, docs(mockdata.Workflows())},
		{Materials, docs(mockdata.Materials())},
		{Containers, docs(mockdata.Containers())},
		{StagingAreas, docs(mockdata.StagingAreas())},
		{Inventory, docs(mockdata.Inventory())},
		{Requests, docs(mockdata.Requests(now))},
		{ApprovalRequests, docs(mockdata.ApprovalRequests(now))},
	}

	for _, s := range seeds {
		coll := db.Collection(s.collection)
		count, err := coll.CountDocuments(ctx, bson.M{})
		if err != nil {
			return fmt.Errorf("failed to count %s: %w", s.collection, err)
		}
		if count > 0 {
			logger.Info("collection already seeded, skipping", "collection", s.collection, "count", count)
			continue
		}
		if _, err := coll.InsertMany(ctx, s.docs); err != nil {
			return fmt.Errorf("failed to seed %s: %w", s.collection, err)
		}
		logger.Info("collection seeded", "collection", s.collection, "count", len(s.docs))
	}

	return EnsureIndexes(ctx, db)
}

// EnsureIndexes creates the unique id indexes the ledgers rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, name := range []string{Workflows, Materials, Containers, StagingAreas, Requests, ApprovalRequests} {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("failed to create id index on %s: %w", name, err)
		}
	}
	_, err := db.Collection(Requests).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "workflowId", Value: 1}, {Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create workflow index on %s: %w", Requests, err)
	}
	return nil
}

func docs[T any](items []T) []interface{} {
	out := make([]interface{}, 0, len(items))
	for _, it := range items {
		out = append(out, it)
	}
	return out
}
