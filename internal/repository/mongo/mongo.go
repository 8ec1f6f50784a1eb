// Package mongo stores the station ledgers and reference data in MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"station-request-api-server/internal/database"
	"station-request-api-server/internal/models"
	"station-request-api-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repository.Source = (*Store)(nil)

type Store struct {
	DB  *mongo.Database
	now func() time.Time
}

func New(db *mongo.Database) *Store {
	return &Store{DB: db, now: time.Now}
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", coll.Name(), err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func byID() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "id", Value: 1}})
}

func (s *Store) ListWorkflows(ctx context.Context) ([]models.Workflow, error) {
	return findAll[models.Workflow](ctx, s.DB.Collection(database.Workflows), bson.M{}, byID())
}

func (s *Store) ListMaterials(ctx context.Context) ([]models.MaterialSKU, error) {
	return findAll[models.MaterialSKU](ctx, s.DB.Collection(database.Materials), bson.M{}, byID())
}

func (s *Store) ListContainers(ctx context.Context) ([]models.Container, error) {
	return findAll[models.Container](ctx, s.DB.Collection(database.Containers), bson.M{}, byID())
}

func (s *Store) ListStagingAreas(ctx context.Context) ([]models.StagingArea, error) {
	return findAll[models.StagingArea](ctx, s.DB.Collection(database.StagingAreas), bson.M{}, byID())
}

func (s *Store) ListInventory(ctx context.Context) ([]models.InventoryRow, error) {
	return findAll[models.InventoryRow](ctx, s.DB.Collection(database.Inventory), bson.M{})
}

func (s *Store) ListRequests(ctx context.Context, workflowID string) ([]models.Request, error) {
	filter := bson.M{}
	if workflowID != "" {
		filter["workflowId"] = workflowID
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return findAll[models.Request](ctx, s.DB.Collection(database.Requests), filter, opts)
}

func (s *Store) ListApprovalRequests(ctx context.Context) ([]models.ApprovalRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requestTime", Value: -1}})
	return findAll[models.ApprovalRequest](ctx, s.DB.Collection(database.ApprovalRequests), bson.M{}, opts)
}

func (s *Store) SubmitMaterialRequest(ctx context.Context, items []models.CartItem, wf models.Workflow) (models.Request, error) {
	r, err := repository.NewMaterialRequest(items, wf, s.now())
	if err != nil {
		return models.Request{}, err
	}
	return s.insert(ctx, r)
}

func (s *Store) SubmitContainerRequest(ctx context.Context, items []models.ContainerCartItem, wf models.Workflow) (models.Request, error) {
	r, err := repository.NewContainerRequest(items, wf, s.now())
	if err != nil {
		return models.Request{}, err
	}
	return s.insert(ctx, r)
}

func (s *Store) SubmitReturnTrolleyRequest(ctx context.Context, item models.ContainerCartItem, wf models.Workflow) (models.Request, error) {
	r, err := repository.NewReturnTrolleyRequest(item, wf, s.now())
	if err != nil {
		return models.Request{}, err
	}
	return s.insert(ctx, r)
}

func (s *Store) insert(ctx context.Context, r models.Request) (models.Request, error) {
	if _, err := s.DB.Collection(database.Requests).InsertOne(ctx, r); err != nil {
		return models.Request{}, fmt.Errorf("failed to create request: %w", err)
	}
	return r, nil
}

// DecideApproval moves a pending approval request to the decided status in a
// single conditional update.
func (s *Store) DecideApproval(ctx context.Context, requestID string, d models.Decision) (models.ApprovalRequest, error) {
	status, ok := d.Status()
	if !ok {
		return models.ApprovalRequest{}, fmt.Errorf("decision %q: %w", d, models.ErrInvalidEnum)
	}

	coll := s.DB.Collection(database.ApprovalRequests)
	filter := bson.M{"id": requestID, "status": models.ApprovalPending}
	update := bson.M{"$set": bson.M{"status": status}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var decided models.ApprovalRequest
	err := coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&decided)
	if err == nil {
		return decided, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.ApprovalRequest{}, fmt.Errorf("failed to decide %s: %w", requestID, err)
	}

	count, err := coll.CountDocuments(ctx, bson.M{"id": requestID})
	if err != nil {
		return models.ApprovalRequest{}, fmt.Errorf("failed to look up %s: %w", requestID, err)
	}
	if count == 0 {
		return models.ApprovalRequest{}, fmt.Errorf("%s: %w", requestID, repository.ErrNotFound)
	}
	return models.ApprovalRequest{}, fmt.Errorf("%s: %w", requestID, repository.ErrAlreadyDecided)
}
