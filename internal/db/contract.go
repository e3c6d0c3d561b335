package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/maintdesk/maintenance-backend/internal/models"
)

// MongoContractCollection implements ContractCollection for MongoDB.
type MongoContractCollection struct {
	Collection *mongo.Collection
}

// InsertContract inserts a contract into the collection.
func (c *MongoContractCollection) InsertContract(ctx context.Context, contract models.Contract) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	contract.CreatedAt = time.Now()
	contract.UpdatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, contract)
	return err
}

// FindContractByID finds a contract by its ID.
func (c *MongoContractCollection) FindContractByID(ctx context.Context, id string) (*models.Contract, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid contract ID: %w", err)
	}
	var contract models.Contract
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&contract)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("contract %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &contract, nil
}

// FindEvaluableContracts returns contracts whose status can still change
// automatically, i.e. Active or Pending Renewal. Cancelled and Expired are
// terminal for the evaluator.
func (c *MongoContractCollection) FindEvaluableContracts(ctx context.Context) ([]models.Contract, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	filter := bson.M{"status": bson.M{"$in": []models.ContractStatus{
		models.ContractActive,
		models.ContractPendingRenewal,
	}}}
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var contracts []models.Contract
	if err := cursor.All(ctx, &contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

// UpdateContractStatus sets the status of a contract.
func (c *MongoContractCollection) UpdateContractStatus(ctx context.Context, id string, status models.ContractStatus) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid contract ID: %w", err)
	}
	result, err := c.Collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("contract %s: %w", id, ErrNotFound)
	}
	return nil
}

// MongoHistoryCollection implements HistoryCollection for MongoDB.
type MongoHistoryCollection struct {
	Collection *mongo.Collection
}

// InsertHistory inserts a historical maintenance record.
func (c *MongoHistoryCollection) InsertHistory(ctx context.Context, record models.MaintenanceHistory) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	_, err := c.Collection.InsertOne(ctx, record)
	return err
}

// FindHistoryInDateRange returns history records whose date string falls in
// [startDate, endDate]. Dates are "YYYY-MM-DD" strings, so lexicographic
// comparison matches chronological order.
func (c *MongoHistoryCollection) FindHistoryInDateRange(ctx context.Context, startDate, endDate string) ([]models.MaintenanceHistory, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	filter := bson.M{"date": bson.M{"$gte": startDate, "$lte": endDate}}
	cursor, err := c.Collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var records []models.MaintenanceHistory
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
