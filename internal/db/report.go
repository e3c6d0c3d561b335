package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/maintdesk/maintenance-backend/internal/models"
)

// MongoReportCollection implements ReportCollection for MongoDB.
type MongoReportCollection struct {
	Collection *mongo.Collection
}

// InsertReport inserts a report and fills in its generated ID. Reports are
// immutable once created; there is deliberately no update method.
func (c *MongoReportCollection) InsertReport(ctx context.Context, report *models.Report) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	result, err := c.Collection.InsertOne(ctx, report)
	if err != nil {
		return err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}
	return nil
}

// FindReportByID finds a report by its ID.
func (c *MongoReportCollection) FindReportByID(ctx context.Context, id string) (*models.Report, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid report ID: %w", err)
	}
	var report models.Report
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("report %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &report, nil
}

// DeleteReport deletes a report by its ID.
func (c *MongoReportCollection) DeleteReport(ctx context.Context, id string) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid report ID: %w", err)
	}
	result, err := c.Collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	return nil
}
