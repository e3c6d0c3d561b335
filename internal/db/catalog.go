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

// MongoEquipmentCollection implements EquipmentCollection for MongoDB.
type MongoEquipmentCollection struct {
	Collection *mongo.Collection
}

// InsertEquipment inserts an equipment record into the collection.
func (c *MongoEquipmentCollection) InsertEquipment(ctx context.Context, equipment models.Equipment) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	equipment.CreatedAt = time.Now()
	equipment.UpdatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, equipment)
	return err
}

// FindEquipmentByID finds an equipment record by its ID.
func (c *MongoEquipmentCollection) FindEquipmentByID(ctx context.Context, id string) (*models.Equipment, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid equipment ID: %w", err)
	}
	var equipment models.Equipment
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&equipment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("equipment %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &equipment, nil
}

// MongoSparePartCollection implements SparePartCollection for MongoDB.
type MongoSparePartCollection struct {
	Collection *mongo.Collection
}

// InsertSparePart inserts a spare part record into the collection.
func (c *MongoSparePartCollection) InsertSparePart(ctx context.Context, part models.SparePart) error {
	if c.Collection == nil {
		return fmt.Errorf("mongo collection is nil")
	}
	part.CreatedAt = time.Now()
	part.UpdatedAt = time.Now()
	_, err := c.Collection.InsertOne(ctx, part)
	return err
}

// FindSparePartByID finds a spare part by its ID.
func (c *MongoSparePartCollection) FindSparePartByID(ctx context.Context, id string) (*models.SparePart, error) {
	if c.Collection == nil {
		return nil, fmt.Errorf("mongo collection is nil")
	}
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid spare part ID: %w", err)
	}
	var part models.SparePart
	err = c.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&part)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("spare part %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return &part, nil
}
