package deviceRepo

import (
	"context"
	"fmt"
	"time"

	"equiptrack/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDeviceRepo implements DeviceRepository using MongoDB.
type MongoDeviceRepo struct {
	coll *mongo.Collection
}

// NewMongoDeviceRepo creates a DeviceRepository backed by the given client.
// The collection name is capitalized, unlike users/sessions; it matches the
// existing production schema and must not be changed.
func NewMongoDeviceRepo(client *mongo.Client, dbName string) DeviceRepository {
	coll := client.Database(dbName).Collection("Devices")
	repo := &MongoDeviceRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create device indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDeviceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a device by its unique ID. Returns (nil, nil) on no match.
func (r *MongoDeviceRepo) GetByID(id string) (*models.Device, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var device models.Device
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&device); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch device with id %s: %w", id, err)
	}
	return &device, nil
}

// GetAll retrieves all devices ordered by creation time descending.
func (r *MongoDeviceRepo) GetAll() ([]models.Device, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve devices: %w", err)
	}
	defer cursor.Close(ctx)

	var devices []models.Device
	for cursor.Next(ctx) {
		var d models.Device
		if err := cursor.Decode(&d); err != nil {
			return nil, fmt.Errorf("failed to decode device: %w", err)
		}
		devices = append(devices, d)
	}
	return devices, nil
}

// Create inserts a new device document.
func (r *MongoDeviceRepo) Create(device *models.Device) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	device.CreatedAt = now
	device.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, device); err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}
	return nil
}

// UpdateSetDocument applies a partial update wrapped in $set.
func (r *MongoDeviceRepo) UpdateSetDocument(id string, updateDoc bson.M) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return false, fmt.Errorf("failed to update device with id %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// Delete removes a device document by its ID.
func (r *MongoDeviceRepo) Delete(id string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete device with id %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}
