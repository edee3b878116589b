package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnsarMahir/doc4all-dashboard/internal/domain/models"
)

// Repository defines the interface for the snapshot archive.
type Repository interface {
	SaveSnapshotRecord(ctx context.Context, record models.SnapshotRecord) error
	SummarizeSince(ctx context.Context, since time.Time) (models.OpsSummary, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB-backed snapshot archive.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "snapshot_records",
	}, nil
}

// SaveSnapshotRecord appends one generated-snapshot trace to the archive.
func (r *MongoDBRepository) SaveSnapshotRecord(ctx context.Context, record models.SnapshotRecord) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	if _, err := collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert snapshot record: %w", err)
	}
	return nil
}

// SummarizeSince tallies archived snapshots generated at or after the
// given instant: total, per-role counts and how many were degraded.
func (r *MongoDBRepository) SummarizeSince(ctx context.Context, since time.Time) (models.OpsSummary, error) {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	filter := bson.M{"generated_at": bson.M{"$gte": since}}
	cursor, err := collection.Find(ctx, filter)
	if err != nil {
		return models.OpsSummary{}, fmt.Errorf("failed to query snapshot records: %w", err)
	}
	defer cursor.Close(ctx)

	summary := models.OpsSummary{Since: since, ByRole: map[string]int{}}
	for cursor.Next(ctx) {
		var record models.SnapshotRecord
		if err := cursor.Decode(&record); err != nil {
			return models.OpsSummary{}, fmt.Errorf("failed to decode snapshot record: %w", err)
		}
		summary.Total++
		summary.ByRole[record.Role]++
		if len(record.Degraded) > 0 {
			summary.Degraded++
		}
	}
	if err := cursor.Err(); err != nil {
		return models.OpsSummary{}, fmt.Errorf("cursor error reading snapshot records: %w", err)
	}

	return summary, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
