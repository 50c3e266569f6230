package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karanvs/stockbook/internal/domain/models"
)

const (
	sessionCollection  = "sessions"
	snapshotCollection = "daily_stock_reports"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("mongodb: not found")

// MongoDBRepository persists sessions and daily stock snapshots.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

// SaveSession upserts a session document keyed by its token.
func (r *MongoDBRepository) SaveSession(ctx context.Context, session models.Session) error {
	coll := r.client.Database(r.dbName).Collection(sessionCollection)
	opts := options.Replace().SetUpsert(true)
	if _, err := coll.ReplaceOne(ctx, bson.M{"_id": session.Token}, session, opts); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// FindSession fetches a session by token.
func (r *MongoDBRepository) FindSession(ctx context.Context, token string) (*models.Session, error) {
	coll := r.client.Database(r.dbName).Collection(sessionCollection)

	var session models.Session
	err := coll.FindOne(ctx, bson.M{"_id": token}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a session by token. Deleting a missing session is
// not an error.
func (r *MongoDBRepository) DeleteSession(ctx context.Context, token string) error {
	coll := r.client.Database(r.dbName).Collection(sessionCollection)
	if _, err := coll.DeleteOne(ctx, bson.M{"_id": token}); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// SetSessionScreen updates the persisted active screen for a session.
func (r *MongoDBRepository) SetSessionScreen(ctx context.Context, token, screen string) error {
	coll := r.client.Database(r.dbName).Collection(sessionCollection)
	res, err := coll.UpdateOne(ctx, bson.M{"_id": token}, bson.M{"$set": bson.M{"active_screen": screen}})
	if err != nil {
		return fmt.Errorf("failed to update session screen: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveDailyStockReport stores a scheduled stock snapshot.
func (r *MongoDBRepository) SaveDailyStockReport(ctx context.Context, report models.DailyStockReport) error {
	coll := r.client.Database(r.dbName).Collection(snapshotCollection)
	if _, err := coll.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert daily stock report: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
