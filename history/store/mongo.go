package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studymate-ai/studymate/history"
)

// MongoStore persists transcripts in a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig holds MongoDB connection settings for the transcript store.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// DefaultMongoConfig returns the local-development defaults.
func DefaultMongoConfig() *MongoConfig {
	return &MongoConfig{
		URI:        "mongodb://localhost:27017",
		Database:   "studymate",
		Collection: "history",
	}
}

// NewMongoStore connects to MongoDB and prepares the transcript collection.
func NewMongoStore(config *MongoConfig) (*MongoStore, error) {
	if config == nil {
		config = DefaultMongoConfig()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	collection := client.Database(config.Database).Collection(config.Collection)
	store := &MongoStore{client: client, collection: collection}

	if err := store.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("create history indexes: %w", err)
	}
	return store, nil
}

func (s *MongoStore) createIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "session_id", Value: 1},
			{Key: "created_at", Value: 1},
		},
	}
	_, err := s.collection.Indexes().CreateOne(ctx, indexModel)
	return err
}

// Append inserts a turn document.
func (s *MongoStore) Append(ctx context.Context, entry *history.Entry) error {
	if err := history.Prepare(entry); err != nil {
		return err
	}
	if _, err := s.collection.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

// List returns the session's turns in append order.
func (s *MongoStore) List(ctx context.Context, sessionID string) ([]*history.Entry, error) {
	filter := bson.M{"session_id": sessionID}
	cursor, err := s.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list history entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*history.Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("decode history entries: %w", err)
	}
	return entries, nil
}

// Clear removes all of the session's turns.
func (s *MongoStore) Clear(ctx context.Context, sessionID string) error {
	if _, err := s.collection.DeleteMany(ctx, bson.M{"session_id": sessionID}); err != nil {
		return fmt.Errorf("clear session history: %w", err)
	}
	return nil
}

// Count returns the number of turns recorded for the session.
func (s *MongoStore) Count(ctx context.Context, sessionID string) (int, error) {
	count, err := s.collection.CountDocuments(ctx, bson.M{"session_id": sessionID})
	if err != nil {
		return 0, fmt.Errorf("count history entries: %w", err)
	}
	return int(count), nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.client.Disconnect(ctx)
}

// Ping checks the MongoDB connection.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}
