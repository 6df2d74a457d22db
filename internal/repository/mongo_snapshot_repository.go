package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ledgerly111/ledgerly111.github.io-sub000/internal/models"
)

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type snapshotDocument struct {
	Key       string        `bson:"_id"`
	State     *models.State `bson:"state"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

type MongoSnapshotRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	now        func() time.Time
}

// NewMongoSnapshotRepository connects to MongoDB and verifies the connection.
func NewMongoSnapshotRepository(ctx context.Context, cfg MongoConfig) (*MongoSnapshotRepository, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoSnapshotRepository{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		now:        time.Now,
	}, nil
}

func (r *MongoSnapshotRepository) Load(ctx context.Context, key string) (*models.State, error) {
	var doc snapshotDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load snapshot %q: %w", key, err)
	}
	if doc.State == nil {
		return models.NewState(), nil
	}
	return doc.State, nil
}

func (r *MongoSnapshotRepository) Save(ctx context.Context, key string, state *models.State) error {
	doc := snapshotDocument{
		Key:       key,
		State:     state.Persistable(),
		UpdatedAt: r.now().UTC(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

func (r *MongoSnapshotRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
