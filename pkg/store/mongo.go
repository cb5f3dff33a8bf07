package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mindgrove/mindgrove/pkg/errors"
)

// MongoStore persists maps in a MongoDB collection, one document per map
// keyed by _id. Suited to the HTTP service where instances share state.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "mindgrove"
	}
	if cfg.Collection == "" {
		cfg.Collection = "maps"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect mongodb")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Get loads a map by ID.
func (s *MongoStore) Get(ctx context.Context, id string) (*Map, error) {
	if err := errors.ValidateMapID(id); err != nil {
		return nil, err
	}

	var m Map
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeMapNotFound, "map not found: %s", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "query map")
	}
	return &m, nil
}

// Put creates or replaces a map via upsert.
func (s *MongoStore) Put(ctx context.Context, m *Map) error {
	if err := errors.ValidateMapID(m.ID); err != nil {
		return err
	}
	if m.Root == nil {
		return errors.New(errors.ErrCodeInvalidTree, "map has no root node")
	}

	now := time.Now().UTC()
	if existing, err := s.Get(ctx, m.ID); err == nil {
		m.CreatedAt = existing.CreatedAt
	} else if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": m.ID}, m, options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store map")
	}
	return nil
}

// Delete removes a map by ID.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateMapID(id); err != nil {
		return err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete map")
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeMapNotFound, "map not found: %s", id)
	}
	return nil
}

// List returns metadata for all stored maps, sorted by most recent update.
func (s *MongoStore) List(ctx context.Context) ([]Info, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "name": 1, "updated_at": 1}).
		SetSort(bson.M{"updated_at": -1})

	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list maps")
	}
	defer cur.Close(ctx)

	var infos []Info
	if err := cur.All(ctx, &infos); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode map listing")
	}
	return infos, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
