package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CartCollection is the carts collection selected by Connect.
var CartCollection *mongo.Collection

// Connect opens the MongoDB client and selects the cart collection.
func Connect(ctx context.Context, uri, database string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	CartCollection = client.Database(database).Collection("carts")
	log.Printf("Connected to MongoDB database %s", database)
	return client, nil
}

type document struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Persistence keeps one document per key in a collection.
type Persistence struct {
	coll *mongo.Collection
}

func NewPersistence(coll *mongo.Collection) *Persistence {
	return &Persistence{coll: coll}
}

func (p *Persistence) Get(ctx context.Context, key string) (string, bool, error) {
	var doc document
	err := p.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("mongo find %s: %w", key, err)
	}
	return doc.Value, true, nil
}

func (p *Persistence) Set(ctx context.Context, key, value string) error {
	doc := document{Key: key, Value: value, UpdatedAt: time.Now()}
	opts := options.Replace().SetUpsert(true)
	if _, err := p.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("mongo upsert %s: %w", key, err)
	}
	return nil
}

func (p *Persistence) Remove(ctx context.Context, key string) error {
	if _, err := p.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("mongo delete %s: %w", key, err)
	}
	return nil
}

// EnsureIndexes adds a TTL index so abandoned carts expire.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	idx := mongo.IndexModel{
		Keys:    bson.M{"updatedAt": 1},
		Options: options.Index().SetExpireAfterSeconds(int32(ttl.Seconds())).SetName("ttl_updated_at"),
	}
	_, err := coll.Indexes().CreateOne(ctx, idx)
	return err
}
