package dstore

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo backs the store with one collection per table.
type Mongo struct {
	db *mongo.Database
}

func NewMongo(ctx context.Context, uri, dbname string) (*Mongo, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &Mongo{db: client.Database(dbname)}, nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.db.Client().Disconnect(ctx)
}

func (m *Mongo) Get(ctx context.Context, t Table, key string, out any) error {
	err := m.db.Collection(t.Name).FindOne(ctx, bson.M{t.Key: key}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

func (m *Mongo) Put(ctx context.Context, t Table, key string, item any) error {
	opts := options.Replace().SetUpsert(true)
	_, err := m.db.Collection(t.Name).ReplaceOne(ctx, bson.M{t.Key: key}, item, opts)
	return err
}

func (m *Mongo) PutIf(ctx context.Context, t Table, key string, item any, expected int64) error {
	res, err := m.db.Collection(t.Name).ReplaceOne(ctx, bson.M{t.Key: key, "version": expected}, item)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		// distinguish a concurrent writer from a vanished item
		n, err := m.db.Collection(t.Name).CountDocuments(ctx, bson.M{t.Key: key})
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrConflict
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, t Table, key string) error {
	res, err := m.db.Collection(t.Name).DeleteOne(ctx, bson.M{t.Key: key})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) Scan(ctx context.Context, t Table, out any) error {
	cur, err := m.db.Collection(t.Name).Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, out)
}
