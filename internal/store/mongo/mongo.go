// Package mongo implements the document store on MongoDB, the backend the
// portfolio was originally deployed against. Identifiers are ObjectID hex
// strings.
package mongo

import (
	"context"
	"fmt"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, cfg config.StoreConfig) (*Mongo, error) {
	uri := cfg.MongoURI
	if uri == "" {
		uri = "mongodb://localhost:27017/"
	}
	name := cfg.DBName
	if name == "" {
		name = "portfolio"
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		pingCtx, cancel = context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
	}
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Mongo{client: client, db: client.Database(name)}, nil
}

func (m *Mongo) ValidID(id string) bool {
	_, err := bson.ObjectIDFromHex(id)
	return err == nil
}

func (m *Mongo) InsertOne(ctx context.Context, collection string, fields map[string]any) (string, error) {
	res, err := m.db.Collection(collection).InsertOne(ctx, bson.M(fields))
	if err != nil {
		return "", err
	}
	oid, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (m *Mongo) FindByID(ctx context.Context, collection, id string) (store.Document, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return store.Document{}, store.ErrNotFound
	}

	var raw bson.M
	err = m.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return store.Document{}, store.ErrNotFound
		}
		return store.Document{}, err
	}
	return toDocument(raw), nil
}

func (m *Mongo) FindFirst(ctx context.Context, collection string) (store.Document, error) {
	var raw bson.M
	err := m.db.Collection(collection).FindOne(ctx, bson.M{}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return store.Document{}, store.ErrNotFound
		}
		return store.Document{}, err
	}
	return toDocument(raw), nil
}

func (m *Mongo) FindAll(ctx context.Context, collection string) ([]store.Document, error) {
	cur, err := m.db.Collection(collection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []store.Document{}
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		out = append(out, toDocument(raw))
	}
	return out, cur.Err()
}

func (m *Mongo) UpdateByID(ctx context.Context, collection, id string, patch store.Patch) (int64, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	if patch.IsEmpty() {
		return 0, nil
	}

	update := bson.M{}
	if len(patch.Set) > 0 {
		update["$set"] = bson.M(patch.Set)
	}
	if len(patch.Unset) > 0 {
		unset := bson.M{}
		for _, k := range patch.Unset {
			unset[k] = ""
		}
		update["$unset"] = unset
	}

	res, err := m.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (m *Mongo) DeleteByID(ctx context.Context, collection, id string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := m.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close() error {
	return m.client.Disconnect(context.Background())
}

// toDocument lifts _id out of the raw document and normalizes BSON types
// into the plain Go values the serialization layer deals in.
func toDocument(raw bson.M) store.Document {
	doc := store.Document{Fields: make(map[string]any, len(raw))}
	for k, v := range raw {
		if k == "_id" {
			if oid, ok := v.(bson.ObjectID); ok {
				doc.ID = oid.Hex()
			}
			continue
		}
		doc.Fields[k] = normalize(v)
	}
	return doc
}

func normalize(v any) any {
	switch t := v.(type) {
	case bson.DateTime:
		return t.Time().UTC()
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalize(e)
		}
		return out
	case bson.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalize(e)
		}
		return out
	case int32:
		return int64(t)
	default:
		return v
	}
}
