package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/nfalab/machina/pkg/automaton"
)

// documentsCollection is the Mongo collection documents live in.
const documentsCollection = "documents"

// MongoStore is a Store backed by a MongoDB collection, for deployments
// where saved automata must survive restarts and be shared across replicas.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the MongoDB deployment at uri and verifies the
// connection before returning. Documents are stored in the "documents"
// collection of database.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(documentsCollection),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, name string, spec automaton.Spec) (Document, error) {
	doc, err := newDocument(name, spec)
	if err != nil {
		return Document{}, err
	}
	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (Document, error) {
	var doc Document
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (s *MongoStore) List(ctx context.Context) ([]Document, error) {
	sortOrder := bson.D{{Key: "created_at", Value: -1}, {Key: "name", Value: 1}}
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(sortOrder))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
