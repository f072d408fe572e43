package repository

import (
	"context"
	"fmt"

	"github.com/flowHater/menu-seeder/pkg/record"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const primaryKey = "_id"

// Repo writes seed documents into a Mongodb database
type Repo struct {
	client   *mongo.Client
	database string
}

// OptionF describes a func that will be called from the New func
type OptionF func(*Repo)

// WithClient allows caller to set a specific client which will be used to request
func WithClient(c *mongo.Client) OptionF {
	return func(r *Repo) {
		r.client = c
	}
}

// WithDatabase sets the database collections live in
func WithDatabase(db string) OptionF {
	return func(r *Repo) {
		r.database = db
	}
}

// New creates a new repository
func New(opts ...OptionF) *Repo {
	r := &Repo{}

	for _, o := range opts {
		o(r)
	}

	return r
}

// Connect opens a client on uri and returns a Repo bound to database
func Connect(ctx context.Context, uri, database string) (*Repo, error) {
	c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("Error during mongodb client's initialization: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(ctx)
		return nil, fmt.Errorf("Error during pinging %s: %w", uri, err)
	}

	return New(WithClient(c), WithDatabase(database)), nil
}

// Document turns a record into the stored document, keyed by id
func Document(id string, doc record.Record) primitive.M {
	m := primitive.M{}
	for k, v := range doc {
		m[k] = v
	}
	m[primaryKey] = id

	return m
}

// Set replaces the document id in collection, inserting it when absent
func (r Repo) Set(ctx context.Context, collection, id string, doc record.Record) error {
	_, err := r.client.Database(r.database).Collection(collection).ReplaceOne(ctx,
		primitive.M{primaryKey: id},
		Document(id, doc),
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("Error during upserting %s in %s.%s with: %w", id, r.database, collection, err)
	}

	return nil
}

// Exists tests the existence of a document by its ID in a specific collection
func (r Repo) Exists(ctx context.Context, collection, id string) (bool, error) {
	c, err := r.client.Database(r.database).Collection(collection).Find(ctx,
		primitive.M{primaryKey: id},
		options.Find().SetProjection(primitive.M{primaryKey: 1}).SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("Error during fetching %s in %s.%s with: %w", id, r.database, collection, err)
	}
	defer c.Close(ctx)

	return c.Next(ctx), nil
}

// Close disconnects the underlying client
func (r Repo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
