package mongo

import (
	"context"

	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// The repositories talk to Mongo through these narrow interfaces so
// query construction can be exercised against fake collections.
type (
	collection interface {
		InsertMany(ctx context.Context, docs []interface{}) (*mongodriver.InsertManyResult, error)
		Find(ctx context.Context, filter any, opts ...*options.FindOptions) (cursor, error)
		FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) singleResult
	}

	cursor interface {
		Next(ctx context.Context) bool
		Decode(val any) error
		Err() error
		Close(ctx context.Context) error
	}

	singleResult interface {
		Decode(val any) error
	}
)

type mongoCollection struct {
	coll *mongodriver.Collection
}

func wrapCollection(coll *mongodriver.Collection) collection {
	return mongoCollection{coll: coll}
}

func (c mongoCollection) InsertMany(ctx context.Context, docs []interface{}) (*mongodriver.InsertManyResult, error) {
	return c.coll.InsertMany(ctx, docs)
}

func (c mongoCollection) Find(ctx context.Context, filter any, opts ...*options.FindOptions) (cursor, error) {
	cur, err := c.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return mongoCursor{cursor: cur}, nil
}

func (c mongoCollection) FindOne(ctx context.Context, filter any, opts ...*options.FindOneOptions) singleResult {
	return c.coll.FindOne(ctx, filter, opts...)
}

type mongoCursor struct {
	cursor *mongodriver.Cursor
}

func (c mongoCursor) Next(ctx context.Context) bool { return c.cursor.Next(ctx) }
func (c mongoCursor) Decode(val any) error          { return c.cursor.Decode(val) }
func (c mongoCursor) Err() error                    { return c.cursor.Err() }
func (c mongoCursor) Close(ctx context.Context) error {
	return c.cursor.Close(ctx)
}
