// Package testrecord writes the fixed test document used to prove the database is writable.
package testrecord

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/instanttexte/backend/mongoex"
	"github.com/instanttexte/backend/o11y"
)

const (
	// Collection holds every test record.
	Collection = "test_collection"
	// Message is stored on every test record.
	Message = "Hello from Rust backend!"
)

type Record struct {
	Message   string    `bson:"message"`
	Timestamp time.Time `bson:"timestamp"`
}

// New returns a record stamped with now, in UTC.
func New(now time.Time) Record {
	return Record{
		Message:   Message,
		Timestamp: now.UTC(),
	}
}

type Store struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewStore(db *mongo.Database) *Store {
	return &Store{
		coll: db.Collection(Collection),
		now:  time.Now,
	}
}

// Add inserts a new record and returns the id the driver assigned to it.
func (s *Store) Add(ctx context.Context) (id interface{}, err error) {
	ctx, span := mongoex.Span(ctx, s.coll, "insert")
	defer o11y.End(span, &err)

	res, err := s.coll.InsertOne(ctx, New(s.now()))
	if err != nil {
		return nil, err
	}
	span.AddField("id", res.InsertedID)
	return res.InsertedID, nil
}
