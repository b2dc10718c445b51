package mongoex

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/instanttexte/backend/o11y"
)

// Span starts a "db: <collection>.<op>" span that emits the db.query timer when ended.
func Span(ctx context.Context, coll *mongo.Collection, op string) (context.Context, o11y.Span) {
	return startSpan(ctx, coll.Database().Name(), coll.Name(), op)
}

// startSpan backs Span and database level commands such as ping, where the entity is
// the database itself.
func startSpan(ctx context.Context, db, entity, op string) (context.Context, o11y.Span) {
	ctx, span := o11y.StartSpan(ctx, "db: "+entity+"."+op)
	span.AddRawField("db.system", "mongo")
	span.AddRawField("db.name", db)
	span.AddRawField("db.entity", entity)
	span.AddRawField("db.query_name", op)
	span.RecordMetric(o11y.Timing("db.query", "db.entity", "db.query_name", "result"))
	return ctx, span
}
