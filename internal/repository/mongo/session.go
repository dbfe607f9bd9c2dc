package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionsCollection = "sessions"

// SessionRepository implements domain.SessionRepository on the sessions
// collection, which holds one title-override document per renamed session.
type SessionRepository struct {
	coll *mongo.Collection
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{coll: db.Database.Collection(sessionsCollection)}
}

// UpsertTitle creates or overwrites the title override for a session. The
// upsert succeeds whether or not any message with this session id exists.
func (r *SessionRepository) UpsertTitle(ctx context.Context, sessionID, title string) error {
	filter := bson.M{"session_id": sessionID}
	update := bson.M{"$set": bson.M{"session_id": sessionID, "title": title}}

	if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to upsert session title: %w", err)
	}
	return nil
}

// ListTitles loads every title override in one query, keyed by session id.
func (r *SessionRepository) ListTitles(ctx context.Context) (map[string]string, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query session titles: %w", err)
	}

	var overrides []struct {
		SessionID string `bson:"session_id"`
		Title     string `bson:"title"`
	}
	if err := cursor.All(ctx, &overrides); err != nil {
		return nil, fmt.Errorf("failed to decode session titles: %w", err)
	}

	titles := make(map[string]string, len(overrides))
	for _, o := range overrides {
		titles[o.SessionID] = o.Title
	}
	return titles, nil
}
