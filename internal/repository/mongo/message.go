package mongo

import (
	"context"
	"fmt"

	"github.com/aldisaputra17/chatbot-backend/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const historyCollection = "history"

// MessageRepository implements domain.MessageRepository on the append-only
// history collection.
type MessageRepository struct {
	coll *mongo.Collection
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *DB) *MessageRepository {
	return &MessageRepository{coll: db.Database.Collection(historyCollection)}
}

// Append inserts a message. Messages are never updated or deleted.
func (r *MessageRepository) Append(ctx context.Context, message *domain.ChatMessage) error {
	if message.SessionID == "" {
		return fmt.Errorf("session id is required")
	}

	if _, err := r.coll.InsertOne(ctx, message); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// ListBySession returns a session's messages ordered by timestamp ascending.
// Documents written before the attachments field existed decode with
// attachments absent.
func (r *MessageRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{"session_id": sessionID}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}

	var messages []domain.ChatMessage
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return messages, nil
}

// GroupBySession aggregates the history collection per session id: earliest
// timestamp, content of the first inserted message, newest session first.
// $first follows insertion order within each group.
func (r *MessageRepository) GroupBySession(ctx context.Context) ([]domain.SessionGroup, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$session_id"},
			{Key: "created_at", Value: bson.D{{Key: "$min", Value: "$timestamp"}}},
			{Key: "first_message", Value: bson.D{{Key: "$first", Value: "$content"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sessions: %w", err)
	}

	var groups []domain.SessionGroup
	if err := cursor.All(ctx, &groups); err != nil {
		return nil, fmt.Errorf("failed to decode session groups: %w", err)
	}
	return groups, nil
}
