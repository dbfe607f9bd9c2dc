package mongo

import "testing"

// Repository behavior against a live store (insert, sorted reads, the group
// aggregation, title upserts) is covered by integration tests that need a
// running MongoDB.

func TestMessageRepository_Append(t *testing.T) {
	t.Skip("Requires MongoDB connection - run as integration test")
}

func TestMessageRepository_GroupBySession(t *testing.T) {
	t.Skip("Requires MongoDB connection - run as integration test")
}

func TestSessionRepository_UpsertTitle(t *testing.T) {
	t.Skip("Requires MongoDB connection - run as integration test")
}
