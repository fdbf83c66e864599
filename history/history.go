// Package history records the question/answer transcript of study sessions.
package history

import (
	"context"
	"fmt"
	"time"
)

// Entry is one completed question/answer turn.
type Entry struct {
	ID             string    `json:"id" bson:"_id"`
	SessionID      string    `json:"session_id" bson:"session_id"`
	Question       string    `json:"question" bson:"question"`
	Answer         string    `json:"answer" bson:"answer"`
	RetrievalLevel string    `json:"retrieval_level" bson:"retrieval_level"`
	Quality        string    `json:"quality" bson:"quality"`
	Confidence     string    `json:"confidence" bson:"confidence"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
}

// Store persists session transcripts. Entries within a session are returned
// in append order.
type Store interface {
	Append(ctx context.Context, entry *Entry) error
	List(ctx context.Context, sessionID string) ([]*Entry, error)
	Clear(ctx context.Context, sessionID string) error
	Count(ctx context.Context, sessionID string) (int, error)
}

// Prepare fills defaults on a new entry before it is stored.
func Prepare(entry *Entry) error {
	if entry == nil {
		return fmt.Errorf("entry cannot be nil")
	}
	if entry.SessionID == "" {
		return fmt.Errorf("entry session id cannot be empty")
	}
	if entry.ID == "" {
		entry.ID = fmt.Sprintf("turn:%d", time.Now().UnixNano())
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return nil
}
