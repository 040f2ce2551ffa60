//go:generate go run go.uber.org/mock/mockgen -source=index.go -destination=../../mocks/mock_message_index.go -package=mocks

// Package search maintains a full-text index over plaintext messages.
// Encrypted message bodies are never indexed.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"opsroom/domain"

	"github.com/blugelabs/bluge"
)

type IMessageIndex interface {
	Index(message domain.Message) error
	Search(ctx context.Context, teamID, terms string, limit int) ([]Hit, uint64, error)
	Close() error
}

// Hit is one search result, resolved back to the message key space.
type Hit struct {
	MessageID string
	TeamID    string
	SenderID  string
	Content   string
}

type MessageIndex struct {
	mu     sync.Mutex
	writer *bluge.Writer
	log    *slog.Logger
}

func NewMessageIndex(writer *bluge.Writer, log *slog.Logger) *MessageIndex {
	return &MessageIndex{writer: writer, log: log}
}

// Index adds one message to the full-text index. Encrypted messages are
// skipped: their content field holds ciphertext and must stay opaque.
func (idx *MessageIndex) Index(message domain.Message) error {
	if message.IsEncrypted {
		return nil
	}

	doc := bluge.NewDocument(message.ID.String()).
		AddField(bluge.NewKeywordField("team_id", message.TeamID).StoreValue()).
		AddField(bluge.NewKeywordField("sender_id", message.SenderID).StoreValue()).
		AddField(bluge.NewTextField("content", message.Content).StoreValue())

	idx.mu.Lock()
	defer idx.mu.Unlock()
	if err := idx.writer.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("index message %s: %w", message.ID, err)
	}
	return nil
}

// Search runs a match query scoped to one team and returns the top hits
// with the total match count.
func (idx *MessageIndex) Search(ctx context.Context, teamID, terms string, limit int) ([]Hit, uint64, error) {
	reader, err := idx.writer.Reader()
	if err != nil {
		return nil, 0, fmt.Errorf("open index reader: %w", err)
	}
	defer func() {
		if err := reader.Close(); err != nil {
			idx.log.Warn("failed to close index reader", "error", err)
		}
	}()

	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewMatchQuery(terms).SetField("content")).
		AddMust(bluge.NewTermQuery(teamID).SetField("team_id"))

	request := bluge.NewTopNSearch(limit, query).WithStandardAggregations()
	iterator, err := reader.Search(ctx, request)
	if err != nil {
		return nil, 0, fmt.Errorf("search: %w", err)
	}

	var hits []Hit
	for {
		match, err := iterator.Next()
		if err != nil {
			return nil, 0, fmt.Errorf("iterate results: %w", err)
		}
		if match == nil {
			break
		}
		var hit Hit
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			switch field {
			case "_id":
				hit.MessageID = string(value)
			case "team_id":
				hit.TeamID = string(value)
			case "sender_id":
				hit.SenderID = string(value)
			case "content":
				hit.Content = string(value)
			}
			return true
		})
		if err != nil {
			return nil, 0, fmt.Errorf("load stored fields: %w", err)
		}
		hits = append(hits, hit)
	}
	return hits, iterator.Aggregations().Count(), nil
}

func (idx *MessageIndex) Close() error {
	return idx.writer.Close()
}
