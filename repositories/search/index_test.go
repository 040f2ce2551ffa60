package search

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"opsroom/domain"

	"github.com/blugelabs/bluge"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *MessageIndex {
	t.Helper()
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	require.NoError(t, err)
	idx := NewMessageIndex(writer, slog.Default())
	t.Cleanup(func() { require.NoError(t, idx.Close()) })
	return idx
}

func indexedMessage(teamID, content string, encrypted bool) domain.Message {
	return domain.Message{
		ID:          uuid.New(),
		TeamID:      teamID,
		SenderID:    "alice",
		Content:     content,
		IsEncrypted: encrypted,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestMessageIndex_SearchIsTeamScoped(t *testing.T) {
	req := require.New(t)
	idx := newTestIndex(t)

	match := indexedMessage("alpha", "rendezvous at the north grid", false)
	req.NoError(idx.Index(match))
	req.NoError(idx.Index(indexedMessage("alpha", "supply drop confirmed", false)))
	// Same words, different team: must never surface
	req.NoError(idx.Index(indexedMessage("bravo", "rendezvous at the south grid", false)))

	hits, total, err := idx.Search(context.Background(), "alpha", "rendezvous", 10)

	req.NoError(err)
	req.Equal(uint64(1), total)
	req.Len(hits, 1)
	req.Equal(match.ID.String(), hits[0].MessageID)
	req.Equal("alpha", hits[0].TeamID)
	req.Equal("rendezvous at the north grid", hits[0].Content)
}

func TestMessageIndex_EncryptedBodiesAreNeverIndexed(t *testing.T) {
	req := require.New(t)
	idx := newTestIndex(t)

	req.NoError(idx.Index(indexedMessage("alpha", "ciphertext with rendezvous inside", true)))

	hits, total, err := idx.Search(context.Background(), "alpha", "rendezvous", 10)

	req.NoError(err)
	req.Zero(total)
	req.Empty(hits)
}

func TestMessageIndex_NoMatchesIsEmptyNotError(t *testing.T) {
	req := require.New(t)
	idx := newTestIndex(t)

	req.NoError(idx.Index(indexedMessage("alpha", "quiet night", false)))

	hits, total, err := idx.Search(context.Background(), "alpha", "explosion", 10)

	req.NoError(err)
	req.Zero(total)
	req.Empty(hits)
}
