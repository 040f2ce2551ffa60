package repositories

import (
	"log/slog"
	"testing"
	"time"

	"opsroom/domain"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func storedMessage(t *testing.T, repo MessageRepository, teamID, content string, at time.Time) domain.Message {
	t.Helper()
	message := domain.Message{
		ID:        uuid.New(),
		TeamID:    teamID,
		SenderID:  "alice",
		Content:   content,
		CreatedAt: at,
	}
	require.NoError(t, repo.StoreMessage(message))
	return message
}

func TestMessageRepository_ListNewestFirst(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository(newTestDB(t), slog.Default(), nil)

	base := time.Now().UTC()
	storedMessage(t, repo, "alpha", "first", base)
	storedMessage(t, repo, "alpha", "second", base.Add(time.Second))
	storedMessage(t, repo, "alpha", "third", base.Add(2*time.Second))
	// Another team's history must never leak in
	storedMessage(t, repo, "bravo", "other", base)

	messages, _, err := repo.ListMessages("alpha", nil)

	req.NoError(err)
	req.Len(messages, 3)
	req.Equal("third", messages[0].Content)
	req.Equal("second", messages[1].Content)
	req.Equal("first", messages[2].Content)
}

func TestMessageRepository_CursorPagination(t *testing.T) {
	req := require.New(t)
	limit := 2
	repo := NewMessageRepository(newTestDB(t), slog.Default(), lo.ToPtr(limit))

	base := time.Now().UTC()
	contents := []string{"one", "two", "three", "four", "five"}
	for i, content := range contents {
		storedMessage(t, repo, "alpha", content, base.Add(time.Duration(i)*time.Second))
	}

	// First page: the two newest
	page1, cursor, err := repo.ListMessages("alpha", nil)
	req.NoError(err)
	req.Len(page1, limit)
	req.Equal("five", page1[0].Content)
	req.Equal("four", page1[1].Content)
	req.NotNil(cursor)

	// Second page resumes where the first stopped, without overlap
	page2, cursor, err := repo.ListMessages("alpha", cursor)
	req.NoError(err)
	req.Len(page2, limit)
	req.Equal("three", page2[0].Content)
	req.Equal("two", page2[1].Content)

	page3, _, err := repo.ListMessages("alpha", cursor)
	req.NoError(err)
	req.Len(page3, 1)
	req.Equal("one", page3[0].Content)
}

func TestMessageRepository_EmptyTeamHasNoCursor(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository(newTestDB(t), slog.Default(), nil)

	messages, cursor, err := repo.ListMessages("ghost-team", nil)

	req.NoError(err)
	req.Empty(messages)
	req.Nil(cursor)
}

func TestMessageRepository_SameNanosecondMessagesSurvive(t *testing.T) {
	req := require.New(t)
	repo := NewMessageRepository(newTestDB(t), slog.Default(), nil)

	// Two messages at the same instant must both persist thanks to the
	// uuid suffix in the key
	at := time.Now().UTC()
	storedMessage(t, repo, "alpha", "a", at)
	storedMessage(t, repo, "alpha", "b", at)

	messages, _, err := repo.ListMessages("alpha", nil)
	req.NoError(err)
	req.Len(messages, 2)
}
