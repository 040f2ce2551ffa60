//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"fmt"
	"log/slog"
	"time"

	"opsroom/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

type IMessageRepository interface {
	StoreMessage(message domain.Message) error
	ListMessages(teamID string, cursor *string) ([]domain.Message, *string, error)
}

type MessageRepository struct {
	db            *badger.DB
	log           *slog.Logger
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) MessageRepository {
	return MessageRepository{db: db, log: log, limitMessages: limitMessages}
}

type messageRecord struct {
	ID          string `cbor:"1,keyasint"`
	TeamID      string `cbor:"2,keyasint"`
	MissionID   string `cbor:"3,keyasint"`
	SenderID    string `cbor:"4,keyasint"`
	Content     string `cbor:"5,keyasint"`
	IsEncrypted bool   `cbor:"6,keyasint"`
	At          int64  `cbor:"7,keyasint"`
}

// StoreMessage persists a message. The key is formatted as
// "msg:{team_id}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two
//     messages arrive at the same nanosecond.
func (m MessageRepository) StoreMessage(message domain.Message) error {
	key := fmt.Sprintf("msg:%s:%019d:%s",
		message.TeamID,
		message.CreatedAt.UnixNano(),
		message.ID,
	)
	data, err := encode(fromMessage(message))
	if err != nil {
		return err
	}
	return m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// ListMessages retrieves a team's messages most-recent-first using a
// reverse prefix scan. Thanks to the padded timestamp in the key, messages
// are naturally sorted by time. Collection stops once the configured
// limit is reached; the returned cursor resumes the scan.
func (m MessageRepository) ListMessages(teamID string, cursor *string) ([]domain.Message, *string, error) {
	var rawMessages [][]byte
	var lastKey string

	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("msg:%s:", teamID)
		prefix := []byte(prefixStr)
		prefixLen := len(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past the newest possible key, then walk backwards.
			seekKey = append(prefix, []byte("9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)

		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(rawMessages) == *m.limitMessages {
				m.log.Debug(fmt.Sprintf("Maximum of %d messages reached", *m.limitMessages))
				break
			}
			item := it.Item()
			// Memorize the cursor part of the actual key.
			lastKey = string(item.Key()[prefixLen:])
			err := item.Value(func(value []byte) error {
				rawMessages = append(rawMessages, append([]byte(nil), value...))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	messages := make([]domain.Message, 0, len(rawMessages))
	for _, raw := range rawMessages {
		var record messageRecord
		if err := decode(raw, &record); err != nil {
			return nil, nil, err
		}
		message, err := toMessage(record)
		if err != nil {
			return nil, nil, err
		}
		messages = append(messages, message)
	}
	if lastKey == "" {
		// The scan produced nothing: no more pages.
		return messages, nil, nil
	}
	return messages, lo.ToPtr(lastKey), nil
}

func fromMessage(m domain.Message) messageRecord {
	return messageRecord{
		ID:          m.ID.String(),
		TeamID:      m.TeamID,
		MissionID:   m.MissionID,
		SenderID:    m.SenderID,
		Content:     m.Content,
		IsEncrypted: m.IsEncrypted,
		At:          m.CreatedAt.UnixNano(),
	}
}

func toMessage(r messageRecord) (domain.Message, error) {
	parsedID, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{
		ID:          parsedID,
		TeamID:      r.TeamID,
		MissionID:   r.MissionID,
		SenderID:    r.SenderID,
		Content:     r.Content,
		IsEncrypted: r.IsEncrypted,
		CreatedAt:   time.Unix(0, r.At).UTC(),
	}, nil
}
