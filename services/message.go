package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"opsroom/domain"
	"opsroom/domain/event"
	"opsroom/envelope"
	"opsroom/errors"
	"opsroom/repositories"
	"opsroom/repositories/search"

	"github.com/google/uuid"
)

type SendMessageCommand struct {
	TeamID    string
	MissionID string
	SenderID  string
	Content   string
	Encrypted bool
}

// SentMessage is the sender's view of a sent message. Key is the one-time
// encryption key, present only when the message was encrypted. It is never
// broadcast; other clients must obtain it through a side channel.
type SentMessage struct {
	Message domain.Message
	Key     string
}

type IMessageService interface {
	Send(ctx context.Context, cmd SendMessageCommand) (SentMessage, error)
	List(ctx context.Context, userID, teamID string, cursor *string) ([]domain.Message, *string, error)
	Search(ctx context.Context, userID, teamID, terms string, limit int) ([]search.Hit, uint64, error)
}

type MessageService struct {
	log       *slog.Logger
	authority IMembershipAuthority
	cipher    *envelope.Cipher
	messages  repositories.IMessageRepository
	index     search.IMessageIndex
	fanout    INotificationFanout
	broadcast Broadcaster
}

func NewMessageService(log *slog.Logger, authority IMembershipAuthority,
	cipher *envelope.Cipher, messages repositories.IMessageRepository,
	index search.IMessageIndex, fanout INotificationFanout,
	broadcast Broadcaster) *MessageService {
	return &MessageService{
		log:       log,
		authority: authority,
		cipher:    cipher,
		messages:  messages,
		index:     index,
		fanout:    fanout,
		broadcast: broadcast,
	}
}

// Send runs the full send-message pipeline: authorize, encrypt when asked,
// persist, notify the rest of the team, broadcast to the room. Any step
// failing short-circuits the remaining ones; fan-out partial failures are
// reported but do not stop the broadcast, since the row is already durable.
func (s *MessageService) Send(ctx context.Context, cmd SendMessageCommand) (SentMessage, error) {
	if cmd.Content == "" {
		return SentMessage{}, fmt.Errorf("%w: empty message content", errors.ErrValidation)
	}

	member, err := s.authority.IsMember(ctx, cmd.SenderID, cmd.TeamID)
	if err != nil {
		return SentMessage{}, err
	}
	if !member {
		return SentMessage{}, errors.ErrNotTeamMember
	}

	message := domain.Message{
		ID:          uuid.New(),
		TeamID:      cmd.TeamID,
		MissionID:   cmd.MissionID,
		SenderID:    cmd.SenderID,
		Content:     cmd.Content,
		IsEncrypted: cmd.Encrypted,
		CreatedAt:   time.Now().UTC(),
	}

	var oneTimeKey string
	if cmd.Encrypted {
		sealed, err := s.cipher.EncryptE2E(cmd.Content)
		if err != nil {
			return SentMessage{}, err
		}
		// The key never touches the store; only the sender's response
		// carries it.
		oneTimeKey = sealed.Key
		sealed.Key = ""
		stored, err := json.Marshal(sealed)
		if err != nil {
			return SentMessage{}, fmt.Errorf("serialize envelope: %w", err)
		}
		message.Content = string(stored)
	}

	if err := s.messages.StoreMessage(message); err != nil {
		return SentMessage{}, fmt.Errorf("persist message: %w", err)
	}

	// The index is auxiliary: a failed index entry must not undo a sent
	// message. Encrypted bodies are skipped inside Index.
	if err := s.index.Index(message); err != nil {
		s.log.Warn("message indexing failed", "message_id", message.ID, "error", err)
	}

	report, err := s.fanout.NotifyTeam(ctx, cmd.TeamID, cmd.SenderID,
		domain.NotifMessage, "New message", "")
	if err != nil {
		return SentMessage{}, err
	}
	if !report.Complete() {
		s.log.Warn("message fan-out partially failed",
			"team_id", cmd.TeamID, "failed", len(report.Failed))
	}

	s.broadcast.Broadcast(domain.RoomName(cmd.TeamID), event.MessageNew{
		Message: event.ToMessagePayload(message),
		TeamID:  cmd.TeamID,
	})

	return SentMessage{Message: message, Key: oneTimeKey}, nil
}

// List pages through a team's history, newest first. History is fetched
// through the query interface; the realtime channel never replays.
func (s *MessageService) List(ctx context.Context, userID, teamID string, cursor *string) ([]domain.Message, *string, error) {
	member, err := s.authority.IsMember(ctx, userID, teamID)
	if err != nil {
		return nil, nil, err
	}
	if !member {
		return nil, nil, errors.ErrNotTeamMember
	}
	return s.messages.ListMessages(teamID, cursor)
}

// Search runs a full-text query over the team's plaintext messages.
func (s *MessageService) Search(ctx context.Context, userID, teamID, terms string, limit int) ([]search.Hit, uint64, error) {
	if terms == "" {
		return nil, 0, fmt.Errorf("%w: empty search terms", errors.ErrValidation)
	}
	member, err := s.authority.IsMember(ctx, userID, teamID)
	if err != nil {
		return nil, 0, err
	}
	if !member {
		return nil, 0, errors.ErrNotTeamMember
	}
	return s.index.Search(ctx, teamID, terms, limit)
}
