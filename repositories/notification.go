//go:generate go run go.uber.org/mock/mockgen -source=notification.go -destination=../mocks/mock_notification_repository.go -package=mocks
package repositories

import (
	"fmt"
	"strings"
	"time"

	"opsroom/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type INotificationRepository interface {
	CreateNotification(n domain.Notification) error
	ListNotifications(userID string, limit int) ([]domain.Notification, error)
	MarkRead(userID, notificationID string) error
	CountUnread(userID string) (int, error)
}

type NotificationRepository struct {
	db *badger.DB
}

func NewNotificationRepository(db *badger.DB) INotificationRepository {
	return &NotificationRepository{db: db}
}

type notificationRecord struct {
	ID        string `cbor:"1,keyasint"`
	UserID    string `cbor:"2,keyasint"`
	Type      string `cbor:"3,keyasint"`
	Title     string `cbor:"4,keyasint"`
	Content   string `cbor:"5,keyasint"`
	Read      bool   `cbor:"6,keyasint"`
	CreatedAt int64  `cbor:"7,keyasint"`
}

// Keys carry the padded creation timestamp so a prefix scan yields
// chronological order, newest first when reversed.
func notificationKey(userID string, at time.Time, id string) []byte {
	return []byte(fmt.Sprintf("notif:%s:%019d:%s", userID, at.UnixNano(), id))
}

func (n NotificationRepository) CreateNotification(notification domain.Notification) error {
	data, err := encode(notificationRecord{
		ID:        notification.ID.String(),
		UserID:    notification.UserID,
		Type:      string(notification.Type),
		Title:     notification.Title,
		Content:   notification.Content,
		Read:      notification.Read,
		CreatedAt: notification.CreatedAt.UnixNano(),
	})
	if err != nil {
		return err
	}
	key := notificationKey(notification.UserID, notification.CreatedAt, notification.ID.String())
	return n.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

func (n NotificationRepository) ListNotifications(userID string, limit int) ([]domain.Notification, error) {
	var notifications []domain.Notification
	prefix := []byte("notif:" + userID + ":")

	err := n.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		seekKey := append(append([]byte(nil), prefix...), []byte("9999999999999999999")...)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(notifications) == limit {
				break
			}
			var record notificationRecord
			err := it.Item().Value(func(val []byte) error {
				return decode(val, &record)
			})
			if err != nil {
				return err
			}
			notification, err := toNotification(record)
			if err != nil {
				return err
			}
			notifications = append(notifications, notification)
		}
		return nil
	})
	return notifications, err
}

// MarkRead flips the read flag. The key embeds the creation timestamp, so
// the row is located by scanning the owner's prefix for the matching ID
// suffix; per-user notification counts stay small.
func (n NotificationRepository) MarkRead(userID, notificationID string) error {
	prefix := []byte("notif:" + userID + ":")
	found := false

	err := n.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			if !strings.HasSuffix(string(item.Key()), ":"+notificationID) {
				continue
			}
			var record notificationRecord
			if err := item.Value(func(val []byte) error { return decode(val, &record) }); err != nil {
				return err
			}
			record.Read = true
			data, err := encode(record)
			if err != nil {
				return err
			}
			found = true
			return txn.Set(append([]byte(nil), item.Key()...), data)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !found {
		return mapNotFound(badger.ErrKeyNotFound)
	}
	return nil
}

func (n NotificationRepository) CountUnread(userID string) (int, error) {
	count := 0
	prefix := []byte("notif:" + userID + ":")

	err := n.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var record notificationRecord
			err := it.Item().Value(func(val []byte) error {
				return decode(val, &record)
			})
			if err != nil {
				return err
			}
			if !record.Read {
				count++
			}
		}
		return nil
	})
	return count, err
}

func toNotification(r notificationRecord) (domain.Notification, error) {
	parsedID, err := uuid.Parse(r.ID)
	if err != nil {
		return domain.Notification{}, err
	}
	return domain.Notification{
		ID:        parsedID,
		UserID:    r.UserID,
		Type:      domain.NotificationType(r.Type),
		Title:     r.Title,
		Content:   r.Content,
		Read:      r.Read,
		CreatedAt: time.Unix(0, r.CreatedAt).UTC(),
	}, nil
}
