//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"opsroom/domain/event"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// Worker doesn't protect itself; the supervisor recovers panics and restarts.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker,
// avoiding manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is one live connection's delivery channel. Close releases the
// connection's writer; it must be idempotent and safe from any goroutine.
type EventSink interface {
	Consume(ctx context.Context, e event.Outbound) error
	Close()
}

// Delivery is a routed outbound event. Room targets every session joined to
// the room (minus Exclude); UserID targets a single user's session.
type Delivery struct {
	Room    string
	UserID  string
	Exclude string
	Event   event.Outbound
}

// IRegistry resolves deliveries to live sinks.
type IRegistry interface {
	SinksForRoom(room string, excludeSessionID string) []EventSink
	SinkForUser(userID string) (EventSink, bool)
}
