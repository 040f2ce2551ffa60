//go:generate go run go.uber.org/mock/mockgen -source=broadcaster.go -destination=../mocks/mock_broadcaster.go -package=mocks
package services

import "opsroom/domain/event"

// Broadcaster is the slice of the realtime router the services depend on.
// Broadcasts are fire-and-forget: by the time a service broadcasts, the
// triggering write has already been persisted.
type Broadcaster interface {
	Broadcast(room string, evt event.Outbound)
	BroadcastExcluding(room string, evt event.Outbound, excludedSessionID string)
	Unicast(userID string, evt event.Outbound)
}
