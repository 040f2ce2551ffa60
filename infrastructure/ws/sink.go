// Package ws is the realtime transport: websocket connections carrying the
// JSON wire events. One goroutine owns each connection's writes; the sink
// feeds it through a buffered channel.
package ws

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"opsroom/domain/event"

	"github.com/gorilla/websocket"
)

const (
	writeTimeout = 10 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = 25 * time.Second
)

// outFrame is the server-to-client wire shape.
type outFrame struct {
	Event string         `json:"event"`
	Data  event.Outbound `json:"data"`
}

// connSink buffers outbound events for one connection. Consume never blocks
// the fan-out worker longer than its context allows; a slow client loses
// events rather than stalling everyone else's delivery.
type connSink struct {
	log    *slog.Logger
	conn   *websocket.Conn
	out    chan event.Outbound
	done   chan struct{}
	closer sync.Once
}

func newConnSink(log *slog.Logger, conn *websocket.Conn, bufferSize int) *connSink {
	return &connSink{
		log:  log,
		conn: conn,
		out:  make(chan event.Outbound, bufferSize),
		done: make(chan struct{}),
	}
}

func (s *connSink) Consume(ctx context.Context, e event.Outbound) error {
	select {
	case s.out <- e:
		return nil
	case <-s.done:
		return fmt.Errorf("connection closed")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the writer pump. Idempotent; safe from any goroutine.
func (s *connSink) Close() {
	s.closer.Do(func() { close(s.done) })
}

// writePump is the single writer for the connection. Gorilla websockets
// allow one concurrent writer, so every frame and every ping goes through
// here.
func (s *connSink) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case <-s.done:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case evt := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteJSON(outFrame{Event: evt.EventName(), Data: evt}); err != nil {
				s.log.Debug("write failed, dropping connection", "error", err)
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
