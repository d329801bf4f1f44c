package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// client is one websocket connection. Outgoing messages are queued on send
// and written by writePump, the only goroutine that writes to conn.
type client struct {
	id   string
	conn *websocket.Conn

	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newClient(id string, conn *websocket.Conn, sendBuffer int) *client {
	return &client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

// Send - queues data without blocking. Returns false when the queue is full or the client is closed.
func (that *client) Send(data []byte) bool {
	select {
	case <-that.done:
		return false
	default:
	}

	select {
	case that.send <- data:
		return true
	default:
		return false
	}
}

func (that *client) close() {
	that.closeOnce.Do(func() {
		close(that.done)
	})
}

func (that *client) writePump(pingPeriod time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case data := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-that.done:
			_ = that.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait),
			)
			return
		}
	}
}
