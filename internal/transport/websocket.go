package transport

import (
	"io"
	"time"

	"github.com/gorilla/websocket"
)

// WebSocket is a Conn where each text or binary frame is one message.
type WebSocket struct {
	conn *websocket.Conn
	idle time.Duration
}

// NewWebSocket wraps an upgraded connection. Frames larger than maxSize
// close the connection.
func NewWebSocket(c *websocket.Conn, maxSize int, idle time.Duration) *WebSocket {
	c.SetReadLimit(int64(maxSize))
	return &WebSocket{conn: c, idle: idle}
}

func (w *WebSocket) ReadMessage() ([]byte, error) {
	if w.idle > 0 {
		if err := w.conn.SetReadDeadline(time.Now().Add(w.idle)); err != nil {
			return nil, err
		}
	}
	_, data, err := w.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
			return nil, io.EOF
		}
		return nil, err
	}
	return data, nil
}

func (w *WebSocket) WriteMessage(b []byte) error {
	return w.conn.WriteMessage(websocket.TextMessage, b)
}

func (w *WebSocket) Close() error { return w.conn.Close() }

func (w *WebSocket) RemoteAddr() string { return w.conn.RemoteAddr().String() }

func (w *WebSocket) Kind() string { return "websocket" }
