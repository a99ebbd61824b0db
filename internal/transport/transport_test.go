package transport

import (
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipe(t *testing.T, framing Framing, max int, idle time.Duration) (*Stream, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() {
		server.Close()
		client.Close()
	})
	return NewStream(server, framing, max, idle), client
}

func TestParseFraming(t *testing.T) {
	f, err := ParseFraming("")
	require.NoError(t, err)
	assert.Equal(t, FramingRead, f)

	f, err = ParseFraming("line")
	require.NoError(t, err)
	assert.Equal(t, FramingLine, f)

	_, err = ParseFraming("length")
	assert.Error(t, err)
}

func TestStreamReadFraming(t *testing.T) {
	s, client := pipe(t, FramingRead, 256, 0)
	go func() {
		_, _ = client.Write([]byte(`{"guess":"crane","hard":true}`))
		_ = client.Close()
	}()

	msg, err := s.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `{"guess":"crane","hard":true}`, string(msg))

	_, err = s.ReadMessage()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "tcp", s.Kind())
	assert.NotEmpty(t, s.RemoteAddr())
}

func TestStreamReadFramingTruncates(t *testing.T) {
	s, client := pipe(t, FramingRead, 16, 0)
	go func() { _, _ = client.Write([]byte(strings.Repeat("x", 20))) }()

	first, err := s.ReadMessage()
	require.NoError(t, err)
	assert.Len(t, first, 16)

	rest, err := s.ReadMessage()
	require.NoError(t, err)
	assert.Len(t, rest, 4)
}

func TestStreamWriteReadFraming(t *testing.T) {
	s, client := pipe(t, FramingRead, 256, 0)
	go func() { _ = s.WriteMessage([]byte(`{"ok":true}`)) }()

	buf := make([]byte, 256)
	n, err := client.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(buf[:n]))
}

func TestStreamLineFraming(t *testing.T) {
	s, client := pipe(t, FramingLine, 32, 0)
	go func() {
		_, _ = client.Write([]byte("{\"a\":1}\r\n\n" + strings.Repeat("y", 40) + "\n{\"b\":2}"))
		_ = client.Close()
	}()

	msg, err := s.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(msg))

	msg, err = s.ReadMessage()
	require.NoError(t, err)
	assert.Empty(t, msg, "blank line is an empty message, not a disconnect")

	_, err = s.ReadMessage()
	assert.ErrorIs(t, err, ErrMessageTooLong)

	msg, err = s.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(msg))

	_, err = s.ReadMessage()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStreamLineFramingWritesDelimiter(t *testing.T) {
	s, client := pipe(t, FramingLine, 256, 0)
	go func() { _ = s.WriteMessage([]byte(`{}`)) }()

	buf := make([]byte, 8)
	n, err := client.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(buf[:n]))
}

func TestStreamIdleTimeout(t *testing.T) {
	s, _ := pipe(t, FramingRead, 256, 20*time.Millisecond)
	_, err := s.ReadMessage()
	assert.ErrorIs(t, err, os.ErrDeadlineExceeded)
}

func TestWebSocket(t *testing.T) {
	upgrader := websocket.Upgrader{}
	got := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ws := NewWebSocket(c, 256, 0)
		defer ws.Close()
		for {
			msg, err := ws.ReadMessage()
			if err == io.EOF {
				got <- "eof"
				return
			}
			if err != nil {
				got <- "err: " + err.Error()
				return
			}
			_ = ws.WriteMessage(msg)
		}
	}))
	defer srv.Close()

	c, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)

	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte(`{"x":1}`)))
	_, echo, err := c.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `{"x":1}`, string(echo))

	require.NoError(t, c.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	select {
	case v := <-got:
		assert.Equal(t, "eof", v)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not observe close")
	}
	_ = c.Close()
}
