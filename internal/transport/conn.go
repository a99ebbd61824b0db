// Package transport adapts byte streams to the message-at-a-time interface
// used by game sessions.
//
// Every transport reports a peer disconnect as io.EOF. That keeps "the peer
// went away" distinct from "the peer sent an empty message", which is a
// decode failure handled by the session.
package transport

import (
	"errors"
	"fmt"
)

// Conn carries whole messages in both directions.
type Conn interface {
	// ReadMessage blocks for the next inbound message.
	ReadMessage() ([]byte, error)
	// WriteMessage sends one outbound message.
	WriteMessage(b []byte) error
	Close() error
	RemoteAddr() string
	// Kind names the transport for logs ("tcp", "websocket").
	Kind() string
}

// ErrMessageTooLong is returned by framings that can detect an oversized
// message. The oversized input has already been discarded, so the caller may
// keep reading.
var ErrMessageTooLong = errors.New("message too long")

// Framing selects how messages are delimited on a stream.
type Framing string

const (
	// FramingRead treats every read (up to the size limit) as one message.
	FramingRead Framing = "read"
	// FramingLine delimits messages with '\n'.
	FramingLine Framing = "line"
)

// ParseFraming validates a framing name.
func ParseFraming(s string) (Framing, error) {
	switch f := Framing(s); f {
	case FramingRead, FramingLine:
		return f, nil
	case "":
		return FramingRead, nil
	default:
		return "", fmt.Errorf("unknown framing %q (want %q or %q)", s, FramingRead, FramingLine)
	}
}
