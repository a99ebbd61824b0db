package transport

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net"
	"time"
)

// Stream is a Conn over a net.Conn.
//
// With FramingRead a message is whatever a single Read returns, up to
// maxSize bytes. Longer payloads are split and coalesced payloads arrive
// together; clients are expected to wait for a reply before sending again.
//
// With FramingLine messages end with '\n' and lines longer than maxSize are
// discarded and reported as ErrMessageTooLong.
type Stream struct {
	conn    net.Conn
	framing Framing
	idle    time.Duration

	buf []byte
	rd  *bufio.Reader
}

// NewStream wraps c. An idle timeout of zero disables read deadlines.
func NewStream(c net.Conn, framing Framing, maxSize int, idle time.Duration) *Stream {
	s := &Stream{conn: c, framing: framing, idle: idle}
	if framing == FramingLine {
		// bufio needs room for the delimiter as well.
		s.rd = bufio.NewReaderSize(c, maxSize+1)
	} else {
		s.buf = make([]byte, maxSize)
	}
	return s
}

func (s *Stream) ReadMessage() ([]byte, error) {
	if s.idle > 0 {
		if err := s.conn.SetReadDeadline(time.Now().Add(s.idle)); err != nil {
			return nil, err
		}
	}
	if s.framing == FramingLine {
		return s.readLine()
	}

	n, err := s.conn.Read(s.buf)
	if n > 0 {
		return append([]byte(nil), s.buf[:n]...), nil
	}
	if err == nil {
		err = io.EOF
	}
	return nil, err
}

func (s *Stream) readLine() ([]byte, error) {
	line, err := s.rd.ReadSlice('\n')
	switch {
	case errors.Is(err, bufio.ErrBufferFull):
		for errors.Is(err, bufio.ErrBufferFull) {
			_, err = s.rd.ReadSlice('\n')
		}
		if err != nil {
			return nil, err
		}
		return nil, ErrMessageTooLong
	case err != nil && (len(line) == 0 || !errors.Is(err, io.EOF)):
		return nil, err
	}
	return bytes.TrimRight(append([]byte(nil), line...), "\r\n"), nil
}

func (s *Stream) WriteMessage(b []byte) error {
	if s.framing == FramingLine {
		b = append(b, '\n')
	}
	_, err := s.conn.Write(b)
	return err
}

func (s *Stream) Close() error { return s.conn.Close() }

func (s *Stream) RemoteAddr() string { return s.conn.RemoteAddr().String() }

func (s *Stream) Kind() string { return "tcp" }
