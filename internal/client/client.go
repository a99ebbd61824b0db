// Package client talks to the game server over TCP: one guess out, one
// response back.
package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"

	"github.com/taylozac/wordle-5757/internal/protocol"
	"github.com/taylozac/wordle-5757/internal/transport"
)

// Client is a connected game client. It is not safe for concurrent use.
type Client struct {
	conn transport.Conn
}

// Dial connects to addr using the given framing.
func Dial(ctx context.Context, addr string, framing transport.Framing) (*Client, error) {
	var d net.Dialer
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	return New(transport.NewStream(c, framing, protocol.MaxMessageSize, 0)), nil
}

// New wraps an established transport.
func New(c transport.Conn) *Client {
	return &Client{conn: c}
}

// Send writes raw bytes as one message and reads the reply.
func (c *Client) Send(raw []byte) (*protocol.Response, error) {
	if err := c.conn.WriteMessage(raw); err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}
	b, err := c.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("receive: %w", err)
	}
	var r protocol.Response
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("decode response %q: %w", b, err)
	}
	return &r, nil
}

// Guess submits word as a hard-mode guess.
func (c *Client) Guess(word string) (*protocol.Response, error) {
	raw, err := protocol.Encode(protocol.GuessMessage{Guess: word, Hard: true})
	if err != nil {
		return nil, err
	}
	return c.Send(raw)
}

// Close ends the session.
func (c *Client) Close() error { return c.conn.Close() }

// Format renders a response for the terminal.
func Format(r *protocol.Response) string {
	if r.IsError() {
		return "error: " + r.Error
	}
	return fmt.Sprintf("hint %s  guess %d  word %s", r.Hint, r.GuessCount, r.Word)
}

// Play runs the interactive prompt: each line read from in is sent as a
// guess, unmodified, and the reply is printed to out. Only an empty line or
// EOF ends it.
func Play(c *Client, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "Press enter with an empty prompt to terminate")
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "Send to server: ")
		if !sc.Scan() {
			break
		}
		word := sc.Text()
		if word == "" {
			break
		}
		r, err := c.Guess(word)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, Format(r))
	}
	fmt.Fprintln(out, "Terminating...")
	return sc.Err()
}
