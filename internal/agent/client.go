// Package agent speaks the newline-delimited JSON protocol used by external
// policy servers. One connection serves one episode driver: a hello
// handshake, then an observation/action exchange per tick.
package agent

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// maxLineBytes bounds a single protocol line. A full observation is a few
// kilobytes, so anything near the cap is a broken or hostile peer.
const maxLineBytes = 1 << 20

// Client is a connected policy server session. Not safe for concurrent use;
// the protocol is strictly request/response.
type Client struct {
	conn    net.Conn
	r       *bufio.Scanner
	w       *bufio.Writer
	model   string
	timeout time.Duration
}

type helloMsg struct {
	Type  string `json:"type"`
	Model string `json:"model,omitempty"`
}

type inferRequest struct {
	Obs []float32 `json:"obs"`
}

type inferResponse struct {
	Action []float32 `json:"action"`
}

// Dial connects to a policy server and completes the hello handshake.
// timeout applies to every subsequent request/response round trip; zero
// means no deadline.
func Dial(ctx context.Context, addr string, timeout time.Duration) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("agent: connect %s: %w", addr, err)
	}

	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	c := &Client{
		conn:    conn,
		r:       sc,
		w:       bufio.NewWriter(conn),
		timeout: timeout,
	}
	if err := c.handshake(); err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}

// Model returns the name the policy server reported during the handshake.
func (c *Client) Model() string {
	return c.model
}

// Close tears down the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) handshake() error {
	var resp helloMsg
	if err := c.roundTrip(helloMsg{Type: "hello"}, &resp); err != nil {
		return fmt.Errorf("agent: handshake: %w", err)
	}
	if resp.Type != "hello" {
		return fmt.Errorf("agent: handshake: unexpected reply type %q", resp.Type)
	}
	c.model = resp.Model
	if c.model == "" {
		c.model = "unknown"
	}
	return nil
}

// Infer sends one observation and returns the action vector the policy
// chose. The returned slice always has length dim.
func (c *Client) Infer(obs []float32, dim int) ([]float32, error) {
	var resp inferResponse
	if err := c.roundTrip(inferRequest{Obs: obs}, &resp); err != nil {
		return nil, fmt.Errorf("agent: infer: %w", err)
	}
	if len(resp.Action) != dim {
		return nil, fmt.Errorf("agent: infer: action length %d, want %d", len(resp.Action), dim)
	}
	return resp.Action, nil
}

func (c *Client) roundTrip(req, resp any) error {
	if c.timeout > 0 {
		if err := c.conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}
	if _, err := c.w.Write(append(payload, '\n')); err != nil {
		return err
	}
	if err := c.w.Flush(); err != nil {
		return err
	}

	if !c.r.Scan() {
		if err := c.r.Err(); err != nil {
			return err
		}
		return fmt.Errorf("connection closed by peer")
	}
	return json.Unmarshal(c.r.Bytes(), resp)
}
