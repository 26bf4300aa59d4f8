package agent

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"
)

// fakeServer answers the hello handshake and then echoes a fixed action for
// every observation request.
func fakeServer(t *testing.T, model string, action []float32) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		sc := bufio.NewScanner(conn)
		for sc.Scan() {
			var msg map[string]any
			if err := json.Unmarshal(sc.Bytes(), &msg); err != nil {
				return
			}
			var reply any
			if msg["type"] == "hello" {
				reply = map[string]any{"type": "hello", "model": model}
			} else {
				reply = map[string]any{"action": action}
			}
			out, _ := json.Marshal(reply)
			conn.Write(append(out, '\n'))
		}
	}()
	return ln.Addr().String()
}

func TestDialAndHandshake(t *testing.T) {
	addr := fakeServer(t, "ppo_v3.zip", make([]float32, 8))

	c, err := Dial(context.Background(), addr, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	if c.Model() != "ppo_v3.zip" {
		t.Errorf("model = %q, want ppo_v3.zip", c.Model())
	}
}

func TestInferReturnsAction(t *testing.T) {
	want := []float32{1, -1, 0.5, 0, 1, 0, 0, -1}
	addr := fakeServer(t, "m", want)

	c, err := Dial(context.Background(), addr, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	got, err := c.Infer(make([]float32, 96), 8)
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("action[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestInferRejectsWrongActionLength(t *testing.T) {
	addr := fakeServer(t, "m", []float32{1, 2, 3})

	c, err := Dial(context.Background(), addr, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	if _, err := c.Infer(make([]float32, 96), 8); err == nil {
		t.Fatal("expected an error for a 3-element action")
	}
}

func TestDialFailsWithoutServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if _, err := Dial(ctx, "127.0.0.1:1", time.Second); err == nil {
		t.Fatal("expected a connection error")
	}
}

func TestHandshakeRejectsWrongReplyType(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		sc := bufio.NewScanner(conn)
		if sc.Scan() {
			conn.Write([]byte("{\"type\":\"goodbye\"}\n"))
		}
	}()

	if _, err := Dial(context.Background(), ln.Addr().String(), time.Second); err == nil {
		t.Fatal("expected a handshake error")
	}
}
