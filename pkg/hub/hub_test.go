package hub

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	"github.com/gorilla/websocket"
)

func TestNew(t *testing.T) {
	h := New("test")

	if h == nil {
		t.Fatal("New returned nil")
	}
	if h.ClientCount() != 0 {
		t.Error("ClientCount should be 0 initially")
	}
}

func TestMessageConstructors(t *testing.T) {
	j := NewJSONMessage([]byte(`{"a":1}`))
	if j.Type != JSONMessage {
		t.Error("NewJSONMessage should produce a JSON message")
	}

	b := NewBinaryMessage([]byte{1, 2, 3})
	if b.Type != BinaryMessage {
		t.Error("NewBinaryMessage should produce a binary message")
	}
}

func TestBroadcastWithoutClients(t *testing.T) {
	h := New("test")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go h.Run(ctx)

	// Nobody connected: broadcasts are dropped, never blocked on
	h.BroadcastBinary([]byte{1, 2, 3})
	if err := h.BroadcastJSON(map[string]int{"a": 1}); err != nil {
		t.Errorf("BroadcastJSON error = %v", err)
	}
}

func TestBroadcastJSONRejectsUnencodable(t *testing.T) {
	h := New("test")

	if err := h.BroadcastJSON(make(chan int)); err == nil {
		t.Error("BroadcastJSON should fail on unencodable values")
	}
}

// setupTestServer runs a hub behind a fiber websocket endpoint so tests
// can dial in as real clients.
func setupTestServer(t *testing.T, h *Hub, port string) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Get("/ws", fiberws.New(func(c *fiberws.Conn) {
		NewClient(h, c).Run()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	go app.Listen(":" + port)
	time.Sleep(100 * time.Millisecond)

	return app
}

func TestClientConnectAndDisconnect(t *testing.T) {
	h := New("test")
	app := setupTestServer(t, h, "18090")
	defer app.Shutdown()

	ws, _, err := websocket.DefaultDialer.Dial("ws://localhost:18090/ws", nil)
	if err != nil {
		t.Fatalf("WebSocket dial error: %v", err)
	}

	// Wait for connection to be registered
	time.Sleep(50 * time.Millisecond)

	if h.ClientCount() != 1 {
		t.Errorf("ClientCount = %d, want 1", h.ClientCount())
	}

	ws.Close()
	time.Sleep(100 * time.Millisecond)

	if h.ClientCount() != 0 {
		t.Errorf("ClientCount = %d, want 0 after disconnect", h.ClientCount())
	}
}

func TestBroadcastReachesClient(t *testing.T) {
	h := New("test")
	app := setupTestServer(t, h, "18091")
	defer app.Shutdown()

	ws, _, err := websocket.DefaultDialer.Dial("ws://localhost:18091/ws", nil)
	if err != nil {
		t.Fatalf("WebSocket dial error: %v", err)
	}
	defer ws.Close()
	time.Sleep(50 * time.Millisecond)

	h.BroadcastBinary([]byte{0x89, 'P', 'N', 'G'})
	h.BroadcastJSON(map[string]string{"expression": "happy"})

	// Per-client send channels preserve order: binary first, then JSON
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	msgType, data, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage error: %v", err)
	}
	if msgType != websocket.BinaryMessage {
		t.Errorf("first message type = %d, want binary", msgType)
	}
	if len(data) != 4 || data[0] != 0x89 {
		t.Errorf("binary payload = %v, want the PNG header bytes", data)
	}

	msgType, data, err = ws.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage error: %v", err)
	}
	if msgType != websocket.TextMessage {
		t.Errorf("second message type = %d, want text", msgType)
	}
	var decoded map[string]string
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("broadcast JSON did not decode: %v", err)
	}
	if decoded["expression"] != "happy" {
		t.Errorf("decoded expression = %q, want happy", decoded["expression"])
	}
}

func TestClientIDsAreUnique(t *testing.T) {
	h := New("test")
	app := setupTestServer(t, h, "18092")
	defer app.Shutdown()

	a, _, err := websocket.DefaultDialer.Dial("ws://localhost:18092/ws", nil)
	if err != nil {
		t.Fatalf("WebSocket dial error: %v", err)
	}
	defer a.Close()
	b, _, err := websocket.DefaultDialer.Dial("ws://localhost:18092/ws", nil)
	if err != nil {
		t.Fatalf("WebSocket dial error: %v", err)
	}
	defer b.Close()
	time.Sleep(50 * time.Millisecond)

	if h.ClientCount() != 2 {
		t.Fatalf("ClientCount = %d, want 2", h.ClientCount())
	}

	h.mu.RLock()
	ids := make(map[string]bool)
	for c := range h.clients {
		if c.ID() == "" {
			t.Error("client ID should not be empty")
		}
		ids[c.ID()] = true
	}
	h.mu.RUnlock()

	if len(ids) != 2 {
		t.Errorf("distinct client IDs = %d, want 2", len(ids))
	}
}

func TestRunStopReleasesClients(t *testing.T) {
	h := New("test")
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Get("/ws", fiberws.New(func(c *fiberws.Conn) {
		NewClient(h, c).Run()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	go app.Listen(":18093")
	defer app.Shutdown()
	time.Sleep(100 * time.Millisecond)

	ws, _, err := websocket.DefaultDialer.Dial("ws://localhost:18093/ws", nil)
	if err != nil {
		t.Fatalf("WebSocket dial error: %v", err)
	}
	defer ws.Close()
	time.Sleep(50 * time.Millisecond)

	cancel()
	time.Sleep(100 * time.Millisecond)

	if h.ClientCount() != 0 {
		t.Errorf("ClientCount = %d, want 0 after the hub stops", h.ClientCount())
	}

	// The closed send channel shuts the connection down from the server
	// side; the client's next read reports it.
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := ws.ReadMessage(); err == nil {
		t.Error("connection should be closed after the hub stops")
	}
}
