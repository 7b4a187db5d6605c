// Package web provides the dashboard and remote control API for the face
package web

import (
	"context"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-roboeyes/internal/log"
	"github.com/teslashibe/go-roboeyes/pkg/face"
	"github.com/teslashibe/go-roboeyes/pkg/hub"
	"github.com/teslashibe/go-roboeyes/pkg/protocol"
)

// Server is the web dashboard server
type Server struct {
	app  *fiber.App
	port string

	// Last rendered frame, kept for /api/frame
	lastFrame []byte
	frameID   uint64
	frameMu   sync.RWMutex

	// Hubs for websocket broadcast (thread-safe!)
	previewHub *hub.Hub
	stateHub   *hub.Hub
	stopHubs   context.CancelFunc

	// Status returns the current face snapshot. Wired by the daemon.
	Status func() face.Status

	// Enqueue hands a numeric expression command to the face loop and
	// reports false when the queue is full. Wired by the daemon.
	Enqueue func(code int) bool

	// Width and Height describe the preview framebuffer, used in
	// /api/frame envelopes.
	Width  int
	Height int
}

// NewServer creates a new web dashboard server
func NewServer(port string) *Server {
	s := &Server{
		port:       port,
		previewHub: hub.New("preview"),
		stateHub:   hub.New("state"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Roboeyes Dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// Static files
	app.Static("/", "./web")

	// API routes
	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/expressions", s.handleListExpressions)
	api.Post("/expression/:code", s.handleSetExpression)
	api.Get("/frame", s.handleFrame)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	// WebSocket routes
	app.Get("/ws/preview", websocket.New(s.handlePreviewWS))
	app.Get("/ws/state", websocket.New(s.handleStateWS))
	app.Get("/ws/control", websocket.New(s.handleControlWS))

	s.app = app
	return s
}

// Start starts the web server
func (s *Server) Start() error {
	log.Info("web dashboard listening", "addr", "http://localhost:"+s.port)

	// Start all hubs
	ctx, cancel := context.WithCancel(context.Background())
	s.stopHubs = cancel
	go s.previewHub.Run(ctx)
	go s.stateHub.Run(ctx)

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server error", "error", err)
		}
	}()
}

// SendPreviewFrame broadcasts an encoded PNG frame to all preview clients
// and keeps it for /api/frame. The slice is retained; callers must hand
// over a fresh buffer each frame.
func (s *Server) SendPreviewFrame(png []byte) {
	s.frameMu.Lock()
	s.lastFrame = png
	s.frameID++
	s.frameMu.Unlock()

	// Broadcast via hub (thread-safe!)
	s.previewHub.BroadcastBinary(png)
}

// BroadcastState pushes a state message to all state subscribers
func (s *Server) BroadcastState(st face.Status) {
	msg, err := stateMessage(st)
	if err != nil {
		log.Warn("state message encode failed", "error", err)
		return
	}
	s.stateHub.BroadcastJSON(msg)
}

// PreviewClientCount returns the number of connected preview clients.
// The daemon skips PNG encoding entirely while it is zero.
func (s *Server) PreviewClientCount() int {
	return s.previewHub.ClientCount()
}

// StateClientCount returns the number of connected state clients
func (s *Server) StateClientCount() int {
	return s.stateHub.ClientCount()
}

// stateMessage wraps a face snapshot in a protocol envelope
func stateMessage(st face.Status) (*protocol.Message, error) {
	return protocol.NewStateMessage(protocol.StateData{
		Expression:   st.Expression,
		Code:         st.Code,
		InTransition: st.InTransition,
		DemoActive:   st.DemoActive,
		AutoBlink:    st.AutoBlink,
		Ticks:        st.Ticks,
	})
}

// Shutdown gracefully stops the web server, then the broadcast hubs.
// New connections stop first so no client registers against a dead hub.
func (s *Server) Shutdown() error {
	err := s.app.Shutdown()
	if s.stopHubs != nil {
		s.stopHubs()
	}
	return err
}
