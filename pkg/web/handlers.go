package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-roboeyes/internal/log"
	"github.com/teslashibe/go-roboeyes/pkg/eyes"
	"github.com/teslashibe/go-roboeyes/pkg/hub"
	"github.com/teslashibe/go-roboeyes/pkg/protocol"
)

// ExpressionInfo describes one selectable expression
type ExpressionInfo struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

// handleStatus returns the current face snapshot
func (s *Server) handleStatus(c *fiber.Ctx) error {
	if s.Status == nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Status provider not configured",
		})
	}
	return c.JSON(s.Status())
}

// handleListExpressions returns the expression table in wire order
func (s *Server) handleListExpressions(c *fiber.Ctx) error {
	list := make([]ExpressionInfo, 0, eyes.ExpressionCount)
	for _, id := range eyes.All() {
		list = append(list, ExpressionInfo{Code: int(id), Name: id.String()})
	}
	return c.JSON(list)
}

// handleSetExpression enqueues an expression command. The :code parameter
// accepts a numeric code or an expression name.
func (s *Server) handleSetExpression(c *fiber.Ctx) error {
	raw := c.Params("code")
	id, ok := eyes.ParseExpression(raw)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown expression: " + raw,
		})
	}

	if s.Enqueue == nil {
		return c.Status(500).JSON(fiber.Map{
			"error": "Command queue not configured",
		})
	}
	if !s.Enqueue(int(id)) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "command queue full",
		})
	}

	return c.JSON(fiber.Map{
		"code": int(id),
		"name": id.String(),
	})
}

// handleFrame returns the last rendered frame as a protocol envelope,
// a poll-based fallback for clients that cannot hold a websocket open
func (s *Server) handleFrame(c *fiber.Ctx) error {
	s.frameMu.RLock()
	frame := s.lastFrame
	frameID := s.frameID
	s.frameMu.RUnlock()

	if len(frame) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no frame rendered yet",
		})
	}

	msg, err := protocol.NewFrameMessage(s.Width, s.Height, frame, frameID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(msg)
}

// handlePreviewWS streams binary PNG frames to dashboard clients
func (s *Server) handlePreviewWS(c *websocket.Conn) {
	hub.NewClient(s.previewHub, c).Run()
}

// handleStateWS streams face state messages to dashboard clients
func (s *Server) handleStateWS(c *websocket.Conn) {
	// Send the current snapshot before joining the broadcast set so a
	// fresh client never renders an empty face card
	if s.Status != nil {
		if msg, err := stateMessage(s.Status()); err == nil {
			c.WriteJSON(msg)
		}
	}
	hub.NewClient(s.stateHub, c).Run()
}

// handleControlWS accepts expression commands from remote clients.
// Command codes pass through to the face loop unchecked; the dispatcher
// owns validation and drops unknown codes there.
func (s *Server) handleControlWS(c *websocket.Conn) {
	log.Debug("control client connected", "remote", c.RemoteAddr().String())
	defer log.Debug("control client disconnected", "remote", c.RemoteAddr().String())

	for {
		_, raw, err := c.ReadMessage()
		if err != nil {
			return
		}

		msg, err := protocol.ParseMessage(raw)
		if err != nil {
			log.Debug("control message rejected", "error", err)
			continue
		}

		switch msg.Type {
		case protocol.TypeExpression:
			cmd, err := msg.GetExpressionCommand()
			if err != nil {
				log.Debug("expression command rejected", "error", err)
				continue
			}
			if s.Enqueue != nil {
				s.Enqueue(cmd.Code)
			}

		case protocol.TypePing:
			ping, err := msg.GetPingData()
			if err != nil {
				continue
			}
			pong, err := protocol.NewPongMessage(ping.ID, msg.Timestamp, time.Now().UnixMilli())
			if err != nil {
				continue
			}
			c.WriteJSON(pong)

		default:
			log.Debug("unhandled control message", "type", string(msg.Type))
		}
	}
}
