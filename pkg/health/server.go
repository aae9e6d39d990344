// Package health exposes the liveness/readiness HTTP endpoints used by
// container orchestration probes, plus a small live status surface.
//
// The server is infrastructure around the agent core: it starts before
// persona and model resolution and never blocks on it. Readiness stays
// false (503) until the core flips it after initialization.
package health

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/soralabs/voice-agent/internal/log"
	"github.com/soralabs/voice-agent/pkg/hub"
)

// DefaultPort is used when HEALTH_PORT is not set.
const DefaultPort = "8080"

// AgentState is the status snapshot served on /status and broadcast on
// /ws/status.
type AgentState struct {
	Ready            bool              `json:"ready"`
	Persona          string            `json:"persona"`
	Providers        map[string]string `json:"providers"`
	RuntimeConnected bool              `json:"runtime_connected"`
	SessionsStarted  int               `json:"sessions_started"`
}

// Server is the health/status HTTP server.
type Server struct {
	app  *fiber.App
	port string

	state   AgentState
	stateMu sync.RWMutex

	statusHub *hub.Hub
}

// NewServer creates a health server listening on the given port.
func NewServer(port string) *Server {
	if port == "" {
		port = DefaultPort
	}
	s := &Server{
		port:      port,
		state:     AgentState{Providers: map[string]string{}},
		statusHub: hub.New("status"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "voice-agent health",
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	// Liveness: process is up.
	live := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}
	app.Get("/health", live)
	app.Get("/healthz", live)

	// Readiness: core initialization finished.
	ready := func(c *fiber.Ctx) error {
		if !s.Ready() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "initializing"})
		}
		return c.JSON(fiber.Map{"status": "ready"})
	}
	app.Get("/ready", ready)
	app.Get("/readyz", ready)

	app.Get("/status", s.handleStatus)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// Start runs the server. Blocks until shutdown.
func (s *Server) Start() error {
	go s.statusHub.Run()
	log.Info("health server listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// StartAsync runs the server in a goroutine so it never delays core
// initialization.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("health server error", "error", err)
		}
	}()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// Ready returns the current readiness state.
func (s *Server) Ready() bool {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state.Ready
}

// SetReady flips readiness once the core finishes initialization.
func (s *Server) SetReady(ready bool) {
	s.UpdateState(func(st *AgentState) { st.Ready = ready })
}

// UpdateState mutates the status snapshot and broadcasts it to
// websocket subscribers.
func (s *Server) UpdateState(update func(*AgentState)) {
	s.stateMu.Lock()
	update(&s.state)
	state := s.snapshotLocked()
	s.stateMu.Unlock()

	s.statusHub.BroadcastJSON(state)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	s.stateMu.RLock()
	state := s.snapshotLocked()
	s.stateMu.RUnlock()
	return c.JSON(state)
}

func (s *Server) handleStatusWS(c *websocket.Conn) {
	client := hub.NewClient(s.statusHub, c)
	client.Run()
}

// snapshotLocked copies the state; callers hold stateMu.
func (s *Server) snapshotLocked() AgentState {
	state := s.state
	state.Providers = make(map[string]string, len(s.state.Providers))
	for k, v := range s.state.Providers {
		state.Providers[k] = v
	}
	return state
}
