package handlers

import (
	"log/slog"
	"net/http"

	"github.com/hardshell/api/internal/config"
	"github.com/hardshell/api/internal/httpx"
)

type Server struct {
	Config config.Config
	Logger *slog.Logger
}

func NewServer(cfg config.Config, logger *slog.Logger) *Server {
	return &Server{Config: cfg, Logger: logger}
}

func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetResource is a stand-in for any downstream handler behind the hardening
// stack.
func (s *Server) GetResource(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"resource": "demo",
		"env":      s.Config.Env,
	})
}

// GetTeapot always fails; it exists so the error path of the hardening stack
// stays covered by the integration tests.
func (s *Server) GetTeapot(w http.ResponseWriter, r *http.Request) {
	httpx.WriteError(w, r, http.StatusTeapot, "teapot", "I'm a teapot", nil)
}
