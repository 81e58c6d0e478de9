package handler

import (
	"net/http"

	"github.com/dtroode/chirper-server/internal/api/http/response"
	"github.com/dtroode/chirper-server/internal/logger"
	"github.com/dtroode/chirper-server/internal/model"
)

type healthResponse struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Health serves liveness and readiness probes.
type Health struct {
	checker model.ReadinessChecker
	logger  *logger.Logger
}

func NewHealth(checker model.ReadinessChecker, logger *logger.Logger) *Health {
	return &Health{checker: checker, logger: logger}
}

// Live handles GET /health.
func (h *Health) Live(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

// Ready handles GET /ready.
func (h *Health) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.Ready(r.Context()); err != nil {
		h.logger.Warn("Health: not ready", "error", err.Error())
		response.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Error: err.Error()})
		return
	}
	response.JSON(w, http.StatusOK, healthResponse{Status: "ready"})
}
