package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"rolebot/core/log"
	"rolebot/models"
	"rolebot/services/eventqueue"
	"rolebot/usecases"
)

// StatusHandler serves read-only health and binding information
type StatusHandler struct {
	rolesUseCase usecases.RolesUseCaseInterface
	queue        *eventqueue.Queue
}

func NewStatusHandler(rolesUseCase usecases.RolesUseCaseInterface, queue *eventqueue.Queue) *StatusHandler {
	return &StatusHandler{
		rolesUseCase: rolesUseCase,
		queue:        queue,
	}
}

type bindingsResponse struct {
	Count    int                  `json:"count"`
	Bindings []models.RoleBinding `json:"bindings"`
}

// SetupRoutes registers the status endpoints on the router
func (h *StatusHandler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
	log.Info("✅ GET /health endpoint registered")

	router.HandleFunc("/bindings", h.HandleBindings).Methods("GET")
	log.Info("✅ GET /bindings endpoint registered")
}

func (h *StatusHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleBindings reads the binding table on the event queue so it never races a mutation
func (h *StatusHandler) HandleBindings(w http.ResponseWriter, r *http.Request) {
	var snapshot []models.RoleBinding
	ok := h.queue.SubmitWait("status_bindings", func(ctx context.Context) {
		snapshot = h.rolesUseCase.Bindings()
	})
	if !ok {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	if snapshot == nil {
		snapshot = []models.RoleBinding{}
	}

	h.writeJSONResponse(w, http.StatusOK, bindingsResponse{Count: len(snapshot), Bindings: snapshot})
}

func (h *StatusHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("❌ Failed to encode JSON response", "error", err)
	}
}
