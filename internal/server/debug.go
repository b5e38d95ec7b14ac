package server

import (
	"encoding/json"
	"net/http"

	"crawler-server/internal/network"
)

// DebugHandler предоставляет доступ к сводкам активных партий
type DebugHandler struct {
	Hub *network.Hub
}

func NewDebugHandler(h *network.Hub) *DebugHandler {
	return &DebugHandler{Hub: h}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleListSessions)
}

// /debug/sessions - список партий: сид, ход, глубина, состояние
func (h *DebugHandler) handleListSessions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Hub.Sessions())
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального отладочного клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}

	_ = json.NewEncoder(w).Encode(data)
}
