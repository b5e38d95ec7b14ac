package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"crawler-server/internal/engine"
	"crawler-server/internal/infrastructure/storage"
	"crawler-server/internal/network"
	"crawler-server/internal/version"
	"crawler-server/pkg/api"
	"crawler-server/pkg/dungeon"
	"crawler-server/pkg/logger"
	"crawler-server/pkg/utils"

	"github.com/caarlos0/env/v11"
)

// Config - настройки HTTP слоя.
type Config struct {
	Port      string `env:"CD_PORT" envDefault:"8080"`
	ReplayDir string `env:"CD_REPLAY_DIR" envDefault:""`
}

// LoadConfig читает настройки сервера из переменных окружения.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type Server struct {
	Engine  engine.Config
	Tables  *dungeon.Tables
	Hub     *network.Hub
	Replays *storage.ReplayService // nil - записи не сохраняются
	Port    string

	httpServer *http.Server
	sessions   sync.WaitGroup
}

func New(cfg engine.Config, tables *dungeon.Tables, replays *storage.ReplayService, port string) *Server {
	return &Server{
		Engine:  cfg,
		Tables:  tables,
		Hub:     network.NewHub(),
		Replays: replays,
		Port:    port,
	}
}

// Handler собирает роутер со всеми эндпоинтами
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	debugHandler := NewDebugHandler(s.Hub)
	debugHandler.RegisterRoutes(mux)

	return mux
}

// Run запускает HTTP сервер. Возвращает nil после Shutdown.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Port,
		Handler: s.Handler(),
	}

	logger.Log.WithField("port", s.Port).Info("Crawler server running.")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown предупреждает игроков, закрывает сессии и ждёт сохранения записей.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Hub.Broadcast(api.Frame{Type: "NOTICE", Error: "Сервер останавливается."})
	s.Hub.CloseAll()

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}

	done := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		logger.Log.Warn("Shutdown timed out waiting for sessions.")
		return ctx.Err()
	}
	return err
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket: одна партия на соединение
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := utils.GenerateID()
	seed, err := s.sessionSeed(r, sessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Error("Upgrade error.")
		return
	}

	client, err := s.newClient(conn, sessionID, seed)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to start game session.")
		_ = conn.Close()
		return
	}

	s.sessions.Add(1)
	go client.writePump()
	go func() {
		defer s.sessions.Done()
		client.readPump()
	}()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(version.Info())
}
