package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crawler-server/internal/agent"
	"crawler-server/internal/engine"
	"crawler-server/internal/infrastructure/storage"
	"crawler-server/internal/server"
	"crawler-server/internal/version"
	"crawler-server/pkg/content"
	"crawler-server/pkg/dungeon"
	"crawler-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logCfg, err := logger.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load logger config.")
	}
	logger.Init(logCfg)

	// 1. Флаги. Переменные окружения задают умолчания, флаги их перекрывают.
	var (
		seed        int64
		contentPath string
		replayPath  string
		botCommands int
		replayDir   string
	)
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 = from CD_SEED or time)")
	flag.StringVar(&contentPath, "content", "", "Path to YAML content file (default: embedded)")
	flag.StringVar(&replayPath, "replay", "", "Path to .crrp replay file to simulate")
	flag.IntVar(&botCommands, "bot", 0, "Play N commands with the bot and exit")
	flag.StringVar(&replayDir, "replay-dir", "", "Directory for session replays (overrides CD_REPLAY_DIR)")
	flag.Parse()

	logger.Log.Info("Starting crawler server...")
	logger.Log.Info(version.String())

	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load engine config.")
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	srvCfg, err := server.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load server config.")
	}
	if replayDir != "" {
		srvCfg.ReplayDir = replayDir
	}

	tables, err := loadContent(contentPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load content.")
	}

	// 2. Офлайн режимы
	switch {
	case replayPath != "":
		runReplay(cfg, tables, replayPath)
		return
	case botCommands > 0:
		runBot(cfg, tables, botCommands)
		return
	}

	// 3. Сервер
	var replays *storage.ReplayService
	if srvCfg.ReplayDir != "" {
		if replays, err = storage.NewReplayService(srvCfg.ReplayDir); err != nil {
			logger.Log.WithError(err).Fatal("Failed to init replay storage.")
		}
	}

	logger.Log.WithField("seed", cfg.Seed).Info("Using master seed.")
	srv := server.New(cfg, tables, replays, srvCfg.Port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.WithError(err).Fatal("Server start error.")
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Error("Shutdown error.")
	}

	logger.Log.Info("Done.")
}

func loadContent(path string) (*dungeon.Tables, error) {
	if path == "" {
		return content.Default()
	}
	logger.Log.WithField("path", path).Info("Loading content file.")
	return content.LoadFile(path)
}

func runReplay(cfg engine.Config, tables *dungeon.Tables, path string) {
	logger.Log.WithField("path", path).Info("Mode: replay simulation.")

	session, err := storage.LoadFile(path)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load replay.")
	}

	g, err := engine.Replay(cfg, tables, session)
	if err != nil {
		logger.Log.WithError(err).Fatal("Replay failed.")
	}

	logger.Log.WithFields(logrus.Fields{
		"turn":        g.Turn(),
		"depth":       g.Map.Depth,
		"state":       g.State().String(),
		"recordDepth": session.FinalDepth,
	}).Info("Replay result.")
}

func runBot(cfg engine.Config, tables *dungeon.Tables, commands int) {
	logger.Log.WithField("commands", commands).Info("Mode: bot run.")

	g, err := engine.NewGame(cfg, tables)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to create game.")
	}
	if _, err := agent.NewBot(g).Run(commands); err != nil {
		logger.Log.WithError(err).Fatal("Bot run failed.")
	}
}
