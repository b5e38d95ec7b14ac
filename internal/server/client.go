package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"crawler-server/internal/domain"
	"crawler-server/internal/engine"
	"crawler-server/internal/infrastructure/storage"
	"crawler-server/internal/network"
	"crawler-server/pkg/api"
	"crawler-server/pkg/logger"
	"crawler-server/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	sendBuffer = 64

	// adminPrefix - префикс отладочных команд: ADMIN_HEAL, ADMIN_TELEPORT...
	adminPrefix = "ADMIN_"
)

// errUnknownAction - клиент прислал действие, которого нет в протоколе.
var errUnknownAction = errors.New("unknown action")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и партией. Партией владеет readPump,
// writePump только отправляет кадры из хаба.
type Client struct {
	ID     string
	Game   *engine.Game
	Conn   *websocket.Conn
	Send   chan api.Frame
	Record *storage.ReplaySession

	server *Server
	log    *logrus.Entry
}

// sessionSeed: ?seed= из запроса, иначе мастер-зерно, смешанное с ID сессии.
func (s *Server) sessionSeed(r *http.Request, sessionID string) (int64, error) {
	if raw := r.URL.Query().Get("seed"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid seed %q", raw)
		}
		return seed, nil
	}
	return s.Engine.Seed ^ utils.StringToSeed(sessionID), nil
}

func (s *Server) newClient(conn *websocket.Conn, sessionID string, seed int64) (*Client, error) {
	cfg := s.Engine
	cfg.Seed = seed

	g, err := engine.NewGame(cfg, s.Tables)
	if err != nil {
		return nil, err
	}

	c := &Client{
		ID:     sessionID,
		Game:   g,
		Conn:   conn,
		Record: g.StartRecording(),
		server: s,
		log: logger.Log.WithFields(logrus.Fields{
			"component": "session",
			"session":   sessionID,
			"seed":      seed,
		}),
	}
	c.Send = s.Hub.Register(sessionID, sendBuffer)
	return c, nil
}

// readPump читает команды от клиента и исполняет их на партии
func (c *Client) readPump() {
	defer func() {
		c.server.Hub.Unregister(c.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("Failed to close websocket connection.")
		}
		c.saveReplay()
		c.log.WithFields(logrus.Fields{
			"turn":  c.Game.Turn(),
			"depth": c.Game.Map.Depth,
		}).Info("Client disconnected.")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("Failed to set read deadline.")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("Failed to set pong read deadline.")
		}
		return nil
	})

	c.log.Info("Client connected.")
	c.push(nil)

	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Warn("Websocket read error.")
			}
			return
		}
		c.push(c.handle(cmd))
	}
}

// handle исполняет одну команду. Принятые команды партия пишет в запись сама.
func (c *Client) handle(cmd api.ClientCommand) error {
	if name, ok := strings.CutPrefix(strings.ToUpper(cmd.Action), adminPrefix); ok {
		return c.Game.ExecuteAdmin(name, cmd.Payload)
	}

	action := domain.ParseAction(cmd.Action)
	if action == domain.ActionUnknown {
		return fmt.Errorf("%w: %q", errUnknownAction, cmd.Action)
	}
	return c.Game.Execute(domain.Command{Action: action, Payload: cmd.Payload})
}

// push отправляет кадр. Ошибка команды превращает кадр в ERROR, состояние партии при этом актуально.
func (c *Client) push(cmdErr error) {
	frame := c.Game.Frame()
	if cmdErr != nil {
		frame.Type = "ERROR"
		frame.Error = cmdErr.Error()
		if !isClientError(cmdErr) {
			c.log.WithError(cmdErr).Error("Command failed.")
		}
	}

	c.server.Hub.Update(network.SessionInfo{
		ID:    c.ID,
		Seed:  c.Game.Seed(),
		Turn:  frame.Turn,
		Depth: frame.Depth,
		State: frame.State,
	})
	if !c.server.Hub.SendTo(c.ID, frame) {
		c.log.Warn("Frame dropped, send buffer is full.")
	}
}

func (c *Client) saveReplay() {
	if c.server.Replays == nil || len(c.Record.Actions) == 0 {
		return
	}
	c.Record.FinalDepth = c.Game.Map.Depth

	path, err := c.server.Replays.Save(c.Record)
	if err != nil {
		c.log.WithError(err).Error("Failed to save replay.")
		return
	}
	c.log.WithField("path", path).Info("Replay saved.")
}

// writePump отправляет кадры клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("Failed to close websocket connection in writePump.")
		}
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("Failed to set write deadline.")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("Write close message failed.")
				}
				return
			}
			if err := c.Conn.WriteJSON(frame); err != nil {
				c.log.WithError(err).Debug("Write frame failed.")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("Failed to set ping write deadline.")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("Ping failed.")
				return
			}
		}
	}
}

// isClientError - ошибки, вызванные самой командой, а не сбоем движка.
func isClientError(err error) bool {
	return errors.Is(err, engine.ErrActionRejected) ||
		errors.Is(err, engine.ErrInvalidPayload) ||
		errors.Is(err, engine.ErrWrongState) ||
		errors.Is(err, engine.ErrAdminDisabled) ||
		errors.Is(err, engine.ErrUnknownCommand) ||
		errors.Is(err, errUnknownAction)
}
