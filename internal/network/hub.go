package network

import (
	"sort"
	"sync"

	"crawler-server/pkg/api"
)

// SessionInfo - краткая сводка о партии для debug-эндпоинтов.
type SessionInfo struct {
	ID    string `json:"id"`
	Seed  int64  `json:"seed"`
	Turn  int    `json:"turn"`
	Depth int    `json:"depth"`
	State string `json:"state"`
}

type subscriber struct {
	ch   chan api.Frame
	info SessionInfo
}

// Hub ведёт реестр подключённых сессий и раздаёт им кадры.
// Каждая сессия владеет своей партией, хаб видит только каналы и сводки.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]*subscriber),
	}
}

// Register создаёт личный канал сессии. Повторная регистрация закрывает старый канал.
func (h *Hub) Register(sessionID string, buffer int) chan api.Frame {
	h.mu.Lock()
	defer h.mu.Unlock()

	if old, ok := h.subscribers[sessionID]; ok {
		close(old.ch)
	}

	ch := make(chan api.Frame, buffer)
	h.subscribers[sessionID] = &subscriber{ch: ch, info: SessionInfo{ID: sessionID}}
	return ch
}

// Unregister удаляет сессию и закрывает её канал.
func (h *Hub) Unregister(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subscribers[sessionID]; ok {
		close(sub.ch)
		delete(h.subscribers, sessionID)
	}
}

// SendTo кладёт кадр в канал сессии. Переполненный канал - кадр теряется, false.
func (h *Hub) SendTo(sessionID string, frame api.Frame) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sub, ok := h.subscribers[sessionID]
	if !ok {
		return false
	}
	select {
	case sub.ch <- frame:
		return true
	default:
		return false
	}
}

// Broadcast отправляет кадр всем (например, уведомление об остановке сервера).
func (h *Hub) Broadcast(frame api.Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers {
		select {
		case sub.ch <- frame:
		default:
		}
	}
}

// Update обновляет сводку сессии.
func (h *Hub) Update(info SessionInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub, ok := h.subscribers[info.ID]; ok {
		sub.info = info
	}
}

// Sessions возвращает сводки, отсортированные по ID.
func (h *Hub) Sessions() []SessionInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]SessionInfo, 0, len(h.subscribers))
	for _, sub := range h.subscribers {
		out = append(out, sub.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SubscriberCount возвращает количество активных сессий.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// CloseAll закрывает каналы всех сессий. Используется при остановке сервера.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, sub := range h.subscribers {
		close(sub.ch)
		delete(h.subscribers, id)
	}
}
