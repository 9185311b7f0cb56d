package feed

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	roomService "github.com/lanyicong/moodlink/backend/internal/service/room"
)

// Handler 房间更新推送的WebSocket处理器
//
// The feed is advisory: it nudges subscribed clients that their room changed
// so the next pull can happen early. Consistency still comes from the pull
// merge and its dedup key, never from this channel.
type Handler struct {
	rooms    *roomService.Service
	upgrader websocket.Upgrader
}

// New 创建WebSocket处理器
func New(rooms *roomService.Service) *Handler {
	return &Handler{
		rooms: rooms,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/mood/feed", h.handleFeed)
}

type updateMessage struct {
	Type        string    `json:"type"`
	RoomID      string    `json:"roomId"`
	LastUpdated time.Time `json:"lastUpdated"`
	Timestamp   int64     `json:"timestamp"`
}

func (h *Handler) handleFeed(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("roomId")
	if roomID == "" {
		roomID = "default-room"
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[feed] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.rooms.Subscribe(roomID)
	defer cancel()

	// Reader goroutine only detects the peer going away.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	log.Printf("[feed] subscriber joined room=%s", roomID)

	for {
		select {
		case <-r.Context().Done():
			return
		case <-closed:
			log.Printf("[feed] subscriber left room=%s", roomID)
			return
		case at := <-updates:
			msg := updateMessage{
				Type:        "updated",
				RoomID:      roomID,
				LastUpdated: at,
				Timestamp:   time.Now().UnixMilli(),
			}
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("[feed] write failed for room=%s: %v", roomID, err)
				return
			}
		}
	}
}
