package mood

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lanyicong/moodlink/backend/internal/metrics"
	moodModel "github.com/lanyicong/moodlink/backend/internal/model/mood"
	roomService "github.com/lanyicong/moodlink/backend/internal/service/room"
	"github.com/lanyicong/moodlink/backend/pkg/utils"
)

const (
	defaultRoomID = "default-room"
	defaultUserID = "user1"
)

// Handler 情绪共享接口的HTTP处理器
type Handler struct {
	rooms *roomService.Service
}

// New 创建情绪处理器
func New(rooms *roomService.Service) *Handler {
	return &Handler{rooms: rooms}
}

// RegisterRoutes 注册情绪相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/mood", h.handleRead)
	r.Post("/mood", h.handleAppend)
}

// handleRead 返回房间视图（历史、统计、对方最新情绪）
func (h *Handler) handleRead(w http.ResponseWriter, r *http.Request) {
	roomID := queryOrDefault(r, "roomId", defaultRoomID)
	userID := queryOrDefault(r, "userId", defaultUserID)

	view := h.rooms.Read(r.Context(), roomID, userID)
	metrics.Reads.Inc()

	utils.RespondData(w, http.StatusOK, view)
}

type appendPayload struct {
	RoomID       string `json:"roomId"`
	UserID       string `json:"userId"`
	Mood         string `json:"mood"`
	Message      string `json:"message"`
	Type         string `json:"type"`
	ResponseType string `json:"responseType"`
	Emoji        string `json:"emoji"`
	Label        string `json:"label"`
	Sender       string `json:"sender"`
	Timestamp    string `json:"timestamp"`
}

// handleAppend 保存一条情绪或回应记录
func (h *Handler) handleAppend(w http.ResponseWriter, r *http.Request) {
	var payload appendPayload
	// An undecodable body is treated as empty and falls through to
	// validation, matching the original API.
	_ = json.NewDecoder(r.Body).Decode(&payload)

	roomID := queryOrDefault(r, "roomId", payload.RoomID)
	if roomID == "" {
		roomID = defaultRoomID
	}
	userID := queryOrDefault(r, "userId", payload.UserID)
	if userID == "" {
		userID = defaultUserID
	}

	sender := payload.Sender
	if sender == "" {
		sender = userID
	}

	event := moodModel.Event{
		Mood:         payload.Mood,
		Emoji:        payload.Emoji,
		Label:        payload.Label,
		Message:      payload.Message,
		Type:         moodModel.Kind(payload.Type),
		ResponseType: moodModel.ResponseKind(payload.ResponseType),
		Timestamp:    parseClientTimestamp(payload.Timestamp),
		Sender:       sender,
	}

	stored, err := h.rooms.Append(r.Context(), roomID, event)
	if err != nil {
		if errors.Is(err, moodModel.ErrMissingFields) {
			metrics.ValidationRejects.Inc()
			utils.RespondError(w, http.StatusBadRequest, "Missing required fields")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "Failed to save mood: "+err.Error())
		return
	}

	metrics.Appends.WithLabelValues(string(stored.Type)).Inc()
	utils.RespondDataMessage(w, http.StatusOK, stored, "Mood saved successfully")
}

// parseClientTimestamp keeps a parseable client stamp so the stored event
// shares its dedup key with the sender's local copy. Zero means the store
// stamps server time.
func parseClientTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}

func queryOrDefault(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}
