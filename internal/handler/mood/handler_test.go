package mood

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	roomService "github.com/lanyicong/moodlink/backend/internal/service/room"
)

func setupRouter() (*chi.Mux, *roomService.Service) {
	rooms := roomService.NewService()
	handler := New(rooms)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, rooms
}

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func TestPostMoodThenPartnerGet(t *testing.T) {
	r, _ := setupRouter()

	body := map[string]string{
		"mood":   "happy",
		"emoji":  "😊",
		"label":  "开心",
		"sender": "user1",
		"roomId": "room-a",
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/mood", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var posted apiResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &posted); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !posted.Success {
		t.Fatalf("expected success envelope, got %s", resp.Body.String())
	}
	if posted.Message != "Mood saved successfully" {
		t.Fatalf("unexpected message: %s", posted.Message)
	}

	req = httptest.NewRequest(http.MethodGet, "/mood?roomId=room-a&userId=user2", nil)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var got apiResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	var view struct {
		PartnerMood *struct {
			Mood string `json:"mood"`
		} `json:"partnerMood"`
	}
	if err := json.Unmarshal(got.Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.PartnerMood == nil || view.PartnerMood.Mood != "happy" {
		t.Fatalf("expected partner mood happy, got %+v", view.PartnerMood)
	}
}

func TestPostMissingFields(t *testing.T) {
	r, _ := setupRouter()

	payload := []byte(`{"message":"hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/mood", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	var got apiResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Success || got.Error != "Missing required fields" {
		t.Fatalf("unexpected error envelope: %s", resp.Body.String())
	}
}

func TestPostGarbageBodyTreatedAsEmpty(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/mood", bytes.NewReader([]byte("not-json")))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for undecodable body, got %d", resp.Code)
	}
}

func TestGetDefaultsRoomAndUser(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/mood", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var got apiResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !got.Success {
		t.Fatalf("expected success envelope, got %s", resp.Body.String())
	}
}

func TestPostKeepsClientTimestampForDedup(t *testing.T) {
	r, _ := setupRouter()

	payload := []byte(`{"mood":"miss","sender":"user1","timestamp":"2024-03-01T08:30:00.000Z"}`)
	req := httptest.NewRequest(http.MethodPost, "/mood", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var got apiResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	var stored struct {
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(got.Data, &stored); err != nil {
		t.Fatalf("decode stored event: %v", err)
	}
	if stored.Timestamp != "2024-03-01T08:30:00Z" {
		t.Fatalf("client timestamp not kept: %s", stored.Timestamp)
	}
}
