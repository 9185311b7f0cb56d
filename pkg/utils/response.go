package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondData 发送成功响应
func RespondData(w http.ResponseWriter, status int, data interface{}) {
	RespondJSON(w, status, envelope{Success: true, Data: data})
}

// RespondDataMessage 发送带提示消息的成功响应
func RespondDataMessage(w http.ResponseWriter, status int, data interface{}, message string) {
	RespondJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

// RespondError 发送错误响应
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, envelope{Success: false, Error: message})
}
