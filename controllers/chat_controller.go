package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"blindmail_server/services"
)

// ChatController handles letters and chat messages
type ChatController struct {
	ChatService *services.ChatService
}

// NewChatController initializes the chat controller
func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{ChatService: service}
}

// HandleSendLetter stores a blind-mail letter
func (c *ChatController) HandleSendLetter(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID  string `json:"matchId"`
		SenderID string `json:"senderId"`
		Body     string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.MatchID == "" || request.SenderID == "" {
		http.Error(w, `{"error": "matchId, senderId and body are required"}`, http.StatusBadRequest)
		return
	}

	message, err := c.ChatService.SendLetter(r.Context(), request.MatchID, request.SenderID, request.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "message": message})
}

// HandleSendChatMessage stores a realtime chat line
func (c *ChatController) HandleSendChatMessage(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID  string `json:"matchId"`
		SenderID string `json:"senderId"`
		Body     string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.MatchID == "" || request.SenderID == "" {
		http.Error(w, `{"error": "matchId, senderId and body are required"}`, http.StatusBadRequest)
		return
	}

	message, err := c.ChatService.SendChatMessage(r.Context(), request.MatchID, request.SenderID, request.Body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "message": message})
}

// HandleGetMessages fetches messages for a match, optionally filtered by type
func (c *ChatController) HandleGetMessages(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("matchId")
	messageType := r.URL.Query().Get("type")
	limitStr := r.URL.Query().Get("limit")

	if matchID == "" {
		http.Error(w, `{"error": "matchId is required"}`, http.StatusBadRequest)
		return
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 100
	}

	messages, err := c.ChatService.GetMessages(r.Context(), matchID, messageType, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"messages": messages})
}
