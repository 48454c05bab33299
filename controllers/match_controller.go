package controllers

import (
	"encoding/json"
	"net/http"

	"blindmail_server/services"
)

// MatchController handles HTTP requests for match lifecycle actions
type MatchController struct {
	MatchService *services.MatchService
}

// NewMatchController creates a new MatchController instance
func NewMatchController(matchService *services.MatchService) *MatchController {
	return &MatchController{MatchService: matchService}
}

// HandleFindOrCreate finds the caller's active match or pairs them with a
// free candidate
func (mc *MatchController) HandleFindOrCreate(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	match, err := mc.MatchService.FindOrCreateMatch(r.Context(), request.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"matchId": match.MatchID,
		"status":  match.Status,
	})
}

// HandleConnect declares the caller's unlock_chat intent
func (mc *MatchController) HandleConnect(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.MatchID == "" || request.UserID == "" {
		http.Error(w, `{"error": "matchId and userId are required"}`, http.StatusBadRequest)
		return
	}

	if err := mc.MatchService.Connect(r.Context(), request.MatchID, request.UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// HandleSkip rejects a match
func (mc *MatchController) HandleSkip(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.MatchID == "" {
		http.Error(w, `{"error": "matchId is required"}`, http.StatusBadRequest)
		return
	}

	if err := mc.MatchService.Skip(r.Context(), request.MatchID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// HandleUnlockChat applies the chat-unlock transition when the letter quota
// holds
func (mc *MatchController) HandleUnlockChat(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.MatchID == "" {
		http.Error(w, `{"error": "matchId is required"}`, http.StatusBadRequest)
		return
	}

	if err := mc.MatchService.UnlockChat(r.Context(), request.MatchID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// HandleRequestReveal declares the caller's reveal intent
func (mc *MatchController) HandleRequestReveal(w http.ResponseWriter, r *http.Request) {
	var request struct {
		MatchID string `json:"matchId"`
		UserID  string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.MatchID == "" || request.UserID == "" {
		http.Error(w, `{"error": "matchId and userId are required"}`, http.StatusBadRequest)
		return
	}

	result, err := mc.MatchService.RequestReveal(r.Context(), request.MatchID, request.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":             true,
		"messageCount":   result.MessageCount,
		"daysSinceStart": result.DaysSinceStart,
		"status":         result.Status,
	})
}

// HandleGetState returns the dashboard snapshot for one participant
func (mc *MatchController) HandleGetState(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("matchId")
	userID := r.URL.Query().Get("userId")
	if matchID == "" || userID == "" {
		http.Error(w, `{"error": "matchId and userId are required"}`, http.StatusBadRequest)
		return
	}

	state, err := mc.MatchService.GetMatchState(r.Context(), matchID, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
