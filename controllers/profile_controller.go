package controllers

import (
	"encoding/json"
	"net/http"

	"blindmail_server/models"
	"blindmail_server/services"
)

// ProfileController handles profile reads and owner-only writes
type ProfileController struct {
	ProfileService *services.ProfileService
}

// NewProfileController creates a new ProfileController instance
func NewProfileController(service *services.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: service}
}

// HandleUpsertProfile creates or replaces the caller's profile
func (pc *ProfileController) HandleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		http.Error(w, `{"error": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	stored, err := pc.ProfileService.UpsertProfile(r.Context(), profile)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "profile": stored})
}

// HandleGetProfile returns the caller's own profile
func (pc *ProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	profile, err := pc.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// HandleGetPublicProfile returns a profile as seen by another user; the
// identifying handle stays hidden until their shared match is revealed
func (pc *ProfileController) HandleGetPublicProfile(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	viewerID := r.URL.Query().Get("viewerId")
	if userID == "" {
		http.Error(w, `{"error": "userId is required"}`, http.StatusBadRequest)
		return
	}

	profile, err := pc.ProfileService.PublicProfile(r.Context(), userID, viewerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
