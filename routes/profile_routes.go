package routes

import (
	"blindmail_server/controllers"
	"blindmail_server/services"

	"github.com/gorilla/mux"
)

// RegisterProfileRoutes sets up routes for profile operations under /api/profile
func RegisterProfileRoutes(r *mux.Router, profileService *services.ProfileService) {
	// Initialize the controller with the ProfileService
	controller := controllers.NewProfileController(profileService)

	// Create a subrouter for /api/profile
	profileRouter := r.PathPrefix("/api/profile").Subrouter()

	// Define routes and their corresponding handlers
	profileRouter.HandleFunc("", controller.HandleUpsertProfile).Methods("POST")
	profileRouter.HandleFunc("", controller.HandleGetProfile).Methods("GET")
	profileRouter.HandleFunc("/public", controller.HandleGetPublicProfile).Methods("GET")
}
