package routes

import (
	"blindmail_server/controllers"
	"blindmail_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match lifecycle operations under /api/match
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService) {
	// Initialize the controller with the MatchService
	controller := controllers.NewMatchController(matchService)

	// Create a subrouter for /api/match
	matchRouter := r.PathPrefix("/api/match").Subrouter()

	// Define routes and their corresponding handlers
	matchRouter.HandleFunc("/find", controller.HandleFindOrCreate).Methods("POST")
	matchRouter.HandleFunc("/connect", controller.HandleConnect).Methods("POST")
	matchRouter.HandleFunc("/skip", controller.HandleSkip).Methods("POST")
	matchRouter.HandleFunc("/unlock-chat", controller.HandleUnlockChat).Methods("POST")
	matchRouter.HandleFunc("/reveal", controller.HandleRequestReveal).Methods("POST")
	matchRouter.HandleFunc("/state", controller.HandleGetState).Methods("GET")
}
