package routes

import (
	"blindmail_server/controllers"
	"blindmail_server/services"

	"github.com/gorilla/mux"
)

// RegisterChatRoutes sets up routes for letters and chat under /api/chat
func RegisterChatRoutes(r *mux.Router, chatService *services.ChatService) {
	// Initialize the controller with the ChatService
	controller := controllers.NewChatController(chatService)

	// Create a subrouter for /api/chat
	chatRouter := r.PathPrefix("/api/chat").Subrouter()

	// Define routes and their corresponding handlers
	chatRouter.HandleFunc("/letter", controller.HandleSendLetter).Methods("POST")
	chatRouter.HandleFunc("/message", controller.HandleSendChatMessage).Methods("POST")
	chatRouter.HandleFunc("/messages", controller.HandleGetMessages).Methods("GET")
}
