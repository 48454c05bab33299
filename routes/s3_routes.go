package routes

import (
	"blindmail_server/controllers"
	"blindmail_server/services"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up routes for avatar storage under /api/s3
func RegisterS3Routes(r *mux.Router, s3Service *services.S3Service) {
	// Initialize the controller with the S3Service
	controller := controllers.NewS3Controller(s3Service)

	// Create a subrouter for /api/s3
	s3Router := r.PathPrefix("/api/s3").Subrouter()

	// Define routes and their corresponding handlers
	s3Router.HandleFunc("/presigned-url", controller.HandleGenerateUploadURL).Methods("GET")
	s3Router.HandleFunc("/read-url", controller.HandleGenerateReadURL).Methods("GET")
}
