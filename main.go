package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"blindmail_server/config"
	"blindmail_server/routes"
	"blindmail_server/services"
	"blindmail_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	cfg := config.LoadConfigOrPanic()

	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient(cfg.AWSConfig.Region)
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Initialize the Socket.IO notification channel
	socketServer := socket.NewSocketServer()
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Fatalf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	// Initialize Services
	decisionService := &services.DecisionService{Dynamo: dynamoService}
	chatService := &services.ChatService{Dynamo: dynamoService, Notifier: socketServer}
	matchService := &services.MatchService{
		Dynamo:    dynamoService,
		Decisions: decisionService,
		Chat:      chatService,
		Notifier:  socketServer,
	}
	profileService := &services.ProfileService{Dynamo: dynamoService}
	s3Service := services.NewS3Service(cfg.AWSConfig.Region, cfg.AWSConfig.S3BucketName)

	log.Printf("Using server port: %s\n", cfg.AppConfig.Port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Blind Mail")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterMatchRoutes(r, matchService)
	routes.RegisterChatRoutes(r, chatService)
	routes.RegisterProfileRoutes(r, profileService)
	routes.RegisterS3Routes(r, s3Service)

	// Notification stream for the UI layer
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.AppConfig.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", cfg.AppConfig.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.AppConfig.Port, corsHandler))
}
