package main

import (
	"log"
	"net/http"

	"fleet_tracker/internal/config"
	"fleet_tracker/internal/logger"
	"fleet_tracker/internal/middleware"
	"fleet_tracker/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Router comes with recovery and request logging attached
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	addr := config.GetEnv("LISTEN_ADDR", "0.0.0.0:8080")
	log.Println("Server running at", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
