package main

import (
	"log"
	"net/http"
	"os"

	"fleetlink/internal/config"
	"fleetlink/internal/logger"
	"fleetlink/internal/middleware"
	"fleetlink/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Connect to the database
	config.InitDB()

	// Rate limiter tiers are process-wide and built once, before serving
	middleware.InitRateLimiters()

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	log.Printf("FleetLink API running at :%s", port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+port, handler))
}
