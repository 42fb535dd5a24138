package main

import (
	"fmt"
	"log"
	"net/http"

	"booktrack/internal/config"
	"booktrack/internal/handlers"
	"booktrack/internal/services"
	"booktrack/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// This is our main function - the entry point of our application
func main() {
	// Load .env if present; in production the environment is set directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.Load()

	recordStore := store.NewFileStore(cfg.RemindersFile)
	reminderService := services.NewReminderService(recordStore)
	emailService := services.NewEmailService(services.NewMailer(cfg))

	// Start the daily reminder sweep
	worker := services.NewReminderWorker(recordStore, emailService, cfg.ReminderHour)
	if err := worker.Start(); err != nil {
		log.Fatal("Failed to start reminder worker:", err)
	}

	reminderHandler := handlers.NewReminderHandler(reminderService, worker)
	submitHandler := handlers.NewSubmitHandler(cfg.UpstreamFormURL, http.DefaultClient)
	clientsHandler := handlers.NewClientsHandler(cfg.ClientsCSVFile)

	// Initialize Gin router
	router := gin.Default()

	// Configure trusted proxies
	router.SetTrustedProxies([]string{"127.0.0.1"})

	// Only the form's origins may call us from a browser
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	router.Use(cors.New(corsConfig))

	// Basic routes
	router.GET("/", handlers.HomeHandler)
	router.GET("/health", handlers.HealthHandler)

	// Form submission proxy
	router.POST("/submit", submitHandler.Submit)

	// Client list for the form's autocomplete
	router.POST("/clients/upload", clientsHandler.Upload)
	router.GET("/clients.csv", clientsHandler.Serve)
	router.GET("/clients/suggest", clientsHandler.Suggest)

	// Reminder routes
	reminders := router.Group("/reminders")
	{
		reminders.POST("", reminderHandler.Upsert)
		reminders.POST("/complete", reminderHandler.Complete)
		reminders.GET("", reminderHandler.List)
		reminders.GET("/send-now", reminderHandler.SendNow)
	}

	// Start the server
	fmt.Printf("Server starting on port %s...\n", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
