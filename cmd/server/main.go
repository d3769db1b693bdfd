package main

import (
	"log"
	"time"

	"casepilot/config"
	"casepilot/db"
	"casepilot/handlers"
	"casepilot/middleware"
	"casepilot/services"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Open database and migrate the schema
	if err := db.Open(cfg.DBPath, cfg.Environment); err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize file storage (R2 when configured, local disk otherwise)
	services.InitializeStorage(cfg)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handlers.HTTPErrorHandler

	// Middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderContentType, "X-User-Name", "X-User-Email"},
	}))
	e.Use(echomiddleware.BodyLimit("25M"))
	e.Use(middleware.Identity())

	// Uploaded files (local storage only; R2 serves from its public URL)
	e.Static("/files", cfg.UploadDir)

	e.GET("/api/ping", handlers.PingHandler)

	api := e.Group("/api")
	{
		// Dashboard and analytics
		api.GET("/stats", handlers.GetStatsHandler)
		api.GET("/stats/insights", handlers.GetInsightsHandler)

		// Cases
		api.GET("/cases", handlers.GetCasesHandler)
		api.GET("/cases/:id", handlers.GetCaseHandler)
		api.POST("/cases", handlers.CreateCaseHandler)
		api.PUT("/cases/:id", handlers.UpdateCaseHandler)
		api.DELETE("/cases/:id", handlers.DeleteCaseHandler)

		// Clients
		api.GET("/clients", handlers.GetClientsHandler)
		api.GET("/clients/:id", handlers.GetClientHandler)
		api.POST("/clients", handlers.CreateClientHandler)
		api.PUT("/clients/:id", handlers.UpdateClientHandler)
		api.DELETE("/clients/:id", handlers.DeleteClientHandler)

		// Documents
		api.GET("/documents", handlers.GetDocumentsHandler)
		api.GET("/documents/:id", handlers.GetDocumentHandler)
		api.POST("/documents", handlers.CreateDocumentHandler)
		api.PUT("/documents/:id", handlers.UpdateDocumentHandler)
		api.DELETE("/documents/:id", handlers.DeleteDocumentHandler)

		// Tasks
		api.GET("/tasks", handlers.GetTasksHandler)
		api.GET("/tasks/:id", handlers.GetTaskHandler)
		api.POST("/tasks", handlers.CreateTaskHandler)
		api.PUT("/tasks/:id", handlers.UpdateTaskHandler)
		api.DELETE("/tasks/:id", handlers.DeleteTaskHandler)

		// Notifications
		api.GET("/notifications", handlers.GetNotificationsHandler)
		api.PUT("/notifications/read-all", handlers.MarkAllNotificationsReadHandler)
		api.PUT("/notifications/:id/read", handlers.MarkNotificationReadHandler)
		api.DELETE("/notifications", handlers.ClearNotificationsHandler)

		// Search and calendar
		api.GET("/search", handlers.GlobalSearchHandler)
		api.GET("/calendar", handlers.GetCalendarHandler)

		// Files and reports
		api.POST("/upload", handlers.UploadFileHandler)
		api.GET("/files/:key", handlers.DownloadFileHandler)
		api.GET("/reports/cases", handlers.ExportCasesHandler)

		// Demo data
		api.POST("/seed", handlers.SeedHandler)
	}

	// Expire old notifications every hour
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for range ticker.C {
			if err := services.CleanupExpiredNotifications(db.DB); err != nil {
				log.Printf("Error cleaning up expired notifications: %v", err)
			}
		}
	}()

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
