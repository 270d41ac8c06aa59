package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/shelterpartner/report-service/internal/config"
	"github.com/shelterpartner/report-service/internal/database"
	"github.com/shelterpartner/report-service/internal/handlers"
	"github.com/shelterpartner/report-service/internal/jobs"
	"github.com/shelterpartner/report-service/internal/repository"
	cron "github.com/shelterpartner/report-service/internal/scheduler"
	"github.com/shelterpartner/report-service/internal/services"
	"github.com/shelterpartner/report-service/pkg/email"
	"github.com/shelterpartner/report-service/pkg/logger"
	"github.com/shelterpartner/report-service/pkg/middleware"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Report windows and rendered timestamps are anchored to one timezone
	// regardless of where the service runs.
	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		log.Fatalf("Invalid report timezone %q: %v", cfg.ReportTimezone, err)
	}

	// Missing mail credentials is a deployment error; fail at startup
	// rather than on the first scheduled run.
	mailer, err := email.NewMailer(cfg.EmailAddress, cfg.EmailPassword, cfg.SMTPHost, cfg.SMTPPort)
	if err != nil {
		log.Fatalf("Mailer configuration error: %v", err)
	}

	// --- Repositories ---
	animalRepo := repository.NewAnimalRepository(db)
	shelterRepo := repository.NewShelterRepository(db)

	// --- Services ---
	reportService := services.NewReportService(animalRepo, mailer, loc)

	// --- Handlers ---
	reportHandler := handlers.NewReportHandler(reportService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Trigger endpoint hit by the scheduling layer's push delivery
	router.HandleFunc("/reports/scheduled", reportHandler.ScheduledReportHandler).Methods("POST")

	// Admin routes
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/reports/run", reportHandler.RunReportHandler).Methods("POST")
	adminRoutes.HandleFunc("/reports/preview", reportHandler.PreviewReportHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Daily sweep of every shelter's scheduled reports
	invoker := jobs.NewReportInvoker(shelterRepo, reportService, loc)
	cron.StartReportCronJobs(invoker, cfg.ReportCron)

	c := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	handler := c.Handler(router)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
