package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"notify-center-api/config"
	"notify-center-api/controllers"
	"notify-center-api/middleware"
	"notify-center-api/notifiers"
	"notify-center-api/routes"
	"notify-center-api/services"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Send logs to stdout and the log file
	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database
	config.InitDB()

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Notifier channel registry; channels are registered explicitly here,
	// nothing is discovered at runtime.
	registry := notifiers.NewRegistry()
	smtp := notifiers.NewSMTPNotifier()
	registry.Register(smtp, notifiers.SMTPIcon)

	// The trigger pipeline: webhook -> queue -> dispatcher -> channels
	queue := services.NewNotificationQueue()
	evaluator := services.NewRuleConditionEvaluator()
	dispatcher := services.NewNotifierService(config.DB, queue, evaluator, registry)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dispatcher.Start(ctx)

	// Daily history retention sweep
	retention := services.NewRetentionService(config.DB)
	if err := retention.Start(); err != nil {
		log.Printf("Warning: Failed to start retention schedule: %v", err)
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Security headers
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	router.Use(middleware.CORSMiddleware())

	trigger := controllers.NewTriggerController(queue, services.NewTriggerHistoryService(config.DB))
	notifier := controllers.NewNotifierController(registry, smtp)
	routes.SetupRoutes(router, trigger, notifier)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Soft shutdown: stop accepting triggers, let the dispatcher finish the
	// call it is working on, then exit. Queued but undispatched calls are
	// dropped (fire-and-forget contract).
	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	dispatcher.Wait()
	retention.Stop()
	log.Println("Shutdown complete")
}
