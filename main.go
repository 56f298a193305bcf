// File: clubsync/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clubsync/config"
	"clubsync/database"
	availabilityRepo "clubsync/database/repository/availability"
	bookingRepo "clubsync/database/repository/booking"
	userRepoPkg "clubsync/database/repository/user"
	"clubsync/handlers"
	"clubsync/routes"
	"clubsync/services/intelligence"
	"clubsync/services/scheduler"
	"clubsync/utils"

	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	rulesRepo := availabilityRepo.NewMongoAvailabilityRepo()
	historyRepo := bookingRepo.NewMongoBookingRepo()

	// Optional external advisor. Advisor-assisted requests are rejected at
	// validation time when no key is configured.
	var advisor intelligence.Advisor
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		client, err := intelligence.NewGeminiClient(context.Background(), key, config.AppConfig.AdvisorModel)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize advisor: %v", err)
		}
		timeout := time.Duration(config.AppConfig.AdvisorTimeoutSeconds) * time.Second
		advisor = intelligence.NewGeminiAdvisor(client, timeout)
		logger.Sugar().Infof("main: external advisor enabled (%s)", config.AppConfig.AdvisorModel)
	} else {
		logger.Info("main: no advisor API key configured, running local-heuristic only")
	}

	schedulerService, err := scheduler.NewDefaultSchedulerService(
		userRepo, rulesRepo, historyRepo, advisor, false,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize scheduler: %v", err)
	}
	schedulerService.LookbackDays = config.AppConfig.SchedulerLookbackDays

	// handlers.
	agentHandler := handlers.NewAgentHandler(schedulerService, utils.GetCacheClient())
	healthHandler := &handlers.HealthHandler{Users: userRepo}
	authHandler := &handlers.AuthHandler{Users: userRepo}
	availabilityHandler := &handlers.AvailabilityHandler{Rules: rulesRepo}

	router := routes.SetupRouter()
	routes.RegisterAuthRoutes(router, authHandler)
	routes.RegisterAvailabilityRoutes(router, availabilityHandler)
	routes.RegisterAgentRoutes(router, agentHandler, healthHandler)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("main: listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: mongo disconnect: %v", err)
	}
}
