package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bracket-pool-go/config"
	"bracket-pool-go/database"
	"bracket-pool-go/handlers"
	"bracket-pool-go/logging"
	"bracket-pool-go/middleware"
	"bracket-pool-go/services"

	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Failed to load configuration: %v", err)
	}

	logging.Configure(logging.Config{
		Level:       cfg.Logging.Level,
		Prefix:      cfg.Logging.Prefix,
		EnableColor: cfg.Logging.EnableColor,
		LogDir:      cfg.Logging.LogDir,
		EnableFile:  cfg.Logging.EnableFile,
	})
	cfg.LogConfiguration()

	// Initialize MongoDB connection
	db, err := database.NewMongoConnection(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		Database: cfg.Database.Database,
		Timeout:  cfg.Database.Timeout,
	})
	if err != nil {
		logging.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()

	if err := db.TestConnection(); err != nil {
		logging.Warnf("Database test failed: %v", err)
	}

	// Create repositories
	userRepo := database.NewMongoUserRepository(db)
	leagueRepo := database.NewMongoLeagueRepository(db)
	bracketRepo := database.NewMongoBracketRepository(db)

	// Create services
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret)
	emailService := services.NewEmailService(services.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
	})
	scoringService := services.NewScoringService(leagueRepo, bracketRepo, userRepo)
	leagueService := services.NewLeagueService(leagueRepo, bracketRepo, scoringService)
	bracketService := services.NewBracketService(leagueRepo, bracketRepo)

	// Create handlers
	authHandler := handlers.NewAuthHandler(authService, emailService, cfg.Server.BaseURL)
	leagueHandler := handlers.NewLeagueHandler(leagueService, emailService, cfg.App.CurrentSeason, cfg.Server.BaseURL)
	bracketHandler := handlers.NewBracketHandler(bracketService)
	scoreHandler := handlers.NewScoreHandler(scoringService, leagueService)
	healthHandler := handlers.NewHealthHandler(db)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Setup routes
	r := mux.NewRouter()
	r.Use(middleware.SecurityMiddleware)

	r.HandleFunc("/health", healthHandler.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Auth routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	api.HandleFunc("/auth/forgot-password", authHandler.ForgotPassword).Methods("POST")
	api.HandleFunc("/auth/reset-password", authHandler.ResetPassword).Methods("POST")

	// Authenticated routes
	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware.RequireAuth)
	authed.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	authed.HandleFunc("/leagues", leagueHandler.Create).Methods("POST")
	authed.HandleFunc("/leagues/join", leagueHandler.Join).Methods("POST")
	authed.HandleFunc("/leagues/{id}", leagueHandler.Get).Methods("GET")
	authed.HandleFunc("/leagues/{id}/teams", leagueHandler.UpdateTeams).Methods("PUT")
	authed.HandleFunc("/leagues/{id}/scoring", leagueHandler.UpdateScoring).Methods("PUT")
	authed.HandleFunc("/leagues/{id}/final-four", leagueHandler.UpdateFinalFour).Methods("PUT")
	authed.HandleFunc("/leagues/{id}/locks", leagueHandler.SetRoundLock).Methods("PUT")
	authed.HandleFunc("/leagues/{id}/end", leagueHandler.End).Methods("POST")
	authed.HandleFunc("/leagues/{id}/invite", leagueHandler.Invite).Methods("POST")

	authed.HandleFunc("/leagues/{id}/bracket/official", bracketHandler.GetOfficial).Methods("GET")
	authed.HandleFunc("/leagues/{id}/bracket/official/picks", bracketHandler.PickOfficial).Methods("POST")
	authed.HandleFunc("/leagues/{id}/bracket/official/reset", bracketHandler.ResetOfficial).Methods("POST")
	authed.HandleFunc("/leagues/{id}/bracket", bracketHandler.GetEntry).Methods("GET")
	authed.HandleFunc("/leagues/{id}/brackets/{userId}", bracketHandler.GetMemberEntry).Methods("GET")
	authed.HandleFunc("/leagues/{id}/bracket/picks", bracketHandler.PickEntry).Methods("POST")
	authed.HandleFunc("/leagues/{id}/bracket/reset", bracketHandler.ResetEntry).Methods("POST")

	authed.HandleFunc("/leagues/{id}/score", scoreHandler.MyScore).Methods("GET")
	authed.HandleFunc("/leagues/{id}/standings", scoreHandler.Standings).Methods("GET")

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Infof("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logging.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logging.Errorf("Shutdown error: %v", err)
	}
}
