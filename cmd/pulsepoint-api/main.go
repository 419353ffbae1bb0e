package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/obj8899/studio/internal/assistant"
	"github.com/obj8899/studio/internal/config"
	"github.com/obj8899/studio/internal/database"
	"github.com/obj8899/studio/internal/handlers"
	"github.com/obj8899/studio/internal/hub"
	"github.com/obj8899/studio/internal/logger"
	appmw "github.com/obj8899/studio/internal/middleware"
	"github.com/obj8899/studio/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	l := logger.Configure(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.DatabaseURL, cfg.Workflow.StoreTimeout)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		l.Fatal().Err(err).Msg("failed to run migrations")
	}

	assistantClient, err := assistant.New(cfg.Assistant, l)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to create assistant client")
	}

	var moderator services.Moderator = assistantClient
	if !assistantClient.Enabled() {
		l.Warn().Msg("assistant is not configured; chat messages are stored unmoderated")
		moderator = services.PassthroughModerator{}
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry)
	profileService := services.NewProfileService(db)
	teamService := services.NewTeamService(db, profileService)
	joinRequestService := services.NewJoinRequestService(db, teamService, profileService, cfg.Workflow, l)
	chatService := services.NewChatService(db, teamService, profileService, moderator, cfg.Workflow.ChatHistoryLimit)
	hackathonService := services.NewHackathonService(db)
	emailService := services.NewEmailService(cfg.SMTP)
	if !emailService.IsConfigured() {
		l.Warn().Msg("SMTP is not configured; join request emails are disabled")
	}

	eventHub := hub.NewHub(l)
	go eventHub.Run(ctx)

	profileHandler := handlers.NewProfileHandler(profileService)
	teamHandler := handlers.NewTeamHandler(teamService)
	joinRequestHandler := handlers.NewJoinRequestHandler(joinRequestService, teamService, profileService, emailService, eventHub, cfg.BaseURL)
	chatHandler := handlers.NewChatHandler(chatService, teamService, profileService, eventHub)
	sseHandler := handlers.NewSSEHandler(eventHub, teamService, profileService)
	dashboardHandler := handlers.NewDashboardHandler(teamService, joinRequestService)
	assistantHandler := handlers.NewAssistantHandler(assistantClient, teamService, profileService)
	hackathonHandler := handlers.NewHackathonHandler(hackathonService)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", appmw.RequestIDHeader},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())
	app.Use(appmw.RequestLogger(l))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})
	api.Get("/hackathons", hackathonHandler.List)
	api.Post("/assistant/faq", assistantHandler.FAQ)

	protected := api.Group("")
	protected.Use(appmw.Auth(jwtService))

	protected.Post("/profiles/me", profileHandler.CreateMe)
	protected.Get("/profiles/me", profileHandler.GetMe)
	protected.Patch("/profiles/me", profileHandler.UpdateMe)
	protected.Get("/profiles/:id", profileHandler.Get)

	protected.Get("/teams", teamHandler.List)
	protected.Post("/teams", teamHandler.Create)
	protected.Get("/teams/owned", teamHandler.Owned)
	protected.Get("/teams/joined", teamHandler.Joined)
	protected.Get("/teams/:id", teamHandler.Get)
	protected.Get("/teams/:id/members", teamHandler.GetMembers)

	protected.Post("/teams/:id/join-requests", joinRequestHandler.Submit)
	protected.Get("/teams/:id/join-requests", joinRequestHandler.ListForTeam)
	protected.Get("/join-requests/incoming", joinRequestHandler.Incoming)
	protected.Get("/join-requests/outgoing", joinRequestHandler.Outgoing)
	protected.Post("/join-requests/:id/approve", joinRequestHandler.Approve)
	protected.Post("/join-requests/:id/reject", joinRequestHandler.Reject)

	protected.Get("/teams/:id/messages", chatHandler.History)
	protected.Post("/teams/:id/messages", chatHandler.Send)
	protected.Get("/teams/:id/chat/ws", chatHandler.Connect)

	protected.Get("/teams/:id/events", sseHandler.Connect)
	protected.Post("/events/:clientId/subscribe/:id", sseHandler.Subscribe)
	protected.Post("/events/:clientId/unsubscribe/:id", sseHandler.Unsubscribe)

	protected.Get("/dashboard", dashboardHandler.Get)

	protected.Post("/assistant/suggest-teams", assistantHandler.SuggestTeams)
	protected.Post("/assistant/teams/:id/suggest-members", assistantHandler.SuggestMembers)
	protected.Post("/assistant/moderate", assistantHandler.Moderate)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		l.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	l.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("graceful shutdown failed")
	}
}
