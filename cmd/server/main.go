package main

import (
	"log"

	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/config"
	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/database"
	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/handlers"
	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/middleware"
	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/models"
	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/services"
	"github.com/Muaaviya-cxd4t/hal-4.0manager/internal/ws"

	_ "github.com/Muaaviya-cxd4t/hal-4.0manager/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           HAL 4.0 Manager API
// @version         1.0
// @description     API for hackathon meal redemption kiosks and judge scoring
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	database.AutoMigrate(db)
	rdb := database.ConnectRedis(cfg)

	resolver, err := services.NewMealWindowResolver(cfg.BreakfastWindow, cfg.LunchWindow, cfg.DinnerWindow)
	if err != nil {
		log.Fatalf("invalid meal window config: %v", err)
	}

	hub := ws.NewHub()

	authService := services.NewAuthService(db, cfg.JWTSecret)
	participantService := services.NewParticipantService(db)
	scoringService := services.NewScoringService(db)
	redemptionStore := services.NewGormRedemptionStore(db, rdb)
	redemptionService := services.NewRedemptionService(resolver, redemptionStore, clockwork.NewRealClock())

	authHandler := handlers.NewAuthHandler(authService)
	participantHandler := handlers.NewParticipantHandler(participantService)
	scoringHandler := handlers.NewScoringHandler(scoringService)
	redemptionHandler := handlers.NewRedemptionHandler(redemptionService, hub)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/feed", wsHandler.HandleFeed)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		redemptions := api.Group("/redemptions")
		redemptions.Use(middleware.JWTAuth(authService), middleware.RequireRole(models.RoleFoodService))
		{
			redemptions.POST("/attempt", redemptionHandler.Attempt)
			redemptions.GET("/status/:token", redemptionHandler.Status)
		}

		participants := api.Group("/participants")
		participants.Use(middleware.JWTAuth(authService), middleware.RequireRole(models.RoleCoordinator))
		{
			participants.POST("", participantHandler.Provision)
			participants.POST("/import", participantHandler.Import)
			participants.GET("", participantHandler.List)
			participants.GET("/:token", participantHandler.Get)
		}

		teams := api.Group("/teams")
		teams.Use(middleware.JWTAuth(authService), middleware.RequireRole(models.RoleCoordinator))
		{
			teams.POST("", scoringHandler.CreateTeam)
			teams.GET("", scoringHandler.ListTeams)
		}

		scores := api.Group("/scores")
		scores.Use(middleware.JWTAuth(authService))
		{
			scores.POST("", middleware.RequireRole(models.RoleJudge), scoringHandler.Submit)
			scores.GET("", middleware.RequireRole(models.RoleJudge, models.RoleCoordinator), scoringHandler.List)
			scores.GET("/leaderboard", middleware.RequireRole(models.RoleJudge, models.RoleCoordinator), scoringHandler.Leaderboard)
			scores.GET("/export", middleware.RequireRole(models.RoleCoordinator), scoringHandler.Export)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
