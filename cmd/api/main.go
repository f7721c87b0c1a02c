package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"roulette-miniapp-backend/internal/config"
	"roulette-miniapp-backend/internal/handlers"
	"roulette-miniapp-backend/internal/logger"
	"roulette-miniapp-backend/internal/middleware"
	"roulette-miniapp-backend/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New("roulette-api", cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	redisService, err := services.NewRedisService(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisService.Close()

	jwtService := services.NewJWTService(cfg)

	var playLog *services.PlayLog
	if cfg.PlayLogPath != "" {
		playLog, err = services.OpenPlayLog(cfg.PlayLogPath)
		if err != nil {
			zlog.Fatal("failed to open play log", zap.Error(err))
		}
		defer playLog.Close()
	}

	engine := services.NewRoundEngine(redisService, cfg.RoundDuration, cfg.GuardDuration, zlog)
	engine.SetHistory(redisService)
	if playLog != nil {
		engine.SetPlayRecorder(playLog)
	}

	wsHandler := handlers.NewWebSocketHandler(engine, redisService, zlog)
	engine.SetBroadcaster(wsHandler)

	engine.Start()
	defer engine.Stop()

	authHandler := handlers.NewAuthHandler(redisService, jwtService, zlog)
	userHandler := handlers.NewUserHandler(redisService)
	gameHandler := handlers.NewGameHandler(engine, redisService, playLog)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		if err := redisService.Ping(c.Request.Context()); err != nil {
			c.String(503, "unhealthy: %v", err)
			return
		}
		c.String(200, "ok")
	})

	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("/me", userHandler.GetCurrentUser)
		protected.POST("/logout", userHandler.Logout)

		protected.GET("/ws", wsHandler.HandleWebSocket)

		games := protected.Group("/games")
		games.Use(middleware.RateLimitMiddleware(redisService))
		{
			games.POST("/bet", gameHandler.PlaceBet)
			games.GET("/status", gameHandler.GetStatus)
			games.GET("/balance", gameHandler.GetBalance)
			games.GET("/history", gameHandler.GetHistory)
			games.GET("/plays", gameHandler.GetPlays)

			games.GET("/verification", gameHandler.GetVerificationData)
			games.POST("/verify", gameHandler.VerifyRound)
		}
	}

	zlog.Info("server starting",
		zap.String("port", cfg.Port),
		zap.Duration("round", cfg.RoundDuration),
		zap.Duration("guard", cfg.GuardDuration))

	if err := router.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
