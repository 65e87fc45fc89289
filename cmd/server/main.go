package main

import (
	"net/http"
	"os"

	_ "messagely/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"messagely/internal/auth"
	"messagely/internal/cache"
	"messagely/internal/config"
	"messagely/internal/db"
	"messagely/internal/handler"
	"messagely/internal/logger"
	"messagely/internal/model"
	"messagely/internal/repository"
	"messagely/internal/router"
	"messagely/internal/service"
)

// @title Messagely API
// @version 1.0
// @description Minimal user-to-user messaging API with JWT authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	e := echo.New()
	e.HideBanner = true

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
		for _, table := range []interface{}{&model.Message{}, &model.User{}} {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warn().Err(err).Msg("drop table (may not exist)")
			}
		}
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Message{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService, cacheClient, cfg.BcryptCost)
	userService := service.NewUserService(userRepo, cacheClient)
	messageService := service.NewMessageService(messageRepo, userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, messageService)
	messageHandler := handler.NewMessageHandler(messageService)

	// Register routes
	router.Register(e, cfg, log, authHandler, userHandler, messageHandler)

	addr := ":" + cfg.ServerPort
	log.Info().Str("addr", addr).Msg("starting server")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server start")
	}
}
