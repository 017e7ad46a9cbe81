package main

import (
	"log"
	"net/http"

	_ "github.com/Cynto/watchy-backend/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Cynto/watchy-backend/internal/auth"
	"github.com/Cynto/watchy-backend/internal/cache"
	"github.com/Cynto/watchy-backend/internal/config"
	"github.com/Cynto/watchy-backend/internal/db"
	"github.com/Cynto/watchy-backend/internal/handler"
	"github.com/Cynto/watchy-backend/internal/model"
	"github.com/Cynto/watchy-backend/internal/repository"
	"github.com/Cynto/watchy-backend/internal/router"
	"github.com/Cynto/watchy-backend/internal/service"
)

// @title Watchy API
// @version 1.0
// @description User account service with registration, credential and token authentication.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	userRepo := repository.NewUserRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	userService := service.NewUserService(userRepo, cacheClient)
	authService := service.NewAuthService(userRepo, jwtService)

	userHandler := handler.NewUserHandler(userService)
	authHandler := handler.NewAuthHandler(authService, cfg.SessionCookieName)

	router.Register(e, cfg, userHandler, authHandler, authService)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
