package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Cynto/watchy-backend/internal/cache"
	"github.com/Cynto/watchy-backend/internal/config"
	"github.com/Cynto/watchy-backend/internal/db"
	apperrors "github.com/Cynto/watchy-backend/internal/errors"
	"github.com/Cynto/watchy-backend/internal/model"
	"github.com/Cynto/watchy-backend/internal/repository"
	"github.com/Cynto/watchy-backend/internal/service"
)

type seedUser struct {
	username string
	email    string
	password string
	dob      time.Time
}

var seedUsers = []seedUser{
	{username: "alice", email: "alice@example.com", password: "Secret1!pass", dob: time.Date(1994, 3, 12, 0, 0, 0, 0, time.UTC)},
	{username: "bob", email: "bob@example.com", password: "Secret2!pass", dob: time.Date(1990, 7, 1, 0, 0, 0, 0, time.UTC)},
	{username: "carol", email: "carol@example.com", password: "Secret3!pass", dob: time.Date(2001, 11, 23, 0, 0, 0, 0, time.UTC)},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	userService := service.NewUserService(repository.NewUserRepository(gormDB), cacheClient)

	ctx := context.Background()
	created, skipped := 0, 0
	for _, s := range seedUsers {
		user, err := userService.Register(ctx, s.username, s.email, s.password, s.dob)
		if err != nil {
			var conflict *apperrors.ConflictError
			if errors.As(err, &conflict) {
				log.Printf("Skipping %s: %s already taken", s.username, conflict.Field)
				skipped++
				continue
			}
			log.Fatalf("Failed to seed user %s: %v", s.username, err)
		}
		log.Printf("Created user %s (%s)", user.Username, user.UserID)
		created++
	}

	log.Printf("Seed complete: %d created, %d skipped", created, skipped)
}
