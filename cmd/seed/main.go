package main

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"messagely/internal/config"
	"messagely/internal/db"
	"messagely/internal/logger"
	"messagely/internal/model"
	"messagely/internal/repository"
)

// seedUser describes a demo user plus their plaintext password.
type seedUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

var demoUsers = []seedUser{
	{Username: "alice", Password: "password1", FirstName: "Alice", LastName: "Anderson", Phone: "+14155550101"},
	{Username: "bob", Password: "password2", FirstName: "Bob", LastName: "Baker", Phone: "+14155550102"},
	{Username: "carol", Password: "password3", FirstName: "Carol", LastName: "Clark", Phone: "+14155550103"},
}

type seedMessage struct {
	From string
	To   string
	Body string
}

var demoMessages = []seedMessage{
	{From: "alice", To: "bob", Body: "hi bob, checking in"},
	{From: "bob", To: "alice", Body: "hey alice, all good here"},
	{From: "carol", To: "alice", Body: "lunch tomorrow?"},
}

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, true)

	log.Info().Msg("starting seed script")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Message{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)

	created := 0
	for _, su := range demoUsers {
		if _, err := userRepo.FindByUsername(ctx, su.Username); err == nil {
			log.Info().Str("username", su.Username).Msg("user exists, skipping")
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatal().Err(err).Str("username", su.Username).Msg("check user")
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.Password), cfg.BcryptCost)
		if err != nil {
			log.Fatal().Err(err).Msg("hash password")
		}

		now := time.Now().UTC()
		user := &model.User{
			Username:    su.Username,
			Password:    string(hashed),
			FirstName:   su.FirstName,
			LastName:    su.LastName,
			Phone:       su.Phone,
			JoinAt:      now,
			LastLoginAt: now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatal().Err(err).Str("username", su.Username).Msg("create user")
		}
		created++
	}

	seeded := 0
	if created > 0 {
		for _, sm := range demoMessages {
			message := &model.Message{
				FromUsername: sm.From,
				ToUsername:   sm.To,
				Body:         sm.Body,
				SentAt:       time.Now().UTC(),
			}
			if err := messageRepo.Create(ctx, message); err != nil {
				log.Fatal().Err(err).Msg("create message")
			}
			seeded++
		}
	}

	log.Info().Int("users", created).Int("messages", seeded).Msg("seed completed")
}
