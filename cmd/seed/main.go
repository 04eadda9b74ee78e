package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"farmersconnect/internal/config"
	"farmersconnect/internal/db"
	apperrors "farmersconnect/internal/errors"
	"farmersconnect/internal/logger"
	"farmersconnect/internal/repository"
	"farmersconnect/internal/service"
)

// SeedUser is one account in the seed file.
type SeedUser struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	IsFarmer  *bool  `json:"is_farmer"`
}

func main() {
	source := flag.String("source", "seed_users.json", "path or http(s) URL of a JSON array of users")
	flag.Parse()

	cfg := config.Load()
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console"})
	if err != nil {
		log = zerolog.New(os.Stderr)
	}

	if cfg.DBDriver == config.DriverMemory {
		log.Fatal().Msg("seeding the memory store has no effect; set DB_DRIVER to sqlite or mysql")
	}
	gormDB, err := db.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	log.Info().Str("source", *source).Msg("reading seed users")
	users, err := readSource(*source)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read seed users")
	}

	authService := service.NewAuthService(repository.NewUserRepository(gormDB), log, nil)
	created, skipped, err := seedUsers(context.Background(), authService, users, log)
	if err != nil {
		log.Fatal().Err(err).Int("created", created).Msg("seed aborted")
	}

	log.Info().Int("created", created).Int("skipped", skipped).Int("total", len(users)).Msg("seed completed")
}

// readSource loads users from a local file or an http(s) URL.
func readSource(source string) ([]SeedUser, error) {
	var body []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		client := &http.Client{Timeout: 30 * time.Second}
		resp, err := client.Get(source)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", source, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch %s: status %d", source, resp.StatusCode)
		}
		if body, err = io.ReadAll(resp.Body); err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}
	} else {
		var err error
		if body, err = os.ReadFile(source); err != nil {
			return nil, err
		}
	}

	var users []SeedUser
	if err := json.Unmarshal(body, &users); err != nil {
		return nil, fmt.Errorf("parse seed users: %w", err)
	}
	return users, nil
}

// seedUsers registers each user through the auth service. Existing and
// invalid entries are skipped; any other failure stops the run.
func seedUsers(ctx context.Context, auth service.AuthService, users []SeedUser, log zerolog.Logger) (created, skipped int, err error) {
	for _, u := range users {
		isFarmer := true
		if u.IsFarmer != nil {
			isFarmer = *u.IsFarmer
		}
		_, err := auth.Register(ctx, service.RegisterInput{
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Password:  u.Password,
			IsFarmer:  isFarmer,
		})
		switch {
		case err == nil:
			created++
		case errors.Is(err, apperrors.ErrConflict):
			log.Debug().Str("email", u.Email).Msg("already registered, skipping")
			skipped++
		case errors.Is(err, apperrors.ErrValidation):
			log.Warn().Err(err).Str("email", u.Email).Msg("invalid seed user, skipping")
			skipped++
		default:
			return created, skipped, fmt.Errorf("register %s: %w", u.Email, err)
		}
	}
	return created, skipped, nil
}
