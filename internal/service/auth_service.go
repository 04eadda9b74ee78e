package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	apperrors "farmersconnect/internal/errors"
	"farmersconnect/internal/metrics"
	"farmersconnect/internal/model"
	"farmersconnect/internal/repository"
)

const bcryptCost = 10

// emailPattern is a shape check only: text@text.text.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// RegisterInput carries a registration request after binding.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
	IsFarmer  bool
}

// AuthService handles registration and credential checks.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
}

type authService struct {
	users   repository.UserRepository
	log     zerolog.Logger
	metrics *metrics.Recorder
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, log zerolog.Logger, rec *metrics.Recorder) AuthService {
	return &authService{
		users:   users,
		log:     log.With().Str("component", "auth").Logger(),
		metrics: rec,
	}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register stores a new user with a hashed password.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := NormalizeEmail(in.Email)
	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)

	switch {
	case email == "":
		s.metrics.RecordRegistration(metrics.OutcomeInvalid)
		return nil, apperrors.Missing("email")
	case firstName == "":
		s.metrics.RecordRegistration(metrics.OutcomeInvalid)
		return nil, apperrors.Missing("first_name")
	case lastName == "":
		s.metrics.RecordRegistration(metrics.OutcomeInvalid)
		return nil, apperrors.Missing("last_name")
	case in.Password == "":
		s.metrics.RecordRegistration(metrics.OutcomeInvalid)
		return nil, apperrors.Missing("password")
	case !emailPattern.MatchString(email):
		s.metrics.RecordRegistration(metrics.OutcomeInvalid)
		return nil, apperrors.Invalid("email", "invalid email format")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			s.metrics.RecordRegistration(metrics.OutcomeInvalid)
			return nil, apperrors.Invalid("password", "password longer than 72 bytes")
		}
		s.metrics.RecordRegistration(metrics.OutcomeError)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hashedPassword),
		IsFarmer:     in.IsFarmer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			s.metrics.RecordRegistration(metrics.OutcomeInvalid)
			return nil, apperrors.ErrConflict
		}
		s.metrics.RecordRegistration(metrics.OutcomeError)
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.metrics.RecordRegistration(metrics.OutcomeSuccess)
	s.log.Info().Str("email", email).Msg("user registered")
	return user, nil
}

// Authenticate checks a password against the stored hash. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = NormalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.metrics.RecordLogin(metrics.OutcomeInvalid)
			return nil, apperrors.ErrAuth
		}
		s.metrics.RecordLogin(metrics.OutcomeError)
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.metrics.RecordLogin(metrics.OutcomeInvalid)
		return nil, apperrors.ErrAuth
	}

	s.metrics.RecordLogin(metrics.OutcomeSuccess)
	s.log.Info().Str("email", email).Msg("user logged in")
	return user, nil
}
