package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/session"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service contains the signup/login/logout business logic. Credentials are
// issued through Sessions; a session that cannot be persisted fails the
// whole call (fail-closed).
type Service struct {
	users    UserDirectory
	sessions Sessions
	log      *slog.Logger
}

type AuthResult struct {
	User   *domain.User
	Tokens session.Pair
}

func NewService(users UserDirectory, sessions Sessions, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		log:      log,
	}
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	if !emailPattern.MatchString(email) {
		return nil, &ValidationError{Field: "email", Message: "invalid email"}
	}
	if len(req.Password) < minPasswordLength {
		return nil, &ValidationError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength)}
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleCustomer,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	tokens, err := s.sessions.Start(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("user signed up", "user_id", user.ID)
	user.PasswordHash = ""
	return &AuthResult{User: user, Tokens: tokens}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, &ValidationError{Field: "email", Message: "email and password are required"}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := checkPassword(req.Password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.sessions.Start(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("user logged in", "user_id", user.ID)
	user.PasswordHash = ""
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Logout revokes the refresh record if the token names one. It always succeeds.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	s.sessions.Revoke(ctx, refreshToken)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (session.Pair, error) {
	return s.sessions.Refresh(ctx, refreshToken)
}

func (s *Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func toPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}
