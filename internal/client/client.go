// Package client is a Go SDK for the storefront API that keeps the login
// state of one user. Credentials travel as cookies held in a per-Session jar.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"
)

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrMissingCredentials = errors.New("email and password are required")
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SignupInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Config for New. HTTPClient, when set, must carry its own cookie jar.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Session holds the signed-in user for one API base URL. It is safe for
// concurrent use.
type Session struct {
	baseURL string
	http    *http.Client

	mu   sync.RWMutex
	user *User
}

// New returns a Session for baseURL with a fresh cookie jar.
func New(baseURL string) (*Session, error) {
	return NewWithConfig(Config{BaseURL: baseURL})
}

func NewWithConfig(cfg Config) (*Session, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("client: base url is required")
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("client: cookie jar: %w", err)
		}
		hc = &http.Client{Jar: jar, Timeout: timeout}
	}

	return &Session{baseURL: baseURL, http: hc}, nil
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) setUser(u *User) {
	s.mu.Lock()
	s.user = u
	s.mu.Unlock()
}

// Init restores the user from existing cookies. A missing or dead session
// is not an error: the Session simply ends up with no user. An expired
// access token is refreshed once before giving up.
func (s *Session) Init(ctx context.Context) error {
	u, err := s.profile(ctx)
	if err == nil {
		s.setUser(u)
		return nil
	}
	if !IsUnauthorized(err) {
		s.setUser(nil)
		return err
	}

	if err := s.Refresh(ctx); err != nil {
		s.setUser(nil)
		if IsUnauthorized(err) {
			return nil
		}
		return err
	}

	u, err = s.profile(ctx)
	if err != nil {
		s.setUser(nil)
		if IsUnauthorized(err) {
			return nil
		}
		return err
	}
	s.setUser(u)
	return nil
}

func (s *Session) Signup(ctx context.Context, in SignupInput) (*User, error) {
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	var out struct {
		User User `json:"user"`
	}
	body := map[string]string{"name": in.Name, "email": in.Email, "password": in.Password}
	if err := s.do(ctx, http.MethodPost, "/api/auth/signup", body, &out); err != nil {
		return nil, err
	}
	s.setUser(&out.User)
	return s.User(), nil
}

func (s *Session) Login(ctx context.Context, email, password string) (*User, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	var out struct {
		User User `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := s.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	s.setUser(&out.User)
	return s.User(), nil
}

// Logout asks the server to end the session. The cached user is dropped only
// when the server acknowledges.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	s.setUser(nil)
	return nil
}

// Refresh rotates the credential cookies.
func (s *Session) Refresh(ctx context.Context) error {
	return s.do(ctx, http.MethodPost, "/api/auth/refresh-token", nil, nil)
}

func (s *Session) profile(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := s.do(ctx, http.MethodGet, "/api/auth/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Session) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if decodeErr != nil {
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}
