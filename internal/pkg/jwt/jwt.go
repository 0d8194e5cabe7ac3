package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Service signs and parses HS256 tokens for a single secret and lifetime.
// Access and refresh tokens use separate Service values.
type Service struct {
	secret []byte
	ttl    time.Duration
}

type Claims struct {
	UserID string `json:"user_id"`
	jwtlib.RegisteredClaims
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// GenerateToken returns a signed token for userID and its absolute expiry.
func (s *Service) GenerateToken(userID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			ExpiresAt: jwtlib.NewNumericDate(expiresAt),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken checks signature and expiry.
func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, jwtlib.WithExpirationRequired())
}

// ParseIgnoringExpiry checks the signature but accepts expired tokens. Used
// where only the embedded identity matters, e.g. logout.
func (s *Service) ParseIgnoringExpiry(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, jwtlib.WithoutClaimsValidation())
}

func (s *Service) parse(tokenStr string, opts ...jwtlib.ParserOption) (*Claims, error) {
	opts = append(opts, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
