// Package auth authenticates the single configured administrator and issues the
// bearer tokens that protect the /admin routes.
package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/MikeMC777/cafe-demo/internal/apperr"
	"github.com/MikeMC777/cafe-demo/internal/config"
)

const issuer = "cafe-api"

var ErrInvalidToken = errors.New("invalid token")

// Token is the login response.
// swagger:model LoginResponse
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"86400"`
}

// Credentials is the login payload.
// swagger:model LoginRequest
type Credentials struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"secret"`
}

type Service struct {
	username string
	hash     []byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewService(cfg config.AdminConfig, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		username: cfg.Username,
		hash:     []byte(cfg.PasswordHash),
		secret:   []byte(cfg.JWTSecret),
		ttl:      ttl,
		now:      now,
	}
}

// Login checks the credentials and returns a signed HS256 token.
func (s *Service) Login(c Credentials) (*Token, error) {
	userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(s.username)) == 1
	passOK := CheckPassword(s.hash, c.Password)
	if !userOK || !passOK {
		return nil, apperr.Unauthorized("Credenciales incorrectas")
	}

	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   s.username,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &Token{AccessToken: signed, TokenType: "bearer", ExpiresIn: int64(s.ttl.Seconds())}, nil
}

// Verify parses raw and returns the principal it was issued to.
func (s *Service) Verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject != s.username {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(b), err
}

func CheckPassword(hash []byte, pw string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(pw)) == nil
}
