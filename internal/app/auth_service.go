package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lumka-2025/queue-hero/internal/clock"
	"github.com/lumka-2025/queue-hero/internal/domain"
)

// UserStore is the persistence contract for accounts.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string, role domain.Role, now time.Time) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

const tokenTTL = 7 * 24 * time.Hour

// AuthService registers and authenticates users and mints the bearer tokens
// the dispatch core trusts for (user_id, role).
type AuthService struct {
	users  UserStore
	clock  clock.Clock
	secret []byte
}

func NewAuthService(users UserStore, clk clock.Clock, secret []byte) *AuthService {
	return &AuthService{users: users, clock: clk, secret: secret}
}

type Session struct {
	User  domain.User
	Token string
}

func (s *AuthService) Register(ctx context.Context, username, password string, role domain.Role) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, domain.ErrMissingFields
	}
	if !domain.ValidRole(role) {
		return Session{}, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, username, string(hash), role, s.clock.Now())
	if err != nil {
		return Session{}, err
	}
	return s.session(user)
}

func (s *AuthService) Login(ctx context.Context, username, password string) (Session, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return Session{}, err
	}
	if user == nil {
		return Session{}, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Session{}, domain.ErrInvalidCredentials
	}
	return s.session(*user)
}

// Verify parses a bearer token back into the identity it was minted for.
func (s *AuthService) Verify(tokenString string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" || !domain.ValidRole(claims.Role) {
		return domain.Identity{}, domain.ErrInvalidCredentials
	}
	return domain.Identity{UserID: claims.Subject, Role: claims.Role}, nil
}

type sessionClaims struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func (s *AuthService) session(user domain.User) (Session, error) {
	now := s.clock.Now()
	claims := sessionClaims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{User: user, Token: signed}, nil
}
