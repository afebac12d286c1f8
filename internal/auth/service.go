package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/klassico/storefront/internal/models"
	"github.com/klassico/storefront/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Tokens is the pair handed out on login and refresh.
type Tokens struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type AuthService struct {
	users      repo.UserRepository
	issuer     *TokenIssuer
	refresh    RefreshStore
	refreshTTL time.Duration
}

func NewAuthService(users repo.UserRepository, issuer *TokenIssuer, refresh RefreshStore, refreshTTL time.Duration) *AuthService {
	return &AuthService{users: users, issuer: issuer, refresh: refresh, refreshTTL: refreshTTL}
}

func (a *AuthService) Issuer() *TokenIssuer {
	return a.issuer
}

func (a *AuthService) issue(ctx context.Context, user models.User) (Tokens, error) {
	access, err := a.issuer.GenerateToken(user)
	if err != nil {
		return Tokens{}, fmt.Errorf("signing access token: %w", err)
	}
	refresh, err := newRefreshToken()
	if err != nil {
		return Tokens{}, fmt.Errorf("generating refresh token: %w", err)
	}
	if err := a.refresh.Save(ctx, refresh, user.Username, a.refreshTTL); err != nil {
		return Tokens{}, fmt.Errorf("storing refresh token: %w", err)
	}
	return Tokens{AccessToken: access, RefreshToken: refresh}, nil
}

// Login checks the password against the stored bcrypt hash.
func (a *AuthService) Login(ctx context.Context, username, password string) (Tokens, error) {
	user, err := a.users.GetByUsername(ctx, username)
	if errors.Is(err, repo.ErrUserNotFound) {
		return Tokens{}, ErrInvalidCredentials
	}
	if err != nil {
		return Tokens{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Tokens{}, ErrInvalidCredentials
	}
	return a.issue(ctx, user)
}

// Refresh rotates a refresh token and issues a new access token.
func (a *AuthService) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	username, err := a.refresh.Consume(ctx, refreshToken)
	if err != nil {
		return Tokens{}, err
	}
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return Tokens{}, err
	}
	return a.issue(ctx, user)
}

// SeedAdmin creates the admin account unless it exists. An empty password skips seeding.
func (a *AuthService) SeedAdmin(ctx context.Context, username, password string) (bool, error) {
	if password == "" {
		return false, nil
	}
	if _, err := a.users.GetByUsername(ctx, username); err == nil {
		return false, nil
	} else if !errors.Is(err, repo.ErrUserNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hashing admin password: %w", err)
	}
	_, err = a.users.CreateUser(ctx, models.User{Username: username, PasswordHash: string(hash), Role: models.RoleAdmin})
	if err != nil {
		return false, err
	}
	return true, nil
}
