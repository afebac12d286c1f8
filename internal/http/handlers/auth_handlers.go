package handlers

import (
	"errors"
	"net/http"

	"github.com/klassico/storefront/internal/auth"
	"github.com/klassico/storefront/internal/logger"
	"go.uber.org/zap"
)

// LoginHandler godoc
// @Summary Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body UserLogin true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Failure 429 {string} string "Too many requests"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials UserLogin
	if err := readJSON(w, r, &credentials); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	if credentials.Username == "" || credentials.Password == "" {
		http.Error(w, "Missing credentials", http.StatusBadRequest)
		return
	}

	tokens, err := authService.Login(r.Context(), credentials.Username, credentials.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		logger.FromContext(r.Context()).Info("Login rejected", zap.String("username", credentials.Username))
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err != nil {
		internalError(w, r, "could not generate token", err)
		return
	}

	respond(w, r, http.StatusOK, LoginResult{Token: tokens.AccessToken, RefreshToken: tokens.RefreshToken})
}

// RefreshHandler godoc
// @Summary Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "refresh token"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /refresh [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := readJSON(w, r, &req); err != nil || req.RefreshToken == "" {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	tokens, err := authService.Refresh(r.Context(), req.RefreshToken)
	if errors.Is(err, auth.ErrRefreshTokenNotFound) {
		http.Error(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}
	if err != nil {
		internalError(w, r, "could not refresh token", err)
		return
	}

	respond(w, r, http.StatusOK, LoginResult{Token: tokens.AccessToken, RefreshToken: tokens.RefreshToken})
}
