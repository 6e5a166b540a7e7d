package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"dsny-backend/internal/models"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is how long a login token stays valid.
const TokenTTL = 7 * 24 * time.Hour

// UserLookup finds a login by email.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	OK    bool                 `json:"ok"`
	Token string               `json:"token,omitempty"`
	User  *models.UserResponse `json:"user,omitempty"`
}

// IssueToken signs the claims the auth middleware reads back.
func IssueToken(jwtSecret string, user models.User, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(TokenTTL).Unix(),
	}
	if user.WorkerID != nil {
		claims["worker_id"] = *user.WorkerID
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
}

func Login(users UserLookup, jwtSecret string, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeLogin(w, http.StatusBadRequest, LoginResponse{OK: false})
			return
		}

		logger.Info("🔐 Login attempt", "email", req.Email)

		if jwtSecret == "" {
			logger.Error("❌ JWT secret not configured")
			writeLogin(w, http.StatusInternalServerError, LoginResponse{OK: false})
			return
		}

		user, err := users.GetUserByEmail(r.Context(), req.Email)
		if err != nil {
			logger.Warn("❌ User not found", "email", req.Email)
			writeLogin(w, http.StatusUnauthorized, LoginResponse{OK: false})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			logger.Warn("❌ Invalid password", "email", req.Email)
			writeLogin(w, http.StatusUnauthorized, LoginResponse{OK: false})
			return
		}

		tokenString, err := IssueToken(jwtSecret, user, time.Now())
		if err != nil {
			logger.Error("❌ Failed to create token", "err", err)
			writeLogin(w, http.StatusInternalServerError, LoginResponse{OK: false})
			return
		}

		userResponse := user.ToUserResponse()
		logger.Info("✅ Login successful", "email", user.Email, "role", user.Role)
		writeLogin(w, http.StatusOK, LoginResponse{
			OK:    true,
			Token: tokenString,
			User:  &userResponse,
		})
	}
}

func writeLogin(w http.ResponseWriter, status int, resp LoginResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}
