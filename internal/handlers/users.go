package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dsny-backend/internal/database"
	"dsny-backend/internal/dsny"
	"dsny-backend/internal/models"
	"dsny-backend/pkg/utils"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserStore manages logins.
type UserStore interface {
	UserLookup
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`      // "worker" or "admin"
	WorkerID string `json:"worker_id"` // roster id, required for workers
}

type CreateUserResponse struct {
	Success bool                 `json:"success"`
	User    *models.UserResponse `json:"user,omitempty"`
	Message string               `json:"message,omitempty"`
}

// CreateUser adds a login. Worker logins must name a worker on the roster.
func CreateUser(engine *dsny.Engine, users UserStore, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		req.Name = strings.TrimSpace(req.Name)
		req.WorkerID = strings.TrimSpace(req.WorkerID)

		if req.Email == "" || req.Password == "" || req.Name == "" || req.Role == "" {
			utils.RespondError(w, http.StatusBadRequest, "Email, password, name, and role are required")
			return
		}

		user := models.User{
			ID:    uuid.New().String(),
			Email: req.Email,
			Name:  req.Name,
			Role:  req.Role,
		}
		switch req.Role {
		case models.RoleAdmin:
			if req.WorkerID != "" {
				utils.RespondError(w, http.StatusBadRequest, "Admins are not bound to a worker")
				return
			}
		case models.RoleWorker:
			if _, ok := engine.Resolver.Worker(req.WorkerID); !ok {
				utils.RespondError(w, http.StatusBadRequest, "worker_id must name a worker on the roster")
				return
			}
			user.WorkerID = &req.WorkerID
		default:
			utils.RespondError(w, http.StatusBadRequest, "Role must be 'worker' or 'admin'")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("❌ Failed to hash password", "err", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
			return
		}
		user.Password = string(hash)

		created, err := users.CreateUser(r.Context(), user)
		if errors.Is(err, database.ErrUserExists) {
			utils.RespondError(w, http.StatusConflict, "A login with this email or worker already exists")
			return
		}
		if err != nil {
			logger.Error("❌ Failed to create user", "email", user.Email, "err", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		logger.Info("✅ User created", "email", created.Email, "role", created.Role, "worker_id", req.WorkerID)
		resp := created.ToUserResponse()
		utils.RespondJSON(w, http.StatusCreated, CreateUserResponse{
			Success: true,
			User:    &resp,
			Message: "User created successfully",
		})
	}
}

// ListUsers returns every login without password hashes.
func ListUsers(users UserStore, logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := users.ListUsers(r.Context())
		if err != nil {
			logger.Error("❌ Failed to list users", "err", err)
			utils.RespondError(w, http.StatusInternalServerError, "Failed to list users")
			return
		}
		resp := make([]models.UserResponse, 0, len(list))
		for i := range list {
			resp = append(resp, list[i].ToUserResponse())
		}
		utils.RespondSuccess(w, resp)
	}
}
