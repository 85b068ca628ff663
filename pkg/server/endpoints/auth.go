package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/orgpulse/orgpulse/pkg/audit"
	"github.com/orgpulse/orgpulse/pkg/config"
	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/sanitize"
	"github.com/orgpulse/orgpulse/pkg/server"
	"github.com/orgpulse/orgpulse/pkg/server/middleware"
	"github.com/orgpulse/orgpulse/pkg/server/store"
	"github.com/orgpulse/orgpulse/pkg/validation"

	"github.com/google/uuid"
)

// RegisterRequest is the payload for POST /api/auth/register
type RegisterRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	CompanyID    *string `json:"company_id"`
	DepartmentID *string `json:"department_id"`
}

// LoginRequest is the payload for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the wire shape of a user
type UserResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	CompanyID    *string `json:"company_id"`
	DepartmentID *string `json:"department_id"`
}

func userResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		CompanyID:    user.CompanyID,
		DepartmentID: user.DepartmentID,
	}
}

// RegisterAuthEndpoints registers the authentication endpoints
func RegisterAuthEndpoints(s *server.Server) {
	s.Router.HandleFunc("/api/auth/register", handleRegister(s.Users, s.Config, s.Session)).Methods("POST")
	s.Router.HandleFunc("/api/auth/login", handleLogin(s.Users, s.Session)).Methods("POST")

	whoamiRouter := s.Router.PathPrefix("/api/auth/whoami").Subrouter()
	whoamiRouter.Use(s.Session.Middleware)
	whoamiRouter.HandleFunc("", handleWhoami(s.Users)).Methods("GET")
}

func handleRegister(users store.UsersStore, cfg *config.Config, session *middleware.SessionAuthenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !cfg.RegistrationOpen {
			respondWithError(w, http.StatusForbidden, "Registration is closed")
			return
		}

		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Name = sanitize.Text(req.Name)

		var issues validation.Issues
		validation.CheckEmail(&issues, req.Email)
		validation.CheckPassword(&issues, req.Password)
		validation.CheckName(&issues, req.Name)
		if req.Role != "" {
			validation.CheckRole(&issues, req.Role)
		}
		if !issues.Empty() {
			respondWithIssues(w, "Validation failed", issues)
			return
		}

		role := cfg.RegistrationRole
		if req.Role != "" {
			role = req.Role
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cfg.BcryptCost)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to process password")
			return
		}

		user := &model.User{
			ID:           uuid.NewString(),
			Email:        req.Email,
			Name:         req.Name,
			Role:         role,
			CompanyID:    req.CompanyID,
			DepartmentID: req.DepartmentID,
			PasswordHash: hash,
		}

		if err := users.CreateUser(user); err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				audit.Log(audit.AuthenticateEvent{
					Email:        req.Email,
					ClientIP:     r.RemoteAddr,
					Action:       "register",
					Success:      false,
					ErrorMessage: "email already registered",
				})
				respondWithError(w, http.StatusBadRequest, "Email is already registered")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		audit.Log(audit.AuthenticateEvent{
			Email:    user.Email,
			UserID:   user.ID,
			ClientIP: r.RemoteAddr,
			Action:   "register",
			Success:  true,
		})

		token, err := session.IssueToken(user)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
			return
		}

		respondWithData(w, http.StatusCreated, map[string]interface{}{
			"user":  userResponse(user),
			"token": token,
		})
	}
}

func handleLogin(users store.UsersStore, session *middleware.SessionAuthenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		user, err := users.FetchUserByEmail(req.Email)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				audit.Log(audit.AuthenticateEvent{
					Email:        req.Email,
					ClientIP:     r.RemoteAddr,
					Action:       "login",
					Success:      false,
					ErrorMessage: "unknown email",
				})
				respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to authenticate")
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
			audit.Log(audit.AuthenticateEvent{
				Email:        req.Email,
				UserID:       user.ID,
				ClientIP:     r.RemoteAddr,
				Action:       "login",
				Success:      false,
				ErrorMessage: "bad password",
			})
			respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := session.IssueToken(user)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to issue token")
			return
		}

		event := audit.AuthenticateEvent{
			Email:    user.Email,
			UserID:   user.ID,
			ClientIP: r.RemoteAddr,
			Action:   "login",
			Success:  true,
		}
		if user.CompanyID != nil {
			event.CompanyID = *user.CompanyID
		}
		audit.Log(event)

		respondWithData(w, http.StatusOK, map[string]interface{}{
			"user":  userResponse(user),
			"token": token,
		})
	}
}

func handleWhoami(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := middleware.IdentityFromContext(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Unable to determine identity")
			return
		}

		user, err := users.FetchUser(identity.UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				respondWithError(w, http.StatusUnauthorized, "User no longer exists")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to load user")
			return
		}

		respondWithData(w, http.StatusOK, userResponse(user))
	}
}
