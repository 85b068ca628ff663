package endpoints

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/orgpulse/orgpulse/pkg/audit"
	"github.com/orgpulse/orgpulse/pkg/config"
	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/rbac"
	"github.com/orgpulse/orgpulse/pkg/sanitize"
	"github.com/orgpulse/orgpulse/pkg/server"
	"github.com/orgpulse/orgpulse/pkg/server/middleware"
	"github.com/orgpulse/orgpulse/pkg/server/store"
	"github.com/orgpulse/orgpulse/pkg/validation"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// UserRequest is the payload for creating or updating a user
type UserRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Name         string  `json:"name"`
	Role         string  `json:"role"`
	CompanyID    *string `json:"company_id"`
	DepartmentID *string `json:"department_id"`
}

// RegisterUsersEndpoints registers the user administration endpoints
func RegisterUsersEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/api/admin/users").Subrouter()
	r.Use(s.Session.Middleware)

	guard := func(h http.HandlerFunc) http.Handler {
		return middleware.RequirePermission(rbac.ManageUsers, h)
	}

	r.Handle("", guard(handleListUsers(s.Users, s.Config))).Methods("GET")
	r.Handle("", guard(handleCreateUser(s.Users, s.Config))).Methods("POST")
	r.Handle("/import", guard(handleImportUsers(s.Users, s.Config))).Methods("POST")
	r.Handle("/{id}", guard(handleGetUser(s.Users))).Methods("GET")
	r.Handle("/{id}", guard(handleUpdateUser(s.Users, s.Config))).Methods("PUT")
	r.Handle("/{id}", guard(handleDeleteUser(s.Users))).Methods("DELETE")
}

// scopeCompany restricts a query to the caller's company unless the
// caller is a super admin, who may pass an explicit company_id filter.
func scopeCompany(identity *middleware.Identity, r *http.Request) *string {
	if identity.Role == rbac.RoleSuperAdmin {
		if companyID := r.URL.Query().Get("company_id"); companyID != "" {
			return &companyID
		}
		return nil
	}
	companyID := identity.CompanyID
	return &companyID
}

func handleListUsers(users store.UsersStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())
		limit, offset := listParams(r, cfg.APIListLimitMax)

		filter := store.UserFilter{
			CompanyID:    scopeCompany(identity, r),
			Search:       r.URL.Query().Get("search"),
			Role:         r.URL.Query().Get("role"),
			DepartmentID: r.URL.Query().Get("department_id"),
			Limit:        limit,
			Offset:       offset,
		}

		list, total, err := users.ListUsers(filter)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list users")
			return
		}

		items := make([]UserResponse, 0, len(list))
		for i := range list {
			items = append(items, userResponse(&list[i]))
		}
		respondWithData(w, http.StatusOK, pagedData("users", items, total))
	}
}

func handleCreateUser(users store.UsersStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		var req UserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Name = sanitize.Text(req.Name)

		var issues validation.Issues
		validation.CheckEmail(&issues, req.Email)
		validation.CheckPassword(&issues, req.Password)
		validation.CheckName(&issues, req.Name)
		validation.CheckRole(&issues, req.Role)
		if !issues.Empty() {
			respondWithIssues(w, "Validation failed", issues)
			return
		}

		// Company admins only create users inside their own company.
		companyID := req.CompanyID
		if identity.Role != rbac.RoleSuperAdmin {
			scoped := identity.CompanyID
			companyID = &scoped
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
			Role:         req.Role,
			CompanyID:    companyID,
			DepartmentID: req.DepartmentID,
			PasswordHash: hash,
		}

		if err := users.CreateUser(user); err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				respondWithError(w, http.StatusBadRequest, "Email is already registered")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		audit.Log(audit.AdminEvent{
			ActorID:   identity.UserID,
			CompanyID: identity.CompanyID,
			ClientIP:  r.RemoteAddr,
			Entity:    "user",
			EntityID:  user.ID,
			Action:    "create",
			Success:   true,
		})

		respondWithData(w, http.StatusCreated, userResponse(user))
	}
}

func handleGetUser(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())
		id := mux.Vars(r)["id"]

		user, err := users.FetchUser(id)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				respondWithError(w, http.StatusNotFound, "User not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to load user")
			return
		}

		if !canAccessUser(identity, user) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}

		respondWithData(w, http.StatusOK, userResponse(user))
	}
}

func canAccessUser(identity *middleware.Identity, user *model.User) bool {
	if identity.Role == rbac.RoleSuperAdmin {
		return true
	}
	return user.CompanyID != nil && *user.CompanyID == identity.CompanyID
}

func handleUpdateUser(users store.UsersStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())
		id := mux.Vars(r)["id"]

		user, err := users.FetchUser(id)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				respondWithError(w, http.StatusNotFound, "User not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to load user")
			return
		}
		if !canAccessUser(identity, user) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}

		var req UserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var issues validation.Issues
		if req.Email != "" {
			validation.CheckEmail(&issues, req.Email)
		}
		if req.Name != "" {
			req.Name = sanitize.Text(req.Name)
			validation.CheckName(&issues, req.Name)
		}
		if req.Role != "" {
			validation.CheckRole(&issues, req.Role)
		}
		if req.Password != "" {
			validation.CheckPassword(&issues, req.Password)
		}
		if !issues.Empty() {
			respondWithIssues(w, "Validation failed", issues)
			return
		}

		if req.Email != "" {
			user.Email = req.Email
		}
		if req.Name != "" {
			user.Name = req.Name
		}
		if req.Role != "" {
			user.Role = req.Role
		}
		if req.DepartmentID != nil {
			user.DepartmentID = req.DepartmentID
		}
		if req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), cfg.BcryptCost)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to process password")
				return
			}
			user.PasswordHash = hash
		}

		if err := users.UpdateUser(user); err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				respondWithError(w, http.StatusBadRequest, "Email is already registered")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to update user")
			return
		}

		audit.Log(audit.AdminEvent{
			ActorID:   identity.UserID,
			CompanyID: identity.CompanyID,
			ClientIP:  r.RemoteAddr,
			Entity:    "user",
			EntityID:  user.ID,
			Action:    "update",
			Success:   true,
		})

		respondWithData(w, http.StatusOK, userResponse(user))
	}
}

func handleDeleteUser(users store.UsersStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())
		id := mux.Vars(r)["id"]

		if id == identity.UserID {
			respondWithError(w, http.StatusBadRequest, "Cannot delete your own account")
			return
		}

		user, err := users.FetchUser(id)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				respondWithError(w, http.StatusNotFound, "User not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to load user")
			return
		}
		if !canAccessUser(identity, user) {
			respondWithError(w, http.StatusNotFound, "User not found")
			return
		}

		if err := users.DeleteUser(id); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to delete user")
			return
		}

		audit.Log(audit.AdminEvent{
			ActorID:   identity.UserID,
			CompanyID: identity.CompanyID,
			ClientIP:  r.RemoteAddr,
			Entity:    "user",
			EntityID:  id,
			Action:    "delete",
			Success:   true,
		})

		respondWithMessage(w, http.StatusOK, "User deleted")
	}
}

// ImportResult reports the outcome of a CSV user import
type ImportResult struct {
	Imported int                `json:"imported"`
	Skipped  int                `json:"skipped"`
	Issues   []validation.Issue `json:"issues,omitempty"`
}

// handleImportUsers ingests a CSV with header email,name,role,department_id.
// Rows that fail validation are skipped and reported, not fatal.
func handleImportUsers(users store.UsersStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		reader := csv.NewReader(r.Body)
		header, err := reader.Read()
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid CSV input")
			return
		}

		cols := map[string]int{}
		for i, name := range header {
			cols[name] = i
		}
		for _, required := range []string{"email", "name"} {
			if _, ok := cols[required]; !ok {
				respondWithError(w, http.StatusBadRequest, "CSV must have email and name columns")
				return
			}
		}

		field := func(row []string, name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		result := ImportResult{}
		for {
			row, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				respondWithError(w, http.StatusBadRequest, "Invalid CSV input")
				return
			}

			email := field(row, "email")
			name := sanitize.Text(field(row, "name"))
			role := field(row, "role")
			if role == "" {
				role = string(rbac.RoleEmployee)
			}

			var issues validation.Issues
			validation.CheckEmail(&issues, email)
			validation.CheckName(&issues, name)
			validation.CheckRole(&issues, role)
			if !issues.Empty() {
				result.Skipped++
				for _, issue := range issues {
					issue.Field = email + ": " + issue.Field
					result.Issues = append(result.Issues, issue)
				}
				continue
			}

			// Imported users get a random placeholder password; they
			// must reset it before logging in.
			hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cfg.BcryptCost)
			if err != nil {
				respondWithError(w, http.StatusInternalServerError, "Failed to process password")
				return
			}

			companyID := identity.CompanyID
			user := &model.User{
				ID:           uuid.NewString(),
				Email:        email,
				Name:         name,
				Role:         role,
				CompanyID:    &companyID,
				PasswordHash: hash,
			}
			if departmentID := field(row, "department_id"); departmentID != "" {
				user.DepartmentID = &departmentID
			}

			if err := users.CreateUser(user); err != nil {
				if errors.Is(err, store.ErrDuplicateEmail) {
					result.Skipped++
					result.Issues = append(result.Issues, validation.Issue{
						Field:   email,
						Message: "email is already registered",
					})
					continue
				}
				respondWithError(w, http.StatusInternalServerError, "Failed to import users")
				return
			}
			result.Imported++
		}

		audit.Log(audit.AdminEvent{
			ActorID:   identity.UserID,
			CompanyID: identity.CompanyID,
			ClientIP:  r.RemoteAddr,
			Entity:    "user",
			EntityID:  "batch",
			Action:    "import",
			Success:   true,
		})

		respondWithData(w, http.StatusOK, result)
	}
}
