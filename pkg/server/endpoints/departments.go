package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/orgpulse/orgpulse/pkg/audit"
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

// DepartmentRequest is the payload for creating a department
type DepartmentRequest struct {
	Name      string  `json:"name"`
	CompanyID string  `json:"company_id"`
	ParentID  *string `json:"parent_id"`
}

// RegisterDepartmentsEndpoints registers the department administration endpoints
func RegisterDepartmentsEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/api/admin/departments").Subrouter()
	r.Use(s.Session.Middleware)

	guard := func(h http.HandlerFunc) http.Handler {
		return middleware.RequirePermission(rbac.ManageDepartments, h)
	}

	r.Handle("", guard(handleListDepartments(s.Departments))).Methods("GET")
	r.Handle("", guard(handleCreateDepartment(s.Departments))).Methods("POST")
	r.Handle("/{id}", guard(handleGetDepartment(s.Departments))).Methods("GET")
	r.Handle("/{id}", guard(handleDeleteDepartment(s.Departments))).Methods("DELETE")
}

func handleListDepartments(departments store.DepartmentsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		list, err := departments.ListDepartments(scopeCompany(identity, r))
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list departments")
			return
		}
		respondWithData(w, http.StatusOK, map[string]interface{}{"departments": list})
	}
}

func handleCreateDepartment(departments store.DepartmentsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		var req DepartmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Name = sanitize.Text(req.Name)
		companyID := req.CompanyID
		if identity.Role != rbac.RoleSuperAdmin {
			companyID = identity.CompanyID
		}

		var issues validation.Issues
		validation.CheckName(&issues, req.Name)
		validation.CheckRequired(&issues, "company_id", companyID)
		if !issues.Empty() {
			respondWithIssues(w, "Validation failed", issues)
			return
		}

		department := &model.Department{
			ID:        uuid.NewString(),
			Name:      req.Name,
			CompanyID: companyID,
			ParentID:  req.ParentID,
		}

		if err := departments.CreateDepartment(department); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create department")
			return
		}

		audit.Log(audit.AdminEvent{
			ActorID:   identity.UserID,
			CompanyID: companyID,
			ClientIP:  r.RemoteAddr,
			Entity:    "department",
			EntityID:  department.ID,
			Action:    "create",
			Success:   true,
		})

		respondWithData(w, http.StatusCreated, department)
	}
}

func handleGetDepartment(departments store.DepartmentsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		department, err := departments.FetchDepartment(mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, store.ErrDepartmentNotFound) {
				respondWithError(w, http.StatusNotFound, "Department not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to load department")
			return
		}

		if identity.Role != rbac.RoleSuperAdmin && department.CompanyID != identity.CompanyID {
			respondWithError(w, http.StatusNotFound, "Department not found")
			return
		}

		respondWithData(w, http.StatusOK, department)
	}
}

func handleDeleteDepartment(departments store.DepartmentsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())
		id := mux.Vars(r)["id"]

		department, err := departments.FetchDepartment(id)
		if err != nil {
			if errors.Is(err, store.ErrDepartmentNotFound) {
				respondWithError(w, http.StatusNotFound, "Department not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to load department")
			return
		}
		if identity.Role != rbac.RoleSuperAdmin && department.CompanyID != identity.CompanyID {
			respondWithError(w, http.StatusNotFound, "Department not found")
			return
		}

		if err := departments.DeleteDepartment(id); err != nil {
			if errors.Is(err, store.ErrDepartmentInUse) {
				respondWithError(w, http.StatusBadRequest, "Department has members or child departments")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to delete department")
			return
		}

		audit.Log(audit.AdminEvent{
			ActorID:   identity.UserID,
			CompanyID: department.CompanyID,
			ClientIP:  r.RemoteAddr,
			Entity:    "department",
			EntityID:  id,
			Action:    "delete",
			Success:   true,
		})

		respondWithMessage(w, http.StatusOK, "Department deleted")
	}
}
