package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

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

// CompanyRequest is the payload for creating or updating a company
type CompanyRequest struct {
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Size     string `json:"size"`
}

// RegisterCompaniesEndpoints registers the company administration endpoints
func RegisterCompaniesEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/api/admin/companies").Subrouter()
	r.Use(s.Session.Middleware)

	guard := func(h http.HandlerFunc) http.Handler {
		return middleware.RequirePermission(rbac.ManageCompanies, h)
	}

	r.Handle("", guard(handleListCompanies(s.Companies, s.Config))).Methods("GET")
	r.Handle("", guard(handleCreateCompany(s.Companies))).Methods("POST")
	r.Handle("/{id}", guard(handleGetCompany(s.Companies))).Methods("GET")
	r.Handle("/{id}", guard(handleUpdateCompany(s.Companies))).Methods("PUT")
	r.Handle("/{id}", guard(handleDeleteCompany(s.Companies))).Methods("DELETE")
}

func handleListCompanies(companies store.CompaniesStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := listParams(r, cfg.APIListLimitMax)

		list, total, err := companies.ListCompanies(limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list companies")
			return
		}
		respondWithData(w, http.StatusOK, pagedData("companies", list, total))
	}
}

func handleCreateCompany(companies store.CompaniesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		var req CompanyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Name = sanitize.Text(req.Name)
		var issues validation.Issues
		validation.CheckName(&issues, req.Name)
		if !issues.Empty() {
			respondWithIssues(w, "Validation failed", issues)
			return
		}

		company := &model.Company{
			ID:       uuid.NewString(),
			Name:     req.Name,
			Industry: sanitize.Text(req.Industry),
			Size:     req.Size,
		}

		if err := companies.CreateCompany(company); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create company")
			return
		}

		audit.Log(audit.AdminEvent{
			ActorID:  identity.UserID,
			ClientIP: r.RemoteAddr,
			Entity:   "company",
			EntityID: company.ID,
			Action:   "create",
			Success:  true,
		})

		respondWithData(w, http.StatusCreated, company)
	}
}

func handleGetCompany(companies store.CompaniesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		company, err := companies.FetchCompany(mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, store.ErrCompanyNotFound) {
				respondWithError(w, http.StatusNotFound, "Company not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to load company")
			return
		}
		respondWithData(w, http.StatusOK, company)
	}
}

func handleUpdateCompany(companies store.CompaniesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())
		id := mux.Vars(r)["id"]

		company, err := companies.FetchCompany(id)
		if err != nil {
			if errors.Is(err, store.ErrCompanyNotFound) {
				respondWithError(w, http.StatusNotFound, "Company not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to load company")
			return
		}

		var req CompanyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if req.Name != "" {
			req.Name = sanitize.Text(req.Name)
			var issues validation.Issues
			validation.CheckName(&issues, req.Name)
			if !issues.Empty() {
				respondWithIssues(w, "Validation failed", issues)
				return
			}
			company.Name = req.Name
		}
		if req.Industry != "" {
			company.Industry = sanitize.Text(req.Industry)
		}
		if req.Size != "" {
			company.Size = req.Size
		}

		if err := companies.UpdateCompany(company); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update company")
			return
		}

		audit.Log(audit.AdminEvent{
			ActorID:  identity.UserID,
			ClientIP: r.RemoteAddr,
			Entity:   "company",
			EntityID: company.ID,
			Action:   "update",
			Success:  true,
		})

		respondWithData(w, http.StatusOK, company)
	}
}

func handleDeleteCompany(companies store.CompaniesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())
		id := mux.Vars(r)["id"]

		if err := companies.DeleteCompany(id); err != nil {
			if errors.Is(err, store.ErrCompanyNotFound) {
				respondWithError(w, http.StatusNotFound, "Company not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to delete company")
			return
		}

		audit.Log(audit.AdminEvent{
			ActorID:  identity.UserID,
			ClientIP: r.RemoteAddr,
			Entity:   "company",
			EntityID: id,
			Action:   "delete",
			Success:  true,
		})

		respondWithMessage(w, http.StatusOK, "Company deleted")
	}
}
