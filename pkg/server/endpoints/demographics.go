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

// DemographicFieldRequest is the payload for creating a demographic field
type DemographicFieldRequest struct {
	Name      string   `json:"name"`
	FieldType string   `json:"field_type"`
	Options   []string `json:"options"`
	Required  bool     `json:"required"`
}

var demographicFieldTypes = map[string]bool{
	"text":   true,
	"number": true,
	"date":   true,
	"select": true,
}

// RegisterDemographicsEndpoints registers the demographic field endpoints
func RegisterDemographicsEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/api/admin/demographics").Subrouter()
	r.Use(s.Session.Middleware)

	guard := func(h http.HandlerFunc) http.Handler {
		return middleware.RequirePermission(rbac.ManageDemographics, h)
	}

	r.Handle("", guard(handleListDemographicFields(s.Demographics))).Methods("GET")
	r.Handle("", guard(handleCreateDemographicField(s.Demographics))).Methods("POST")
	r.Handle("/{id}", guard(handleDeleteDemographicField(s.Demographics))).Methods("DELETE")
}

func handleListDemographicFields(demographics store.DemographicsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		fields, err := demographics.ListFields(identity.CompanyID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list demographic fields")
			return
		}
		respondWithData(w, http.StatusOK, map[string]interface{}{"fields": fields})
	}
}

func handleCreateDemographicField(demographics store.DemographicsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		var req DemographicFieldRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Name = sanitize.Text(req.Name)

		var issues validation.Issues
		validation.CheckName(&issues, req.Name)
		if !demographicFieldTypes[req.FieldType] {
			issues.Add("field_type", "must be one of text, number, date, select")
		}
		if req.FieldType == "select" && len(req.Options) == 0 {
			issues.Add("options", "select fields need at least one option")
		}
		if !issues.Empty() {
			respondWithIssues(w, "Validation failed", issues)
			return
		}

		field := &model.DemographicField{
			ID:        uuid.NewString(),
			CompanyID: identity.CompanyID,
			Name:      req.Name,
			FieldType: req.FieldType,
			Options:   joinOptions(req.Options),
			Required:  req.Required,
		}

		if err := demographics.CreateField(field); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create demographic field")
			return
		}

		audit.Log(audit.AdminEvent{
			ActorID:   identity.UserID,
			CompanyID: identity.CompanyID,
			ClientIP:  r.RemoteAddr,
			Entity:    "demographic_field",
			EntityID:  field.ID,
			Action:    "create",
			Success:   true,
		})

		respondWithData(w, http.StatusCreated, field)
	}
}

func handleDeleteDemographicField(demographics store.DemographicsStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())
		id := mux.Vars(r)["id"]

		if err := demographics.DeleteField(id); err != nil {
			if errors.Is(err, store.ErrFieldNotFound) {
				respondWithError(w, http.StatusNotFound, "Demographic field not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to delete demographic field")
			return
		}

		audit.Log(audit.AdminEvent{
			ActorID:   identity.UserID,
			CompanyID: identity.CompanyID,
			ClientIP:  r.RemoteAddr,
			Entity:    "demographic_field",
			EntityID:  id,
			Action:    "delete",
			Success:   true,
		})

		respondWithMessage(w, http.StatusOK, "Demographic field deleted")
	}
}
