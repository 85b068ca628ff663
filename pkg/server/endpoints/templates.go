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
	"github.com/orgpulse/orgpulse/pkg/survey"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// UseTemplateRequest is the payload for instantiating a survey from a template
type UseTemplateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RegisterTemplatesEndpoints registers the template library endpoints
func RegisterTemplatesEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/api/surveys/templates").Subrouter()
	r.Use(s.Session.Middleware)

	guard := func(h http.HandlerFunc) http.Handler {
		return middleware.RequirePermission(rbac.CreateSurveys, h)
	}

	r.Handle("", guard(handleListTemplates(s.Surveys))).Methods("GET")
	r.Handle("/{id}", guard(handleGetTemplate(s.Surveys))).Methods("GET")
	r.Handle("/{id}/use", guard(handleUseTemplate(s.Surveys))).Methods("POST")
}

func handleListTemplates(surveys store.SurveysStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		var companyID *string
		if identity.Role != rbac.RoleSuperAdmin {
			scoped := identity.CompanyID
			companyID = &scoped
		}

		templates, err := surveys.ListTemplates(companyID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list templates")
			return
		}
		respondWithData(w, http.StatusOK, map[string]interface{}{"templates": templates})
	}
}

// canAccessTemplate allows public templates and the caller's own company's
func canAccessTemplate(identity *middleware.Identity, template *model.SurveyTemplate) bool {
	if template.IsPublic || template.CompanyID == nil || identity.Role == rbac.RoleSuperAdmin {
		return true
	}
	return *template.CompanyID == identity.CompanyID
}

func handleGetTemplate(surveys store.SurveysStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		template, err := surveys.FetchTemplate(mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, store.ErrTemplateNotFound) {
				respondWithError(w, http.StatusNotFound, "Template not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to load template")
			return
		}
		if !canAccessTemplate(identity, template) {
			respondWithError(w, http.StatusNotFound, "Template not found")
			return
		}

		questions, err := surveys.FetchTemplateQuestions(template.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load template questions")
			return
		}

		respondWithData(w, http.StatusOK, map[string]interface{}{
			"template":  template,
			"questions": questions,
		})
	}
}

// handleUseTemplate instantiates a draft survey from a template. The
// template's category decides the survey type and its questions are
// mapped to the canonical question vocabulary.
func handleUseTemplate(surveys store.SurveysStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		template, err := surveys.FetchTemplate(mux.Vars(r)["id"])
		if err != nil {
			if errors.Is(err, store.ErrTemplateNotFound) {
				respondWithError(w, http.StatusNotFound, "Template not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to load template")
			return
		}
		if !canAccessTemplate(identity, template) {
			respondWithError(w, http.StatusNotFound, "Template not found")
			return
		}

		var req UseTemplateRequest
		if r.Body != nil {
			// Body is optional; the template supplies defaults.
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		title := sanitize.Text(req.Title)
		if title == "" {
			title = template.Name
		}
		description := sanitize.Text(req.Description)
		if description == "" {
			description = template.Description
		}

		templateQuestions, err := surveys.FetchTemplateQuestions(template.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load template questions")
			return
		}

		templateID := template.ID
		record := &model.Survey{
			ID:          uuid.NewString(),
			CompanyID:   identity.CompanyID,
			CreatedBy:   identity.UserID,
			TemplateID:  &templateID,
			Title:       title,
			Description: description,
			Type:        survey.TypeForCategory(template.Category),
			Status:      model.SurveyStatusDraft,
		}

		questions := survey.BuildQuestions(record.ID, templateQuestions)

		if err := surveys.CreateSurvey(record, questions); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create survey")
			return
		}

		audit.Log(audit.SurveyEvent{
			ActorID:   identity.UserID,
			CompanyID: identity.CompanyID,
			ClientIP:  r.RemoteAddr,
			Kind:      "survey",
			SurveyID:  record.ID,
			Action:    "create",
		})

		respondWithData(w, http.StatusCreated, SurveyResponse{Survey: record, Questions: questionResponses(questions)})
	}
}
