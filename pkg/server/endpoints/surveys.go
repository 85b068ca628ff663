package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/orgpulse/orgpulse/pkg/audit"
	"github.com/orgpulse/orgpulse/pkg/config"
	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/rbac"
	"github.com/orgpulse/orgpulse/pkg/sanitize"
	"github.com/orgpulse/orgpulse/pkg/server"
	"github.com/orgpulse/orgpulse/pkg/server/middleware"
	"github.com/orgpulse/orgpulse/pkg/server/store"
	"github.com/orgpulse/orgpulse/pkg/survey"
	"github.com/orgpulse/orgpulse/pkg/validation"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// SurveyQuestionRequest is a question within a survey create payload
type SurveyQuestionRequest struct {
	Text            string   `json:"text"`
	QuestionType    string   `json:"question_type"`
	Options         []string `json:"options"`
	OrderIndex      *int     `json:"order_index"`
	Required        bool     `json:"required"`
	CommentEnabled  bool     `json:"comment_enabled"`
	CommentRequired bool     `json:"comment_required"`
	CommentMinLen   int      `json:"comment_min_len"`
	CommentMaxLen   int      `json:"comment_max_len"`
}

// SurveyRequest is the payload for creating or updating a survey
type SurveyRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Type        string                  `json:"type"`
	StartsAt    *time.Time              `json:"starts_at"`
	EndsAt      *time.Time              `json:"ends_at"`
	Questions   []SurveyQuestionRequest `json:"questions"`
}

// SurveyResponse is the wire shape of a survey with its questions
type SurveyResponse struct {
	*model.Survey
	Questions []SurveyQuestionResponse `json:"questions,omitempty"`
}

// SurveyQuestionResponse is the wire shape of a survey question
type SurveyQuestionResponse struct {
	ID              string   `json:"id"`
	Text            string   `json:"text"`
	QuestionType    string   `json:"question_type"`
	Options         []string `json:"options,omitempty"`
	OrderIndex      int      `json:"order_index"`
	Required        bool     `json:"required"`
	CommentEnabled  bool     `json:"comment_enabled"`
	CommentRequired bool     `json:"comment_required"`
	CommentMinLen   int      `json:"comment_min_len,omitempty"`
	CommentMaxLen   int      `json:"comment_max_len,omitempty"`
}

func questionResponses(questions []model.SurveyQuestion) []SurveyQuestionResponse {
	items := make([]SurveyQuestionResponse, 0, len(questions))
	for _, q := range questions {
		items = append(items, SurveyQuestionResponse{
			ID:              q.ID,
			Text:            q.Text,
			QuestionType:    q.QuestionType,
			Options:         splitOptions(q.Options),
			OrderIndex:      q.OrderIndex,
			Required:        q.Required,
			CommentEnabled:  q.CommentEnabled,
			CommentRequired: q.CommentRequired,
			CommentMinLen:   q.CommentMinLen,
			CommentMaxLen:   q.CommentMaxLen,
		})
	}
	return items
}

var surveyTypes = map[string]bool{
	survey.TypeGeneralClimate: true,
	survey.TypeWellbeing:      true,
	survey.TypeLeadership:     true,
	survey.TypeOnboarding:     true,
	survey.TypeExit:           true,
	survey.TypeCustom:         true,
}

var questionTypes = map[string]bool{
	survey.QuestionRating: true,
	survey.QuestionScale:  true,
	survey.QuestionBinary: true,
	survey.QuestionChoice: true,
	survey.QuestionText:   true,
}

// Legal lifecycle transitions. Closed is terminal.
var surveyTransitions = map[string]map[string]bool{
	model.SurveyStatusDraft:  {model.SurveyStatusActive: true},
	model.SurveyStatusActive: {model.SurveyStatusClosed: true},
	model.SurveyStatusClosed: {},
}

// RegisterSurveysEndpoints registers the survey management endpoints
func RegisterSurveysEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/api/surveys").Subrouter()
	r.Use(s.Session.Middleware)

	create := func(h http.HandlerFunc) http.Handler {
		return middleware.RequirePermission(rbac.CreateSurveys, h)
	}
	view := func(h http.HandlerFunc) http.Handler {
		return middleware.RequirePermission(rbac.ViewResults, h)
	}

	r.Handle("", view(handleListSurveys(s.Surveys, s.Config))).Methods("GET")
	r.Handle("", create(handleCreateSurvey(s.Surveys))).Methods("POST")
	r.Handle("/{id}", view(handleGetSurvey(s.Surveys))).Methods("GET")
	r.Handle("/{id}", create(handleUpdateSurvey(s.Surveys))).Methods("PUT")
	r.Handle("/{id}", create(handleDeleteSurvey(s.Surveys))).Methods("DELETE")
	r.Handle("/{id}/launch", create(handleSurveyTransition(s.Surveys, model.SurveyStatusActive))).Methods("POST")
	r.Handle("/{id}/close", create(handleSurveyTransition(s.Surveys, model.SurveyStatusClosed))).Methods("POST")
}

func handleListSurveys(surveys store.SurveysStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())
		limit, offset := listParams(r, cfg.APIListLimitMax)

		list, total, err := surveys.ListSurveys(identity.CompanyID, r.URL.Query().Get("status"), limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list surveys")
			return
		}
		respondWithData(w, http.StatusOK, pagedData("surveys", list, total))
	}
}

func validateSurveyRequest(req *SurveyRequest) validation.Issues {
	var issues validation.Issues

	req.Title = sanitize.Text(req.Title)
	req.Description = sanitize.Text(req.Description)

	validation.CheckRequired(&issues, "title", req.Title)
	if req.Type != "" && !surveyTypes[req.Type] {
		issues.Add("type", "unknown survey type %q", req.Type)
	}
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		issues.Add("ends_at", "must be after starts_at")
	}
	for i := range req.Questions {
		q := &req.Questions[i]
		q.Text = sanitize.Text(q.Text)
		if q.Text == "" {
			issues.Add("questions", "question %d is missing text", i+1)
		}
		if !questionTypes[q.QuestionType] {
			issues.Add("questions", "question %d has unknown type %q", i+1, q.QuestionType)
		}
		if q.QuestionType == survey.QuestionChoice && len(q.Options) == 0 {
			issues.Add("questions", "question %d needs at least one option", i+1)
		}
		if q.CommentMinLen < 0 || q.CommentMaxLen < 0 {
			issues.Add("questions", "question %d has negative comment bounds", i+1)
		}
		if q.CommentMinLen > 0 && q.CommentMaxLen > 0 && q.CommentMinLen > q.CommentMaxLen {
			issues.Add("questions", "question %d comment_min_len exceeds comment_max_len", i+1)
		}
	}
	return issues
}

func handleCreateSurvey(surveys store.SurveysStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		var req SurveyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Type == "" {
			req.Type = survey.TypeCustom
		}
		if issues := validateSurveyRequest(&req); !issues.Empty() {
			respondWithIssues(w, "Validation failed", issues)
			return
		}

		record := &model.Survey{
			ID:          uuid.NewString(),
			CompanyID:   identity.CompanyID,
			CreatedBy:   identity.UserID,
			Title:       req.Title,
			Description: req.Description,
			Type:        req.Type,
			Status:      model.SurveyStatusDraft,
			StartsAt:    req.StartsAt,
			EndsAt:      req.EndsAt,
		}

		questions := make([]model.SurveyQuestion, 0, len(req.Questions))
		for i, q := range req.Questions {
			index := i + 1
			if q.OrderIndex != nil {
				index = *q.OrderIndex
			}
			questions = append(questions, model.SurveyQuestion{
				ID:              uuid.NewString(),
				SurveyID:        record.ID,
				Text:            q.Text,
				QuestionType:    q.QuestionType,
				Options:         joinOptions(q.Options),
				OrderIndex:      index,
				Required:        q.Required,
				CommentEnabled:  q.CommentEnabled,
				CommentRequired: q.CommentRequired,
				CommentMinLen:   q.CommentMinLen,
				CommentMaxLen:   q.CommentMaxLen,
			})
		}

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

// fetchCompanySurvey loads a survey and enforces tenant scoping
func fetchCompanySurvey(surveys store.SurveysStore, identity *middleware.Identity, id string) (*model.Survey, int, string) {
	record, err := surveys.FetchSurvey(id)
	if err != nil {
		if errors.Is(err, store.ErrSurveyNotFound) {
			return nil, http.StatusNotFound, "Survey not found"
		}
		return nil, http.StatusInternalServerError, "Failed to load survey"
	}
	if identity.Role != rbac.RoleSuperAdmin && record.CompanyID != identity.CompanyID {
		return nil, http.StatusNotFound, "Survey not found"
	}
	return record, 0, ""
}

func handleGetSurvey(surveys store.SurveysStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		record, code, message := fetchCompanySurvey(surveys, identity, mux.Vars(r)["id"])
		if record == nil {
			respondWithError(w, code, message)
			return
		}

		questions, err := surveys.FetchSurveyQuestions(record.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load survey questions")
			return
		}

		respondWithData(w, http.StatusOK, SurveyResponse{Survey: record, Questions: questionResponses(questions)})
	}
}

func handleUpdateSurvey(surveys store.SurveysStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		record, code, message := fetchCompanySurvey(surveys, identity, mux.Vars(r)["id"])
		if record == nil {
			respondWithError(w, code, message)
			return
		}

		if record.Status != model.SurveyStatusDraft {
			respondWithError(w, http.StatusBadRequest, "Only draft surveys can be edited")
			return
		}

		var req SurveyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Title = sanitize.Text(req.Title)
		req.Description = sanitize.Text(req.Description)

		var issues validation.Issues
		if req.Type != "" && !surveyTypes[req.Type] {
			issues.Add("type", "unknown survey type %q", req.Type)
		}
		if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
			issues.Add("ends_at", "must be after starts_at")
		}
		if !issues.Empty() {
			respondWithIssues(w, "Validation failed", issues)
			return
		}

		if req.Title != "" {
			record.Title = req.Title
		}
		if req.Description != "" {
			record.Description = req.Description
		}
		if req.Type != "" {
			record.Type = req.Type
		}
		if req.StartsAt != nil {
			record.StartsAt = req.StartsAt
		}
		if req.EndsAt != nil {
			record.EndsAt = req.EndsAt
		}

		if err := surveys.UpdateSurvey(record); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update survey")
			return
		}

		audit.Log(audit.SurveyEvent{
			ActorID:   identity.UserID,
			CompanyID: identity.CompanyID,
			ClientIP:  r.RemoteAddr,
			Kind:      "survey",
			SurveyID:  record.ID,
			Action:    "update",
		})

		respondWithData(w, http.StatusOK, record)
	}
}

func handleDeleteSurvey(surveys store.SurveysStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		record, code, message := fetchCompanySurvey(surveys, identity, mux.Vars(r)["id"])
		if record == nil {
			respondWithError(w, code, message)
			return
		}

		if err := surveys.DeleteSurvey(record.ID); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to delete survey")
			return
		}

		audit.Log(audit.SurveyEvent{
			ActorID:   identity.UserID,
			CompanyID: identity.CompanyID,
			ClientIP:  r.RemoteAddr,
			Kind:      "survey",
			SurveyID:  record.ID,
			Action:    "delete",
		})

		respondWithMessage(w, http.StatusOK, "Survey deleted")
	}
}

func handleSurveyTransition(surveys store.SurveysStore, target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		record, code, message := fetchCompanySurvey(surveys, identity, mux.Vars(r)["id"])
		if record == nil {
			respondWithError(w, code, message)
			return
		}

		if !surveyTransitions[record.Status][target] {
			respondWithError(w, http.StatusBadRequest, "Cannot move a "+record.Status+" survey to "+target)
			return
		}

		if err := surveys.UpdateSurveyStatus(record.ID, target); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update survey status")
			return
		}
		record.Status = target

		action := "launch"
		if target == model.SurveyStatusClosed {
			action = "close"
		}
		audit.Log(audit.SurveyEvent{
			ActorID:   identity.UserID,
			CompanyID: identity.CompanyID,
			ClientIP:  r.RemoteAddr,
			Kind:      "survey",
			SurveyID:  record.ID,
			Action:    action,
		})

		respondWithData(w, http.StatusOK, record)
	}
}
