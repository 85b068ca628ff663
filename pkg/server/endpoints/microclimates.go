package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
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

// MicroclimateQuestionRequest is a question within a microclimate payload
type MicroclimateQuestionRequest struct {
	Text         string   `json:"text"`
	QuestionType string   `json:"question_type"`
	Options      []string `json:"options"`
}

// MicroclimateRequest is the payload for creating a microclimate
type MicroclimateRequest struct {
	Title       string                        `json:"title"`
	ScheduledAt *time.Time                    `json:"scheduled_at"`
	Questions   []MicroclimateQuestionRequest `json:"questions"`
}

// MicroclimateAnswerRequest is one answer in a microclimate submission
type MicroclimateAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
}

// MicroclimateSubmitRequest is the payload for responding to a microclimate
type MicroclimateSubmitRequest struct {
	Answers []MicroclimateAnswerRequest `json:"answers"`
}

// RegisterMicroclimatesEndpoints registers the microclimate endpoints
func RegisterMicroclimatesEndpoints(s *server.Server) {
	r := s.Router.PathPrefix("/api/microclimates").Subrouter()
	r.Use(s.Session.Middleware)

	launch := func(h http.HandlerFunc) http.Handler {
		return middleware.RequirePermission(rbac.LaunchMicroclimate, h)
	}
	view := func(h http.HandlerFunc) http.Handler {
		return middleware.RequirePermission(rbac.ViewResults, h)
	}
	respond := func(h http.HandlerFunc) http.Handler {
		return middleware.RequirePermission(rbac.SubmitResponses, h)
	}

	r.Handle("", view(handleListMicroclimates(s.Microclimates, s.Config))).Methods("GET")
	r.Handle("", launch(handleCreateMicroclimate(s.Microclimates))).Methods("POST")
	r.Handle("/{id}", view(handleGetMicroclimate(s.Microclimates))).Methods("GET")
	r.Handle("/{id}/launch", launch(handleLaunchMicroclimate(s.Microclimates, s.Config))).Methods("POST")
	r.Handle("/{id}/close", launch(handleCloseMicroclimate(s.Microclimates))).Methods("POST")
	r.Handle("/{id}/responses", respond(handleRespondMicroclimate(s.Microclimates))).Methods("POST")
	r.Handle("/{id}/results", view(handleMicroclimateResults(s.Microclimates))).Methods("GET")
}

func handleListMicroclimates(microclimates store.MicroclimatesStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())
		limit, offset := listParams(r, cfg.APIListLimitMax)

		list, total, err := microclimates.ListMicroclimates(identity.CompanyID, r.URL.Query().Get("status"), limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list microclimates")
			return
		}
		respondWithData(w, http.StatusOK, pagedData("microclimates", list, total))
	}
}

func handleCreateMicroclimate(microclimates store.MicroclimatesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		var req MicroclimateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		req.Title = sanitize.Text(req.Title)

		var issues validation.Issues
		validation.CheckRequired(&issues, "title", req.Title)
		if len(req.Questions) == 0 {
			issues.Add("questions", "at least one question is required")
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
		}
		if !issues.Empty() {
			respondWithIssues(w, "Validation failed", issues)
			return
		}

		record := &model.Microclimate{
			ID:          uuid.NewString(),
			CompanyID:   identity.CompanyID,
			CreatedBy:   identity.UserID,
			Title:       req.Title,
			Status:      model.MicroclimateStatusDraft,
			ScheduledAt: req.ScheduledAt,
		}

		questions := make([]model.MicroclimateQuestion, 0, len(req.Questions))
		for i, q := range req.Questions {
			questions = append(questions, model.MicroclimateQuestion{
				ID:             uuid.NewString(),
				MicroclimateID: record.ID,
				Text:           q.Text,
				QuestionType:   q.QuestionType,
				Options:        joinOptions(q.Options),
				OrderIndex:     i + 1,
			})
		}

		if err := microclimates.CreateMicroclimate(record, questions); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create microclimate")
			return
		}

		audit.Log(audit.SurveyEvent{
			ActorID:   identity.UserID,
			CompanyID: identity.CompanyID,
			ClientIP:  r.RemoteAddr,
			Kind:      "microclimate",
			SurveyID:  record.ID,
			Action:    "create",
		})

		respondWithData(w, http.StatusCreated, record)
	}
}

func fetchCompanyMicroclimate(microclimates store.MicroclimatesStore, identity *middleware.Identity, id string) (*model.Microclimate, int, string) {
	record, err := microclimates.FetchMicroclimate(id)
	if err != nil {
		if errors.Is(err, store.ErrMicroclimateNotFound) {
			return nil, http.StatusNotFound, "Microclimate not found"
		}
		return nil, http.StatusInternalServerError, "Failed to load microclimate"
	}
	if identity.Role != rbac.RoleSuperAdmin && record.CompanyID != identity.CompanyID {
		return nil, http.StatusNotFound, "Microclimate not found"
	}
	return record, 0, ""
}

func handleGetMicroclimate(microclimates store.MicroclimatesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		record, code, message := fetchCompanyMicroclimate(microclimates, identity, mux.Vars(r)["id"])
		if record == nil {
			respondWithError(w, code, message)
			return
		}

		questions, err := microclimates.FetchMicroclimateQuestions(record.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load microclimate questions")
			return
		}

		respondWithData(w, http.StatusOK, map[string]interface{}{
			"microclimate": record,
			"questions":    questions,
		})
	}
}

// handleLaunchMicroclimate activates a draft microclimate and stamps its
// expiry from the configured lifetime
func handleLaunchMicroclimate(microclimates store.MicroclimatesStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		record, code, message := fetchCompanyMicroclimate(microclimates, identity, mux.Vars(r)["id"])
		if record == nil {
			respondWithError(w, code, message)
			return
		}
		if record.Status != model.MicroclimateStatusDraft {
			respondWithError(w, http.StatusBadRequest, "Only draft microclimates can be launched")
			return
		}

		expiresAt := time.Now().Add(cfg.MicroclimateLifetime())
		if err := microclimates.UpdateMicroclimateStatus(record.ID, model.MicroclimateStatusActive, &expiresAt); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to launch microclimate")
			return
		}
		record.Status = model.MicroclimateStatusActive
		record.ExpiresAt = &expiresAt

		audit.Log(audit.SurveyEvent{
			ActorID:   identity.UserID,
			CompanyID: identity.CompanyID,
			ClientIP:  r.RemoteAddr,
			Kind:      "microclimate",
			SurveyID:  record.ID,
			Action:    "launch",
		})

		respondWithData(w, http.StatusOK, record)
	}
}

func handleCloseMicroclimate(microclimates store.MicroclimatesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		record, code, message := fetchCompanyMicroclimate(microclimates, identity, mux.Vars(r)["id"])
		if record == nil {
			respondWithError(w, code, message)
			return
		}
		if record.Status != model.MicroclimateStatusActive {
			respondWithError(w, http.StatusBadRequest, "Only active microclimates can be closed")
			return
		}

		if err := microclimates.UpdateMicroclimateStatus(record.ID, model.MicroclimateStatusClosed, nil); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to close microclimate")
			return
		}
		record.Status = model.MicroclimateStatusClosed

		audit.Log(audit.SurveyEvent{
			ActorID:   identity.UserID,
			CompanyID: identity.CompanyID,
			ClientIP:  r.RemoteAddr,
			Kind:      "microclimate",
			SurveyID:  record.ID,
			Action:    "close",
		})

		respondWithData(w, http.StatusOK, record)
	}
}

func handleRespondMicroclimate(microclimates store.MicroclimatesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		record, code, message := fetchCompanyMicroclimate(microclimates, identity, mux.Vars(r)["id"])
		if record == nil {
			respondWithError(w, code, message)
			return
		}
		if record.Status != model.MicroclimateStatusActive || record.Expired() {
			respondWithError(w, http.StatusBadRequest, "Microclimate is not accepting responses")
			return
		}

		var req MicroclimateSubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		questions, err := microclimates.FetchMicroclimateQuestions(record.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load microclimate questions")
			return
		}
		byID := make(map[string]*model.MicroclimateQuestion, len(questions))
		for i := range questions {
			byID[questions[i].ID] = &questions[i]
		}

		var issues validation.Issues
		userID := identity.UserID
		answers := make([]model.MicroclimateAnswer, 0, len(req.Answers))
		for _, a := range req.Answers {
			q, ok := byID[a.QuestionID]
			if !ok {
				issues.Add("answers", "question %s is not part of this microclimate", a.QuestionID)
				continue
			}

			answer := model.MicroclimateAnswer{
				ID:             uuid.NewString(),
				MicroclimateID: record.ID,
				QuestionID:     q.ID,
				UserID:         &userID,
			}

			switch q.QuestionType {
			case survey.QuestionRating, survey.QuestionScale:
				rating, err := strconv.Atoi(a.Value)
				if err != nil {
					issues.Add("answers", "question %s expects a numeric value", q.ID)
					continue
				}
				min, max := 1, 5
				if q.QuestionType == survey.QuestionScale {
					min, max = 0, 10
				}
				if rating < min || rating > max {
					issues.Add("answers", "question %s value must be between %d and %d", q.ID, min, max)
					continue
				}
				answer.Rating = &rating
				answer.Value = a.Value
			case survey.QuestionBinary:
				yes, err := survey.ParseBinaryValue(a.Value)
				if err != nil {
					issues.Add("answers", "question %s expects a yes/no value", q.ID)
					continue
				}
				if yes {
					answer.Value = "yes"
				} else {
					answer.Value = "no"
				}
			case survey.QuestionChoice:
				valid := false
				for _, option := range splitOptions(q.Options) {
					if option == a.Value {
						valid = true
						break
					}
				}
				if !valid {
					issues.Add("answers", "question %s value is not one of the options", q.ID)
					continue
				}
				answer.Value = a.Value
			default:
				answer.Value = sanitize.Text(a.Value)
			}

			answers = append(answers, answer)
		}
		if !issues.Empty() {
			respondWithIssues(w, "Validation failed", issues)
			return
		}

		if err := microclimates.SaveMicroclimateAnswers(answers); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to save answers")
			return
		}

		respondWithMessage(w, http.StatusCreated, "Answers recorded")
	}
}

func handleMicroclimateResults(microclimates store.MicroclimatesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		record, code, message := fetchCompanyMicroclimate(microclimates, identity, mux.Vars(r)["id"])
		if record == nil {
			respondWithError(w, code, message)
			return
		}

		results, err := microclimates.Results(record.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to aggregate results")
			return
		}
		respondWithData(w, http.StatusOK, results)
	}
}
