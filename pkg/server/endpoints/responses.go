package endpoints

import (
	"encoding/csv"
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

// AnswerRequest is one answer within a response submission
type AnswerRequest struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
	Comment    string `json:"comment"`
}

// SubmitResponseRequest is the payload for submitting a survey response
type SubmitResponseRequest struct {
	Answers []AnswerRequest `json:"answers"`
}

// InvitationsRequest is the payload for creating invitations
type InvitationsRequest struct {
	Emails    []string   `json:"emails"`
	Count     int        `json:"count"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// RegisterResponsesEndpoints registers response submission, listing,
// export and invitation endpoints
func RegisterResponsesEndpoints(s *server.Server) {
	// Anonymous submission via invitation token needs no session.
	s.Router.HandleFunc("/api/respond/{token}", handleRespondByToken(s.Surveys, s.Responses)).Methods("POST")
	s.Router.HandleFunc("/api/respond/{token}", handleFetchByToken(s.Surveys, s.Responses)).Methods("GET")

	r := s.Router.PathPrefix("/api/surveys/{id}/responses").Subrouter()
	r.Use(s.Session.Middleware)

	r.Handle("", middleware.RequirePermission(rbac.SubmitResponses,
		handleSubmitResponse(s.Surveys, s.Responses))).Methods("POST")
	r.Handle("", middleware.RequirePermission(rbac.ViewResults,
		handleListResponses(s.Surveys, s.Responses, s.Config))).Methods("GET")
	r.Handle("/export", middleware.RequirePermission(rbac.ExportData,
		handleExportResponses(s.Surveys, s.Responses))).Methods("GET")

	inviteRouter := s.Router.PathPrefix("/api/surveys/{id}/invitations").Subrouter()
	inviteRouter.Use(s.Session.Middleware)
	inviteRouter.Handle("", middleware.RequirePermission(rbac.CreateSurveys,
		handleCreateInvitations(s.Surveys, s.Responses))).Methods("POST")
}

// buildAnswers validates a submission against the survey's questions and
// produces the answer rows. It reports validation issues and whether any
// free text tripped the injection heuristics.
func buildAnswers(responseID string, questions []model.SurveyQuestion, req SubmitResponseRequest) ([]model.Answer, validation.Issues, bool) {
	var issues validation.Issues
	flagged := false

	byID := make(map[string]*model.SurveyQuestion, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	answered := make(map[string]bool, len(req.Answers))
	answers := make([]model.Answer, 0, len(req.Answers))

	for _, a := range req.Answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			issues.Add("answers", "question %s is not part of this survey", a.QuestionID)
			continue
		}
		if answered[q.ID] {
			issues.Add("answers", "question %s was answered twice", q.ID)
			continue
		}
		answered[q.ID] = true

		answer := model.Answer{
			ID:         uuid.NewString(),
			ResponseID: responseID,
			QuestionID: q.ID,
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
			comment := sanitize.Text(a.Comment)
			if sanitize.Suspicious(a.Comment) {
				flagged = true
			}
			cfg := survey.CommentConfigFor(q.CommentEnabled, q.CommentRequired, q.CommentMinLen, q.CommentMaxLen)
			if err := survey.ValidateBinaryComment(yes, comment, cfg); err != nil {
				issues.Add("answers", "question %s: %s", q.ID, err.Error())
				continue
			}
			if yes {
				answer.Value = "yes"
			} else {
				answer.Value = "no"
			}
			answer.Comment = comment

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

		default: // text
			if sanitize.Suspicious(a.Value) {
				flagged = true
			}
			answer.Value = sanitize.Text(a.Value)
		}

		answers = append(answers, answer)
	}

	for _, q := range questions {
		if q.Required && !answered[q.ID] {
			issues.Add("answers", "question %s is required", q.ID)
		}
	}

	return answers, issues, flagged
}

func handleSubmitResponse(surveys store.SurveysStore, responses store.ResponsesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		record, code, message := fetchCompanySurvey(surveys, identity, mux.Vars(r)["id"])
		if record == nil {
			respondWithError(w, code, message)
			return
		}
		if record.Status != model.SurveyStatusActive {
			respondWithError(w, http.StatusBadRequest, "Survey is not open for responses")
			return
		}

		already, err := responses.HasUserResponded(record.ID, identity.UserID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to check for an existing response")
			return
		}
		if already {
			respondWithError(w, http.StatusBadRequest, "You have already responded to this survey")
			return
		}

		var req SubmitResponseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		questions, err := surveys.FetchSurveyQuestions(record.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load survey questions")
			return
		}

		userID := identity.UserID
		response := &model.Response{
			ID:        uuid.NewString(),
			SurveyID:  record.ID,
			CompanyID: record.CompanyID,
			UserID:    &userID,
		}

		answers, issues, flagged := buildAnswers(response.ID, questions, req)
		if !issues.Empty() {
			respondWithIssues(w, "Validation failed", issues)
			return
		}
		response.Flagged = flagged

		if err := responses.CreateResponse(response, answers); err != nil {
			if errors.Is(err, store.ErrAlreadyResponded) {
				respondWithError(w, http.StatusBadRequest, "You have already responded to this survey")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to save response")
			return
		}

		audit.Log(audit.ResponseEvent{
			CompanyID:  record.CompanyID,
			ClientIP:   r.RemoteAddr,
			SurveyID:   record.ID,
			ResponseID: response.ID,
			Flagged:    flagged,
		})

		respondWithData(w, http.StatusCreated, map[string]interface{}{"response_id": response.ID})
	}
}

// handleFetchByToken returns the survey behind an invitation token so an
// anonymous respondent can render it
func handleFetchByToken(surveys store.SurveysStore, responses store.ResponsesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		invitation, record, code, message := resolveInvitation(surveys, responses, mux.Vars(r)["token"])
		if invitation == nil {
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

func resolveInvitation(surveys store.SurveysStore, responses store.ResponsesStore, token string) (*model.Invitation, *model.Survey, int, string) {
	invitation, err := responses.FetchInvitation(token)
	if err != nil {
		if errors.Is(err, store.ErrInvitationNotFound) {
			return nil, nil, http.StatusNotFound, "Invitation not found"
		}
		return nil, nil, http.StatusInternalServerError, "Failed to load invitation"
	}
	if invitation.Used() {
		return nil, nil, http.StatusBadRequest, "Invitation has already been used"
	}
	if invitation.Expired() {
		return nil, nil, http.StatusBadRequest, "Invitation has expired"
	}

	record, err := surveys.FetchSurvey(invitation.SurveyID)
	if err != nil {
		return nil, nil, http.StatusNotFound, "Survey not found"
	}
	if record.Status != model.SurveyStatusActive {
		return nil, nil, http.StatusBadRequest, "Survey is not open for responses"
	}
	return invitation, record, 0, ""
}

func handleRespondByToken(surveys store.SurveysStore, responses store.ResponsesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := mux.Vars(r)["token"]

		invitation, record, code, message := resolveInvitation(surveys, responses, token)
		if invitation == nil {
			respondWithError(w, code, message)
			return
		}

		var req SubmitResponseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		questions, err := surveys.FetchSurveyQuestions(record.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load survey questions")
			return
		}

		response := &model.Response{
			ID:        uuid.NewString(),
			SurveyID:  record.ID,
			CompanyID: record.CompanyID,
			Token:     &token,
		}

		answers, issues, flagged := buildAnswers(response.ID, questions, req)
		if !issues.Empty() {
			respondWithIssues(w, "Validation failed", issues)
			return
		}
		response.Flagged = flagged

		if err := responses.ConsumeInvitation(invitation.ID, response, answers); err != nil {
			if errors.Is(err, store.ErrInvitationUsed) {
				respondWithError(w, http.StatusBadRequest, "Invitation has already been used")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to save response")
			return
		}

		audit.Log(audit.ResponseEvent{
			CompanyID:  record.CompanyID,
			ClientIP:   r.RemoteAddr,
			SurveyID:   record.ID,
			ResponseID: response.ID,
			Flagged:    flagged,
		})

		respondWithData(w, http.StatusCreated, map[string]interface{}{"response_id": response.ID})
	}
}

func handleListResponses(surveys store.SurveysStore, responses store.ResponsesStore, cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		record, code, message := fetchCompanySurvey(surveys, identity, mux.Vars(r)["id"])
		if record == nil {
			respondWithError(w, code, message)
			return
		}

		limit, offset := listParams(r, cfg.APIListLimitMax)
		list, total, err := responses.ListResponses(record.ID, limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list responses")
			return
		}
		respondWithData(w, http.StatusOK, pagedData("responses", list, total))
	}
}

// handleExportResponses streams a survey's answers as CSV
func handleExportResponses(surveys store.SurveysStore, responses store.ResponsesStore) http.HandlerFunc {
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
		questionText := make(map[string]string, len(questions))
		for _, q := range questions {
			questionText[q.ID] = q.Text
		}

		answers, err := responses.ListSurveyAnswers(record.ID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to load answers")
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="responses.csv"`)

		writer := csv.NewWriter(w)
		_ = writer.Write([]string{"response_id", "question", "value", "rating", "comment"})
		for _, a := range answers {
			rating := ""
			if a.Rating != nil {
				rating = strconv.Itoa(*a.Rating)
			}
			_ = writer.Write([]string{a.ResponseID, questionText[a.QuestionID], a.Value, rating, a.Comment})
		}
		writer.Flush()

		audit.Log(audit.ExportEvent{
			ActorID:   identity.UserID,
			CompanyID: identity.CompanyID,
			ClientIP:  r.RemoteAddr,
			SurveyID:  record.ID,
			Rows:      len(answers),
		})
	}
}

func handleCreateInvitations(surveys store.SurveysStore, responses store.ResponsesStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, _ := middleware.IdentityFromContext(r.Context())

		record, code, message := fetchCompanySurvey(surveys, identity, mux.Vars(r)["id"])
		if record == nil {
			respondWithError(w, code, message)
			return
		}

		var req InvitationsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		count := req.Count
		if count <= 0 {
			count = len(req.Emails)
		}
		if count <= 0 {
			respondWithError(w, http.StatusBadRequest, "Provide emails or a count of invitations")
			return
		}
		if count > 1000 {
			respondWithError(w, http.StatusBadRequest, "At most 1000 invitations per request")
			return
		}

		invitations := make([]model.Invitation, 0, count)
		for i := 0; i < count; i++ {
			invitation := model.Invitation{
				ID:        uuid.NewString(),
				SurveyID:  record.ID,
				Token:     uuid.NewString(),
				ExpiresAt: req.ExpiresAt,
			}
			if i < len(req.Emails) {
				invitation.Email = req.Emails[i]
			}
			invitations = append(invitations, invitation)
		}

		if err := responses.CreateInvitations(invitations); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to create invitations")
			return
		}

		tokens := make([]string, 0, len(invitations))
		for _, invitation := range invitations {
			tokens = append(tokens, invitation.Token)
		}
		respondWithData(w, http.StatusCreated, map[string]interface{}{"tokens": tokens})
	}
}
