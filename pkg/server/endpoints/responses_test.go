package endpoints

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/server/store"
	"github.com/orgpulse/orgpulse/pkg/survey"
)

func sampleQuestions() []model.SurveyQuestion {
	return []model.SurveyQuestion{
		{ID: "q-rating", QuestionType: survey.QuestionRating, Required: true},
		{ID: "q-scale", QuestionType: survey.QuestionScale},
		{ID: "q-binary", QuestionType: survey.QuestionBinary,
			CommentEnabled: true, CommentRequired: true, CommentMinLen: 5, CommentMaxLen: 100},
		{ID: "q-choice", QuestionType: survey.QuestionChoice, Options: "red|green|blue"},
		{ID: "q-text", QuestionType: survey.QuestionText},
	}
}

func TestBuildAnswers(t *testing.T) {
	t.Run("full valid submission", func(t *testing.T) {
		answers, issues, flagged := buildAnswers("r-1", sampleQuestions(), SubmitResponseRequest{
			Answers: []AnswerRequest{
				{QuestionID: "q-rating", Value: "4"},
				{QuestionID: "q-scale", Value: "0"},
				{QuestionID: "q-binary", Value: "yes", Comment: "because the team is great"},
				{QuestionID: "q-choice", Value: "green"},
				{QuestionID: "q-text", Value: "  more flexibility please  "},
			},
		})

		require.True(t, issues.Empty(), "unexpected issues: %v", issues)
		assert.False(t, flagged)
		require.Len(t, answers, 5)

		assert.Equal(t, "r-1", answers[0].ResponseID)
		require.NotNil(t, answers[0].Rating)
		assert.Equal(t, 4, *answers[0].Rating)
		require.NotNil(t, answers[1].Rating)
		assert.Equal(t, 0, *answers[1].Rating)
		assert.Equal(t, "yes", answers[2].Value)
		assert.Equal(t, "because the team is great", answers[2].Comment)
		assert.Equal(t, "green", answers[3].Value)
		assert.Equal(t, "more flexibility please", answers[4].Value)
	})

	t.Run("per-type violations", func(t *testing.T) {
		tests := []struct {
			name   string
			answer AnswerRequest
			want   string
		}{
			{"rating not numeric", AnswerRequest{QuestionID: "q-rating", Value: "four"}, "numeric value"},
			{"rating out of range", AnswerRequest{QuestionID: "q-rating", Value: "6"}, "between 1 and 5"},
			{"rating below range", AnswerRequest{QuestionID: "q-rating", Value: "0"}, "between 1 and 5"},
			{"scale out of range", AnswerRequest{QuestionID: "q-scale", Value: "11"}, "between 0 and 10"},
			{"binary garbage", AnswerRequest{QuestionID: "q-binary", Value: "maybe"}, "yes/no value"},
			{"binary missing required comment", AnswerRequest{QuestionID: "q-binary", Value: "yes"}, "comment is required"},
			{"binary comment too short", AnswerRequest{QuestionID: "q-binary", Value: "yes", Comment: "meh"}, "at least 5"},
			{"choice off the menu", AnswerRequest{QuestionID: "q-choice", Value: "purple"}, "not one of the options"},
			{"unknown question", AnswerRequest{QuestionID: "q-ghost", Value: "x"}, "not part of this survey"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, issues, _ := buildAnswers("r-1", sampleQuestions(), SubmitResponseRequest{
					Answers: []AnswerRequest{tt.answer},
				})
				require.False(t, issues.Empty())
				found := false
				for _, issue := range issues {
					if strings.Contains(issue.Message, tt.want) {
						found = true
					}
				}
				assert.True(t, found, "no issue mentioning %q in %v", tt.want, issues)
			})
		}
	})

	t.Run("no answer on binary skips comment rules", func(t *testing.T) {
		answers, issues, _ := buildAnswers("r-1", sampleQuestions(), SubmitResponseRequest{
			Answers: []AnswerRequest{
				{QuestionID: "q-rating", Value: "3"},
				{QuestionID: "q-binary", Value: "no"},
			},
		})
		require.True(t, issues.Empty(), "unexpected issues: %v", issues)
		assert.Equal(t, "no", answers[1].Value)
	})

	t.Run("duplicate answers rejected", func(t *testing.T) {
		_, issues, _ := buildAnswers("r-1", sampleQuestions(), SubmitResponseRequest{
			Answers: []AnswerRequest{
				{QuestionID: "q-rating", Value: "3"},
				{QuestionID: "q-rating", Value: "5"},
			},
		})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "answered twice")
	})

	t.Run("missing required question", func(t *testing.T) {
		_, issues, _ := buildAnswers("r-1", sampleQuestions(), SubmitResponseRequest{
			Answers: []AnswerRequest{{QuestionID: "q-text", Value: "fine"}},
		})
		require.Len(t, issues, 1)
		assert.Contains(t, issues[0].Message, "is required")
	})

	t.Run("suspicious text is flagged not rejected", func(t *testing.T) {
		answers, issues, flagged := buildAnswers("r-1", sampleQuestions(), SubmitResponseRequest{
			Answers: []AnswerRequest{
				{QuestionID: "q-rating", Value: "2"},
				{QuestionID: "q-text", Value: "nothing'; DROP TABLE responses"},
			},
		})
		require.True(t, issues.Empty(), "unexpected issues: %v", issues)
		assert.True(t, flagged)
		assert.Len(t, answers, 2)
	})
}

func activeSurvey() *model.Survey {
	s := draftSurvey()
	s.Status = model.SurveyStatusActive
	return s
}

func TestSubmitResponse(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(activeSurvey(), nil)
		surveys.On("FetchSurveyQuestions", "s-1").Return(sampleQuestions(), nil)

		responses := &mockResponsesStore{}
		responses.On("HasUserResponded", "s-1", "employee-1").Return(false, nil)
		responses.On("CreateResponse",
			mock.MatchedBy(func(r *model.Response) bool {
				return r.SurveyID == "s-1" && r.UserID != nil && *r.UserID == "employee-1" && !r.Flagged
			}),
			mock.AnythingOfType("[]model.Answer"),
		).Return(nil)

		req := newRequest(t, "POST", "/api/surveys/s-1/responses", SubmitResponseRequest{
			Answers: []AnswerRequest{{QuestionID: "q-rating", Value: "5"}},
		}, employeeIdentity(), map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleSubmitResponse(surveys, responses)(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		data := dataField(t, rec)
		assert.NotEmpty(t, data["response_id"])
		responses.AssertExpectations(t)
	})

	t.Run("survey not active", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(draftSurvey(), nil)

		req := newRequest(t, "POST", "/api/surveys/s-1/responses", SubmitResponseRequest{},
			employeeIdentity(), map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleSubmitResponse(surveys, &mockResponsesStore{})(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "not open for responses")
	})

	t.Run("double submission", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(activeSurvey(), nil)
		responses := &mockResponsesStore{}
		responses.On("HasUserResponded", "s-1", "employee-1").Return(true, nil)

		req := newRequest(t, "POST", "/api/surveys/s-1/responses", SubmitResponseRequest{},
			employeeIdentity(), map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleSubmitResponse(surveys, responses)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "already responded")
	})
}

func TestRespondByToken(t *testing.T) {
	invitation := func() *model.Invitation {
		return &model.Invitation{ID: "i-1", SurveyID: "s-1", Token: "tok-1"}
	}

	t.Run("anonymous success", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(activeSurvey(), nil)
		surveys.On("FetchSurveyQuestions", "s-1").Return(sampleQuestions(), nil)

		responses := &mockResponsesStore{}
		responses.On("FetchInvitation", "tok-1").Return(invitation(), nil)
		responses.On("ConsumeInvitation", "i-1",
			mock.MatchedBy(func(r *model.Response) bool {
				return r.UserID == nil && r.Token != nil && *r.Token == "tok-1"
			}),
			mock.AnythingOfType("[]model.Answer"),
		).Return(nil)

		req := newRequest(t, "POST", "/api/respond/tok-1", SubmitResponseRequest{
			Answers: []AnswerRequest{{QuestionID: "q-rating", Value: "3"}},
		}, nil, map[string]string{"token": "tok-1"})
		rec := httptest.NewRecorder()
		handleRespondByToken(surveys, responses)(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		responses.AssertExpectations(t)
	})

	t.Run("used invitation", func(t *testing.T) {
		used := invitation()
		now := time.Now()
		used.UsedAt = &now

		responses := &mockResponsesStore{}
		responses.On("FetchInvitation", "tok-1").Return(used, nil)

		req := newRequest(t, "POST", "/api/respond/tok-1", SubmitResponseRequest{},
			nil, map[string]string{"token": "tok-1"})
		rec := httptest.NewRecorder()
		handleRespondByToken(&mockSurveysStore{}, responses)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "already been used")
	})

	t.Run("expired invitation", func(t *testing.T) {
		expired := invitation()
		past := time.Now().Add(-time.Hour)
		expired.ExpiresAt = &past

		responses := &mockResponsesStore{}
		responses.On("FetchInvitation", "tok-1").Return(expired, nil)

		req := newRequest(t, "POST", "/api/respond/tok-1", SubmitResponseRequest{},
			nil, map[string]string{"token": "tok-1"})
		rec := httptest.NewRecorder()
		handleRespondByToken(&mockSurveysStore{}, responses)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "expired")
	})

	t.Run("unknown token", func(t *testing.T) {
		responses := &mockResponsesStore{}
		responses.On("FetchInvitation", "ghost").Return(nil, store.ErrInvitationNotFound)

		req := newRequest(t, "POST", "/api/respond/ghost", SubmitResponseRequest{},
			nil, map[string]string{"token": "ghost"})
		rec := httptest.NewRecorder()
		handleRespondByToken(&mockSurveysStore{}, responses)(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("race on invitation consumption", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(activeSurvey(), nil)
		surveys.On("FetchSurveyQuestions", "s-1").Return(sampleQuestions(), nil)

		responses := &mockResponsesStore{}
		responses.On("FetchInvitation", "tok-1").Return(invitation(), nil)
		responses.On("ConsumeInvitation", "i-1", mock.Anything, mock.Anything).
			Return(store.ErrInvitationUsed)

		req := newRequest(t, "POST", "/api/respond/tok-1", SubmitResponseRequest{
			Answers: []AnswerRequest{{QuestionID: "q-rating", Value: "3"}},
		}, nil, map[string]string{"token": "tok-1"})
		rec := httptest.NewRecorder()
		handleRespondByToken(surveys, responses)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "already been used")
	})

	t.Run("failed save is not reported as a used invitation", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(activeSurvey(), nil)
		surveys.On("FetchSurveyQuestions", "s-1").Return(sampleQuestions(), nil)

		responses := &mockResponsesStore{}
		responses.On("FetchInvitation", "tok-1").Return(invitation(), nil)
		responses.On("ConsumeInvitation", "i-1", mock.Anything, mock.Anything).
			Return(errors.New("insert failed"))

		req := newRequest(t, "POST", "/api/respond/tok-1", SubmitResponseRequest{
			Answers: []AnswerRequest{{QuestionID: "q-rating", Value: "3"}},
		}, nil, map[string]string{"token": "tok-1"})
		rec := httptest.NewRecorder()
		handleRespondByToken(surveys, responses)(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "already been used")
	})
}

func TestFetchByToken(t *testing.T) {
	surveys := &mockSurveysStore{}
	surveys.On("FetchSurvey", "s-1").Return(activeSurvey(), nil)
	surveys.On("FetchSurveyQuestions", "s-1").Return(sampleQuestions(), nil)

	responses := &mockResponsesStore{}
	responses.On("FetchInvitation", "tok-1").Return(&model.Invitation{
		ID: "i-1", SurveyID: "s-1", Token: "tok-1",
	}, nil)

	req := newRequest(t, "GET", "/api/respond/tok-1", nil, nil,
		map[string]string{"token": "tok-1"})
	rec := httptest.NewRecorder()
	handleFetchByToken(surveys, responses)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := dataField(t, rec)
	assert.Len(t, data["questions"], 5)
}

func TestExportResponses(t *testing.T) {
	rating := 4
	surveys := &mockSurveysStore{}
	surveys.On("FetchSurvey", "s-1").Return(activeSurvey(), nil)
	surveys.On("FetchSurveyQuestions", "s-1").Return([]model.SurveyQuestion{
		{ID: "q-1", Text: "Mood?", QuestionType: survey.QuestionRating},
	}, nil)

	responses := &mockResponsesStore{}
	responses.On("ListSurveyAnswers", "s-1").Return([]model.Answer{
		{ID: "a-1", ResponseID: "r-1", QuestionID: "q-1", Value: "4", Rating: &rating},
	}, nil)

	req := newRequest(t, "GET", "/api/surveys/s-1/responses/export", nil, adminIdentity(),
		map[string]string{"id": "s-1"})
	rec := httptest.NewRecorder()
	handleExportResponses(surveys, responses)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "response_id,question,value,rating,comment", lines[0])
	assert.Equal(t, "r-1,Mood?,4,4,", lines[1])
}

func TestCreateInvitations(t *testing.T) {
	t.Run("by count", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(activeSurvey(), nil)
		responses := &mockResponsesStore{}
		responses.On("CreateInvitations", mock.MatchedBy(func(list []model.Invitation) bool {
			return len(list) == 3
		})).Return(nil)

		req := newRequest(t, "POST", "/api/surveys/s-1/invitations", InvitationsRequest{Count: 3},
			adminIdentity(), map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleCreateInvitations(surveys, responses)(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		data := dataField(t, rec)
		assert.Len(t, data["tokens"], 3)
	})

	t.Run("by emails", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(activeSurvey(), nil)
		responses := &mockResponsesStore{}
		responses.On("CreateInvitations", mock.MatchedBy(func(list []model.Invitation) bool {
			return len(list) == 2 && list[0].Email == "a@example.com" && list[1].Email == "b@example.com"
		})).Return(nil)

		req := newRequest(t, "POST", "/api/surveys/s-1/invitations", InvitationsRequest{
			Emails: []string{"a@example.com", "b@example.com"},
		}, adminIdentity(), map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleCreateInvitations(surveys, responses)(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		responses.AssertExpectations(t)
	})

	t.Run("empty request", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(activeSurvey(), nil)

		req := newRequest(t, "POST", "/api/surveys/s-1/invitations", InvitationsRequest{},
			adminIdentity(), map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleCreateInvitations(surveys, &mockResponsesStore{})(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("over the cap", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(activeSurvey(), nil)

		req := newRequest(t, "POST", "/api/surveys/s-1/invitations", InvitationsRequest{Count: 1001},
			adminIdentity(), map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleCreateInvitations(surveys, &mockResponsesStore{})(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "At most 1000")
	})
}

func TestListResponses(t *testing.T) {
	surveys := &mockSurveysStore{}
	surveys.On("FetchSurvey", "s-1").Return(activeSurvey(), nil)
	responses := &mockResponsesStore{}
	responses.On("ListResponses", "s-1", 20, 0).Return([]model.Response{{ID: "r-1"}}, 1, nil)

	req := newRequest(t, "GET", "/api/surveys/s-1/responses", nil, adminIdentity(),
		map[string]string{"id": "s-1"})
	rec := httptest.NewRecorder()
	handleListResponses(surveys, responses, testConfig())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := dataField(t, rec)
	assert.Equal(t, float64(1), data["total"])
}
