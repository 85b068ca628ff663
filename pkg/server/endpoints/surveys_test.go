package endpoints

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/server/store"
	"github.com/orgpulse/orgpulse/pkg/survey"
)

func draftSurvey() *model.Survey {
	return &model.Survey{
		ID:        "s-1",
		CompanyID: "company-1",
		CreatedBy: "admin-1",
		Title:     "Quarterly Climate",
		Type:      survey.TypeGeneralClimate,
		Status:    model.SurveyStatusDraft,
	}
}

func TestCreateSurvey(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("CreateSurvey",
			mock.MatchedBy(func(s *model.Survey) bool {
				return s.CompanyID == "company-1" &&
					s.CreatedBy == "admin-1" &&
					s.Status == model.SurveyStatusDraft &&
					s.Type == survey.TypeWellbeing
			}),
			mock.MatchedBy(func(qs []model.SurveyQuestion) bool {
				return len(qs) == 2 &&
					qs[0].OrderIndex == 1 &&
					qs[1].OrderIndex == 7 &&
					qs[1].Options == "great|fine|poor"
			}),
		).Return(nil)

		seven := 7
		req := newRequest(t, "POST", "/api/surveys", SurveyRequest{
			Title: "Wellbeing Check",
			Type:  survey.TypeWellbeing,
			Questions: []SurveyQuestionRequest{
				{Text: "How are you sleeping?", QuestionType: survey.QuestionRating},
				{Text: "Team mood?", QuestionType: survey.QuestionChoice,
					Options: []string{"great", "fine", "poor"}, OrderIndex: &seven},
			},
		}, adminIdentity(), nil)
		rec := httptest.NewRecorder()
		handleCreateSurvey(surveys)(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		surveys.AssertExpectations(t)
	})

	t.Run("defaults to custom type", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("CreateSurvey", mock.MatchedBy(func(s *model.Survey) bool {
			return s.Type == survey.TypeCustom
		}), mock.Anything).Return(nil)

		req := newRequest(t, "POST", "/api/surveys", SurveyRequest{Title: "Untyped"},
			adminIdentity(), nil)
		rec := httptest.NewRecorder()
		handleCreateSurvey(surveys)(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		surveys.AssertExpectations(t)
	})

	t.Run("validation issues", func(t *testing.T) {
		starts := time.Now()
		ends := starts.Add(-time.Hour)
		req := newRequest(t, "POST", "/api/surveys", SurveyRequest{
			Title:    "",
			Type:     "weird",
			StartsAt: &starts,
			EndsAt:   &ends,
			Questions: []SurveyQuestionRequest{
				{Text: "", QuestionType: "guess"},
				{Text: "Pick one", QuestionType: survey.QuestionChoice},
			},
		}, adminIdentity(), nil)
		rec := httptest.NewRecorder()
		handleCreateSurvey(&mockSurveysStore{})(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeEnvelope(t, rec)
		issues := body["issues"].([]interface{})
		assert.GreaterOrEqual(t, len(issues), 5)
	})

	t.Run("title is sanitized", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("CreateSurvey", mock.MatchedBy(func(s *model.Survey) bool {
			return s.Title == "Clean Title"
		}), mock.Anything).Return(nil)

		req := newRequest(t, "POST", "/api/surveys", SurveyRequest{
			Title: "  <script>alert(1)</script>Clean Title ",
		}, adminIdentity(), nil)
		rec := httptest.NewRecorder()
		handleCreateSurvey(surveys)(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		surveys.AssertExpectations(t)
	})
}

func TestGetSurvey(t *testing.T) {
	t.Run("success with questions", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(draftSurvey(), nil)
		surveys.On("FetchSurveyQuestions", "s-1").Return([]model.SurveyQuestion{
			{ID: "q-1", SurveyID: "s-1", Text: "Mood?", QuestionType: survey.QuestionChoice,
				Options: "a|b", OrderIndex: 1},
		}, nil)

		req := newRequest(t, "GET", "/api/surveys/s-1", nil, adminIdentity(),
			map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleGetSurvey(surveys)(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		data := dataField(t, rec)
		questions := data["questions"].([]interface{})
		require.Len(t, questions, 1)
		q := questions[0].(map[string]interface{})
		assert.Equal(t, []interface{}{"a", "b"}, q["options"])
	})

	t.Run("cross-tenant yields 404", func(t *testing.T) {
		other := draftSurvey()
		other.CompanyID = "company-2"
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(other, nil)

		req := newRequest(t, "GET", "/api/surveys/s-1", nil, adminIdentity(),
			map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleGetSurvey(surveys)(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("super admin crosses tenants", func(t *testing.T) {
		other := draftSurvey()
		other.CompanyID = "company-2"
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(other, nil)
		surveys.On("FetchSurveyQuestions", "s-1").Return([]model.SurveyQuestion{}, nil)

		req := newRequest(t, "GET", "/api/surveys/s-1", nil, superAdminIdentity(),
			map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleGetSurvey(surveys)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown survey", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "nope").Return(nil, store.ErrSurveyNotFound)

		req := newRequest(t, "GET", "/api/surveys/nope", nil, adminIdentity(),
			map[string]string{"id": "nope"})
		rec := httptest.NewRecorder()
		handleGetSurvey(surveys)(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateSurvey(t *testing.T) {
	t.Run("only drafts", func(t *testing.T) {
		active := draftSurvey()
		active.Status = model.SurveyStatusActive
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(active, nil)

		req := newRequest(t, "PUT", "/api/surveys/s-1", SurveyRequest{Title: "New"},
			adminIdentity(), map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleUpdateSurvey(surveys)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Only draft surveys")
	})

	t.Run("partial update", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(draftSurvey(), nil)
		surveys.On("UpdateSurvey", mock.MatchedBy(func(s *model.Survey) bool {
			return s.Title == "Renamed" && s.Type == survey.TypeGeneralClimate
		})).Return(nil)

		req := newRequest(t, "PUT", "/api/surveys/s-1", SurveyRequest{Title: "Renamed"},
			adminIdentity(), map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleUpdateSurvey(surveys)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		surveys.AssertExpectations(t)
	})
}

func TestSurveyTransitions(t *testing.T) {
	t.Run("launch draft", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(draftSurvey(), nil)
		surveys.On("UpdateSurveyStatus", "s-1", model.SurveyStatusActive).Return(nil)

		req := newRequest(t, "POST", "/api/surveys/s-1/launch", nil, adminIdentity(),
			map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleSurveyTransition(surveys, model.SurveyStatusActive)(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		data := dataField(t, rec)
		assert.Equal(t, model.SurveyStatusActive, data["Status"])
	})

	t.Run("close active", func(t *testing.T) {
		active := draftSurvey()
		active.Status = model.SurveyStatusActive
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(active, nil)
		surveys.On("UpdateSurveyStatus", "s-1", model.SurveyStatusClosed).Return(nil)

		req := newRequest(t, "POST", "/api/surveys/s-1/close", nil, adminIdentity(),
			map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleSurveyTransition(surveys, model.SurveyStatusClosed)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("cannot skip draft to closed", func(t *testing.T) {
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(draftSurvey(), nil)

		req := newRequest(t, "POST", "/api/surveys/s-1/close", nil, adminIdentity(),
			map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleSurveyTransition(surveys, model.SurveyStatusClosed)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("closed is terminal", func(t *testing.T) {
		closed := draftSurvey()
		closed.Status = model.SurveyStatusClosed
		surveys := &mockSurveysStore{}
		surveys.On("FetchSurvey", "s-1").Return(closed, nil)

		req := newRequest(t, "POST", "/api/surveys/s-1/launch", nil, adminIdentity(),
			map[string]string{"id": "s-1"})
		rec := httptest.NewRecorder()
		handleSurveyTransition(surveys, model.SurveyStatusActive)(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListSurveys(t *testing.T) {
	surveys := &mockSurveysStore{}
	surveys.On("ListSurveys", "company-1", "active", 20, 0).
		Return([]model.Survey{*draftSurvey()}, 1, nil)

	req := newRequest(t, "GET", "/api/surveys?status=active", nil, adminIdentity(), nil)
	rec := httptest.NewRecorder()
	handleListSurveys(surveys, testConfig())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := dataField(t, rec)
	assert.Equal(t, float64(1), data["total"])
	surveys.AssertExpectations(t)
}

func TestDeleteSurvey(t *testing.T) {
	surveys := &mockSurveysStore{}
	surveys.On("FetchSurvey", "s-1").Return(draftSurvey(), nil)
	surveys.On("DeleteSurvey", "s-1").Return(nil)

	req := newRequest(t, "DELETE", "/api/surveys/s-1", nil, adminIdentity(),
		map[string]string{"id": "s-1"})
	rec := httptest.NewRecorder()
	handleDeleteSurvey(surveys)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	surveys.AssertExpectations(t)
}
