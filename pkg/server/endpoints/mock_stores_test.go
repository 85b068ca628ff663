package endpoints

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/server/store"
)

type mockUsersStore struct {
	mock.Mock
}

func (m *mockUsersStore) ListUsers(filter store.UserFilter) ([]model.User, int, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.User), args.Int(1), args.Error(2)
}

func (m *mockUsersStore) FetchUser(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUsersStore) FetchUserByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUsersStore) CreateUser(user *model.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUsersStore) UpdateUser(user *model.User) error {
	return m.Called(user).Error(0)
}

func (m *mockUsersStore) DeleteUser(id string) error {
	return m.Called(id).Error(0)
}

type mockCompaniesStore struct {
	mock.Mock
}

func (m *mockCompaniesStore) ListCompanies(limit, offset int) ([]model.Company, int, error) {
	args := m.Called(limit, offset)
	return args.Get(0).([]model.Company), args.Int(1), args.Error(2)
}

func (m *mockCompaniesStore) FetchCompany(id string) (*model.Company, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

func (m *mockCompaniesStore) CreateCompany(company *model.Company) error {
	return m.Called(company).Error(0)
}

func (m *mockCompaniesStore) UpdateCompany(company *model.Company) error {
	return m.Called(company).Error(0)
}

func (m *mockCompaniesStore) DeleteCompany(id string) error {
	return m.Called(id).Error(0)
}

type mockDepartmentsStore struct {
	mock.Mock
}

func (m *mockDepartmentsStore) ListDepartments(companyID *string) ([]model.Department, error) {
	args := m.Called(companyID)
	return args.Get(0).([]model.Department), args.Error(1)
}

func (m *mockDepartmentsStore) FetchDepartment(id string) (*model.Department, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Department), args.Error(1)
}

func (m *mockDepartmentsStore) CreateDepartment(department *model.Department) error {
	return m.Called(department).Error(0)
}

func (m *mockDepartmentsStore) DeleteDepartment(id string) error {
	return m.Called(id).Error(0)
}

type mockDemographicsStore struct {
	mock.Mock
}

func (m *mockDemographicsStore) ListFields(companyID string) ([]model.DemographicField, error) {
	args := m.Called(companyID)
	return args.Get(0).([]model.DemographicField), args.Error(1)
}

func (m *mockDemographicsStore) CreateField(field *model.DemographicField) error {
	return m.Called(field).Error(0)
}

func (m *mockDemographicsStore) DeleteField(id string) error {
	return m.Called(id).Error(0)
}

type mockSurveysStore struct {
	mock.Mock
}

func (m *mockSurveysStore) ListSurveys(companyID, status string, limit, offset int) ([]model.Survey, int, error) {
	args := m.Called(companyID, status, limit, offset)
	return args.Get(0).([]model.Survey), args.Int(1), args.Error(2)
}

func (m *mockSurveysStore) FetchSurvey(id string) (*model.Survey, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Survey), args.Error(1)
}

func (m *mockSurveysStore) FetchSurveyQuestions(surveyID string) ([]model.SurveyQuestion, error) {
	args := m.Called(surveyID)
	return args.Get(0).([]model.SurveyQuestion), args.Error(1)
}

func (m *mockSurveysStore) CreateSurvey(survey *model.Survey, questions []model.SurveyQuestion) error {
	return m.Called(survey, questions).Error(0)
}

func (m *mockSurveysStore) UpdateSurvey(survey *model.Survey) error {
	return m.Called(survey).Error(0)
}

func (m *mockSurveysStore) UpdateSurveyStatus(id, status string) error {
	return m.Called(id, status).Error(0)
}

func (m *mockSurveysStore) DeleteSurvey(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockSurveysStore) ListTemplates(companyID *string) ([]model.SurveyTemplate, error) {
	args := m.Called(companyID)
	return args.Get(0).([]model.SurveyTemplate), args.Error(1)
}

func (m *mockSurveysStore) FetchTemplate(id string) (*model.SurveyTemplate, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SurveyTemplate), args.Error(1)
}

func (m *mockSurveysStore) FetchTemplateQuestions(templateID string) ([]model.TemplateQuestion, error) {
	args := m.Called(templateID)
	return args.Get(0).([]model.TemplateQuestion), args.Error(1)
}

func (m *mockSurveysStore) UpsertTemplate(template model.SurveyTemplate, questions []model.TemplateQuestion) error {
	return m.Called(template, questions).Error(0)
}

type mockResponsesStore struct {
	mock.Mock
}

func (m *mockResponsesStore) CreateResponse(response *model.Response, answers []model.Answer) error {
	return m.Called(response, answers).Error(0)
}

func (m *mockResponsesStore) ListResponses(surveyID string, limit, offset int) ([]model.Response, int, error) {
	args := m.Called(surveyID, limit, offset)
	return args.Get(0).([]model.Response), args.Int(1), args.Error(2)
}

func (m *mockResponsesStore) FetchAnswers(responseID string) ([]model.Answer, error) {
	args := m.Called(responseID)
	return args.Get(0).([]model.Answer), args.Error(1)
}

func (m *mockResponsesStore) ListSurveyAnswers(surveyID string) ([]model.Answer, error) {
	args := m.Called(surveyID)
	return args.Get(0).([]model.Answer), args.Error(1)
}

func (m *mockResponsesStore) HasUserResponded(surveyID, userID string) (bool, error) {
	args := m.Called(surveyID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *mockResponsesStore) FetchInvitation(token string) (*model.Invitation, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invitation), args.Error(1)
}

func (m *mockResponsesStore) ConsumeInvitation(id string, response *model.Response, answers []model.Answer) error {
	return m.Called(id, response, answers).Error(0)
}

func (m *mockResponsesStore) CreateInvitations(invitations []model.Invitation) error {
	return m.Called(invitations).Error(0)
}

type mockMicroclimatesStore struct {
	mock.Mock
}

func (m *mockMicroclimatesStore) ListMicroclimates(companyID, status string, limit, offset int) ([]model.Microclimate, int, error) {
	args := m.Called(companyID, status, limit, offset)
	return args.Get(0).([]model.Microclimate), args.Int(1), args.Error(2)
}

func (m *mockMicroclimatesStore) FetchMicroclimate(id string) (*model.Microclimate, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Microclimate), args.Error(1)
}

func (m *mockMicroclimatesStore) FetchMicroclimateQuestions(microclimateID string) ([]model.MicroclimateQuestion, error) {
	args := m.Called(microclimateID)
	return args.Get(0).([]model.MicroclimateQuestion), args.Error(1)
}

func (m *mockMicroclimatesStore) CreateMicroclimate(microclimate *model.Microclimate, questions []model.MicroclimateQuestion) error {
	return m.Called(microclimate, questions).Error(0)
}

func (m *mockMicroclimatesStore) UpdateMicroclimateStatus(id, status string, expiresAt *time.Time) error {
	return m.Called(id, status, expiresAt).Error(0)
}

func (m *mockMicroclimatesStore) SaveMicroclimateAnswers(answers []model.MicroclimateAnswer) error {
	return m.Called(answers).Error(0)
}

func (m *mockMicroclimatesStore) Results(microclimateID string) (*store.MicroclimateResults, error) {
	args := m.Called(microclimateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.MicroclimateResults), args.Error(1)
}

type mockDashboardStore struct {
	mock.Mock
}

func (m *mockDashboardStore) RecentSurveys(companyID string, limit int) ([]model.Survey, error) {
	args := m.Called(companyID, limit)
	return args.Get(0).([]model.Survey), args.Error(1)
}

func (m *mockDashboardStore) ParticipationMetrics(companyID string) (*store.ParticipationMetrics, error) {
	args := m.Called(companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.ParticipationMetrics), args.Error(1)
}

func (m *mockDashboardStore) RecentActivity(companyID string, limit int) ([]store.ActivityEntry, error) {
	args := m.Called(companyID, limit)
	return args.Get(0).([]store.ActivityEntry), args.Error(1)
}

type mockHealthStore struct {
	mock.Mock
}

func (m *mockHealthStore) CheckConnectivity() error {
	return m.Called().Error(0)
}

// Interface guards keep the mocks honest.
var (
	_ store.UsersStore         = (*mockUsersStore)(nil)
	_ store.CompaniesStore     = (*mockCompaniesStore)(nil)
	_ store.DepartmentsStore   = (*mockDepartmentsStore)(nil)
	_ store.DemographicsStore  = (*mockDemographicsStore)(nil)
	_ store.SurveysStore       = (*mockSurveysStore)(nil)
	_ store.ResponsesStore     = (*mockResponsesStore)(nil)
	_ store.MicroclimatesStore = (*mockMicroclimatesStore)(nil)
	_ store.DashboardStore     = (*mockDashboardStore)(nil)
	_ store.HealthStore        = (*mockHealthStore)(nil)
)
