package endpoints

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/orgpulse/orgpulse/pkg/model"
	"github.com/orgpulse/orgpulse/pkg/server/store"
)

func TestCreateCompany(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companies := &mockCompaniesStore{}
		companies.On("CreateCompany", mock.MatchedBy(func(c *model.Company) bool {
			return c.Name == "Acme" && c.Industry == "Manufacturing"
		})).Return(nil)

		req := newRequest(t, "POST", "/api/admin/companies", CompanyRequest{
			Name:     " Acme ",
			Industry: "<b>Manufacturing</b>", // markup other than script/iframe survives
			Size:     "50-200",
		}, superAdminIdentity(), nil)
		rec := httptest.NewRecorder()
		handleCreateCompany(companies)(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("missing name", func(t *testing.T) {
		req := newRequest(t, "POST", "/api/admin/companies", CompanyRequest{},
			superAdminIdentity(), nil)
		rec := httptest.NewRecorder()
		handleCreateCompany(&mockCompaniesStore{})(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetCompany(t *testing.T) {
	companies := &mockCompaniesStore{}
	companies.On("FetchCompany", "ghost").Return(nil, store.ErrCompanyNotFound)

	req := newRequest(t, "GET", "/api/admin/companies/ghost", nil, superAdminIdentity(),
		map[string]string{"id": "ghost"})
	rec := httptest.NewRecorder()
	handleGetCompany(companies)(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCompany(t *testing.T) {
	companies := &mockCompaniesStore{}
	companies.On("FetchCompany", "c-1").Return(&model.Company{
		ID: "c-1", Name: "Acme", Industry: "Manufacturing",
	}, nil)
	companies.On("UpdateCompany", mock.MatchedBy(func(c *model.Company) bool {
		return c.Name == "Acme Industries" && c.Industry == "Manufacturing"
	})).Return(nil)

	req := newRequest(t, "PUT", "/api/admin/companies/c-1", CompanyRequest{
		Name: "Acme Industries",
	}, superAdminIdentity(), map[string]string{"id": "c-1"})
	rec := httptest.NewRecorder()
	handleUpdateCompany(companies)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	companies.AssertExpectations(t)
}

func TestDeleteCompany(t *testing.T) {
	companies := &mockCompaniesStore{}
	companies.On("DeleteCompany", "c-1").Return(nil)

	req := newRequest(t, "DELETE", "/api/admin/companies/c-1", nil, superAdminIdentity(),
		map[string]string{"id": "c-1"})
	rec := httptest.NewRecorder()
	handleDeleteCompany(companies)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	companies.AssertExpectations(t)
}

func TestListCompanies(t *testing.T) {
	companies := &mockCompaniesStore{}
	companies.On("ListCompanies", 20, 0).Return([]model.Company{{ID: "c-1"}}, 1, nil)

	req := newRequest(t, "GET", "/api/admin/companies", nil, superAdminIdentity(), nil)
	rec := httptest.NewRecorder()
	handleListCompanies(companies, testConfig())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := dataField(t, rec)
	assert.Equal(t, float64(1), data["total"])
}
