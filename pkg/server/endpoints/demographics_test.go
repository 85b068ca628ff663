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

func TestCreateDemographicField(t *testing.T) {
	t.Run("select field with options", func(t *testing.T) {
		demographics := &mockDemographicsStore{}
		demographics.On("CreateField", mock.MatchedBy(func(f *model.DemographicField) bool {
			return f.CompanyID == "company-1" &&
				f.FieldType == "select" &&
				f.Options == "0-1|2-5|5+"
		})).Return(nil)

		req := newRequest(t, "POST", "/api/admin/demographics", DemographicFieldRequest{
			Name:      "Tenure",
			FieldType: "select",
			Options:   []string{"0-1", "2-5", "5+"},
			Required:  true,
		}, adminIdentity(), nil)
		rec := httptest.NewRecorder()
		handleCreateDemographicField(demographics)(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		demographics.AssertExpectations(t)
	})

	t.Run("select needs options", func(t *testing.T) {
		req := newRequest(t, "POST", "/api/admin/demographics", DemographicFieldRequest{
			Name:      "Tenure",
			FieldType: "select",
		}, adminIdentity(), nil)
		rec := httptest.NewRecorder()
		handleCreateDemographicField(&mockDemographicsStore{})(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "at least one option")
	})

	t.Run("unknown field type", func(t *testing.T) {
		req := newRequest(t, "POST", "/api/admin/demographics", DemographicFieldRequest{
			Name:      "Tenure",
			FieldType: "dropdown",
		}, adminIdentity(), nil)
		rec := httptest.NewRecorder()
		handleCreateDemographicField(&mockDemographicsStore{})(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListDemographicFields(t *testing.T) {
	demographics := &mockDemographicsStore{}
	demographics.On("ListFields", "company-1").Return([]model.DemographicField{
		{ID: "f-1", Name: "Tenure"},
	}, nil)

	req := newRequest(t, "GET", "/api/admin/demographics", nil, adminIdentity(), nil)
	rec := httptest.NewRecorder()
	handleListDemographicFields(demographics)(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data := dataField(t, rec)
	assert.Len(t, data["fields"], 1)
}

func TestDeleteDemographicField(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		demographics := &mockDemographicsStore{}
		demographics.On("DeleteField", "ghost").Return(store.ErrFieldNotFound)

		req := newRequest(t, "DELETE", "/api/admin/demographics/ghost", nil, adminIdentity(),
			map[string]string{"id": "ghost"})
		rec := httptest.NewRecorder()
		handleDeleteDemographicField(demographics)(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		demographics := &mockDemographicsStore{}
		demographics.On("DeleteField", "f-1").Return(nil)

		req := newRequest(t, "DELETE", "/api/admin/demographics/f-1", nil, adminIdentity(),
			map[string]string{"id": "f-1"})
		rec := httptest.NewRecorder()
		handleDeleteDemographicField(demographics)(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
