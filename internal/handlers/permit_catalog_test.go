// internal/handlers/permit_catalog_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/damaiputra/living-backend/internal/permits"
)

func newCatalogRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPermitHandler(nil, nil)

	r := gin.New()
	r.GET("/permits/types", h.ListTypes)
	r.GET("/permits/types/:code", h.GetType)
	r.POST("/permits/validate", h.ValidateStep)
	return r
}

func TestListTypesReturnsFullCatalog(t *testing.T) {
	r := newCatalogRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/permits/types", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Types []permits.PermitType `json:"types"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data.Types, len(permits.Catalog()))
	assert.Equal(t, permits.TypeAksesKontraktor, body.Data.Types[0].Value)
}

func TestGetTypeIncludesSectionsAndSlots(t *testing.T) {
	r := newCatalogRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/permits/types/akses_kontraktor", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Type          permits.PermitType     `json:"type"`
			Sections      permits.Sections       `json:"sections"`
			DocumentSlots []permits.DocumentSlot `json:"document_slots"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, permits.TypeAksesKontraktor, body.Data.Type.Value)
	assert.True(t, body.Data.Sections.Construction)
	assert.NotEmpty(t, body.Data.DocumentSlots)
}

func TestGetTypeUnknownCode(t *testing.T) {
	r := newCatalogRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/permits/types/izin_terbang", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateStepReportsMissingFields(t *testing.T) {
	r := newCatalogRouter()

	payload, err := json.Marshal(gin.H{
		"step": 2,
		"draft": gin.H{
			"permit_type": "izin_kegiatan",
		},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/permits/validate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Valid   bool     `json:"valid"`
			Missing []string `json:"missing"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Data.Valid)
	assert.Contains(t, body.Data.Missing, "applicant_name")
}

func TestValidateStepRejectsOutOfRangeStep(t *testing.T) {
	r := newCatalogRouter()

	payload, _ := json.Marshal(gin.H{"step": 9, "draft": gin.H{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/permits/validate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
