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
	"go.uber.org/zap"

	"github.com/Mateusjonees/fundacaodombosco-85-sub003/internal/models"
)

func testCatalog(t *testing.T) *models.Catalog {
	t.Helper()
	catalog := &models.Catalog{
		Tests: []models.TestDefinition{
			{
				Code:     "CALC_BNTBR",
				Name:     "Cálculo Manual BNT-Br",
				AgeRange: models.AgeRange{Min: 18, Max: 80},
				Model:    models.ModelZScore,
				Subscores: []models.Subscore{
					{Name: "espontanea", Label: "Nomeação Espontânea"},
				},
			},
		},
	}
	require.NoError(t, catalog.Init())
	return catalog
}

func previewRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewScoreHandler(zap.NewNop(), testCatalog(t))
	r.POST("/tests/:code/score", h.Preview)
	return r
}

func postPreview(t *testing.T, r *gin.Engine, code string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/tests/"+code+"/score", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPreviewUnknownTest(t *testing.T) {
	r := previewRouter(t)
	w := postPreview(t, r, "NAO_EXISTE", models.RawScoreInput{PatientAge: 30})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreviewIneligibleAge(t *testing.T) {
	r := previewRouter(t)
	w := postPreview(t, r, "CALC_BNTBR", models.RawScoreInput{
		PatientAge: 15,
		Values:     map[string]string{"espontanea": "50"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp previewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Eligible)
	assert.Nil(t, resp.Result)
}

func TestPreviewIncompleteInput(t *testing.T) {
	r := previewRouter(t)
	w := postPreview(t, r, "CALC_BNTBR", models.RawScoreInput{
		PatientAge: 40,
		Values:     map[string]string{"espontanea": "52"},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp previewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Eligible)
	assert.False(t, resp.Complete)
	assert.Nil(t, resp.Result)
}

func TestPreviewCompleteInput(t *testing.T) {
	r := previewRouter(t)
	w := postPreview(t, r, "CALC_BNTBR", models.RawScoreInput{
		PatientAge: 40,
		Values: map[string]string{
			"espontanea":        "52",
			"espontanea_media":  "55.5",
			"espontanea_desvio": "3.1",
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp previewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Eligible)
	assert.True(t, resp.Complete)
	require.NotNil(t, resp.Result)
	require.NotNil(t, resp.Result.CalculatedScores["espontanea"])
	assert.InDelta(t, -1.13, *resp.Result.CalculatedScores["espontanea"], 0.0001)
	assert.Equal(t, "Médio Inferior", resp.Result.Classifications["espontanea"])
}
