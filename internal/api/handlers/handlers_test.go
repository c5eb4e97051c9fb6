package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/features"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/ml"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/models"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/services"
)

// testRouter wires the prediction endpoints against a throwaway sqlite
// database and a tiny deterministic forest: observations with a negative
// first feature are flagged anomalous, everything else is normal.
func testRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Prediction{}))

	forest := &ml.IsolationForest{
		NumFeatures: 9,
		SampleSize:  256,
		Offset:      0.5,
		Trees: []ml.Tree{{Nodes: []ml.Node{
			{Feature: 0, Value: 0, Left: 1, Right: 2},
			{Feature: -1, Size: 1},
			{Feature: -1, Size: 256},
		}}},
	}
	scaler := &ml.StandardScaler{Mean: make([]float64, 9), Scale: make([]float64, 9)}
	for i := range scaler.Scale {
		scaler.Scale[i] = 1
	}

	svc := services.NewPredictionService(db, forest, scaler, nil)

	router := gin.New()
	router.POST("/predict", NewPredictHandler(svc).Predict)
	router.GET("/history", NewHistoryHandler(svc).List)
	router.GET("/health", HealthHandler)
	return router, db
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getJSON(t *testing.T, router *gin.Engine, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if out != nil {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

func validObservation() map[string]any {
	payload := make(map[string]any, len(features.Order))
	for _, name := range features.Order {
		payload[name] = 1.0
	}
	return payload
}

func rowCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Prediction{}).Count(&n).Error)
	return n
}
