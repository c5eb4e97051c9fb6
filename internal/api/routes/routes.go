package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/api/handlers"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/config"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/metrics"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/ml"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/models"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/services"
)

// Register wires up the service routes and performs automatic migrations.
// The predictions table is created idempotently here at startup.
func Register(router *gin.Engine, db *gorm.DB, cfg config.Config, forest *ml.IsolationForest, scaler *ml.StandardScaler, registry *prometheus.Registry) error {
	if err := db.AutoMigrate(&models.Prediction{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	alertService := services.NewAlertService(cfg)
	predictionService := services.NewPredictionService(db, forest, scaler, alertService)

	predictHandler := handlers.NewPredictHandler(predictionService)
	historyHandler := handlers.NewHistoryHandler(predictionService)

	router.POST("/predict", predictHandler.Predict)
	router.GET("/history", historyHandler.List)
	router.GET("/health", handlers.HealthHandler)

	if registry != nil {
		metrics.Register(registry)
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	return nil
}
