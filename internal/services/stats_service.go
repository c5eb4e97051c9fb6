package services

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/logger"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/metrics"
	"github.com/Raj9555/Ground-Water-Condition-Detection/internal/models"
)

// StatsService periodically sweeps the predictions table to log volume and
// refresh the history gauge. Observational only; it never mutates rows.
type StatsService struct {
	db   *gorm.DB
	cron *cron.Cron
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db, cron: cron.New()}
}

// Start schedules an hourly sweep and runs one immediately.
func (s *StatsService) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.Sweep()
	return nil
}

// Stop halts the schedule. In-flight sweeps finish on their own.
func (s *StatsService) Stop() {
	s.cron.Stop()
}

// Sweep counts stored predictions, split by critical rows, and publishes
// the totals.
func (s *StatsService) Sweep() {
	var total, critical int64
	if err := s.db.Model(&models.Prediction{}).Count(&total).Error; err != nil {
		logger.Log().WithError(err).Error("stats sweep failed")
		return
	}
	if err := s.db.Model(&models.Prediction{}).Where("label = ?", models.LabelCritical).Count(&critical).Error; err != nil {
		logger.Log().WithError(err).Error("stats sweep failed")
		return
	}

	metrics.SetHistoryRows(total)
	logger.WithFields(map[string]interface{}{
		"total":    total,
		"critical": critical,
	}).Info("prediction history stats")
}
