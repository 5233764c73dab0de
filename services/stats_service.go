package services

import (
	"errors"
	"math"
	"time"

	"medtrain/apierror"
	"medtrain/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatsService maintains the per-user aggregate counters and the
// denormalized solved-task history mirroring the solution ledger.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// UserStats is the read model returned by GetStats.
type UserStats struct {
	TotalAttempts   int     `json:"totalAttempts"`
	CorrectAttempts int     `json:"correctAttempts"`
	SuccessRate     float64 `json:"successRate"`
}

// RecordAttempt applies one submission to the user's aggregates inside the
// caller's transaction. TotalAttempts is incremented on every call,
// CorrectAttempts only on correct ones. The history entry is inserted once
// per task and never rewritten on resubmission, so the stored counters can
// drift from the history; GetStats recomputes correctness from the history.
func (s *StatsService) RecordAttempt(tx *gorm.DB, userID, taskID uint, isCorrect bool) error {
	updates := map[string]interface{}{
		"total_attempts": gorm.Expr("total_attempts + 1"),
	}
	if isCorrect {
		updates["correct_attempts"] = gorm.Expr("correct_attempts + 1")
	}
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error; err != nil {
		return err
	}

	// Set semantics: the first attempt creates the entry, later ones are
	// no-ops.
	entry := models.SolvedTask{
		UserID:    userID,
		TaskID:    taskID,
		SolvedAt:  time.Now(),
		IsCorrect: isCorrect,
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
}

// GetStats returns the user's aggregates. CorrectAttempts is recomputed by
// counting correct history entries rather than trusting the stored counter.
func (s *StatsService) GetStats(userID uint) (*UserStats, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, apierror.NotFound("User not found")
	}

	var correct int64
	if err := s.db.Model(&models.SolvedTask{}).
		Where("user_id = ? AND is_correct = ?", userID, true).
		Count(&correct).Error; err != nil {
		return nil, err
	}

	stats := &UserStats{
		TotalAttempts:   user.TotalAttempts,
		CorrectAttempts: int(correct),
	}
	if user.TotalAttempts > 0 {
		rate := float64(correct) / float64(user.TotalAttempts) * 100
		stats.SuccessRate = math.Round(rate*100) / 100
	}
	return stats, nil
}

// GetSolvedTasks returns a page of the user's solve history, newest first,
// with the referenced task preloaded.
func (s *StatsService) GetSolvedTasks(userID uint, limit, page int) ([]models.SolvedTask, error) {
	if limit < 1 {
		limit = 10
	}
	if page < 1 {
		page = 1
	}

	var entries []models.SolvedTask
	err := s.db.Where("user_id = ?", userID).
		Preload("Task").
		Order("solved_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// RemoveSolvedTask deletes one history entry and rolls the counters back:
// TotalAttempts always by one, CorrectAttempts only when the removed entry
// was correct.
func (s *StatsService) RemoveSolvedTask(userID, taskID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.SolvedTask
		err := tx.Where("user_id = ? AND task_id = ?", userID, taskID).First(&entry).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("Task not found in solve history")
			}
			return err
		}

		if err := tx.Delete(&entry).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"total_attempts": gorm.Expr("total_attempts - 1"),
		}
		if entry.IsCorrect {
			updates["correct_attempts"] = gorm.Expr("correct_attempts - 1")
		}
		return tx.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
	})
}
