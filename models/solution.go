package models

import (
	"time"

	"gorm.io/gorm"
)

// Solution is the durable ledger entry for one user's answer to one task.
// The composite unique index keeps a single current entry per (user, task);
// resubmission overwrites the entry in place instead of appending.
type Solution struct {
	gorm.Model
	UserID     uint      `gorm:"uniqueIndex:idx_solution_user_task;not null" json:"userId"`
	TaskID     uint      `gorm:"uniqueIndex:idx_solution_user_task;not null" json:"taskId"`
	UserAnswer string    `gorm:"not null" json:"userAnswer"`
	IsCorrect  bool      `json:"isCorrect"`
	SolvedAt   time.Time `json:"solvedAt"`
}

// OwnerID implements Ownable: the submitting user owns the entry.
func (s *Solution) OwnerID() uint {
	return s.UserID
}
