package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles form a closed set.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	Email           string `gorm:"unique;not null" json:"email"`
	Password        string `gorm:"not null" json:"-"`
	Name            string `gorm:"not null" json:"name"`
	Role            string `gorm:"default:'user'" json:"role"` // user, admin
	Specialization  string `json:"specialization"`
	ExperienceYears int    `json:"experienceYears"`

	// Aggregate solve counters. TotalAttempts is incremented on every
	// submission, CorrectAttempts only on correct ones. The solved-task
	// history lives in SolvedTask and mirrors the solution ledger.
	TotalAttempts   int `gorm:"default:0" json:"totalAttempts"`
	CorrectAttempts int `gorm:"default:0" json:"correctAttempts"`
}

// OwnerID implements Ownable: a user owns their own account.
func (u *User) OwnerID() uint {
	return u.ID
}

// SolvedTask is one entry of a user's denormalized solve history.
// At most one entry exists per (user, task); the entry is written on the
// first submission and kept as-is on resubmission.
type SolvedTask struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	UserID    uint      `gorm:"uniqueIndex:idx_solved_user_task;not null" json:"-"`
	TaskID    uint      `gorm:"uniqueIndex:idx_solved_user_task;not null" json:"taskId"`
	Task      *Task     `json:"task,omitempty"`
	SolvedAt  time.Time `json:"solvedAt"`
	IsCorrect bool      `json:"isCorrect"`
}
