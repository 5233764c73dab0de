package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Task difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Task is an admin-authored multiple-choice exercise. Options must contain
// CorrectAnswer and hold at least two entries; grading compares the
// submitted answer against CorrectAnswer by strict string equality.
type Task struct {
	gorm.Model
	Title         string                      `gorm:"not null" json:"title"`
	Description   string                      `gorm:"not null" json:"description"`
	CategoryID    uint                        `gorm:"not null;index" json:"categoryId"`
	Category      *Category                   `json:"category,omitempty"`
	Difficulty    string                      `gorm:"not null" json:"difficulty"` // easy, medium, hard
	CorrectAnswer string                      `gorm:"not null" json:"correctAnswer"`
	Options       datatypes.JSONSlice[string] `gorm:"not null" json:"options"`
	Explanation   string                      `gorm:"not null" json:"explanation"`
	AuthorID      uint                        `gorm:"not null;index" json:"authorId"`
	IsActive      bool                        `gorm:"default:true" json:"isActive"`
}

// OwnerID implements Ownable: the task's author owns it.
func (t *Task) OwnerID() uint {
	return t.AuthorID
}
