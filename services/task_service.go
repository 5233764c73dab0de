package services

import (
	"errors"
	"time"

	"medtrain/apierror"
	"medtrain/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskService handles task CRUD and the submission flow.
type TaskService struct {
	db    *gorm.DB
	stats *StatsService
}

func NewTaskService(db *gorm.DB, stats *StatsService) *TaskService {
	return &TaskService{db: db, stats: stats}
}

// SubmitResult is the response of a solution submission. CorrectAnswer is
// set only when the answer was wrong, so a correct submission never echoes
// the answer back.
type SubmitResult struct {
	IsCorrect     bool   `json:"isCorrect"`
	SolutionID    uint   `json:"solutionId"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
}

// CreateTaskInput carries the validated payload for task creation.
type CreateTaskInput struct {
	Title         string
	Description   string
	CategoryID    uint
	Difficulty    string
	CorrectAnswer string
	Options       []string
	Explanation   string
}

// UpdateTaskInput carries a partial task update; nil fields are untouched.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	CategoryID    *uint
	Difficulty    *string
	CorrectAnswer *string
	Options       []string
	Explanation   *string
	IsActive      *bool
}

// CreateTask inserts an admin-authored task. An exactly matching task
// (title, description, correct answer, difficulty, category) is a conflict.
func (s *TaskService) CreateTask(input CreateTaskInput, authorID uint) (*models.Task, error) {
	var category models.Category
	if err := s.db.First(&category, input.CategoryID).Error; err != nil {
		return nil, apierror.BadRequest("Referenced category does not exist")
	}

	var existing models.Task
	err := s.db.Where(
		"title = ? AND description = ? AND correct_answer = ? AND difficulty = ? AND category_id = ?",
		input.Title, input.Description, input.CorrectAnswer, input.Difficulty, input.CategoryID,
	).First(&existing).Error
	if err == nil {
		return nil, apierror.Conflict("An identical task already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	task := models.Task{
		Title:         input.Title,
		Description:   input.Description,
		CategoryID:    input.CategoryID,
		Difficulty:    input.Difficulty,
		CorrectAnswer: input.CorrectAnswer,
		Options:       input.Options,
		Explanation:   input.Explanation,
		AuthorID:      authorID,
		IsActive:      true,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, apierror.BadRequest("Failed to create task")
	}
	return &task, nil
}

// GetTasks lists tasks filtered by category and difficulty, paginated,
// with the category preloaded.
func (s *TaskService) GetTasks(categoryID uint, difficulty string, limit, page int) ([]models.Task, error) {
	if limit < 1 {
		limit = 10
	}
	if page < 1 {
		page = 1
	}

	query := s.db.Model(&models.Task{}).Preload("Category")
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var tasks []models.Task
	err := query.Limit(limit).
		Offset((page - 1) * limit).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTaskByID returns one task or 404.
func (s *TaskService) GetTaskByID(taskID uint) (*models.Task, error) {
	var task models.Task
	if err := s.db.Preload("Category").First(&task, taskID).Error; err != nil {
		return nil, apierror.NotFound("Task not found")
	}
	return &task, nil
}

// UpdateTask applies a partial update. Ownership is enforced by the
// middleware chain before this runs.
func (s *TaskService) UpdateTask(taskID uint, input UpdateTaskInput) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		return nil, apierror.NotFound("Task not found")
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.CategoryID != nil {
		var category models.Category
		if err := s.db.First(&category, *input.CategoryID).Error; err != nil {
			return nil, apierror.BadRequest("Referenced category does not exist")
		}
		task.CategoryID = *input.CategoryID
	}
	if input.Difficulty != nil {
		task.Difficulty = *input.Difficulty
	}
	if input.CorrectAnswer != nil {
		task.CorrectAnswer = *input.CorrectAnswer
	}
	if input.Options != nil {
		task.Options = input.Options
	}
	if input.Explanation != nil {
		task.Explanation = *input.Explanation
	}
	if input.IsActive != nil {
		task.IsActive = *input.IsActive
	}

	if err := s.db.Save(&task).Error; err != nil {
		return nil, apierror.BadRequest("Failed to update task")
	}
	return &task, nil
}

// DeleteTask hard-deletes a task. Dependent solution ledger entries are
// kept; history and ledger survive task removal.
func (s *TaskService) DeleteTask(taskID uint) error {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		return apierror.NotFound("Task not found")
	}
	return s.db.Unscoped().Delete(&task).Error
}

// SubmitSolution grades an answer against the task's correct answer and
// persists the outcome. The ledger upsert and the statistics update run in
// one transaction: callers never observe one without the other. Grading is
// strict string equality against the single correct-answer string.
func (s *TaskService) SubmitSolution(userID, taskID uint, answer string) (*SubmitResult, error) {
	var result *SubmitResult

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.First(&task, taskID).Error; err != nil {
			return apierror.NotFound("Task not found")
		}
		if !task.IsActive {
			return apierror.NotFound("Task not found")
		}

		isCorrect := answer == task.CorrectAnswer
		now := time.Now()

		var solution models.Solution
		err := tx.Where("user_id = ? AND task_id = ?", userID, taskID).First(&solution).Error
		switch {
		case err == nil:
			// Resubmission overwrites the existing entry in place.
			solution.UserAnswer = answer
			solution.IsCorrect = isCorrect
			solution.SolvedAt = now
			if err := tx.Save(&solution).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			solution = models.Solution{
				UserID:     userID,
				TaskID:     taskID,
				UserAnswer: answer,
				IsCorrect:  isCorrect,
				SolvedAt:   now,
			}
			// A concurrent submission may win the unique-index race; the
			// loser updates the winner's row in place instead of failing.
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "task_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"user_answer", "is_correct", "solved_at", "updated_at"}),
			}).Create(&solution).Error; err != nil {
				return err
			}
			if solution.ID == 0 {
				if err := tx.Where("user_id = ? AND task_id = ?", userID, taskID).First(&solution).Error; err != nil {
					return err
				}
			}
		default:
			return err
		}

		if err := s.stats.RecordAttempt(tx, userID, taskID, isCorrect); err != nil {
			return err
		}

		result = &SubmitResult{
			IsCorrect:  isCorrect,
			SolutionID: solution.ID,
		}
		if !isCorrect {
			result.CorrectAnswer = task.CorrectAnswer
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
