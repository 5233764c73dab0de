package services

import (
	"net/http"
	"testing"

	"medtrain/apierror"
	"medtrain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTaskService(t *testing.T) (*TaskService, *StatsService, *testFixture) {
	t.Helper()

	db := newTestDB(t)
	stats := NewStatsService(db)
	svc := NewTaskService(db, stats)

	admin := createTestUser(t, db, "admin@clinic.test", models.RoleAdmin)
	user := createTestUser(t, db, "doctor@clinic.test", models.RoleUser)
	category := createTestCategory(t, db, "Trauma")
	task := createTestTask(t, db, category.ID, admin.ID, "MRI and X-ray")

	return svc, stats, &testFixture{db: db, admin: admin, user: user, category: category, task: task}
}

type testFixture struct {
	db       *gorm.DB
	admin    *models.User
	user     *models.User
	category *models.Category
	task     *models.Task
}

func TestSubmitSolution_WrongThenCorrect(t *testing.T) {
	svc, _, fx := newTaskService(t)

	// Wrong answer: response carries the correct answer
	result, err := svc.SubmitSolution(fx.user.ID, fx.task.ID, "Ultrasound")
	require.NoError(t, err)
	assert.False(t, result.IsCorrect)
	assert.Equal(t, "MRI and X-ray", result.CorrectAnswer)
	assert.NotZero(t, result.SolutionID)
	firstID := result.SolutionID

	// Resubmission with the correct answer: same ledger entry, answer omitted
	result, err = svc.SubmitSolution(fx.user.ID, fx.task.ID, "MRI and X-ray")
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Empty(t, result.CorrectAnswer)
	assert.Equal(t, firstID, result.SolutionID)

	var count int64
	require.NoError(t, fx.db.Model(&models.Solution{}).
		Where("user_id = ? AND task_id = ?", fx.user.ID, fx.task.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count, "resubmission must overwrite, not duplicate")

	var solution models.Solution
	require.NoError(t, fx.db.Where("user_id = ? AND task_id = ?", fx.user.ID, fx.task.ID).First(&solution).Error)
	assert.Equal(t, "MRI and X-ray", solution.UserAnswer)
	assert.True(t, solution.IsCorrect)
}

func TestSubmitSolution_TaskMissingOrInactive(t *testing.T) {
	svc, _, fx := newTaskService(t)

	_, err := svc.SubmitSolution(fx.user.ID, 9999, "anything")
	assertAPIError(t, err, http.StatusNotFound)

	require.NoError(t, fx.db.Model(fx.task).Update("is_active", false).Error)
	_, err = svc.SubmitSolution(fx.user.ID, fx.task.ID, "anything")
	assertAPIError(t, err, http.StatusNotFound)
}

func TestSubmitSolution_UpdatesStatsAtomically(t *testing.T) {
	svc, stats, fx := newTaskService(t)

	_, err := svc.SubmitSolution(fx.user.ID, fx.task.ID, "MRI and X-ray")
	require.NoError(t, err)

	got, err := stats.GetStats(fx.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalAttempts)
	assert.Equal(t, 1, got.CorrectAttempts)

	var history int64
	require.NoError(t, fx.db.Model(&models.SolvedTask{}).
		Where("user_id = ?", fx.user.ID).Count(&history).Error)
	assert.EqualValues(t, 1, history, "ledger write and stats update are one unit")
}

func TestCreateTask_DuplicateConflict(t *testing.T) {
	svc, _, fx := newTaskService(t)

	input := CreateTaskInput{
		Title:         fx.task.Title,
		Description:   fx.task.Description,
		CategoryID:    fx.task.CategoryID,
		Difficulty:    fx.task.Difficulty,
		CorrectAnswer: fx.task.CorrectAnswer,
		Options:       []string{"A", fx.task.CorrectAnswer},
		Explanation:   "duplicate",
	}
	_, err := svc.CreateTask(input, fx.admin.ID)
	assertAPIError(t, err, http.StatusConflict)

	// A single differing field is no longer a duplicate
	input.Difficulty = models.DifficultyHard
	created, err := svc.CreateTask(input, fx.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, fx.admin.ID, created.AuthorID)
	assert.True(t, created.IsActive)
}

func TestCreateTask_UnknownCategory(t *testing.T) {
	svc, _, fx := newTaskService(t)

	_, err := svc.CreateTask(CreateTaskInput{
		Title:         "Another task",
		Description:   "desc",
		CategoryID:    9999,
		Difficulty:    models.DifficultyEasy,
		CorrectAnswer: "A",
		Options:       []string{"A", "B"},
		Explanation:   "exp",
	}, fx.admin.ID)
	assertAPIError(t, err, http.StatusBadRequest)
}

func TestUpdateTask_Partial(t *testing.T) {
	svc, _, fx := newTaskService(t)

	title := "Updated title"
	inactive := false
	updated, err := svc.UpdateTask(fx.task.ID, UpdateTaskInput{Title: &title, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Updated title", updated.Title)
	assert.False(t, updated.IsActive)
	// untouched fields survive
	assert.Equal(t, fx.task.CorrectAnswer, updated.CorrectAnswer)
}

func TestDeleteTask_KeepsLedgerEntries(t *testing.T) {
	svc, _, fx := newTaskService(t)

	_, err := svc.SubmitSolution(fx.user.ID, fx.task.ID, "Ultrasound")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(fx.task.ID))

	_, err = svc.GetTaskByID(fx.task.ID)
	assertAPIError(t, err, http.StatusNotFound)

	// hard delete does not cascade to the ledger
	var orphaned int64
	require.NoError(t, fx.db.Model(&models.Solution{}).
		Where("task_id = ?", fx.task.ID).Count(&orphaned).Error)
	assert.EqualValues(t, 1, orphaned)
}

func TestGetTasks_FilterAndPagination(t *testing.T) {
	svc, _, fx := newTaskService(t)

	other := createTestCategory(t, fx.db, "Cardiology")
	createTestTask(t, fx.db, other.ID, fx.admin.ID, "ECG")

	tasks, err := svc.GetTasks(fx.category.ID, "", 10, 1)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, fx.task.ID, tasks[0].ID)
	require.NotNil(t, tasks[0].Category)
	assert.Equal(t, "Trauma", tasks[0].Category.Name)

	tasks, err = svc.GetTasks(0, models.DifficultyMedium, 10, 1)
	require.NoError(t, err)
	assert.Len(t, tasks, 2)

	tasks, err = svc.GetTasks(0, "", 1, 2)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func assertAPIError(t *testing.T, err error, statusCode int) {
	t.Helper()
	require.Error(t, err)
	apiErr, ok := err.(*apierror.ApiError)
	require.True(t, ok, "expected *apierror.ApiError, got %T: %v", err, err)
	assert.Equal(t, statusCode, apiErr.StatusCode)
}
