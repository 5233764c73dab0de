package taskController

import (
	"medtrain/apierror"
	"medtrain/middleware"
	"medtrain/services"
	"medtrain/validators"

	"github.com/gofiber/fiber/v2"
)

// Controller exposes the task CRUD and submission endpoints.
type Controller struct {
	tasks *services.TaskService
}

func New(tasks *services.TaskService) *Controller {
	return &Controller{tasks: tasks}
}

func taskIDParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("taskId")
	if err != nil || id < 1 {
		return 0, apierror.BadRequest("Invalid task id")
	}
	return uint(id), nil
}

// CreateTask inserts a new task authored by the principal. Admin only.
func (ctl *Controller) CreateTask(c *fiber.Ctx) error {
	reqData := c.Locals(validators.LocalCreateTask).(*validators.CreateTaskRequest)
	user := middleware.Principal(c)

	task, err := ctl.tasks.CreateTask(services.CreateTaskInput{
		Title:         reqData.Title,
		Description:   reqData.Description,
		CategoryID:    reqData.CategoryID,
		Difficulty:    reqData.Difficulty,
		CorrectAnswer: reqData.CorrectAnswer,
		Options:       reqData.Options,
		Explanation:   reqData.Explanation,
	}, user.ID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(task)
}

// GetTasks lists tasks filtered by category and difficulty, paginated.
func (ctl *Controller) GetTasks(c *fiber.Ctx) error {
	categoryID := uint(c.QueryInt("category", 0))
	difficulty := c.Query("difficulty")
	limit := c.QueryInt("limit", 10)
	page := c.QueryInt("page", 1)

	tasks, err := ctl.tasks.GetTasks(categoryID, difficulty, limit, page)
	if err != nil {
		return err
	}
	return c.JSON(tasks)
}

// GetTaskByID returns one task.
func (ctl *Controller) GetTaskByID(c *fiber.Ctx) error {
	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}

	task, err := ctl.tasks.GetTaskByID(taskID)
	if err != nil {
		return err
	}
	return c.JSON(task)
}

// UpdateTask applies a partial update. Ownership is checked by middleware.
func (ctl *Controller) UpdateTask(c *fiber.Ctx) error {
	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}
	reqData := c.Locals(validators.LocalUpdateTask).(*validators.UpdateTaskRequest)

	task, err := ctl.tasks.UpdateTask(taskID, services.UpdateTaskInput{
		Title:         reqData.Title,
		Description:   reqData.Description,
		CategoryID:    reqData.CategoryID,
		Difficulty:    reqData.Difficulty,
		CorrectAnswer: reqData.CorrectAnswer,
		Options:       reqData.Options,
		Explanation:   reqData.Explanation,
		IsActive:      reqData.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(task)
}

// DeleteTask hard-deletes a task. Admin only.
func (ctl *Controller) DeleteTask(c *fiber.Ctx) error {
	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}
	if err := ctl.tasks.DeleteTask(taskID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitSolution grades an answer and records the attempt.
func (ctl *Controller) SubmitSolution(c *fiber.Ctx) error {
	taskID, err := taskIDParam(c)
	if err != nil {
		return err
	}
	reqData := c.Locals(validators.LocalSubmitSolution).(*validators.SubmitSolutionRequest)
	user := middleware.Principal(c)

	result, err := ctl.tasks.SubmitSolution(user.ID, taskID, reqData.Answer)
	if err != nil {
		return err
	}
	return c.JSON(result)
}
