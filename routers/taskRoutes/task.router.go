package taskRoutes

import (
	taskController "medtrain/controllers/task"
	"medtrain/middleware"
	"medtrain/validators"

	"github.com/gofiber/fiber/v2"
)

// SetupTaskRoutes registers task CRUD and submission routes.
func SetupTaskRoutes(app *fiber.App, ctrl *taskController.Controller, guard *middleware.Guard) {
	tasks := app.Group("/tasks", guard.Authenticate)

	// "create" must be registered before the :taskId routes
	tasks.Post("/create", guard.RestrictToAdmin, validators.CreateTask(), ctrl.CreateTask)

	tasks.Get("/", ctrl.GetTasks)
	tasks.Get("/:taskId", ctrl.GetTaskByID)
	tasks.Post("/:taskId/solve", validators.SubmitSolution(), ctrl.SubmitSolution)
	tasks.Patch("/:taskId",
		guard.CheckOwnership("taskId", middleware.LoadTask),
		validators.UpdateTask(),
		ctrl.UpdateTask,
	)
	tasks.Delete("/:taskId", guard.RestrictTo("admin"), ctrl.DeleteTask)
}
