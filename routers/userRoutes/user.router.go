package userRoutes

import (
	userController "medtrain/controllers/user"
	"medtrain/middleware"
	"medtrain/validators"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes registers profile, statistics and history routes. The
// /me routes must precede the :userId ones so "me" is not matched as an id.
func SetupUserRoutes(app *fiber.App, ctrl *userController.Controller, guard *middleware.Guard) {
	users := app.Group("/users", guard.Authenticate)

	users.Put("/me/update", validators.UpdateProfile(), ctrl.UpdateProfile)
	users.Post("/me/change-password", validators.ChangePassword(), ctrl.ChangePassword)
	users.Get("/me/stats", ctrl.GetStats)
	users.Get("/me/solved-tasks", ctrl.GetSolvedTasks)
	users.Delete("/me/solved-tasks/:taskId", ctrl.RemoveSolvedTask)

	users.Get("/", guard.RestrictToAdmin, ctrl.GetAllUsers)
	users.Get("/:userId", ctrl.GetUserByID)
	users.Delete("/:userId", guard.CheckOwnership("userId", middleware.LoadUser), ctrl.DeleteUser)
}
