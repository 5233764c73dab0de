package categoryRoutes

import (
	categoryController "medtrain/controllers/category"
	"medtrain/middleware"
	"medtrain/validators"

	"github.com/gofiber/fiber/v2"
)

// SetupCategoryRoutes registers category routes: reads for any
// authenticated user, writes for admins.
func SetupCategoryRoutes(app *fiber.App, ctrl *categoryController.Controller, guard *middleware.Guard) {
	categories := app.Group("/categories", guard.Authenticate)

	categories.Get("/", ctrl.GetCategories)
	categories.Get("/:categoryId", ctrl.GetCategoryByID)

	categories.Post("/", guard.RestrictToAdmin, validators.CreateCategory(), ctrl.CreateCategory)
	categories.Patch("/:categoryId", guard.RestrictToAdmin, validators.UpdateCategory(), ctrl.UpdateCategory)
	categories.Delete("/:categoryId", guard.RestrictToAdmin, ctrl.DeleteCategory)
}
