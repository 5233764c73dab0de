package authRoutes

import (
	authController "medtrain/controllers/auth"
	"medtrain/validators"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes registers the public registration and login routes.
func SetupAuthRoutes(app *fiber.App, ctrl *authController.Controller) {
	auth := app.Group("/auth")

	auth.Post("/register", validators.Register(), ctrl.Register)
	auth.Post("/login", validators.Login(), ctrl.Login)
}
