package authController

import (
	"medtrain/services"
	"medtrain/validators"

	"github.com/gofiber/fiber/v2"
)

// Controller exposes the registration and login endpoints.
type Controller struct {
	auth *services.AuthService
}

func New(auth *services.AuthService) *Controller {
	return &Controller{auth: auth}
}

// Register creates an account with role forced to "user".
func (ctl *Controller) Register(c *fiber.Ctx) error {
	reqData := c.Locals(validators.LocalRegister).(*validators.RegisterRequest)

	user, err := ctl.auth.Register(
		reqData.Email,
		reqData.Password,
		reqData.Name,
		reqData.Specialization,
		reqData.ExperienceYears,
	)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login returns a bearer token for valid credentials.
func (ctl *Controller) Login(c *fiber.Ctx) error {
	reqData := c.Locals(validators.LocalLogin).(*validators.LoginRequest)

	token, err := ctl.auth.Login(reqData.Email, reqData.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"token": token})
}
