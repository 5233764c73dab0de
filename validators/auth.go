package validators

import (
	"medtrain/apierror"

	"github.com/gofiber/fiber/v2"
)

// LocalRegister and friends are the locals keys under which validated
// payloads are stored for the controllers.
const (
	LocalRegister = "validatedRegister"
	LocalLogin    = "validatedLogin"
)

// RegisterRequest is the registration payload. The role is never accepted
// from the client.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	Name            string `json:"name" validate:"required,min=2,max=32"`
	Specialization  string `json:"specialization" validate:"required,max=100"`
	ExperienceYears int    `json:"experienceYears" validate:"min=0,max=70"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

var registerMessages = map[string]string{
	"Email":           "A valid email is required",
	"Password":        "Password must be at least 8 characters long",
	"Name":            "Name must be between 2 and 32 characters",
	"Specialization":  "Specialization is required and must not exceed 100 characters",
	"ExperienceYears": "Experience must be between 0 and 70 years",
}

var loginMessages = map[string]string{
	"Email":    "A valid email is required",
	"Password": "Password is required",
}

// Register validates the registration payload.
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return apierror.BadRequest("Invalid request body")
		}
		if err := validate.Struct(reqData); err != nil {
			return validationError(err, registerMessages)
		}
		c.Locals(LocalRegister, reqData)
		return c.Next()
	}
}

// Login validates the login payload.
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LoginRequest)
		if err := c.BodyParser(reqData); err != nil {
			return apierror.BadRequest("Invalid request body")
		}
		if err := validate.Struct(reqData); err != nil {
			return validationError(err, loginMessages)
		}
		c.Locals(LocalLogin, reqData)
		return c.Next()
	}
}
