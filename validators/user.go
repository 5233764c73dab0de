package validators

import (
	"regexp"

	"medtrain/apierror"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalUpdateProfile  = "validatedUpdateProfile"
	LocalChangePassword = "validatedChangePassword"
)

// UpdateProfileRequest is a partial profile update. Role is validated here
// but only applied for admin principals; id, email and password are not
// part of the payload at all.
type UpdateProfileRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=2,max=32"`
	Specialization  *string `json:"specialization" validate:"omitempty,max=100"`
	ExperienceYears *int    `json:"experienceYears" validate:"omitempty,min=0,max=70"`
	Role            *string `json:"role" validate:"omitempty,oneof=user admin"`
}

// ChangePasswordRequest carries the current and new password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

var profileMessages = map[string]string{
	"Name":            "Name must be between 2 and 32 characters",
	"Specialization":  "Specialization must not exceed 100 characters",
	"ExperienceYears": "Experience must be between 0 and 70 years",
	"Role":            "Role must be user or admin",
}

var passwordMessages = map[string]string{
	"CurrentPassword": "Current password is required",
	"NewPassword":     "New password must be at least 8 characters long",
}

var (
	hasUppercase = regexp.MustCompile(`[A-Z]`)
	hasDigit     = regexp.MustCompile(`[0-9]`)
)

// UpdateProfile validates a profile update payload.
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateProfileRequest)
		if err := c.BodyParser(reqData); err != nil {
			return apierror.BadRequest("Invalid request body")
		}
		if err := validate.Struct(reqData); err != nil {
			return validationError(err, profileMessages)
		}
		c.Locals(LocalUpdateProfile, reqData)
		return c.Next()
	}
}

// ChangePassword validates a password change. The new password must carry
// at least one uppercase letter and one digit.
func ChangePassword() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ChangePasswordRequest)
		if err := c.BodyParser(reqData); err != nil {
			return apierror.BadRequest("Invalid request body")
		}
		if err := validate.Struct(reqData); err != nil {
			return validationError(err, passwordMessages)
		}
		if !hasUppercase.MatchString(reqData.NewPassword) || !hasDigit.MatchString(reqData.NewPassword) {
			return apierror.BadRequest("New password must contain at least one uppercase letter and one digit")
		}
		c.Locals(LocalChangePassword, reqData)
		return c.Next()
	}
}
