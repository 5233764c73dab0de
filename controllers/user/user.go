package userController

import (
	"medtrain/apierror"
	"medtrain/middleware"
	"medtrain/models"
	"medtrain/services"
	"medtrain/validators"

	"github.com/gofiber/fiber/v2"
)

// Controller exposes profile, statistics and history endpoints.
type Controller struct {
	users *services.UserService
	stats *services.StatsService
}

func New(users *services.UserService, stats *services.StatsService) *Controller {
	return &Controller{users: users, stats: stats}
}

// GetAllUsers lists users. Admin only.
func (ctl *Controller) GetAllUsers(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	page := c.QueryInt("page", 1)
	role := c.Query("role")

	users, err := ctl.users.GetAllUsers(limit, page, role)
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// GetUserByID returns a profile. Readable by the user themselves or an
// admin.
func (ctl *Controller) GetUserByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("userId")
	if err != nil || id < 1 {
		return apierror.BadRequest("Invalid user id")
	}

	principal := middleware.Principal(c)
	if principal.ID != uint(id) && principal.Role != models.RoleAdmin {
		return apierror.Forbidden("Access denied: you can only view your own profile")
	}

	user, err := ctl.users.GetUserByID(uint(id))
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// UpdateProfile updates the principal's own profile. Role changes are
// applied only for admins; id, email and password are never touched.
func (ctl *Controller) UpdateProfile(c *fiber.Ctx) error {
	reqData := c.Locals(validators.LocalUpdateProfile).(*validators.UpdateProfileRequest)
	principal := middleware.Principal(c)

	user, err := ctl.users.UpdateUser(principal.ID, services.UpdateProfileInput{
		Name:            reqData.Name,
		Specialization:  reqData.Specialization,
		ExperienceYears: reqData.ExperienceYears,
		Role:            reqData.Role,
	}, principal.Role == models.RoleAdmin)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// DeleteUser removes a user and all their solutions. Owner or admin only
// (enforced by middleware).
func (ctl *Controller) DeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("userId")
	if err != nil || id < 1 {
		return apierror.BadRequest("Invalid user id")
	}
	if err := ctl.users.DeleteUser(uint(id)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangePassword changes the principal's password.
func (ctl *Controller) ChangePassword(c *fiber.Ctx) error {
	reqData := c.Locals(validators.LocalChangePassword).(*validators.ChangePasswordRequest)
	principal := middleware.Principal(c)

	if err := ctl.users.ChangePassword(principal.ID, reqData.CurrentPassword, reqData.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password changed successfully"})
}

// GetStats returns the principal's aggregate statistics.
func (ctl *Controller) GetStats(c *fiber.Ctx) error {
	principal := middleware.Principal(c)

	stats, err := ctl.stats.GetStats(principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// GetSolvedTasks returns a page of the principal's solve history.
func (ctl *Controller) GetSolvedTasks(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	limit := c.QueryInt("limit", 10)
	page := c.QueryInt("page", 1)

	entries, err := ctl.stats.GetSolvedTasks(principal.ID, limit, page)
	if err != nil {
		return err
	}
	return c.JSON(entries)
}

// RemoveSolvedTask deletes one entry from the principal's solve history
// and rolls the counters back.
func (ctl *Controller) RemoveSolvedTask(c *fiber.Ctx) error {
	principal := middleware.Principal(c)
	id, err := c.ParamsInt("taskId")
	if err != nil || id < 1 {
		return apierror.BadRequest("Invalid task id")
	}

	if err := ctl.stats.RemoveSolvedTask(principal.ID, uint(id)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Task removed from solve history"})
}
