package middleware

import (
	"errors"

	"medtrain/apierror"
	"medtrain/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// OwnableLoader fetches a resource by id for an ownership check. Each
// entity gets its own loader; the call site picks which one applies.
type OwnableLoader func(db *gorm.DB, id uint) (models.Ownable, error)

// CheckOwnership loads the resource named by the route parameter and
// permits the request only when the principal owns it or is an admin.
// A missing resource yields 404. Requires Authenticate earlier in the chain.
func (g *Guard) CheckOwnership(param string, load OwnableLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := Principal(c)
		if user == nil {
			return apierror.Unauthorized("")
		}

		id, err := c.ParamsInt(param)
		if err != nil || id < 1 {
			return apierror.BadRequest("Invalid resource id")
		}

		resource, err := load(g.db, uint(id))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierror.NotFound("")
			}
			return err
		}

		if resource.OwnerID() != user.ID && user.Role != models.RoleAdmin {
			return apierror.Forbidden("Access denied: you do not own this resource")
		}
		return c.Next()
	}
}

// LoadTask fetches a task for ownership checks.
func LoadTask(db *gorm.DB, id uint) (models.Ownable, error) {
	var task models.Task
	if err := db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// LoadUser fetches a user for ownership checks.
func LoadUser(db *gorm.DB, id uint) (models.Ownable, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
