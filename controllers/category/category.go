package categoryController

import (
	"medtrain/apierror"
	"medtrain/services"
	"medtrain/validators"

	"github.com/gofiber/fiber/v2"
)

// Controller exposes the category CRUD endpoints.
type Controller struct {
	categories *services.CategoryService
}

func New(categories *services.CategoryService) *Controller {
	return &Controller{categories: categories}
}

func categoryIDParam(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("categoryId")
	if err != nil || id < 1 {
		return 0, apierror.BadRequest("Invalid category id")
	}
	return uint(id), nil
}

// CreateCategory inserts a category. Admin only.
func (ctl *Controller) CreateCategory(c *fiber.Ctx) error {
	reqData := c.Locals(validators.LocalCreateCategory).(*validators.CreateCategoryRequest)

	category, err := ctl.categories.CreateCategory(reqData.Name, reqData.Description, reqData.Icon)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// GetCategories lists all categories.
func (ctl *Controller) GetCategories(c *fiber.Ctx) error {
	categories, err := ctl.categories.GetCategories()
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// GetCategoryByID returns one category.
func (ctl *Controller) GetCategoryByID(c *fiber.Ctx) error {
	categoryID, err := categoryIDParam(c)
	if err != nil {
		return err
	}

	category, err := ctl.categories.GetCategoryByID(categoryID)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// UpdateCategory applies an allowlisted partial update. Admin only.
func (ctl *Controller) UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := categoryIDParam(c)
	if err != nil {
		return err
	}
	reqData := c.Locals(validators.LocalUpdateCategory).(*validators.UpdateCategoryRequest)

	category, err := ctl.categories.UpdateCategory(categoryID, services.UpdateCategoryInput{
		Name:        reqData.Name,
		Description: reqData.Description,
		Icon:        reqData.Icon,
	})
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// DeleteCategory hard-deletes a category. Admin only.
func (ctl *Controller) DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := categoryIDParam(c)
	if err != nil {
		return err
	}
	if err := ctl.categories.DeleteCategory(categoryID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
