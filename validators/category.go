package validators

import (
	"encoding/json"
	"sort"
	"strings"

	"medtrain/apierror"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalCreateCategory = "validatedCreateCategory"
	LocalUpdateCategory = "validatedUpdateCategory"
)

// CreateCategoryRequest is the category-creation payload.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"required,max=500"`
	Icon        string `json:"icon" validate:"omitempty,max=100"`
}

// UpdateCategoryRequest is a partial category update restricted to the
// allowed fields.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Icon        *string `json:"icon" validate:"omitempty,max=100"`
}

var categoryMessages = map[string]string{
	"Name":        "Name is required and must not exceed 50 characters",
	"Description": "Description is required and must not exceed 500 characters",
	"Icon":        "Icon must not exceed 100 characters",
}

// categoryUpdateAllowlist is the closed set of fields an update may carry.
var categoryUpdateAllowlist = map[string]bool{
	"name":        true,
	"description": true,
	"icon":        true,
}

// CreateCategory validates the category-creation payload.
func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return apierror.BadRequest("Invalid request body")
		}
		if err := validate.Struct(reqData); err != nil {
			return validationError(err, categoryMessages)
		}
		c.Locals(LocalCreateCategory, reqData)
		return c.Next()
	}
}

// UpdateCategory rejects any payload field outside the allowlist, naming
// the offending fields, then validates the remaining ones.
func UpdateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(c.Body(), &raw); err != nil {
			return apierror.BadRequest("Invalid request body")
		}

		var invalid []string
		for field := range raw {
			if !categoryUpdateAllowlist[field] {
				invalid = append(invalid, field)
			}
		}
		if len(invalid) > 0 {
			sort.Strings(invalid)
			return apierror.BadRequest(
				"Fields not allowed: " + strings.Join(invalid, ", ") + ". Only name, description and icon can be updated")
		}
		if len(raw) == 0 {
			return apierror.BadRequest("No allowed fields to update")
		}

		reqData := new(UpdateCategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return apierror.BadRequest("Invalid request body")
		}
		if err := validate.Struct(reqData); err != nil {
			return validationError(err, categoryMessages)
		}
		c.Locals(LocalUpdateCategory, reqData)
		return c.Next()
	}
}
