package validators

import (
	"medtrain/apierror"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalCreateTask     = "validatedCreateTask"
	LocalUpdateTask     = "validatedUpdateTask"
	LocalSubmitSolution = "validatedSubmitSolution"
)

// CreateTaskRequest is the task-creation payload.
type CreateTaskRequest struct {
	Title         string   `json:"title" validate:"required,max=100"`
	Description   string   `json:"description" validate:"required,max=5000"`
	CategoryID    uint     `json:"categoryId" validate:"required"`
	Difficulty    string   `json:"difficulty" validate:"required,oneof=easy medium hard"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required,max=500"`
	Options       []string `json:"options" validate:"required,min=2,max=6,dive,max=200"`
	Explanation   string   `json:"explanation" validate:"required,max=2000"`
}

// UpdateTaskRequest is a partial task update; absent fields stay untouched.
type UpdateTaskRequest struct {
	Title         *string  `json:"title" validate:"omitempty,max=100"`
	Description   *string  `json:"description" validate:"omitempty,max=5000"`
	CategoryID    *uint    `json:"categoryId" validate:"omitempty,min=1"`
	Difficulty    *string  `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	CorrectAnswer *string  `json:"correctAnswer" validate:"omitempty,max=500"`
	Options       []string `json:"options" validate:"omitempty,min=2,max=6,dive,max=200"`
	Explanation   *string  `json:"explanation" validate:"omitempty,max=2000"`
	IsActive      *bool    `json:"isActive"`
}

// SubmitSolutionRequest carries the submitted answer string.
type SubmitSolutionRequest struct {
	Answer string `json:"answer" validate:"required,max=500"`
}

var taskMessages = map[string]string{
	"Title":         "Title is required and must not exceed 100 characters",
	"Description":   "Description is required and must not exceed 5000 characters",
	"CategoryID":    "A valid category id is required",
	"Difficulty":    "Difficulty must be easy, medium or hard",
	"CorrectAnswer": "Correct answer is required and must not exceed 500 characters",
	"Options":       "There must be 2 to 6 options of at most 200 characters each",
	"Explanation":   "Explanation is required and must not exceed 2000 characters",
}

var submitMessages = map[string]string{
	"Answer": "Answer is required and must not exceed 500 characters",
}

func optionsContain(options []string, answer string) bool {
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}

// CreateTask validates the task-creation payload, including that the
// options contain the correct answer.
func CreateTask() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateTaskRequest)
		if err := c.BodyParser(reqData); err != nil {
			return apierror.BadRequest("Invalid request body")
		}
		if err := validate.Struct(reqData); err != nil {
			return validationError(err, taskMessages)
		}
		if !optionsContain(reqData.Options, reqData.CorrectAnswer) {
			return apierror.BadRequest("Options must include the correct answer")
		}
		c.Locals(LocalCreateTask, reqData)
		return c.Next()
	}
}

// UpdateTask validates a partial task update. The options/correct-answer
// consistency is checked only when both appear in the payload.
func UpdateTask() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateTaskRequest)
		if err := c.BodyParser(reqData); err != nil {
			return apierror.BadRequest("Invalid request body")
		}
		if err := validate.Struct(reqData); err != nil {
			return validationError(err, taskMessages)
		}
		if reqData.Options != nil && reqData.CorrectAnswer != nil &&
			!optionsContain(reqData.Options, *reqData.CorrectAnswer) {
			return apierror.BadRequest("Options must include the correct answer")
		}
		c.Locals(LocalUpdateTask, reqData)
		return c.Next()
	}
}

// SubmitSolution validates the submitted answer.
func SubmitSolution() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitSolutionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return apierror.BadRequest("Invalid request body")
		}
		if err := validate.Struct(reqData); err != nil {
			return validationError(err, submitMessages)
		}
		c.Locals(LocalSubmitSolution, reqData)
		return c.Next()
	}
}
