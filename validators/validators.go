// Package validators provides per-route Fiber middleware that parses and
// validates request bodies before the controllers run. Validated payloads
// are stored in locals; validation failures are collected and joined into
// a single message.
package validators

import (
	"strings"

	"medtrain/apierror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validationError converts validator errors into one BadRequest carrying
// the joined per-field messages. The messages map is keyed by struct field
// name.
func validationError(err error, messages map[string]string) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierror.BadRequest("Invalid request body")
	}

	var msgs []string
	for _, fe := range verrs {
		if msg, ok := messages[fe.Field()]; ok {
			msgs = append(msgs, msg)
		} else {
			msgs = append(msgs, "Field "+fe.Field()+" is invalid")
		}
	}
	return apierror.BadRequest(strings.Join(msgs, ", "))
}
