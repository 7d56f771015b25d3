package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and flattens the failures
// into one human-readable error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var errs validator.ValidationErrors
		if ok := isValidationErrors(err, &errs); !ok {
			return err
		}
		messages := make([]string, 0, len(errs))
		for _, fe := range errs {
			messages = append(messages, fmt.Sprintf("field %s failed on %s", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(messages, "; "))
	}
	return nil
}

func isValidationErrors(err error, out *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*out = ve
	}
	return ok
}
