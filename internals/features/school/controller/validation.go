// file: internals/features/school/controller/validation.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// validationErrors meratakan error validator jadi map field → messages.
func validationErrors(err error) map[string][]string {
	out := map[string][]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = append(out[fe.Field()], fe.Tag())
		}
	} else if err != nil {
		out["_"] = append(out["_"], err.Error())
	}
	return out
}
