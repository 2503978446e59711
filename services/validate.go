package services

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidContent = errors.New("invalid content")

var validate = validator.New()

func validateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("%w: field %s failed %q", ErrInvalidContent, f.Namespace(), f.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}
	return nil
}
