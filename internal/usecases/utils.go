package usecases

import (
	"errors"
	"strings"

	domainerrors "ico-admin.backend/internal/domain/errors"
	"ico-admin.backend/pkg/utils"
	"ico-admin.backend/pkg/validation"
)

// validateInput runs the tagged rules on s and turns failures into a validation AppError
func validateInput(v *validation.Validator, s interface{}, messages validation.Messages) error {
	err := v.Struct(s, messages)
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domainerrors.InternalError(err)
	}
	fields := make([]domainerrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domainerrors.FieldError{Field: fe.Field, Message: fe.Message})
	}
	return domainerrors.Validation(verrs[0].Message, fields...)
}

// window converts page params into an offset and limit. A zero limit means unpaginated.
func window(params utils.PaginationParams) (offset, limit int) {
	if !params.Enabled() {
		return 0, 0
	}
	return params.CalculateOffset(), params.PageSize
}

func trimAll(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}
