package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/futig/career-plan-connector/internal/entity"
	"github.com/go-playground/validator/v10"
)

// Validator checks decoded API requests. Field paths in messages use JSON names.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// ValidateCareerPlan expects req.Query to be trimmed already.
func (v *Validator) ValidateCareerPlan(req *entity.CareerPlanRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return entity.NewBadRequest(entity.MessageInvalidJSON, err)
	}

	// report the first failure only
	fe := fieldErrs[0]
	field := fieldPath(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return entity.NewMissingField(field)
	case "oneof":
		return entity.NewBadRequest(
			fmt.Sprintf("Invalid %s: must be one of %s", field, strings.Join(strings.Fields(fe.Param()), ", ")),
			entity.ErrInvalidFormat,
		)
	default:
		return entity.NewBadRequest(fmt.Sprintf("Invalid %s", field), entity.ErrInvalidFormat)
	}
}

// fieldPath drops the top-level struct name: "CareerPlanRequest.query" -> "query".
func fieldPath(namespace string) string {
	_, path, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return path
}
