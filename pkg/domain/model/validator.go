package model

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskboard/pkg/domain/types"
)

const riskCategoryTag = "risk_category"

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON keys instead of Go field names so log lines match the backend payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(riskCategoryTag, func(fl validator.FieldLevel) bool {
		return types.RiskCategory(fl.Field().String()).IsValid()
	})

	return v
}

// validateStruct runs the tag based validation and converts failures into a goerr
// carrying the failing JSON keys.
func validateStruct(s any, sentinel error, opts ...goerr.Option) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return goerr.Wrap(err, "failed to run validation", opts...)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+":"+fe.Tag())
	}

	opts = append(opts, goerr.V(FieldsKey, fields))
	return goerr.Wrap(sentinel, "record failed validation", opts...)
}
