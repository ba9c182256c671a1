package middleware

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()

	commonTags := []string{
		"json",
		"param",
		"query",
		"header",
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range commonTags {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})

	// sort values accepted by the listing endpoints, legacy spellings
	// included
	sortValues := []string{"", "priceAsc", "priceDesc", "nameAsc", "nameDesc", "name-a-z", "name-z-a"}
	validate.RegisterValidation("sort_order", func(fl validator.FieldLevel) bool {
		value, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		for _, v := range sortValues {
			if value == v {
				return true
			}
		}
		return false
	})

	v := &Validator{
		validate: validate,
	}

	return v
}

func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}
