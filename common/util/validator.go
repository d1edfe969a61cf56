package util

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct validates a struct using validator tags
func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// GetValidationErrors formats validation errors into readable messages
func GetValidationErrors(err error) []string {
	var messages []string
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return messages
	}

	for _, fieldError := range validationErrors {
		field := fieldError.Field()
		switch fieldError.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "email":
			messages = append(messages, field+" must be a valid email")
		case "url":
			messages = append(messages, field+" must be a valid URL")
		case "oneof":
			messages = append(messages, field+" must be one of: "+fieldError.Param())
		case "min":
			if isCollection(fieldError.Kind()) {
				messages = append(messages, field+" must have at least "+fieldError.Param()+" entries")
			} else {
				messages = append(messages, field+" must be at least "+fieldError.Param()+" characters")
			}
		case "max":
			messages = append(messages, field+" must be at most "+fieldError.Param()+" characters")
		case "gt", "gte":
			messages = append(messages, field+" must be at least "+fieldError.Param())
		case "lte":
			messages = append(messages, field+" must be at most "+fieldError.Param())
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	return messages
}

func isCollection(kind reflect.Kind) bool {
	return kind == reflect.Slice || kind == reflect.Map || kind == reflect.Array
}
