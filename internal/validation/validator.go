package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	apperrors "chicago-crime-analysis/internal/errors"
	"chicago-crime-analysis/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	minDistrict = 1
	maxDistrict = 31
)

var (
	sqlIdentifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]{0,62}$`)
	iucrPattern          = regexp.MustCompile(`^[0-9A-Z]{3,4}$`)
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("sql_identifier", validateSQLIdentifier)
	_ = v.RegisterValidation("probability", validateProbability)
	_ = v.RegisterValidation("district_list", validateDistrictList)
	_ = v.RegisterValidation("iucr", validateIUCR)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates s and converts field failures into a single AppError
func (v *Validator) Struct(s interface{}, code apperrors.ErrorCode) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.New(code, apperrors.WithCause(err))
	}

	return apperrors.New(code, apperrors.WithDetails(FormatErrors(validationErrors)...))
}

// FormatErrors renders one "Namespace: reason" line per failed field
func FormatErrors(errs validator.ValidationErrors) []string {
	details := make([]string, 0, len(errs))
	for _, fe := range errs {
		details = append(details, fmt.Sprintf("%s: %s", fe.Namespace(), describe(fe)))
	}
	return details
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "sql_identifier":
		return "must be a plain SQL identifier"
	case "probability":
		return "must be between 0 and 1"
	case "district_list":
		return fmt.Sprintf("must list at least two distinct districts between %d and %d, excluding %d",
			minDistrict, maxDistrict, models.DataEntryErrorDistrict)
	case "iucr":
		return "must be a 3-4 character IUCR code"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gte", "gt", "lte", "lt":
		return fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Custom validation functions

// validateSQLIdentifier accepts unquoted PostgreSQL identifiers only, since schema
// and table names are interpolated into DDL
func validateSQLIdentifier(fl validator.FieldLevel) bool {
	return sqlIdentifierPattern.MatchString(fl.Field().String())
}

func validateProbability(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		p := fl.Field().Float()
		return p >= 0 && p <= 1
	default:
		return false
	}
}

func validateDistrictList(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice || field.Len() < 2 {
		return false
	}

	seen := make(map[int64]bool, field.Len())
	for i := 0; i < field.Len(); i++ {
		elem := field.Index(i)
		switch elem.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		default:
			return false
		}
		d := elem.Int()
		if d < minDistrict || d > maxDistrict || d == models.DataEntryErrorDistrict || seen[d] {
			return false
		}
		seen[d] = true
	}
	return true
}

func validateIUCR(fl validator.FieldLevel) bool {
	return iucrPattern.MatchString(strings.ToUpper(fl.Field().String()))
}
