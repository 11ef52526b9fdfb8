package handlers

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
)

// fieldErrors translates a ShouldBindJSON failure into the 400 payload
// shape: field name -> list of messages.
func fieldErrors(err error) map[string][]string {
	out := map[string][]string{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			field := snakeCase(fe.Field())
			out[field] = append(out[field], validationMessage(fe))
		}
		return out
	}

	out["non_field_errors"] = []string{err.Error()}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return fmt.Sprintf("Failed validation: %s.", fe.Tag())
	}
}

// uniqueViolation reports the offending column when err is a Postgres
// unique-constraint failure. Constraint names follow the
// <table>_<column>_key convention of the generated schema.
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != "23505" {
		return "", false
	}

	name := strings.TrimSuffix(pqErr.Constraint, "_key")
	parts := strings.SplitN(name, "_", 2)
	if len(parts) == 2 {
		return parts[1], true
	}
	return "non_field_errors", true
}

func uniqueViolationResponse(field string) map[string][]string {
	return map[string][]string{
		field: {fmt.Sprintf("A record with this %s already exists.", field)},
	}
}

// snakeCase maps struct field names to their json counterparts
// (UserID -> user_id, UID -> uid).
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
