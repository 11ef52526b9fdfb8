package handlers

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "name", snakeCase("Name"))
	assert.Equal(t, "user_id", snakeCase("UserID"))
	assert.Equal(t, "company_id", snakeCase("CompanyID"))
	assert.Equal(t, "uid", snakeCase("UID"))
	assert.Equal(t, "password", snakeCase("Password"))
}

func TestFieldErrorsFromValidator(t *testing.T) {
	type payload struct {
		Name   string `validate:"required"`
		Email  string `validate:"required,email"`
		Rating int    `validate:"min=1,max=5"`
	}

	err := validator.New().Struct(payload{Email: "not-an-email", Rating: 9})
	require.Error(t, err)

	out := fieldErrors(err)
	assert.Equal(t, []string{"This field is required."}, out["name"])
	assert.Equal(t, []string{"Enter a valid email address."}, out["email"])
	assert.Equal(t, []string{"Ensure this value is less than or equal to 5."}, out["rating"])
}

func TestFieldErrorsFallback(t *testing.T) {
	out := fieldErrors(errors.New("unexpected EOF"))
	assert.Equal(t, []string{"unexpected EOF"}, out["non_field_errors"])
}

func TestUniqueViolation(t *testing.T) {
	field, ok := uniqueViolation(&pq.Error{Code: "23505", Constraint: "users_email_key"})
	assert.True(t, ok)
	assert.Equal(t, "email", field)

	field, ok = uniqueViolation(&pq.Error{Code: "23505", Constraint: "companies_name_key"})
	assert.True(t, ok)
	assert.Equal(t, "name", field)

	_, ok = uniqueViolation(&pq.Error{Code: "23503", Constraint: "reviews_user_id_fkey"})
	assert.False(t, ok)

	_, ok = uniqueViolation(errors.New("connection refused"))
	assert.False(t, ok)
}
