package handlers

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// bcryptHashOf matches an argument that is a bcrypt hash of the given
// plaintext but never the plaintext itself.
type bcryptHashOf string

func (m bcryptHashOf) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok || s == string(m) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s), []byte(string(m))) == nil
}

func decodeBody(t *testing.T, body []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func userColumns() []string {
	return []string{"id", "name", "uid", "image", "email", "created_at", "updated_at"}
}

func reviewColumns() []string {
	return []string{"id", "description", "rating", "user_id", "company_id", "created_at", "updated_at", "name", "image", "company_name"}
}

func TestGetUsers(t *testing.T) {
	mock := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`FROM users ORDER BY created_at`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(int64(1), "Ana Torres", "uid-1", "img-1", "ana@example.com", now, now).
			AddRow(int64(2), "Luis Vega", "uid-2", "img-2", "luis@example.com", now, now))

	w := performRequest(newRouter(), http.MethodGet, "/users", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 2)
	assert.Equal(t, "Ana Torres", users[0]["name"])
	assert.NotContains(t, users[0], "password")
	assert.NotContains(t, users[0], "password_hash")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserHashesPassword(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("Ana Torres", sqlmock.AnyArg(), sqlmock.AnyArg(), "ana@example.com", bcryptHashOf("secret123")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	body := `{"name":"Ana Torres","email":"ana@example.com","password":"secret123"}`
	w := performRequest(newRouter(), http.MethodPost, "/users", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	out := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, "User created", out["message"])
	assert.Equal(t, float64(1), out["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserValidation(t *testing.T) {
	setupMockDB(t)

	w := performRequest(newRouter(), http.MethodPost, "/users", `{"name":"Ana"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	out := decodeBody(t, w.Body.Bytes())
	errs := out["errors"].(map[string]interface{})
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "password")
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	body := `{"name":"Ana Torres","email":"ana@example.com","password":"secret123"}`
	w := performRequest(newRouter(), http.MethodPost, "/users", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	out := decodeBody(t, w.Body.Bytes())
	errs := out["errors"].(map[string]interface{})
	assert.Contains(t, errs, "email")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserWithReviews(t *testing.T) {
	mock := setupMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`FROM users WHERE id = `).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow(int64(1), "Ana Torres", "uid-1", "img-1", "ana@example.com", now, now))
	mock.ExpectQuery(`FROM reviews r`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(reviewColumns()).
			AddRow(int64(5), "Great coffee", 5, int64(1), int64(3), now, now, "Ana Torres", "img-1", "Cafe Aurora"))

	w := performRequest(newRouter(), http.MethodGet, "/users/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	out := decodeBody(t, w.Body.Bytes())
	user := out["user"].(map[string]interface{})
	assert.Equal(t, "Ana Torres", user["name"])
	reviews := out["reviews"].([]interface{})
	require.Len(t, reviews, 1)
	review := reviews[0].(map[string]interface{})
	assert.Equal(t, "Great coffee", review["description"])
	company := review["company"].(map[string]interface{})
	assert.Equal(t, "Cafe Aurora", company["name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserNotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`FROM users WHERE id = `).
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	w := performRequest(newRouter(), http.MethodGet, "/users/42", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	out := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, "User not found", out["message"])
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT id FROM users WHERE id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec(`UPDATE users SET`).
		WithArgs("Ana Torres", "uid-1", "img-1", "ana@example.com", bcryptHashOf("newpass"), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"name":"Ana Torres","uid":"uid-1","image":"img-1","email":"ana@example.com","password":"newpass"}`
	w := performRequest(newRouter(), http.MethodPut, "/users/1", body)

	assert.Equal(t, http.StatusOK, w.Code)
	out := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, "User updated", out["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserNotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT id FROM users WHERE id`).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	w := performRequest(newRouter(), http.MethodPut, "/users/9", `{"name":"X","uid":"u","email":"x@example.com"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteUser(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectExec(`DELETE FROM users WHERE id`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	w := performRequest(newRouter(), http.MethodDelete, "/users/1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	out := decodeBody(t, w.Body.Bytes())
	assert.Equal(t, "User deleted", out["message"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUserNotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectExec(`DELETE FROM users WHERE id`).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := performRequest(newRouter(), http.MethodDelete, "/users/42", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
