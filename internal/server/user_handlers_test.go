package server

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/rratchapol/backend/internal/config"
	"github.com/rratchapol/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validUserBody() map[string]any {
	return map[string]any{
		"name":       "Somchai J",
		"email":      "somchai@example.com",
		"password":   "supersecret",
		"mobile":     "0812345678",
		"address":    "99 Dorm Street",
		"faculty":    "Engineering",
		"department": "Computer",
		"class_year": "2",
		"role":       "seller",
	}
}

func TestCreateUser(t *testing.T) {
	app, db := setupTestApp(t, config.DeletePolicyIgnore)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users", validUserBody()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "User created successfully", body["message"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "somchai@example.com", user["email"])
	// The password never appears in responses.
	_, exposed := user["password"]
	assert.False(t, exposed)

	var stored models.User
	require.NoError(t, db.Where("email = ?", "somchai@example.com").First(&stored).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("supersecret")))
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	app, _ := setupTestApp(t, config.DeletePolicyIgnore)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users", validUserBody()))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodPost, "/api/users", validUserBody()))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Email already registered", body["message"])
	assert.Equal(t, "somchai@example.com", body["email"])
}

func TestCreateUser_Validation(t *testing.T) {
	app, _ := setupTestApp(t, config.DeletePolicyIgnore)

	tests := []struct {
		name      string
		mutate    func(map[string]any)
		wantField string
	}{
		{
			name:      "missing name",
			mutate:    func(b map[string]any) { delete(b, "name") },
			wantField: "name",
		},
		{
			name:      "bad email",
			mutate:    func(b map[string]any) { b["email"] = "not-an-email" },
			wantField: "email",
		},
		{
			name:      "short password",
			mutate:    func(b map[string]any) { b["password"] = "short" },
			wantField: "password",
		},
		{
			name:      "unknown role",
			mutate:    func(b map[string]any) { b["role"] = "admin" },
			wantField: "role",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validUserBody()
			tt.mutate(body)

			resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users", body))
			require.NoError(t, err)
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

			out := decodeBody(t, resp)
			assert.Equal(t, "Validation failed", out["message"])
			errs, ok := out["errors"].(map[string]any)
			require.True(t, ok)
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestGetUser(t *testing.T) {
	app, db := setupTestApp(t, config.DeletePolicyIgnore)
	user := mustCreateUser(t, db, "reader@example.com", models.UserRoleBuyer)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/"+strconv.Itoa(int(user.ID)), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "reader@example.com", body["email"])
}

func TestGetUser_NotFound(t *testing.T) {
	app, _ := setupTestApp(t, config.DeletePolicyIgnore)

	resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/999", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "User not found", body["message"])
}

func TestUpdateUser(t *testing.T) {
	app, db := setupTestApp(t, config.DeletePolicyIgnore)
	user := mustCreateUser(t, db, "update@example.com", models.UserRoleBuyer)

	body := validUserBody()
	delete(body, "email")
	body["name"] = "Renamed"
	body["password"] = "newersecret"

	resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/users/"+strconv.Itoa(int(user.ID)), body))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeBody(t, resp)
	assert.Equal(t, "Renamed", out["name"])
	// Email is immutable on update.
	assert.Equal(t, "update@example.com", out["email"])

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newersecret")))
}

func TestDeleteUser(t *testing.T) {
	app, db := setupTestApp(t, config.DeletePolicyIgnore)
	user := mustCreateUser(t, db, "gone@example.com", models.UserRoleBuyer)
	id := strconv.Itoa(int(user.ID))

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/users/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/users/"+id, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestDeleteUser_NotFound(t *testing.T) {
	app, _ := setupTestApp(t, config.DeletePolicyIgnore)

	resp, err := app.Test(jsonRequest(t, http.MethodDelete, "/api/users/424242", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestListUsers_Envelope(t *testing.T) {
	app, db := setupTestApp(t, config.DeletePolicyIgnore)
	for i := 0; i < 3; i++ {
		mustCreateUser(t, db, "user"+strconv.Itoa(i)+"@example.com", models.UserRoleBuyer)
	}

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users_page", map[string]any{
		"length": 2,
		"start":  0,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(http.StatusOK), body["status"])
	assert.Equal(t, "Success", body["message"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(3), data["total"])
	assert.Equal(t, float64(1), data["current_page"])
	assert.Equal(t, float64(2), data["per_page"])

	rows, ok := data["rows"].([]any)
	require.True(t, ok)
	require.Len(t, rows, 2)

	first, ok := rows[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), first["no"])
	// Whitelisted columns only: the role never reaches listing output.
	assert.Empty(t, first["role"])
}

func TestListUsers_EmptyBodyDefaults(t *testing.T) {
	app, db := setupTestApp(t, config.DeletePolicyIgnore)
	mustCreateUser(t, db, "only@example.com", models.UserRoleBuyer)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users_page", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(10), data["per_page"])
	assert.Equal(t, float64(1), data["total"])
}

func TestListUsers_NonPositiveLength(t *testing.T) {
	app, _ := setupTestApp(t, config.DeletePolicyIgnore)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users_page", map[string]any{
		"length": 0,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestListUsers_Search(t *testing.T) {
	app, db := setupTestApp(t, config.DeletePolicyIgnore)
	alice := mustCreateUser(t, db, "alice@example.com", models.UserRoleBuyer)
	alice.Name = "Alice Wonder"
	require.NoError(t, db.Save(alice).Error)
	mustCreateUser(t, db, "bob@example.com", models.UserRoleBuyer)

	resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/users_page", map[string]any{
		"search": map[string]any{"value": "ALICE"},
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, float64(1), data["total"])
}
