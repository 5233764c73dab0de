package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"medtrain/config"
	"medtrain/database"
	"medtrain/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		JWTKey:    "test-secret",
		SaltRound: 4,
		Env:       "test",
	}
	os.Exit(m.Run())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestApp(db *gorm.DB) (*fiber.App, *Guard) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(zap.NewNop(), false),
	})
	return app, NewGuard(db)
}

func createUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := models.User{Email: email, Password: "hash", Name: "Test", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func okHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"email": Principal(c).Email})
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	app, guard := newTestApp(db)
	app.Get("/protected", guard.Authenticate, okHandler)

	user := createUser(t, db, "doctor@clinic.test", models.RoleUser)
	token, err := GenerateJWT(user)
	require.NoError(t, err)

	// no token
	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// garbage token
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp = doRequest(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// valid bearer token
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// token via cookie
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "jwt", Value: token})
	resp = doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthenticate_DeletedUser(t *testing.T) {
	db := newTestDB(t)
	app, guard := newTestApp(db)
	app.Get("/protected", guard.Authenticate, okHandler)

	user := createUser(t, db, "doctor@clinic.test", models.RoleUser)
	token, err := GenerateJWT(user)
	require.NoError(t, err)
	require.NoError(t, db.Unscoped().Delete(user).Error)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "token of a deleted user is rejected")
}

func TestRestrictToAdmin(t *testing.T) {
	db := newTestDB(t)
	app, guard := newTestApp(db)
	app.Get("/admin", guard.Authenticate, guard.RestrictToAdmin, okHandler)

	user := createUser(t, db, "doctor@clinic.test", models.RoleUser)
	admin := createUser(t, db, "admin@clinic.test", models.RoleAdmin)

	userToken, err := GenerateJWT(user)
	require.NoError(t, err)
	adminToken, err := GenerateJWT(admin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	resp := doRequest(t, app, req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp = doRequest(t, app, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCheckOwnership(t *testing.T) {
	db := newTestDB(t)
	app, guard := newTestApp(db)
	app.Patch("/tasks/:taskId", guard.Authenticate, guard.CheckOwnership("taskId", LoadTask), okHandler)

	owner := createUser(t, db, "owner@clinic.test", models.RoleUser)
	other := createUser(t, db, "other@clinic.test", models.RoleUser)
	admin := createUser(t, db, "admin@clinic.test", models.RoleAdmin)

	category := models.Category{Name: "Trauma", Description: "d"}
	require.NoError(t, db.Create(&category).Error)
	task := models.Task{
		Title: "T", Description: "D", CategoryID: category.ID,
		Difficulty: models.DifficultyEasy, CorrectAnswer: "A",
		Options: []string{"A", "B"}, Explanation: "E", AuthorID: owner.ID, IsActive: true,
	}
	require.NoError(t, db.Create(&task).Error)

	cases := []struct {
		name   string
		user   *models.User
		path   string
		status int
	}{
		{"owner allowed", owner, "/tasks/1", http.StatusOK},
		{"non-owner forbidden", other, "/tasks/1", http.StatusForbidden},
		{"admin allowed", admin, "/tasks/1", http.StatusOK},
		{"missing resource", owner, "/tasks/999", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := GenerateJWT(tc.user)
			require.NoError(t, err)
			req := httptest.NewRequest(http.MethodPatch, tc.path, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			resp := doRequest(t, app, req)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestErrorHandler_BodyShape(t *testing.T) {
	db := newTestDB(t)
	app, guard := newTestApp(db)
	app.Get("/protected", guard.Authenticate, okHandler)

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "fail", body["status"])
	assert.NotEmpty(t, body["message"])
	_, hasStack := body["stack"]
	assert.False(t, hasStack, "stack is attached only in development")
}

func TestNotFoundHandler(t *testing.T) {
	db := newTestDB(t)
	app, _ := newTestApp(db)
	app.Use(NotFoundHandler)

	resp := doRequest(t, app, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
