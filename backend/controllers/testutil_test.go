package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"lms/backend/config"
	"lms/backend/models"
	"lms/backend/routes"
	"lms/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

type testApp struct {
	App *fiber.App
	DB  *gorm.DB
	Cfg *config.Config
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dsn := fmt.Sprintf("file:controllers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	cfg := &config.Config{JWTSecret: "test-secret"}

	app := fiber.New()
	routes.SetupRoutes(app, db, cfg)

	return &testApp{App: app, DB: db, Cfg: cfg}
}

// createInstructor inserts an instructor profile directly and returns a
// token for it. Instructors are provisioned out of band; there is no
// registration endpoint for them.
func (ta *testApp) createInstructor(t *testing.T) (models.Profile, string) {
	t.Helper()

	name := "講師"
	profile := models.Profile{
		Email:        fmt.Sprintf("instructor%d@example.com", atomic.AddInt64(&dbSeq, 1)),
		Name:         &name,
		PasswordHash: "x",
		Role:         models.RoleInstructor,
		Approved:     true,
	}
	require.NoError(t, ta.DB.Create(&profile).Error)

	token, err := utils.GenerateJWTToken(profile.ID, ta.Cfg)
	require.NoError(t, err)
	return profile, token
}

func (ta *testApp) createApprovedStudent(t *testing.T) (models.Profile, string) {
	t.Helper()

	name := "受講生"
	profile := models.Profile{
		Email:        fmt.Sprintf("student%d@example.com", atomic.AddInt64(&dbSeq, 1)),
		Name:         &name,
		PasswordHash: "x",
		Role:         models.RoleStudent,
		Approved:     true,
	}
	require.NoError(t, ta.DB.Create(&profile).Error)

	token, err := utils.GenerateJWTToken(profile.ID, ta.Cfg)
	require.NoError(t, err)
	return profile, token
}

func (ta *testApp) createExercise(t *testing.T) models.Content {
	t.Helper()

	phase := models.Phase{Title: "Phase", OrderIndex: int(atomic.AddInt64(&dbSeq, 1))}
	require.NoError(t, ta.DB.Create(&phase).Error)
	week := models.Week{PhaseID: phase.ID, Title: "Week", OrderIndex: 1}
	require.NoError(t, ta.DB.Create(&week).Error)
	content := models.Content{
		WeekID:     week.ID,
		Type:       models.ContentTypeExercise,
		Title:      "演習課題",
		OrderIndex: 1,
	}
	require.NoError(t, ta.DB.Create(&content).Error)
	return content
}

// request performs a JSON request against the app and decodes the envelope.
func (ta *testApp) request(t *testing.T, method, path, token string, body interface{}) (int, *envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ta.App.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return resp.StatusCode, &env
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (e *envelope) decode(t *testing.T, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(e.Data, dst))
}
