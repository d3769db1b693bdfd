package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"casepilot/db"
	"casepilot/middleware"
	"casepilot/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests while allowing a shared cache
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	// Set global DB and migrate through the db package
	db.DB = testDB
	assert.NoError(t, db.Migrate())

	if services.Storage == nil {
		services.Storage = services.NewLocalStorage(t.TempDir())
	}

	return testDB
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return e, c, rec
}

// setIdentity mimics the identity middleware for a single request context.
func setIdentity(c echo.Context, name, email string) {
	c.Set(middleware.ContextUserName, name)
	c.Set(middleware.ContextUserEmail, email)
}

// testEnvelope mirrors the response wrapper with raw payload bytes.
type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Total   *int64          `json:"total"`
	Unread  *int64          `json:"unread"`
	Page    *int            `json:"page"`
	Pages   *int            `json:"pages"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	var env testEnvelope
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func stringToPtr(s string) *string {
	return &s
}
