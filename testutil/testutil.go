// Package testutil wires a full application instance against an
// in-memory sqlite database for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	adminRoutes "lms/routers/adminRoutes"
	authRoutes "lms/routers/authRoutes"
	courseRoutes "lms/routers/courseRoutes"
	enrollmentRoutes "lms/routers/enrollmentRoutes"
	progressRoutes "lms/routers/progressRoutes"
	userRoutes "lms/routers/userRoutes"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestPassword is the plaintext password of every user created through
// CreateUser.
const TestPassword = "password123"

// SetupApp points the global config and database at test instances and
// returns an app with all routes registered.
func SetupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "0",
		DBName:    "lms_test",
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
		UploadDir: t.TempDir(),
	}

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()

	userRoutes.SetupUserRoutes(app)
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	progressRoutes.SetupProgressRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	return app
}

// CreateUser inserts a user with the given role and returns it.
func CreateUser(t *testing.T, name, email, role string) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := database.Database.Db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// TokenFor issues a bearer token for the user, as login would.
func TokenFor(t *testing.T, user models.User) string {
	t.Helper()

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}

// DoJSON performs a JSON request against the app and decodes the
// standard response envelope.
func DoJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp, decodeEnvelope(t, resp)
}

// DoMultipart performs a multipart request with the given form fields
// and files (field name "pdfs") and decodes the response envelope.
func DoMultipart(t *testing.T, app *fiber.App, method, path, token string, fields map[string]string, files map[string][]byte) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write form field %s: %v", key, err)
		}
	}
	for name, content := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="pdfs"; filename="`+name+`"`)
		if len(content) >= 4 && string(content[:4]) == "%PDF" {
			header.Set("Content-Type", "application/pdf")
		} else {
			header.Set("Content-Type", "text/plain")
		}
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create form file %s: %v", name, err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("failed to write form file %s: %v", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	return resp, decodeEnvelope(t, resp)
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	var envelope map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			t.Fatalf("failed to decode response %q: %v", raw, err)
		}
	}
	return envelope
}

// Data extracts the data field of a response envelope as a map.
func Data(t *testing.T, envelope map[string]interface{}) map[string]interface{} {
	t.Helper()

	data, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("response data is not an object: %v", envelope["data"])
	}
	return data
}

// DataList extracts the data field of a response envelope as a list.
func DataList(t *testing.T, envelope map[string]interface{}) []interface{} {
	t.Helper()

	data, ok := envelope["data"].([]interface{})
	if !ok {
		t.Fatalf("response data is not a list: %v", envelope["data"])
	}
	return data
}

// PDFBytes returns a minimal payload recognized as a PDF upload.
func PDFBytes() []byte {
	return []byte("%PDF-1.4 test attachment")
}
