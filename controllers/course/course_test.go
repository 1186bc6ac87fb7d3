package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"lms/models"
	"lms/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createCourse creates a course for the instructor token and returns
// the course id and response data.
func createCourse(t *testing.T, app *fiber.App, token, title, sections string) (uint, map[string]interface{}) {
	t.Helper()

	fields := map[string]string{
		"title":       title,
		"description": "a course about " + title,
	}
	if sections != "" {
		fields["sections"] = sections
	}

	resp, envelope := testutil.DoMultipart(t, app, "POST", "/api/courses", token, fields, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data := testutil.Data(t, envelope)
	return uint(data["ID"].(float64)), data
}

func sectionsOf(t *testing.T, courseData map[string]interface{}) []interface{} {
	t.Helper()

	sections, ok := courseData["sections"].([]interface{})
	require.True(t, ok, "sections missing from course response")
	return sections
}

func TestCreateCourseRoundTripsTheTree(t *testing.T) {
	app := testutil.SetupApp(t)
	instructor := testutil.CreateUser(t, "Ada", "ada@example.com", models.RoleInstructor)
	token := testutil.TokenFor(t, instructor)

	sectionsJSON := `[
		{"title": "Intro", "lessons": [{"title": "Welcome", "content": "hello"}]},
		{"title": "Basics", "lessons": [{"title": "Setup"}, {"title": "First steps"}]}
	]`
	courseID, _ := createCourse(t, app, token, "Go 101", sectionsJSON)

	// Public read returns the tree exactly as constructed, in insertion order
	resp, envelope := testutil.DoJSON(t, app, "GET", fmt.Sprintf("/api/courses/%d", courseID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	fetched := testutil.Data(t, envelope)
	assert.Equal(t, "Go 101", fetched["title"])

	sections := sectionsOf(t, fetched)
	require.Len(t, sections, 2)

	first := sections[0].(map[string]interface{})
	second := sections[1].(map[string]interface{})
	assert.Equal(t, "Intro", first["title"])
	assert.Equal(t, "Basics", second["title"])
	assert.NotEmpty(t, first["id"])

	lessons := second["lessons"].([]interface{})
	require.Len(t, lessons, 2)
	assert.Equal(t, "Setup", lessons[0].(map[string]interface{})["title"])
	assert.Equal(t, "First steps", lessons[1].(map[string]interface{})["title"])

	// Instructor projection exposes name and email only
	instructorData := fetched["instructor"].(map[string]interface{})
	assert.Equal(t, "Ada", instructorData["name"])
	assert.Equal(t, "ada@example.com", instructorData["email"])
	assert.NotContains(t, instructorData, "password")
}

func TestGetCourseIsPublic(t *testing.T) {
	app := testutil.SetupApp(t)
	instructor := testutil.CreateUser(t, "Ada", "ada@example.com", models.RoleInstructor)
	courseID, _ := createCourse(t, app, testutil.TokenFor(t, instructor), "Open course", "")

	resp, _ := testutil.DoJSON(t, app, "GET", fmt.Sprintf("/api/courses/%d", courseID), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = testutil.DoJSON(t, app, "GET", "/api/courses/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListCoursesRequiresAuth(t *testing.T) {
	app := testutil.SetupApp(t)

	resp, _ := testutil.DoJSON(t, app, "GET", "/api/courses", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStudentCannotCreateCourse(t *testing.T) {
	app := testutil.SetupApp(t)
	student := testutil.CreateUser(t, "Bob", "bob@example.com", models.RoleStudent)

	resp, _ := testutil.DoMultipart(t, app, "POST", "/api/courses", testutil.TokenFor(t, student), map[string]string{
		"title": "Nope",
	}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMyCoursesReturnsOnlyOwnCourses(t *testing.T) {
	app := testutil.SetupApp(t)
	ada := testutil.CreateUser(t, "Ada", "ada@example.com", models.RoleInstructor)
	grace := testutil.CreateUser(t, "Grace", "grace@example.com", models.RoleInstructor)
	adaToken := testutil.TokenFor(t, ada)
	graceToken := testutil.TokenFor(t, grace)

	createCourse(t, app, adaToken, "Ada's course", "")
	createCourse(t, app, graceToken, "Grace's course", "")

	resp, envelope := testutil.DoJSON(t, app, "GET", "/api/courses/mine", adaToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	mine := testutil.DataList(t, envelope)
	require.Len(t, mine, 1)
	assert.Equal(t, "Ada's course", mine[0].(map[string]interface{})["title"])

	// The full listing still shows both
	resp, envelope = testutil.DoJSON(t, app, "GET", "/api/courses", adaToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, testutil.DataList(t, envelope), 2)
}

func TestSectionAndLessonLifecycle(t *testing.T) {
	app := testutil.SetupApp(t)
	instructor := testutil.CreateUser(t, "Ada", "ada@example.com", models.RoleInstructor)
	token := testutil.TokenFor(t, instructor)
	courseID, _ := createCourse(t, app, token, "Go 101", "")

	// Add a section
	resp, envelope := testutil.DoJSON(t, app, "POST", fmt.Sprintf("/api/courses/%d/sections", courseID), token, map[string]string{
		"title": "Intro",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	sections := sectionsOf(t, testutil.Data(t, envelope))
	require.Len(t, sections, 1)
	sectionID := sections[0].(map[string]interface{})["id"].(string)

	// Add a lesson
	resp, envelope = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/api/courses/%d/sections/%s/lessons", courseID, sectionID), token, map[string]string{
		"title":   "L1",
		"content": "hello",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	sections = sectionsOf(t, testutil.Data(t, envelope))
	lessons := sections[0].(map[string]interface{})["lessons"].([]interface{})
	require.Len(t, lessons, 1)
	lessonID := lessons[0].(map[string]interface{})["id"].(string)

	// Rename the section; an empty title must not clobber it
	resp, _ = testutil.DoJSON(t, app, "PUT", fmt.Sprintf("/api/courses/%d/sections/%s", courseID, sectionID), token, map[string]string{
		"title": "Introduction",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, envelope = testutil.DoJSON(t, app, "PUT", fmt.Sprintf("/api/courses/%d/sections/%s", courseID, sectionID), token, map[string]string{
		"title": "",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sections = sectionsOf(t, testutil.Data(t, envelope))
	assert.Equal(t, "Introduction", sections[0].(map[string]interface{})["title"])

	// Partial lesson update keeps omitted fields
	resp, envelope = testutil.DoJSON(t, app, "PUT", fmt.Sprintf("/api/courses/%d/sections/%s/lessons/%s", courseID, sectionID, lessonID), token, map[string]string{
		"content": "updated content",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sections = sectionsOf(t, testutil.Data(t, envelope))
	lesson := sections[0].(map[string]interface{})["lessons"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "L1", lesson["title"])
	assert.Equal(t, "updated content", lesson["content"])

	// Delete the lesson
	resp, envelope = testutil.DoJSON(t, app, "DELETE", fmt.Sprintf("/api/courses/%d/sections/%s/lessons/%s", courseID, sectionID, lessonID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sections = sectionsOf(t, testutil.Data(t, envelope))
	assert.Empty(t, sections[0].(map[string]interface{})["lessons"])

	// Unknown ids resolve to NotFound
	resp, _ = testutil.DoJSON(t, app, "POST", fmt.Sprintf("/api/courses/%d/sections/%s/lessons", courseID, "missing"), token, map[string]string{
		"title": "X",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteSectionRemovesItsLessons(t *testing.T) {
	app := testutil.SetupApp(t)
	instructor := testutil.CreateUser(t, "Ada", "ada@example.com", models.RoleInstructor)
	token := testutil.TokenFor(t, instructor)

	sectionsJSON := `[{"title": "Doomed", "lessons": [{"title": "L1"}, {"title": "L2"}]}, {"title": "Safe", "lessons": [{"title": "L3"}]}]`
	courseID, data := createCourse(t, app, token, "Go 101", sectionsJSON)

	sections := sectionsOf(t, data)
	doomedID := sections[0].(map[string]interface{})["id"].(string)

	resp, _ := testutil.DoJSON(t, app, "DELETE", fmt.Sprintf("/api/courses/%d/sections/%s", courseID, doomedID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// A subsequent read never returns any lesson of the deleted section
	resp, envelope := testutil.DoJSON(t, app, "GET", fmt.Sprintf("/api/courses/%d", courseID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	remaining := sectionsOf(t, testutil.Data(t, envelope))
	require.Len(t, remaining, 1)
	section := remaining[0].(map[string]interface{})
	assert.Equal(t, "Safe", section["title"])
	lessons := section["lessons"].([]interface{})
	require.Len(t, lessons, 1)
	assert.Equal(t, "L3", lessons[0].(map[string]interface{})["title"])
}

func TestNonOwnerInstructorIsForbiddenOnEveryMutation(t *testing.T) {
	app := testutil.SetupApp(t)
	owner := testutil.CreateUser(t, "Ada", "ada@example.com", models.RoleInstructor)
	rival := testutil.CreateUser(t, "Grace", "grace@example.com", models.RoleInstructor)
	rivalToken := testutil.TokenFor(t, rival)

	sectionsJSON := `[{"title": "Intro", "lessons": [{"title": "L1"}]}]`
	courseID, data := createCourse(t, app, testutil.TokenFor(t, owner), "Ada's course", sectionsJSON)

	sections := sectionsOf(t, data)
	sectionID := sections[0].(map[string]interface{})["id"].(string)
	lessonID := sections[0].(map[string]interface{})["lessons"].([]interface{})[0].(map[string]interface{})["id"].(string)

	mutations := []struct {
		method string
		path   string
		body   interface{}
	}{
		{"POST", fmt.Sprintf("/api/courses/%d/sections", courseID), map[string]string{"title": "X"}},
		{"PUT", fmt.Sprintf("/api/courses/%d/sections/%s", courseID, sectionID), map[string]string{"title": "X"}},
		{"DELETE", fmt.Sprintf("/api/courses/%d/sections/%s", courseID, sectionID), nil},
		{"POST", fmt.Sprintf("/api/courses/%d/sections/%s/lessons", courseID, sectionID), map[string]string{"title": "X"}},
		{"PUT", fmt.Sprintf("/api/courses/%d/sections/%s/lessons/%s", courseID, sectionID, lessonID), map[string]string{"title": "X"}},
		{"DELETE", fmt.Sprintf("/api/courses/%d/sections/%s/lessons/%s", courseID, sectionID, lessonID), nil},
		{"DELETE", fmt.Sprintf("/api/courses/%d", courseID), nil},
	}

	for _, mutation := range mutations {
		resp, _ := testutil.DoJSON(t, app, mutation.method, mutation.path, rivalToken, mutation.body)
		assert.Equalf(t, http.StatusForbidden, resp.StatusCode, "%s %s should be forbidden for a non-owner", mutation.method, mutation.path)
	}
}

func TestPDFUploadPolicy(t *testing.T) {
	app := testutil.SetupApp(t)
	instructor := testutil.CreateUser(t, "Ada", "ada@example.com", models.RoleInstructor)
	token := testutil.TokenFor(t, instructor)
	courseID, _ := createCourse(t, app, token, "Go 101", "")

	// A valid PDF is appended to the attachment list
	resp, envelope := testutil.DoMultipart(t, app, "POST", fmt.Sprintf("/api/courses/%d/pdf", courseID), token, nil, map[string][]byte{
		"course notes.pdf": testutil.PDFBytes(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	attachments := testutil.Data(t, envelope)["attachments"].([]interface{})
	require.Len(t, attachments, 1)
	// Unsafe characters are sanitized out of the stored name
	assert.NotContains(t, attachments[0].(string), " ")

	// Non-PDF uploads are rejected at the boundary
	resp, _ = testutil.DoMultipart(t, app, "POST", fmt.Sprintf("/api/courses/%d/pdf", courseID), token, nil, map[string][]byte{
		"notes.txt": []byte("not a pdf"),
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// An empty upload is a bad request
	resp, _ = testutil.DoMultipart(t, app, "POST", fmt.Sprintf("/api/courses/%d/pdf", courseID), token, nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// More than five files in one call are rejected outright
	tooMany := map[string][]byte{}
	for i := 0; i < 6; i++ {
		tooMany[fmt.Sprintf("notes-%d.pdf", i)] = testutil.PDFBytes()
	}
	resp, _ = testutil.DoMultipart(t, app, "POST", fmt.Sprintf("/api/courses/%d/pdf", courseID), token, nil, tooMany)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	// The rejected batch must not have been partially appended
	resp, envelope = testutil.DoJSON(t, app, "GET", fmt.Sprintf("/api/courses/%d", courseID), "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, testutil.Data(t, envelope)["attachments"], 1)
}

func TestCreateCourseWithAttachments(t *testing.T) {
	app := testutil.SetupApp(t)
	instructor := testutil.CreateUser(t, "Ada", "ada@example.com", models.RoleInstructor)
	token := testutil.TokenFor(t, instructor)

	resp, envelope := testutil.DoMultipart(t, app, "POST", "/api/courses", token, map[string]string{
		"title": "Go 101",
	}, map[string][]byte{
		"syllabus.pdf": testutil.PDFBytes(),
		"reading.pdf":  testutil.PDFBytes(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	attachments := testutil.Data(t, envelope)["attachments"].([]interface{})
	assert.Len(t, attachments, 2)

	// The file cap applies at creation time too
	tooMany := map[string][]byte{}
	for i := 0; i < 6; i++ {
		tooMany[fmt.Sprintf("notes-%d.pdf", i)] = testutil.PDFBytes()
	}
	resp, _ = testutil.DoMultipart(t, app, "POST", "/api/courses", token, map[string]string{
		"title": "Overloaded",
	}, tooMany)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestDeleteCourse(t *testing.T) {
	app := testutil.SetupApp(t)
	instructor := testutil.CreateUser(t, "Ada", "ada@example.com", models.RoleInstructor)
	token := testutil.TokenFor(t, instructor)
	courseID, _ := createCourse(t, app, token, "Short-lived", "")

	resp, _ := testutil.DoJSON(t, app, "DELETE", fmt.Sprintf("/api/courses/%d", courseID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = testutil.DoJSON(t, app, "GET", fmt.Sprintf("/api/courses/%d", courseID), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
