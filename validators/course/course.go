package courseValidator

import (
	"lms/middleware"
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var invalidTitleChars = regexp.MustCompile(`[<>{}]`)

// parseCourseID extracts and validates the course id path parameter.
// Writes the error response and reports false on failure.
func parseCourseID(c *fiber.Ctx, param string) (uint, bool) {
	idStr := strings.TrimSpace(c.Params(param))
	if idStr == "" {
		_ = middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course ID is required in the URL!", nil)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		_ = middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Course ID!", nil)
		return 0, false
	}

	return uint(id), true
}

// CreateCourse validates the multipart create-course form fields.
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string
			Description string
			Sections    string
		})

		reqData.Title = strings.TrimSpace(c.FormValue("title"))
		reqData.Description = strings.TrimSpace(c.FormValue("description"))
		reqData.Sections = strings.TrimSpace(c.FormValue("sections"))

		errors := make(map[string]string)

		// Validate Title
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else {
			if len(reqData.Title) > 100 {
				errors["title"] = "Title must not exceed 100 characters!"
			}
			if invalidTitleChars.MatchString(reqData.Title) {
				errors["title"] = "Title contains invalid characters (e.g., <, >, {, })!"
			}
		}

		// Validate Description (optional field)
		if reqData.Description != "" && len(reqData.Description) > 1000 {
			errors["description"] = "Description must not exceed 1000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CourseID validates routes addressed by a course id only.
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c, "id")
		if !ok {
			return nil
		}

		c.Locals("courseID", courseID)
		return c.Next()
	}
}

// SectionBody validates section add/rename requests. The title is
// required on add; on rename an empty title means "keep the current
// one", so requiredTitle is false there.
func SectionBody(requiredTitle bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c, "id")
		if !ok {
			return nil
		}

		reqData := new(struct {
			Title string `json:"title"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		errors := make(map[string]string)

		if requiredTitle && reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Title != "" {
			if len(reqData.Title) > 100 {
				errors["title"] = "Title must not exceed 100 characters!"
			}
			if invalidTitleChars.MatchString(reqData.Title) {
				errors["title"] = "Title contains invalid characters (e.g., <, >, {, })!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if sectionID := strings.TrimSpace(c.Params("sectionId")); sectionID != "" {
			c.Locals("sectionID", sectionID)
		}

		c.Locals("courseID", courseID)
		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

// SectionParams validates routes addressed by course and section ids.
func SectionParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c, "id")
		if !ok {
			return nil
		}

		sectionID := strings.TrimSpace(c.Params("sectionId"))
		if sectionID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Section ID is required in the URL!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("sectionID", sectionID)
		return c.Next()
	}
}

// LessonBody validates lesson add/update requests. The title is
// required on add; update is a partial edit where empty fields keep
// their previous values.
func LessonBody(requiredTitle bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c, "id")
		if !ok {
			return nil
		}

		sectionID := strings.TrimSpace(c.Params("sectionId"))
		if sectionID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Section ID is required in the URL!", nil)
		}

		reqData := new(struct {
			Title    string `json:"title"`
			Content  string `json:"content"`
			VideoURL string `json:"video_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Title = strings.TrimSpace(reqData.Title)

		errors := make(map[string]string)

		if requiredTitle && reqData.Title == "" {
			errors["title"] = "Title is required!"
		}
		if reqData.Title != "" && len(reqData.Title) > 100 {
			errors["title"] = "Title must not exceed 100 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		if lessonID := strings.TrimSpace(c.Params("lessonId")); lessonID != "" {
			c.Locals("lessonID", lessonID)
		}

		c.Locals("courseID", courseID)
		c.Locals("sectionID", sectionID)
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// LessonParams validates routes addressed by course, section and
// lesson ids.
func LessonParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		courseID, ok := parseCourseID(c, "id")
		if !ok {
			return nil
		}

		sectionID := strings.TrimSpace(c.Params("sectionId"))
		lessonID := strings.TrimSpace(c.Params("lessonId"))
		if sectionID == "" || lessonID == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Section ID and Lesson ID are required in the URL!", nil)
		}

		c.Locals("courseID", courseID)
		c.Locals("sectionID", sectionID)
		c.Locals("lessonID", lessonID)
		return c.Next()
	}
}
