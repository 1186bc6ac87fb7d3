package progressValidator

import (
	"lms/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ToggleLesson validates the lesson completion toggle request body.
func ToggleLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			CourseID  uint   `json:"course_id"`
			SectionID string `json:"section_id"`
			LessonID  string `json:"lesson_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.SectionID = strings.TrimSpace(reqData.SectionID)
		reqData.LessonID = strings.TrimSpace(reqData.LessonID)

		errors := make(map[string]string)

		if reqData.CourseID == 0 {
			errors["course_id"] = "Course ID is required!"
		}
		if reqData.SectionID == "" {
			errors["section_id"] = "Section ID is required!"
		}
		if reqData.LessonID == "" {
			errors["lesson_id"] = "Lesson ID is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedToggle", reqData)
		return c.Next()
	}
}
