package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course routes. Every mutating route is
// instructor-gated; ownership of the addressed course is checked in the
// controllers. The single-course read is public for anonymous browsing.
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses")

	instructorOnly := middleware.RequireRole(models.RoleInstructor)

	// Course listing and creation. "/mine" is registered before "/:id"
	// so the parameter route does not capture it.
	courseGroup.Get("/", middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Get("/mine", middleware.JWTMiddleware, instructorOnly, controllers.GetMyCourses)
	courseGroup.Post("/", middleware.JWTMiddleware, instructorOnly, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Get("/:id", validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, instructorOnly, validators.CourseID(), controllers.DeleteCourse)

	// Section management
	courseGroup.Post("/:id/sections", middleware.JWTMiddleware, instructorOnly, validators.SectionBody(true), controllers.AddSection)
	courseGroup.Put("/:id/sections/:sectionId", middleware.JWTMiddleware, instructorOnly, validators.SectionBody(false), controllers.UpdateSection)
	courseGroup.Delete("/:id/sections/:sectionId", middleware.JWTMiddleware, instructorOnly, validators.SectionParams(), controllers.DeleteSection)

	// Lesson management
	courseGroup.Post("/:id/sections/:sectionId/lessons", middleware.JWTMiddleware, instructorOnly, validators.LessonBody(true), controllers.AddLesson)
	courseGroup.Put("/:id/sections/:sectionId/lessons/:lessonId", middleware.JWTMiddleware, instructorOnly, validators.LessonBody(false), controllers.UpdateLesson)
	courseGroup.Delete("/:id/sections/:sectionId/lessons/:lessonId", middleware.JWTMiddleware, instructorOnly, validators.LessonParams(), controllers.DeleteLesson)

	// Attachment upload
	courseGroup.Post("/:id/pdf", middleware.JWTMiddleware, instructorOnly, validators.CourseID(), controllers.AddCoursePDFs)
}
