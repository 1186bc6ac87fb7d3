package enrollmentRoutes

import (
	controllers "lms/controllers/enrollment"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

// SetupEnrollmentRoutes sets up the student enrollment routes
func SetupEnrollmentRoutes(app *fiber.App) {
	enrollmentGroup := app.Group("/api/enrollments")

	studentOnly := middleware.RequireRole(models.RoleStudent)

	// "/my" is registered before "/:courseId" so the parameter route
	// does not capture it.
	enrollmentGroup.Get("/my", middleware.JWTMiddleware, studentOnly, controllers.GetMyEnrollments)
	enrollmentGroup.Post("/:courseId", middleware.JWTMiddleware, studentOnly, validators.EnrollCourse(), controllers.EnrollInCourse)
}
