package progressRoutes

import (
	controllers "lms/controllers/progress"
	"lms/middleware"
	"lms/models"
	validators "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up the progress tracking routes
func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/api/progress")

	// Any authenticated caller may read progress; non-students simply
	// get an empty set. Toggling is student-only.
	progressGroup.Get("/user", middleware.JWTMiddleware, controllers.GetUserProgress)
	progressGroup.Post("/lesson", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.ToggleLesson(), controllers.ToggleLesson)
}
