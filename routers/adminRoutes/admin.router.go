package adminRoutes

import (
	adminController "lms/controllers/admin"
	"lms/middleware"
	validators "lms/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the user management routes. Every route
// passes the elevated gate, which re-resolves the caller's current
// role instead of trusting the token claim.
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin", middleware.JWTMiddleware, middleware.AdminAuth)

	adminGroup.Get("/students", adminController.GetStudents)
	adminGroup.Get("/instructors", adminController.GetInstructors)
	adminGroup.Delete("/user/:id", validators.UserID(), adminController.DeleteUser)
	adminGroup.Put("/user/:id/role", validators.UpdateRole(), adminController.UpdateUserRole)
}
