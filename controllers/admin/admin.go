package adminController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	"log"

	"github.com/gofiber/fiber/v2"
)

// listUsersByRole fetches all non-deleted users holding the given role,
// stripped to the public projection.
func listUsersByRole(c *fiber.Ctx, role string) error {
	var users []models.User
	if err := database.Database.Db.Where("role = ? AND is_deleted = ?", role, false).Order("id asc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch users!", nil)
	}

	result := make([]models.PublicUser, 0, len(users))
	for i := range users {
		result = append(result, users[i].Public())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users fetched successfully!", result)
}

// GetStudents lists all students.
func GetStudents(c *fiber.Ctx) error {
	return listUsersByRole(c, models.RoleStudent)
}

// GetInstructors lists all instructors.
func GetInstructors(c *fiber.Ctx) error {
	return listUsersByRole(c, models.RoleInstructor)
}

// DeleteUser removes a user. Courses, enrollments and progress records
// referencing the user are left dangling; no cascade is performed.
func DeleteUser(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.IsDeleted = true
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error deleting user %d: %v", targetID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully!", nil)
}

// UpdateUserRole changes a user's role. Tokens issued before the change
// keep working, but admin-gated endpoints re-resolve the current role,
// so a demoted admin loses elevated access on the next check.
func UpdateUserRole(c *fiber.Ctx) error {
	targetID := c.Locals("targetUserID").(uint)
	role := c.Locals("targetRole").(string)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", targetID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	user.Role = role
	if err := database.Database.Db.Save(&user).Error; err != nil {
		log.Printf("Error updating role for user %d: %v", targetID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update user role!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "User role updated successfully!", fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}
