package adminValidator

import (
	"lms/middleware"
	"lms/models"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// parseUserID extracts and validates the target user id path parameter.
func parseUserID(c *fiber.Ctx) (uint, bool) {
	idStr := strings.TrimSpace(c.Params("id"))
	if idStr == "" {
		_ = middleware.JsonResponse(c, fiber.StatusBadRequest, false, "User ID is required in the URL!", nil)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		_ = middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid User ID!", nil)
		return 0, false
	}

	return uint(id), true
}

// UserID validates user management routes addressed by a user id.
func UserID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID, ok := parseUserID(c)
		if !ok {
			return nil
		}

		c.Locals("targetUserID", targetID)
		return c.Next()
	}
}

// UpdateRole validates the role change request. The role must be one
// of the closed role set.
func UpdateRole() fiber.Handler {
	return func(c *fiber.Ctx) error {
		targetID, ok := parseUserID(c)
		if !ok {
			return nil
		}

		reqData := new(struct {
			Role string `json:"role"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		reqData.Role = strings.TrimSpace(reqData.Role)
		if !models.IsValidRole(reqData.Role) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid role!", nil)
		}

		c.Locals("targetUserID", targetID)
		c.Locals("targetRole", reqData.Role)
		return c.Next()
	}
}
