package controllers

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetUserProgress returns the caller's full completed-lesson set.
// Progress is a student-only concept: other roles get an empty set
// rather than an error, since they may query it incidentally.
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	role, _ := c.Locals("role").(string)
	if role != models.RoleStudent {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
			"completed_lessons": models.CompletedSet{},
		})
	}

	var progress models.Progress
	err := database.Database.Db.Where("user_id = ?", userID).First(&progress).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
				"completed_lessons": models.CompletedSet{},
			})
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	completed, err := progress.DecodeCompleted()
	if err != nil {
		log.Printf("Error decoding progress for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"completed_lessons": completed,
	})
}

// ToggleLesson flips membership of the (course, section, lesson)
// triple in the caller's completed set and returns the updated set.
// The progress record is created lazily on first use. Toggling twice
// restores the original membership.
func ToggleLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedToggle").(*struct {
		CourseID  uint   `json:"course_id"`
		SectionID string `json:"section_id"`
		LessonID  string `json:"lesson_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var progress models.Progress
	err := database.Database.Db.Where("user_id = ?", userID).First(&progress).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
		}
		progress = models.Progress{UserID: userID}
	}

	completed, err := progress.DecodeCompleted()
	if err != nil {
		log.Printf("Error decoding progress for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	completed = completed.Toggle(models.CompletedLesson{
		CourseID:  reqData.CourseID,
		SectionID: reqData.SectionID,
		LessonID:  reqData.LessonID,
	})

	if err := progress.SetCompleted(completed); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	if err := database.Database.Db.Save(&progress).Error; err != nil {
		log.Printf("Error saving progress for user %d: %v", userID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", fiber.Map{
		"completed_lessons": completed,
	})
}
