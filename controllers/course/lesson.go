package controllers

import (
	"lms/database"
	"lms/middleware"
	"log"

	"github.com/gofiber/fiber/v2"
)

// AddLesson appends a lesson to the addressed section's lesson
// sequence.
func AddLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	sectionID := c.Locals("sectionID").(string)
	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		VideoURL string `json:"video_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := fetchOwnedCourse(c, courseID)
	if course == nil {
		return nil
	}

	sections, err := course.DecodeSections()
	if err != nil {
		log.Printf("Error decoding sections for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add lesson!", nil)
	}

	if _, ok := sections.AddLesson(sectionID, reqData.Title, reqData.Content, reqData.VideoURL); !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	if err := course.SetSections(sections); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add lesson!", nil)
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		log.Printf("Error saving course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson added successfully!", courseResponse(course))
}

// UpdateLesson partially updates the addressed lesson; omitted or empty
// fields keep their previous value.
func UpdateLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	sectionID := c.Locals("sectionID").(string)
	lessonID := c.Locals("lessonID").(string)
	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		VideoURL string `json:"video_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := fetchOwnedCourse(c, courseID)
	if course == nil {
		return nil
	}

	sections, err := course.DecodeSections()
	if err != nil {
		log.Printf("Error decoding sections for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	if !sections.UpdateLesson(sectionID, lessonID, reqData.Title, reqData.Content, reqData.VideoURL) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if err := course.SetSections(sections); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		log.Printf("Error saving course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", courseResponse(course))
}

// DeleteLesson removes exactly the addressed lesson from its section.
func DeleteLesson(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	sectionID := c.Locals("sectionID").(string)
	lessonID := c.Locals("lessonID").(string)

	course := fetchOwnedCourse(c, courseID)
	if course == nil {
		return nil
	}

	sections, err := course.DecodeSections()
	if err != nil {
		log.Printf("Error decoding sections for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	if !sections.RemoveLesson(sectionID, lessonID) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if err := course.SetSections(sections); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		log.Printf("Error saving course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", courseResponse(course))
}
