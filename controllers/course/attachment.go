package controllers

import (
	"lms/database"
	"lms/middleware"
	"log"

	"github.com/gofiber/fiber/v2"
)

// AddCoursePDFs appends uploaded PDF attachments to the course's flat
// attachment list.
func AddCoursePDFs(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	course := fetchOwnedCourse(c, courseID)
	if course == nil {
		return nil
	}

	form, err := c.MultipartForm()
	if err != nil || form == nil || len(form.File["pdfs"]) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No PDFs uploaded!", nil)
	}

	paths, ok := savePDFs(c, form.File["pdfs"])
	if !ok {
		return nil
	}

	attachments, err := course.DecodeAttachments()
	if err != nil {
		log.Printf("Error decoding attachments for course %d: %v", course.ID, err)
		attachments = []string{}
	}
	attachments = append(attachments, paths...)

	if err := course.SetAttachments(attachments); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add PDFs!", nil)
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		log.Printf("Error saving course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add PDFs!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "PDFs added successfully!", fiber.Map{
		"attachments": attachments,
	})
}
