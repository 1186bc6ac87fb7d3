package controllers

import (
	"lms/database"
	"lms/middleware"
	"log"

	"github.com/gofiber/fiber/v2"
)

// AddSection appends a new section with an empty lesson list to the
// course's ordered section sequence.
func AddSection(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedSection").(*struct {
		Title string `json:"title"`
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
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add section!", nil)
	}

	sections, _ = sections.AddSection(reqData.Title)
	if err := course.SetSections(sections); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add section!", nil)
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		log.Printf("Error saving course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section added successfully!", courseResponse(course))
}

// UpdateSection renames a section in place. An empty title leaves the
// existing one unchanged.
func UpdateSection(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	sectionID := c.Locals("sectionID").(string)
	reqData, ok := c.Locals("validatedSection").(*struct {
		Title string `json:"title"`
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
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update section!", nil)
	}

	if !sections.RenameSection(sectionID, reqData.Title) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	if err := course.SetSections(sections); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update section!", nil)
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		log.Printf("Error saving course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section updated successfully!", courseResponse(course))
}

// DeleteSection removes the section and all its embedded lessons in a
// single document update. Lessons have no existence outside their
// section, so no separate cleanup is needed.
func DeleteSection(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	sectionID := c.Locals("sectionID").(string)

	course := fetchOwnedCourse(c, courseID)
	if course == nil {
		return nil
	}

	sections, err := course.DecodeSections()
	if err != nil {
		log.Printf("Error decoding sections for course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	sections, found := sections.RemoveSection(sectionID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	if err := course.SetSections(sections); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		log.Printf("Error saving course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", courseResponse(course))
}
