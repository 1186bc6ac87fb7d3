package controllers

import (
	"encoding/json"
	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	"log"
	"mime/multipart"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// pdfDir is where course attachments are stored, under the configured
// upload root.
func pdfDir() string {
	return filepath.Join(config.AppConfig.UploadDir, "pdfs")
}

// savePDFs validates and stores uploaded PDF files, returning the
// stored paths. Enforces the per-call count, per-file size and
// content-type policy. Writes the error response and reports false
// when the upload is rejected.
func savePDFs(c *fiber.Ctx, files []*multipart.FileHeader) ([]string, bool) {
	if len(files) > utils.MaxPDFCount {
		_ = middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "A maximum of 5 PDF files can be uploaded at once!", nil)
		return nil, false
	}

	for _, file := range files {
		if !utils.IsPDFUpload(file) {
			_ = middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Only PDF files are allowed!", nil)
			return nil, false
		}
		if file.Size > utils.MaxPDFSize {
			_ = middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "PDF files must not exceed 50MB!", nil)
			return nil, false
		}
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		path, err := utils.SaveUploadedFile(file, pdfDir())
		if err != nil {
			log.Printf("Error saving uploaded file %s: %v", file.Filename, err)
			_ = middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded files!", nil)
			return nil, false
		}
		paths = append(paths, path)
	}

	return paths, true
}

// fetchOwnedCourse loads the addressed course and checks that the
// caller is its owning instructor. Only the immutable owner may mutate
// a course's tree or attachments; no other role, admin included, gets
// a bypass. Writes the error response and returns nil when the check
// fails.
func fetchOwnedCourse(c *fiber.Ctx, courseID uint) *models.Course {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		_ = middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		return nil
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		_ = middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		return nil
	}

	if course.InstructorID != userID {
		_ = middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course owner can modify this course!", nil)
		return nil
	}

	return &course
}

// courseResponse joins a course with its instructor's display data and
// normalizes missing section/attachment arrays to empty ones.
func courseResponse(course *models.Course) models.CourseWithInstructor {
	sections, err := course.DecodeSections()
	if err != nil {
		log.Printf("Error decoding sections for course %d: %v", course.ID, err)
		sections = models.SectionList{}
	}
	_ = course.SetSections(sections)

	attachments, err := course.DecodeAttachments()
	if err != nil {
		log.Printf("Error decoding attachments for course %d: %v", course.ID, err)
		attachments = []string{}
	}
	_ = course.SetAttachments(attachments)

	resp := models.CourseWithInstructor{Course: *course}

	var instructor models.User
	if err := database.Database.Db.First(&instructor, course.InstructorID).Error; err == nil {
		resp.Instructor = instructor.Public()
	}

	return resp
}

// CreateCourse creates a new course owned by the calling instructor.
// Accepts multipart form data: title, description, an optional sections
// JSON array and up to 5 PDF attachments.
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string
		Description string
		Sections    string
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Sections arrive as a JSON string from the multipart form
	sections := models.SectionList{}
	if reqData.Sections != "" {
		if err := json.Unmarshal([]byte(reqData.Sections), &sections); err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Sections must be a valid JSON array!", nil)
		}
		sections = sections.Normalize()
	}

	pdfPaths := []string{}
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if files := form.File["pdfs"]; len(files) > 0 {
			saved, ok := savePDFs(c, files)
			if !ok {
				return nil
			}
			pdfPaths = saved
		}
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		InstructorID: userID,
	}
	if err := course.SetSections(sections); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}
	if err := course.SetAttachments(pdfPaths); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", courseResponse(&course))
}

// GetAllCourses lists all courses with an instructor display projection
// (name and email only, never credential data).
func GetAllCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("id asc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	result := make([]models.CourseWithInstructor, 0, len(courses))
	for i := range courses {
		result = append(result, courseResponse(&courses[i]))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", result)
}

// GetMyCourses lists the calling instructor's own courses. The owner is
// always the authenticated caller, never a request parameter.
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []models.Course
	if err := database.Database.Db.Where("instructor_id = ? AND is_deleted = ?", userID, false).Order("id asc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	result := make([]models.CourseWithInstructor, 0, len(courses))
	for i := range courses {
		result = append(result, courseResponse(&courses[i]))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", result)
}

// GetCourseDetails returns one full course tree. Publicly readable
// without authentication for anonymous browsing.
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", courseResponse(&course))
}

// DeleteCourse removes the course record and attempts best-effort
// deletion of its attachment files. A file deletion failure never
// aborts the record deletion. Enrollment and progress records
// referencing the course are left dangling.
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	course := fetchOwnedCourse(c, courseID)
	if course == nil {
		return nil
	}

	if attachments, err := course.DecodeAttachments(); err == nil {
		for _, path := range attachments {
			utils.DeleteFileQuiet(path)
		}
	}

	course.IsDeleted = true
	if err := database.Database.Db.Save(course).Error; err != nil {
		log.Printf("Error deleting course %d: %v", course.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course and all related PDFs deleted successfully!", nil)
}
