package models

import "gorm.io/gorm"

// Enrollment links a student to a course. The (user, course) pair is
// unique across the ledger; a second enroll attempt is rejected.
// Enrollments are never updated and are left dangling when their
// course is deleted.
type Enrollment struct {
	gorm.Model
	UserID    uint `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	CourseID  uint `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollment_user_course"`
	IsDeleted bool `json:"-" gorm:"default:false"`
}
