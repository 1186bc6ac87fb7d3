package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CompletedLesson is one (course, section, lesson) triple in a
// student's completed set. Only presence is tracked, no timestamp.
type CompletedLesson struct {
	CourseID  uint   `json:"course_id"`
	SectionID string `json:"section_id"`
	LessonID  string `json:"lesson_id"`
}

// Progress holds one row per student with the completed set as a JSON
// document. Created lazily on the first toggle. Triples are not
// re-validated after the referenced course or lesson is deleted, so
// stale entries may persist.
type Progress struct {
	gorm.Model
	UserID           uint           `json:"user_id" gorm:"uniqueIndex;not null"`
	CompletedLessons datatypes.JSON `json:"completed_lessons" gorm:"type:jsonb"` // []CompletedLesson
}

// CompletedSet is the decoded form of Progress.CompletedLessons.
type CompletedSet []CompletedLesson

func (p *Progress) DecodeCompleted() (CompletedSet, error) {
	if len(p.CompletedLessons) == 0 {
		return CompletedSet{}, nil
	}
	var set CompletedSet
	if err := json.Unmarshal(p.CompletedLessons, &set); err != nil {
		return nil, err
	}
	return set, nil
}

func (p *Progress) SetCompleted(set CompletedSet) error {
	raw, err := json.Marshal(set)
	if err != nil {
		return err
	}
	p.CompletedLessons = datatypes.JSON(raw)
	return nil
}

// Toggle flips membership of the triple: present entries are removed,
// absent ones appended. Toggle is its own inverse.
func (s CompletedSet) Toggle(triple CompletedLesson) CompletedSet {
	for i, l := range s {
		if l == triple {
			return append(s[:i], s[i+1:]...)
		}
	}
	return append(s, triple)
}

// Contains reports membership of the triple.
func (s CompletedSet) Contains(triple CompletedLesson) bool {
	for _, l := range s {
		if l == triple {
			return true
		}
	}
	return false
}
