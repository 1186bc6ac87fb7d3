package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson lives inside a Section and has no identity outside it.
type Lesson struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	VideoURL string `json:"video_url"`
}

// Section lives inside a Course document. Sections and their lessons
// keep insertion order; there is no reordering operation.
type Section struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

// Course owns its content tree. Sections and Attachments are stored as
// JSON documents in the course row, so every tree edit is a single-row
// save: read the row, mutate the decoded tree, save it back. Two
// concurrent edits to the same course race and the second save wins;
// there is no version check.
type Course struct {
	gorm.Model
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	InstructorID uint           `json:"instructor_id" gorm:"index;not null"` // fixed at creation
	Sections     datatypes.JSON `json:"sections" gorm:"type:jsonb"`          // []Section
	Attachments  datatypes.JSON `json:"attachments" gorm:"type:jsonb"`       // []string of file paths
	IsDeleted    bool           `json:"-" gorm:"default:false"`
}

// CourseWithInstructor joins a course with its owner's display data for
// list endpoints.
type CourseWithInstructor struct {
	Course
	Instructor PublicUser `json:"instructor"`
}

// SectionList is the decoded form of Course.Sections. All tree
// mutations go through its methods so the "no existence outside the
// parent" rule holds everywhere.
type SectionList []Section

// DecodeSections returns the course tree, treating a missing or null
// column as an empty tree. Nil lesson slices are normalized so reads
// never serve null arrays.
func (c *Course) DecodeSections() (SectionList, error) {
	if len(c.Sections) == 0 {
		return SectionList{}, nil
	}
	var sections SectionList
	if err := json.Unmarshal(c.Sections, &sections); err != nil {
		return nil, err
	}
	for i := range sections {
		if sections[i].Lessons == nil {
			sections[i].Lessons = []Lesson{}
		}
	}
	return sections, nil
}

func (c *Course) SetSections(sections SectionList) error {
	raw, err := json.Marshal(sections)
	if err != nil {
		return err
	}
	c.Sections = datatypes.JSON(raw)
	return nil
}

// DecodeAttachments returns the flat attachment path list, tolerating a
// missing or null column.
func (c *Course) DecodeAttachments() ([]string, error) {
	if len(c.Attachments) == 0 {
		return []string{}, nil
	}
	var paths []string
	if err := json.Unmarshal(c.Attachments, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func (c *Course) SetAttachments(paths []string) error {
	raw, err := json.Marshal(paths)
	if err != nil {
		return err
	}
	c.Attachments = datatypes.JSON(raw)
	return nil
}

// NewSectionID assigns identifiers to sections and lessons that arrive
// without one (e.g. the sections JSON sent on course creation).
func NewSectionID() string {
	return uuid.NewString()
}

// Normalize gives every section and lesson an id and a non-nil lesson
// slice. Used on the tree parsed from a create-course request.
func (s SectionList) Normalize() SectionList {
	for i := range s {
		if s[i].ID == "" {
			s[i].ID = NewSectionID()
		}
		if s[i].Lessons == nil {
			s[i].Lessons = []Lesson{}
		}
		for j := range s[i].Lessons {
			if s[i].Lessons[j].ID == "" {
				s[i].Lessons[j].ID = NewSectionID()
			}
		}
	}
	return s
}

// AddSection appends a new empty section and returns its id.
func (s SectionList) AddSection(title string) (SectionList, string) {
	id := NewSectionID()
	return append(s, Section{ID: id, Title: title, Lessons: []Lesson{}}), id
}

// RenameSection replaces a section title in place. An empty title
// leaves the existing one untouched. Returns false when the section id
// does not resolve.
func (s SectionList) RenameSection(sectionID, title string) bool {
	for i := range s {
		if s[i].ID == sectionID {
			if title != "" {
				s[i].Title = title
			}
			return true
		}
	}
	return false
}

// RemoveSection drops the section and every lesson inside it.
func (s SectionList) RemoveSection(sectionID string) (SectionList, bool) {
	for i := range s {
		if s[i].ID == sectionID {
			return append(s[:i], s[i+1:]...), true
		}
	}
	return s, false
}

// AddLesson appends a lesson to the addressed section and returns its
// id. Returns false when the section id does not resolve.
func (s SectionList) AddLesson(sectionID, title, content, videoURL string) (string, bool) {
	for i := range s {
		if s[i].ID == sectionID {
			id := NewSectionID()
			s[i].Lessons = append(s[i].Lessons, Lesson{
				ID:       id,
				Title:    title,
				Content:  content,
				VideoURL: videoURL,
			})
			return id, true
		}
	}
	return "", false
}

// UpdateLesson partially updates the addressed lesson; empty fields
// keep their previous value.
func (s SectionList) UpdateLesson(sectionID, lessonID, title, content, videoURL string) bool {
	for i := range s {
		if s[i].ID != sectionID {
			continue
		}
		for j := range s[i].Lessons {
			if s[i].Lessons[j].ID == lessonID {
				if title != "" {
					s[i].Lessons[j].Title = title
				}
				if content != "" {
					s[i].Lessons[j].Content = content
				}
				if videoURL != "" {
					s[i].Lessons[j].VideoURL = videoURL
				}
				return true
			}
		}
		return false
	}
	return false
}

// RemoveLesson drops exactly the addressed lesson from its section.
func (s SectionList) RemoveLesson(sectionID, lessonID string) bool {
	for i := range s {
		if s[i].ID != sectionID {
			continue
		}
		for j := range s[i].Lessons {
			if s[i].Lessons[j].ID == lessonID {
				s[i].Lessons = append(s[i].Lessons[:j], s[i].Lessons[j+1:]...)
				return true
			}
		}
		return false
	}
	return false
}
