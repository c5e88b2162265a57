package course

import (
	"sort"
	"time"

	"github.com/aulaedu/aula/core"
)

// Lesson content kinds. Closed set; Content's meaning depends on the kind
// (embed URL for video, markup for text, document URL for pdf).
type ContentKind string

const (
	KindVideo ContentKind = "video"
	KindText  ContentKind = "text"
	KindPDF   ContentKind = "pdf"
)

func (k ContentKind) Valid() bool {
	switch k {
	case KindVideo, KindText, KindPDF:
		return true
	}
	return false
}

type Course struct {
	ID          int       `json:"id"`
	TrainerID   int       `json:"trainer_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Objectives  []string  `json:"objectives"`
	Subject     string    `json:"subject"`
	Level       string    `json:"level"`
	Thumbnail   string    `json:"thumbnail"`
	CreatedAt   time.Time `json:"created_at"` // UTC
}

type Module struct {
	ID          int    `json:"id"`
	CourseID    int    `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type Lesson struct {
	ID       int         `json:"id"`
	ModuleID int         `json:"module_id"`
	Title    string      `json:"title"`
	Kind     ContentKind `json:"kind"`
	Content  string      `json:"content"`
	Duration int         `json:"duration"` // minutes
	Order    int         `json:"order"`
}

// Enrollment joins a student identity to a Course. At most one exists per
// (student, course) pair; Progress only ever goes up.
type Enrollment struct {
	ID           int       `json:"id"`
	StudentID    int       `json:"student_id"`
	CourseID     int       `json:"course_id"`
	Progress     int       `json:"progress"` // 0 - 100
	LastActivity time.Time `json:"last_activity"` // UTC
}

// EnrolledCourse is a Course projected with the requesting student's progress.
type EnrolledCourse struct {
	Course
	Progress int `json:"progress"`
}

// CourseStudent is an Enrollment row projected for a trainer's course view.
// It deliberately does not join back to the identity for name/avatar.
type CourseStudent struct {
	StudentID    int       `json:"student_id"`
	Progress     int       `json:"progress"`
	LastActivity time.Time `json:"last_activity"`
}

// NewCourse contains information needed to add a Course to the catalog.
type NewCourse struct {
	TrainerID   int      `json:"trainer_id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Objectives  []string `json:"objectives"`
	Subject     string   `json:"subject" validate:"required"`
	Level       string   `json:"level" validate:"required"`
	Thumbnail   string   `json:"thumbnail" validate:"omitempty,url"`
}

func (nc *NewCourse) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	nc.Subject = core.CleanString(nc.Subject)
	nc.Level = core.CleanString(nc.Level)
	return core.Validate.Struct(nc)
}

type NewModule struct {
	CourseID    int    `json:"course_id" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Order       int    `json:"order" validate:"min=1"`
}

func (nm *NewModule) Validate() error {
	nm.Title = core.CleanString(nm.Title)
	return core.Validate.Struct(nm)
}

type NewLesson struct {
	ModuleID int         `json:"module_id" validate:"required"`
	Title    string      `json:"title" validate:"required"`
	Kind     ContentKind `json:"kind" validate:"required,contentkind"`
	Content  string      `json:"content" validate:"required"`
	Duration int         `json:"duration" validate:"min=0"`
	Order    int         `json:"order" validate:"min=1"`
}

func (nl *NewLesson) Validate() error {
	nl.Title = core.CleanString(nl.Title)
	return core.Validate.Struct(nl)
}

// QueryFilter narrows catalog queries. Fields combine with AND; exact matches.
type QueryFilter struct {
	Level     string
	Subject   string
	TrainerID int
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Level == "" && qf.Subject == "" && qf.TrainerID == 0
}

func (qf *QueryFilter) Clean() {
	qf.Level = core.CleanString(qf.Level)
	qf.Subject = core.CleanString(qf.Subject)
}

// SortModulesByOrder sorts in place by order index. Retrieval itself is
// unordered; sequential display is the caller's call.
func SortModulesByOrder(mods []Module) {
	sort.Slice(mods, func(i, j int) bool { return mods[i].Order < mods[j].Order })
}

// SortLessonsByOrder sorts in place by order index.
func SortLessonsByOrder(lessons []Lesson) {
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].Order < lessons[j].Order })
}
