package course

import (
	"time"

	"github.com/pkg/errors"

	"github.com/aulaedu/aula/core"
)

const progressIncrement = 10

var (
	// errors
	ErrNotFound        = errors.New("not found")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
	ErrNoIdentity      = errors.New("no authenticated identity")
)

type (
	Repository interface {
		QueryAllCourses() ([]Course, error)
		// FilterCourses applies AND operation on available QueryFilter fields; exact matches only.
		FilterCourses(filter QueryFilter) ([]Course, error)
		GetCourseByID(id int) (Course, error)
		CreateCourse(crs Course) (Course, error)

		QueryModulesByCourseID(courseID int) ([]Module, error)
		GetModuleByID(id int) (Module, error)
		CreateModule(mod Module) (Module, error)

		QueryLessonsByModuleID(moduleID int) ([]Lesson, error)
		GetLessonByID(id int) (Lesson, error)
		CreateLesson(lsn Lesson) (Lesson, error)

		QueryEnrollmentsByStudentID(studentID int) ([]Enrollment, error)
		QueryEnrollmentsByCourseID(courseID int) ([]Enrollment, error)
		GetEnrollment(studentID, courseID int) (Enrollment, error)
		CreateEnrollment(enr Enrollment) (Enrollment, error)
		UpdateEnrollment(enr Enrollment) (Enrollment, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Queries

func (svc *Service) AllCourses() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *Service) Filter(filter QueryFilter) ([]Course, error) {
	filter.Clean()
	if filter.IsEmpty() {
		return svc.repo.QueryAllCourses()
	}
	return svc.repo.FilterCourses(filter)
}

func (svc *Service) CoursesByLevel(level string) ([]Course, error) {
	return svc.Filter(QueryFilter{Level: level})
}

func (svc *Service) CoursesBySubject(subject string) ([]Course, error) {
	return svc.Filter(QueryFilter{Subject: subject})
}

// EnrolledCourses joins the student's enrollments to their courses, projecting
// each course with that enrollment's progress. An unknown or zero studentID
// yields an empty result, never an error.
func (svc *Service) EnrolledCourses(studentID int) ([]EnrolledCourse, error) {
	enrolled := make([]EnrolledCourse, 0)
	if studentID == 0 {
		return enrolled, nil
	}

	enrs, err := svc.repo.QueryEnrollmentsByStudentID(studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying enrollments")
	}
	for _, enr := range enrs {
		crs, err := svc.repo.GetCourseByID(enr.CourseID)
		if err != nil {
			if errors.Cause(err) == ErrNotFound {
				continue // dangling enrollment; integrity is advisory only
			}
			return nil, errors.Wrap(err, "finding enrolled course")
		}
		enrolled = append(enrolled, EnrolledCourse{Course: crs, Progress: enr.Progress})
	}
	return enrolled, nil
}

func (svc *Service) TrainerCourses(trainerID int) ([]Course, error) {
	if trainerID == 0 {
		return []Course{}, nil
	}
	return svc.repo.FilterCourses(QueryFilter{TrainerID: trainerID})
}

func (svc *Service) GetCourse(id int) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *Service) GetModule(id int) (Module, error) {
	return svc.repo.GetModuleByID(id)
}

func (svc *Service) GetLesson(id int) (Lesson, error) {
	return svc.repo.GetLessonByID(id)
}

// CourseModules returns a course's modules in no particular order.
// Use SortModulesByOrder for sequential display.
func (svc *Service) CourseModules(courseID int) ([]Module, error) {
	return svc.repo.QueryModulesByCourseID(courseID)
}

// ModuleLessons returns a module's lessons in no particular order.
func (svc *Service) ModuleLessons(moduleID int) ([]Lesson, error) {
	return svc.repo.QueryLessonsByModuleID(moduleID)
}

// CourseStudents projects a course's enrollments for the trainer view.
func (svc *Service) CourseStudents(courseID int) ([]CourseStudent, error) {
	enrs, err := svc.repo.QueryEnrollmentsByCourseID(courseID)
	if err != nil {
		return nil, errors.Wrap(err, "querying enrollments")
	}
	students := make([]CourseStudent, 0, len(enrs))
	for _, enr := range enrs {
		students = append(students, CourseStudent{
			StudentID:    enr.StudentID,
			Progress:     enr.Progress,
			LastActivity: enr.LastActivity,
		})
	}
	return students, nil
}

// Mutations

// Enroll creates an Enrollment with zero progress. It refuses a missing
// identity and a duplicate (student, course) pair.
func (svc *Service) Enroll(studentID, courseID int) (Enrollment, error) {
	if studentID == 0 {
		return Enrollment{}, ErrNoIdentity
	}

	if _, err := svc.repo.GetEnrollment(studentID, courseID); err == nil {
		return Enrollment{}, ErrAlreadyEnrolled
	} else if errors.Cause(err) != ErrNotFound {
		return Enrollment{}, errors.Wrap(err, "checking existing enrollment")
	}

	enr := Enrollment{
		StudentID:    studentID,
		CourseID:     courseID,
		Progress:     0,
		LastActivity: time.Now().UTC(),
	}
	return svc.repo.CreateEnrollment(enr)
}

// RecordProgress bumps the student's course progress by a flat increment,
// capped at 100, when completed is true. lessonID is accepted for the caller's
// benefit but does not drive completion; there is no per-lesson ledger.
func (svc *Service) RecordProgress(studentID, courseID, lessonID int, completed bool) (Enrollment, error) {
	_ = lessonID

	if studentID == 0 {
		return Enrollment{}, ErrNoIdentity
	}

	enr, err := svc.repo.GetEnrollment(studentID, courseID)
	if err != nil {
		return Enrollment{}, err
	}

	if completed && enr.Progress < 100 {
		enr.Progress += progressIncrement
		if enr.Progress > 100 {
			enr.Progress = 100
		}
		enr.LastActivity = time.Now().UTC()
		return svc.repo.UpdateEnrollment(enr)
	}
	return enr, nil
}

// AddCourse appends a Course. TrainerID existence is not validated; referential
// integrity is advisory throughout the catalog.
func (svc *Service) AddCourse(nc NewCourse) (Course, error) {
	thumbnail := nc.Thumbnail
	if thumbnail == "" {
		thumbnail = core.Conf.GetString("defaultCourseThumbnail")
	}
	crs := Course{
		TrainerID:   nc.TrainerID,
		Title:       nc.Title,
		Description: nc.Description,
		Objectives:  nc.Objectives,
		Subject:     nc.Subject,
		Level:       nc.Level,
		Thumbnail:   thumbnail,
		CreatedAt:   time.Now().UTC(),
	}
	return svc.repo.CreateCourse(crs)
}

// AddModule appends a Module. Order uniqueness within the course is not enforced.
func (svc *Service) AddModule(nm NewModule) (Module, error) {
	mod := Module{
		CourseID:    nm.CourseID,
		Title:       nm.Title,
		Description: nm.Description,
		Order:       nm.Order,
	}
	return svc.repo.CreateModule(mod)
}

func (svc *Service) AddLesson(nl NewLesson) (Lesson, error) {
	lsn := Lesson{
		ModuleID: nl.ModuleID,
		Title:    nl.Title,
		Kind:     nl.Kind,
		Content:  nl.Content,
		Duration: nl.Duration,
		Order:    nl.Order,
	}
	return svc.repo.CreateLesson(lsn)
}
