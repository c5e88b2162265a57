package inmemdb

import (
	"github.com/aulaedu/aula/core/course"
)

type courseRepository struct {
	courses     *courseTable
	modules     *moduleTable
	lessons     *lessonTable
	enrollments *enrollmentTable
}

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{
		courses:     db.course,
		modules:     db.module,
		lessons:     db.lesson,
		enrollments: db.enrollment,
	}
}

// Courses

func (repo *courseRepository) queryCourses() []course.Course {
	courses := make([]course.Course, 0, len(repo.courses.table))
	for _, crs := range repo.courses.table {
		courses = append(courses, *crs)
	}
	return courses
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	repo.courses.mutex.RLock()
	defer repo.courses.mutex.RUnlock()
	return repo.queryCourses(), nil
}

func (repo *courseRepository) FilterCourses(filter course.QueryFilter) ([]course.Course, error) {
	repo.courses.mutex.RLock()
	defer repo.courses.mutex.RUnlock()

	courses := make([]course.Course, 0)
	for _, crs := range repo.queryCourses() {
		if filter.Level != "" && crs.Level != filter.Level {
			continue
		}
		if filter.Subject != "" && crs.Subject != filter.Subject {
			continue
		}
		if filter.TrainerID != 0 && crs.TrainerID != filter.TrainerID {
			continue
		}
		courses = append(courses, crs)
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(id int) (course.Course, error) {
	repo.courses.mutex.RLock()
	defer repo.courses.mutex.RUnlock()

	if crs, ok := repo.courses.table[id]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) CreateCourse(crs course.Course) (course.Course, error) {
	repo.courses.mutex.Lock()
	defer repo.courses.mutex.Unlock()

	repo.courses.lastID++
	crs.ID = repo.courses.lastID
	repo.courses.table[crs.ID] = &crs
	return crs, nil
}

// Modules

func (repo *courseRepository) QueryModulesByCourseID(courseID int) ([]course.Module, error) {
	repo.modules.mutex.RLock()
	defer repo.modules.mutex.RUnlock()

	mods := make([]course.Module, 0)
	for _, mod := range repo.modules.table {
		if mod.CourseID == courseID {
			mods = append(mods, *mod)
		}
	}
	return mods, nil
}

func (repo *courseRepository) GetModuleByID(id int) (course.Module, error) {
	repo.modules.mutex.RLock()
	defer repo.modules.mutex.RUnlock()

	if mod, ok := repo.modules.table[id]; ok {
		return *mod, nil
	}
	return course.Module{}, course.ErrNotFound
}

func (repo *courseRepository) CreateModule(mod course.Module) (course.Module, error) {
	repo.modules.mutex.Lock()
	defer repo.modules.mutex.Unlock()

	repo.modules.lastID++
	mod.ID = repo.modules.lastID
	repo.modules.table[mod.ID] = &mod
	return mod, nil
}

// Lessons

func (repo *courseRepository) QueryLessonsByModuleID(moduleID int) ([]course.Lesson, error) {
	repo.lessons.mutex.RLock()
	defer repo.lessons.mutex.RUnlock()

	lsns := make([]course.Lesson, 0)
	for _, lsn := range repo.lessons.table {
		if lsn.ModuleID == moduleID {
			lsns = append(lsns, *lsn)
		}
	}
	return lsns, nil
}

func (repo *courseRepository) GetLessonByID(id int) (course.Lesson, error) {
	repo.lessons.mutex.RLock()
	defer repo.lessons.mutex.RUnlock()

	if lsn, ok := repo.lessons.table[id]; ok {
		return *lsn, nil
	}
	return course.Lesson{}, course.ErrNotFound
}

func (repo *courseRepository) CreateLesson(lsn course.Lesson) (course.Lesson, error) {
	repo.lessons.mutex.Lock()
	defer repo.lessons.mutex.Unlock()

	repo.lessons.lastID++
	lsn.ID = repo.lessons.lastID
	repo.lessons.table[lsn.ID] = &lsn
	return lsn, nil
}

// Enrollments

func (repo *courseRepository) QueryEnrollmentsByStudentID(studentID int) ([]course.Enrollment, error) {
	repo.enrollments.mutex.RLock()
	defer repo.enrollments.mutex.RUnlock()

	enrs := make([]course.Enrollment, 0)
	for _, enr := range repo.enrollments.table {
		if enr.StudentID == studentID {
			enrs = append(enrs, *enr)
		}
	}
	return enrs, nil
}

func (repo *courseRepository) QueryEnrollmentsByCourseID(courseID int) ([]course.Enrollment, error) {
	repo.enrollments.mutex.RLock()
	defer repo.enrollments.mutex.RUnlock()

	enrs := make([]course.Enrollment, 0)
	for _, enr := range repo.enrollments.table {
		if enr.CourseID == courseID {
			enrs = append(enrs, *enr)
		}
	}
	return enrs, nil
}

func (repo *courseRepository) GetEnrollment(studentID, courseID int) (course.Enrollment, error) {
	repo.enrollments.mutex.RLock()
	defer repo.enrollments.mutex.RUnlock()

	for _, enr := range repo.enrollments.table {
		if enr.StudentID == studentID && enr.CourseID == courseID {
			return *enr, nil
		}
	}
	return course.Enrollment{}, course.ErrNotFound
}

func (repo *courseRepository) CreateEnrollment(enr course.Enrollment) (course.Enrollment, error) {
	repo.enrollments.mutex.Lock()
	defer repo.enrollments.mutex.Unlock()

	repo.enrollments.lastID++
	enr.ID = repo.enrollments.lastID
	repo.enrollments.table[enr.ID] = &enr
	return enr, nil
}

func (repo *courseRepository) UpdateEnrollment(enr course.Enrollment) (course.Enrollment, error) {
	repo.enrollments.mutex.Lock()
	defer repo.enrollments.mutex.Unlock()

	orig, ok := repo.enrollments.table[enr.ID]
	if !ok {
		return course.Enrollment{}, course.ErrNotFound
	}
	orig.Progress = enr.Progress
	orig.LastActivity = enr.LastActivity
	return *orig, nil
}
