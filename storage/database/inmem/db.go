// Package inmemdb holds the whole catalog in process memory. Each table owns a
// monotonically increasing id counter, so ids stay unique no matter the
// insertion history.
package inmemdb

import (
	"sync"

	"github.com/aulaedu/aula/core/course"
	"github.com/aulaedu/aula/core/user"
)

type DB struct {
	user       *userTable
	course     *courseTable
	module     *moduleTable
	lesson     *lessonTable
	enrollment *enrollmentTable
}

func NewDB() *DB {
	return &DB{
		user:       &userTable{table: make(map[int]*user.User)},
		course:     &courseTable{table: make(map[int]*course.Course)},
		module:     &moduleTable{table: make(map[int]*course.Module)},
		lesson:     &lessonTable{table: make(map[int]*course.Lesson)},
		enrollment: &enrollmentTable{table: make(map[int]*course.Enrollment)},
	}
}

type userTable struct {
	mutex  sync.RWMutex
	table  map[int]*user.User
	lastID int
}

type courseTable struct {
	mutex  sync.RWMutex
	table  map[int]*course.Course
	lastID int
}

type moduleTable struct {
	mutex  sync.RWMutex
	table  map[int]*course.Module
	lastID int
}

type lessonTable struct {
	mutex  sync.RWMutex
	table  map[int]*course.Lesson
	lastID int
}

type enrollmentTable struct {
	mutex  sync.RWMutex
	table  map[int]*course.Enrollment
	lastID int
}
