package testutil

import (
	"testing"
	"time"

	"github.com/aulaedu/aula/core/course"
	"github.com/aulaedu/aula/core/user"
	inmemdb "github.com/aulaedu/aula/storage/database/inmem"
)

// NewSeededDB returns an in-memory DB loaded with the demo fixtures.
func NewSeededDB(t *testing.T) *inmemdb.DB {
	t.Helper()
	db := inmemdb.NewDB()
	if err := inmemdb.Seed(db); err != nil {
		t.Fatalf("NewSeededDB() failed: %v", err)
	}
	return db
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, secret string,
	role user.Role,
) user.User {
	t.Helper()
	usr, err := repo.CreateUser(user.User{
		Name:   name,
		Email:  email,
		Secret: secret,
		Role:   role,
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateCourse(
	t *testing.T,
	repo course.Repository,
	trainerID int,
	title, subject, level string,
) course.Course {
	t.Helper()
	crs, err := repo.CreateCourse(course.Course{
		TrainerID: trainerID,
		Title:     title,
		Subject:   subject,
		Level:     level,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return crs
}

func CreateEnrollment(
	t *testing.T,
	repo course.Repository,
	studentID, courseID, progress int,
) course.Enrollment {
	t.Helper()
	enr, err := repo.CreateEnrollment(course.Enrollment{
		StudentID:    studentID,
		CourseID:     courseID,
		Progress:     progress,
		LastActivity: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateEnrollment() failed: %v", err)
	}
	return enr
}
