package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/course"
	"github.com/trezcool/sims/core/grade"
	"github.com/trezcool/sims/core/student"
	"github.com/trezcool/sims/storage/database"
	"github.com/trezcool/sims/storage/flatfile"
)

// SQLiteConfig returns the config of a fresh sqlite database inside a temporary directory.
func SQLiteConfig(t *testing.T) core.DatabaseConfig {
	t.Helper()
	return core.DatabaseConfig{
		Engine: core.EngineSQLite,
		Path:   filepath.Join(t.TempDir(), "sims.db"),
	}
}

// PrepareDB returns a migrated sqlite database, closed when the test ends.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Setup(context.Background(), SQLiteConfig(t), core.NopLogger{})
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// PrepareFileDB returns an empty flat-file database inside a temporary directory.
func PrepareFileDB(t *testing.T, enforceIntegrity bool) *flatfile.DB {
	t.Helper()
	db, err := flatfile.Open(flatfile.Options{Dir: t.TempDir(), EnforceIntegrity: enforceIntegrity})
	if err != nil {
		t.Fatalf("PrepareFileDB() failed: %v", err)
	}
	return db
}

func CreateStudent(t *testing.T, repo student.Repository, id, name string) student.Student {
	t.Helper()
	s := student.Student{ID: id, Name: name, Gender: "Female", Major: "CS", Year: "2"}
	if err := repo.Insert(context.Background(), s); err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return s
}

func CreateCourse(t *testing.T, repo course.Repository, id, name string, credit float64) course.Course {
	t.Helper()
	c := course.Course{ID: id, Name: name, Credit: credit}
	if err := repo.Insert(context.Background(), c); err != nil {
		t.Fatalf("CreateCourse() failed: %v", err)
	}
	return c
}

func CreateGrade(t *testing.T, repo grade.Repository, studentID, courseID string, score float64) grade.Grade {
	t.Helper()
	g := grade.Grade{StudentID: studentID, CourseID: courseID, Score: score}
	if err := repo.Insert(context.Background(), g); err != nil {
		t.Fatalf("CreateGrade() failed: %v", err)
	}
	return g
}
