package flatfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/course"
	"github.com/trezcool/sims/core/grade"
	"github.com/trezcool/sims/core/student"
	"github.com/trezcool/sims/storage/flatfile"
	testutil "github.com/trezcool/sims/tests"
)

func readFile(t *testing.T, db *flatfile.DB, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(db.Dir(), name))
	if err != nil {
		t.Fatalf("os.ReadFile(%s) failed: %v", name, err)
	}
	return string(b)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("os.WriteFile(%s) failed: %v", name, err)
	}
}

func TestRecordFormat(t *testing.T) {
	db := testutil.PrepareFileDB(t, false)
	testutil.CreateStudent(t, flatfile.NewStudentRepository(db), "S1", "Alice")
	testutil.CreateCourse(t, flatfile.NewCourseRepository(db), "C1", "Algorithms", 3)
	testutil.CreateCourse(t, flatfile.NewCourseRepository(db), "C2", `Data "Structures", I`, 2.5)
	testutil.CreateGrade(t, flatfile.NewGradeRepository(db), "S1", "C1", 85)

	assert.Equal(t, "S1,Alice,Female,CS,2\n", readFile(t, db, flatfile.StudentsFile))
	assert.Equal(t, "C1,Algorithms,3.0\nC2,\"Data \"\"Structures\"\", I\",2.5\n", readFile(t, db, flatfile.CoursesFile))
	assert.Equal(t, "S1,C1,85.0\n", readFile(t, db, flatfile.GradesFile))

	entries, err := os.ReadDir(db.Dir())
	assert.NoError(t, err)
	assert.Len(t, entries, 3, "no temp file left behind")
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name     string
		files    map[string]string
		wantErr  string
		wantKind core.ErrorKind
	}{
		{name: "missing files are empty tables"},
		{
			name: "valid files",
			files: map[string]string{
				flatfile.StudentsFile: "S2,Bob,Male,Math,1\nS1,Alice,Female,CS,2\n",
				flatfile.CoursesFile:  "C1,Algorithms,3.0\n",
				flatfile.GradesFile:   "S1,C1,85.0\nS9,C9,40\n",
			},
		},
		{
			name:    "wrong field count",
			files:   map[string]string{flatfile.StudentsFile: "S1,Alice,Female,CS,2\nS2,Bob\n"},
			wantErr: flatfile.StudentsFile,
		},
		{
			name:    "bad decimal",
			files:   map[string]string{flatfile.CoursesFile: "C1,Algorithms,3.0\nC2,Databases,three\n"},
			wantErr: "line 2",
		},
		{
			name:    "non-finite score",
			files:   map[string]string{flatfile.GradesFile: "S1,C1,NaN\n"},
			wantErr: "line 1",
		},
		{
			name:     "duplicate key",
			files:    map[string]string{flatfile.GradesFile: "S1,C1,85.0\nS1,C2,70.0\nS1,C1,90.0\n"},
			wantErr:  flatfile.GradesFile + ": line 3 repeats line 1",
			wantKind: core.KindDuplicateKey,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeFile(t, dir, name, content)
			}

			db, err := flatfile.Open(flatfile.Options{Dir: dir})
			if tt.wantErr != "" {
				if assert.Error(t, err) {
					if tt.wantKind != core.KindNone {
						assert.Equal(t, tt.wantKind, core.KindOf(err))
					}
					assert.Contains(t, err.Error(), tt.wantErr)
				}
				return
			}
			assert.NoError(t, err)

			students, _ := flatfile.NewStudentRepository(db).List(context.Background())
			grades, _ := flatfile.NewGradeRepository(db).List(context.Background())
			if tt.files == nil {
				assert.Empty(t, students)
				assert.Empty(t, grades)
				return
			}
			assert.Equal(t, []student.Student{
				{ID: "S2", Name: "Bob", Gender: "Male", Major: "Math", Year: "1"},
				{ID: "S1", Name: "Alice", Gender: "Female", Major: "CS", Year: "2"},
			}, students)
			assert.Equal(t, []grade.Grade{
				{StudentID: "S1", CourseID: "C1", Score: 85},
				{StudentID: "S9", CourseID: "C9", Score: 40},
			}, grades)
		})
	}
}

func TestRepositories(t *testing.T) {
	ctx := context.Background()
	db := testutil.PrepareFileDB(t, false)
	students := flatfile.NewStudentRepository(db)
	courses := flatfile.NewCourseRepository(db)
	grades := flatfile.NewGradeRepository(db)

	alice := testutil.CreateStudent(t, students, "S1", "Alice")
	assert.Equal(t, core.ErrDuplicateKey, students.Insert(ctx, alice))
	assert.Equal(t, core.ErrNotFound, students.Update(ctx, student.Student{ID: "S2", Name: "Bob"}))
	assert.Equal(t, core.ErrNotFound, courses.Delete(ctx, "C1"))

	testutil.CreateCourse(t, courses, "C1", "Algorithms", 3)
	assert.NoError(t, courses.Update(ctx, course.Course{ID: "C1", Name: "Algorithms", Credit: 4}))
	assert.Equal(t, "C1,Algorithms,4.0\n", readFile(t, db, flatfile.CoursesFile))

	testutil.CreateGrade(t, grades, "S1", "C1", 85)
	testutil.CreateGrade(t, grades, "S1", "C2", 70) // orphan accepted
	assert.NoError(t, grades.Delete(ctx, grade.Key{StudentID: "S1", CourseID: "C1"}))
	assert.Equal(t, "S1,C2,70.0\n", readFile(t, db, flatfile.GradesFile))

	// no cascade
	assert.NoError(t, students.Delete(ctx, "S1"))
	assert.Equal(t, "", readFile(t, db, flatfile.StudentsFile))
	assert.Equal(t, "S1,C2,70.0\n", readFile(t, db, flatfile.GradesFile))
}

func TestRepositories_EnforceIntegrity(t *testing.T) {
	ctx := context.Background()
	db := testutil.PrepareFileDB(t, true)
	students := flatfile.NewStudentRepository(db)
	courses := flatfile.NewCourseRepository(db)
	grades := flatfile.NewGradeRepository(db)

	testutil.CreateStudent(t, students, "S1", "Alice")
	testutil.CreateStudent(t, students, "S2", "Bob")
	testutil.CreateCourse(t, courses, "C1", "Algorithms", 3)
	testutil.CreateCourse(t, courses, "C2", "Databases", 2)

	assert.Equal(t, core.ErrMissingReference, grades.Insert(ctx, grade.Grade{StudentID: "S9", CourseID: "C1"}))
	assert.Equal(t, core.ErrMissingReference, grades.Insert(ctx, grade.Grade{StudentID: "S1", CourseID: "C9"}))

	testutil.CreateGrade(t, grades, "S1", "C1", 85)
	testutil.CreateGrade(t, grades, "S1", "C2", 60)
	testutil.CreateGrade(t, grades, "S2", "C2", 75)

	assert.NoError(t, courses.Delete(ctx, "C2"))
	assert.Equal(t, "S1,C1,85.0\n", readFile(t, db, flatfile.GradesFile))

	assert.NoError(t, students.Delete(ctx, "S1"))
	assert.Equal(t, "", readFile(t, db, flatfile.GradesFile))
}

// replaceWithDir swaps a data file for a directory so the next rewrite of it fails.
func replaceWithDir(t *testing.T, db *flatfile.DB, name string) {
	t.Helper()
	path := filepath.Join(db.Dir(), name)
	if err := os.Remove(path); err != nil {
		t.Fatalf("os.Remove(%s) failed: %v", name, err)
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("os.Mkdir(%s) failed: %v", name, err)
	}
}

func TestRepositories_CascadeFailure(t *testing.T) {
	tests := []struct {
		name      string
		broken    string
		delete    func(ctx context.Context, db *flatfile.DB) error
		wantFiles map[string]string
	}{
		{
			name:   "student delete with grades unwritable",
			broken: flatfile.GradesFile,
			delete: func(ctx context.Context, db *flatfile.DB) error {
				return flatfile.NewStudentRepository(db).Delete(ctx, "S1")
			},
			wantFiles: map[string]string{
				flatfile.StudentsFile: "S1,Alice,Female,CS,2\n",
				flatfile.CoursesFile:  "C1,Algorithms,3.0\n",
			},
		},
		{
			name:   "course delete with grades unwritable",
			broken: flatfile.GradesFile,
			delete: func(ctx context.Context, db *flatfile.DB) error {
				return flatfile.NewCourseRepository(db).Delete(ctx, "C1")
			},
			wantFiles: map[string]string{
				flatfile.StudentsFile: "S1,Alice,Female,CS,2\n",
				flatfile.CoursesFile:  "C1,Algorithms,3.0\n",
			},
		},
		{
			name:   "student delete with students unwritable",
			broken: flatfile.StudentsFile,
			delete: func(ctx context.Context, db *flatfile.DB) error {
				return flatfile.NewStudentRepository(db).Delete(ctx, "S1")
			},
			wantFiles: map[string]string{
				flatfile.CoursesFile: "C1,Algorithms,3.0\n",
				flatfile.GradesFile:  "S1,C1,85.0\n",
			},
		},
		{
			name:   "course delete with courses unwritable",
			broken: flatfile.CoursesFile,
			delete: func(ctx context.Context, db *flatfile.DB) error {
				return flatfile.NewCourseRepository(db).Delete(ctx, "C1")
			},
			wantFiles: map[string]string{
				flatfile.StudentsFile: "S1,Alice,Female,CS,2\n",
				flatfile.GradesFile:   "S1,C1,85.0\n",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			db := testutil.PrepareFileDB(t, true)
			testutil.CreateStudent(t, flatfile.NewStudentRepository(db), "S1", "Alice")
			testutil.CreateCourse(t, flatfile.NewCourseRepository(db), "C1", "Algorithms", 3)
			testutil.CreateGrade(t, flatfile.NewGradeRepository(db), "S1", "C1", 85)
			replaceWithDir(t, db, tt.broken)

			if err := tt.delete(ctx, db); err == nil {
				t.Errorf("Delete() error = %v, wantErr %v", err, true)
			}

			_, err := flatfile.NewStudentRepository(db).Get(ctx, "S1")
			assert.NoError(t, err)
			_, err = flatfile.NewCourseRepository(db).Get(ctx, "C1")
			assert.NoError(t, err)
			grades, _ := flatfile.NewGradeRepository(db).List(ctx)
			assert.Equal(t, []grade.Grade{{StudentID: "S1", CourseID: "C1", Score: 85}}, grades)
			for name, want := range tt.wantFiles {
				assert.Equal(t, want, readFile(t, db, name))
			}
		})
	}
}

func TestDB_SharedAcrossRepositories(t *testing.T) {
	ctx := context.Background()
	db := testutil.PrepareFileDB(t, false)
	testutil.CreateStudent(t, flatfile.NewStudentRepository(db), "S1", "Alice")

	got, err := flatfile.NewStudentRepository(db).Get(ctx, "S1")
	assert.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	reopened, err := flatfile.Open(flatfile.Options{Dir: db.Dir()})
	if assert.NoError(t, err) {
		students, _ := flatfile.NewStudentRepository(reopened).List(ctx)
		assert.Len(t, students, 1)
	}
}
