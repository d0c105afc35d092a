// Package flatfile persists records as comma separated text files, one file per entity.
// Each table lives in memory and is rewritten in full on every mutation.
package flatfile

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/course"
	"github.com/trezcool/sims/core/grade"
	"github.com/trezcool/sims/core/record"
	"github.com/trezcool/sims/core/student"
)

const (
	StudentsFile = "students.txt"
	CoursesFile  = "courses.txt"
	GradesFile   = "grades.txt"
)

type (
	Options struct {
		// Dir holds the data files. It is created on Open when missing.
		Dir string
		// EnforceIntegrity makes grade inserts require an existing student & course,
		// and student/course deletes cascade to their grades.
		EnforceIntegrity bool
	}

	// DB is the set of tables shared by every flat-file repository of a process.
	DB struct {
		sync.RWMutex
		opts     Options
		students *table[student.Student, string]
		courses  *table[course.Course, string]
		grades   *table[grade.Grade, grade.Key]
	}

	table[T record.Entity[T, K], K comparable] struct {
		path   string
		fields int
		rows   []T
		encode func(T) []string
		decode func([]string) (T, error)
	}
)

// Open loads every table of opts.Dir in memory. Missing files are empty tables.
func Open(opts Options) (*DB, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}

	db := &DB{
		opts: opts,
		students: &table[student.Student, string]{
			path:   filepath.Join(opts.Dir, StudentsFile),
			fields: len(student.Header),
			encode: student.Student.Fields,
			decode: decodeStudent,
		},
		courses: &table[course.Course, string]{
			path:   filepath.Join(opts.Dir, CoursesFile),
			fields: len(course.Header),
			encode: course.Course.Fields,
			decode: decodeCourse,
		},
		grades: &table[grade.Grade, grade.Key]{
			path:   filepath.Join(opts.Dir, GradesFile),
			fields: len(grade.Header),
			encode: grade.Grade.Fields,
			decode: decodeGrade,
		},
	}

	if err := db.students.load(); err != nil {
		return nil, err
	}
	if err := db.courses.load(); err != nil {
		return nil, err
	}
	if err := db.grades.load(); err != nil {
		return nil, err
	}
	return db, nil
}

// Dir returns the directory holding the data files.
func (db *DB) Dir() string {
	return db.opts.Dir
}

// cascade drops the grades rejected by keep, then commits the owning table.
// The grades are restored when the owner commit fails, so either both files change or neither does.
func (db *DB) cascade(keep func(grade.Grade) bool, commitOwner func() error) error {
	g := db.grades
	prev := g.rows
	if err := g.commit(g.filter(keep)); err != nil {
		return err
	}
	if err := commitOwner(); err != nil {
		if rErr := g.commit(prev); rErr != nil {
			return errors.Wrapf(err, "restoring %s: %v", g.path, rErr)
		}
		return err
	}
	return nil
}

func (t *table[T, K]) load() error {
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			t.rows = nil
			return nil
		}
		return errors.Wrapf(err, "opening %s", t.path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = t.fields

	var rows []T
	seen := make(map[K]int)
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "reading %s", t.path)
		}
		line, _ := r.FieldPos(0)
		row, err := t.decode(fields)
		if err != nil {
			return errors.Wrapf(err, "reading %s: line %d", t.path, line)
		}
		row = row.Clean()
		if first, ok := seen[row.Key()]; ok {
			return errors.Wrapf(core.ErrDuplicateKey, "reading %s: line %d repeats line %d", t.path, line, first)
		}
		seen[row.Key()] = line
		rows = append(rows, row)
	}
	t.rows = rows
	return nil
}

// commit writes rows to a temporary file, swaps it with the table file, then makes rows current.
// The table is left untouched when writing fails.
func (t *table[T, K]) commit(rows []T) error {
	tmp, err := os.CreateTemp(filepath.Dir(t.path), "."+filepath.Base(t.path)+".*")
	if err != nil {
		return errors.Wrapf(err, "creating temp file for %s", t.path)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	w := csv.NewWriter(tmp)
	for _, row := range rows {
		if err = w.Write(t.encode(row)); err != nil {
			break
		}
	}
	if err == nil {
		w.Flush()
		err = w.Error()
	}
	if cErr := tmp.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		return errors.Wrapf(err, "writing %s", t.path)
	}
	if err = os.Rename(tmp.Name(), t.path); err != nil {
		return errors.Wrapf(err, "replacing %s", t.path)
	}
	t.rows = rows
	return nil
}

func (t *table[T, K]) index(key K) int {
	return slices.IndexFunc(t.rows, func(row T) bool { return row.Key() == key })
}

func (t *table[T, K]) all() []T {
	return append(make([]T, 0, len(t.rows)), t.rows...)
}

func (t *table[T, K]) filter(keep func(T) bool) []T {
	rows := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	return rows
}

func (t *table[T, K]) inserted(item T) []T {
	return append(slices.Clone(t.rows), item)
}

func (t *table[T, K]) replaced(i int, item T) []T {
	rows := slices.Clone(t.rows)
	rows[i] = item
	return rows
}

func (t *table[T, K]) deleted(i int) []T {
	return slices.Delete(slices.Clone(t.rows), i, i+1)
}
