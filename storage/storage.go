// Package storage builds the repositories of the configured backend.
package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/course"
	"github.com/trezcool/sims/core/grade"
	"github.com/trezcool/sims/core/student"
	"github.com/trezcool/sims/storage/database"
	sqlxrepos "github.com/trezcool/sims/storage/database/sqlx"
	"github.com/trezcool/sims/storage/flatfile"
)

// Stores holds one repository per entity, all backed by the same storage.
type Stores struct {
	Students student.Repository
	Courses  course.Repository
	Grades   grade.Repository
	// DB is the relational handle, nil with the file backend.
	DB     *sqlx.DB
	closer func() error
}

// Open initializes the backend named by conf.Storage.Backend and returns its repositories.
// Callers must Close the stores on exit.
func Open(ctx context.Context, conf *core.Config, logger core.Logger) (*Stores, error) {
	switch conf.Storage.Backend {
	case core.BackendDatabase:
		db, err := database.Setup(ctx, conf.Database, logger)
		if err != nil {
			return nil, errors.Wrap(err, "setting up database")
		}
		logger.Info(fmt.Sprintf("database ready (engine: %s)", conf.Database.Engine))
		return &Stores{
			Students: sqlxrepos.NewStudentRepository(db),
			Courses:  sqlxrepos.NewCourseRepository(db),
			Grades:   sqlxrepos.NewGradeRepository(db),
			DB:       db,
			closer:   func() error { return database.Close(db) },
		}, nil

	case core.BackendFile:
		db, err := flatfile.Open(flatfile.Options{
			Dir:              conf.Storage.FileDir,
			EnforceIntegrity: conf.Storage.EnforceIntegrity,
		})
		if err != nil {
			return nil, errors.Wrap(err, "loading data files")
		}
		logger.Info(fmt.Sprintf("data files loaded (dir: %s)", db.Dir()))
		return &Stores{
			Students: flatfile.NewStudentRepository(db),
			Courses:  flatfile.NewCourseRepository(db),
			Grades:   flatfile.NewGradeRepository(db),
		}, nil

	default:
		return nil, errors.Errorf("unsupported storage backend %q", conf.Storage.Backend)
	}
}

// Close releases the backend. Flat files need no release: every mutation is already on disk.
func (s *Stores) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer()
}
