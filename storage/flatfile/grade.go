package flatfile

import (
	"context"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/grade"
)

type gradeRepository struct {
	db *DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) Insert(_ context.Context, g grade.Grade) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	t := repo.db.grades
	if t.index(g.Key()) >= 0 {
		return core.ErrDuplicateKey
	}
	if repo.db.opts.EnforceIntegrity &&
		(repo.db.students.index(g.StudentID) < 0 || repo.db.courses.index(g.CourseID) < 0) {
		return core.ErrMissingReference
	}
	return t.commit(t.inserted(g))
}

func (repo *gradeRepository) Update(_ context.Context, g grade.Grade) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	t := repo.db.grades
	i := t.index(g.Key())
	if i < 0 {
		return core.ErrNotFound
	}
	return t.commit(t.replaced(i, g))
}

func (repo *gradeRepository) Delete(_ context.Context, key grade.Key) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	t := repo.db.grades
	i := t.index(key)
	if i < 0 {
		return core.ErrNotFound
	}
	return t.commit(t.deleted(i))
}

func (repo *gradeRepository) Get(_ context.Context, key grade.Key) (grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	t := repo.db.grades
	if i := t.index(key); i >= 0 {
		return t.rows[i], nil
	}
	return grade.Grade{}, core.ErrNotFound
}

func (repo *gradeRepository) List(context.Context) ([]grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.grades.all(), nil
}

func (repo *gradeRepository) QueryByStudent(_ context.Context, studentID string) ([]grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.grades.filter(func(g grade.Grade) bool { return g.StudentID == studentID }), nil
}

func (repo *gradeRepository) QueryByCourse(_ context.Context, courseID string) ([]grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.grades.filter(func(g grade.Grade) bool { return g.CourseID == courseID }), nil
}
