package flatfile

import (
	"context"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/grade"
	"github.com/trezcool/sims/core/student"
)

type studentRepository struct {
	db *DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) Insert(_ context.Context, s student.Student) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	t := repo.db.students
	if t.index(s.ID) >= 0 {
		return core.ErrDuplicateKey
	}
	return t.commit(t.inserted(s))
}

func (repo *studentRepository) Update(_ context.Context, s student.Student) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	t := repo.db.students
	i := t.index(s.ID)
	if i < 0 {
		return core.ErrNotFound
	}
	return t.commit(t.replaced(i, s))
}

func (repo *studentRepository) Delete(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	t := repo.db.students
	i := t.index(id)
	if i < 0 {
		return core.ErrNotFound
	}
	if !repo.db.opts.EnforceIntegrity {
		return t.commit(t.deleted(i))
	}
	return repo.db.cascade(
		func(gr grade.Grade) bool { return gr.StudentID != id },
		func() error { return t.commit(t.deleted(i)) },
	)
}

func (repo *studentRepository) Get(_ context.Context, id string) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	t := repo.db.students
	if i := t.index(id); i >= 0 {
		return t.rows[i], nil
	}
	return student.Student{}, core.ErrNotFound
}

func (repo *studentRepository) List(context.Context) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.students.all(), nil
}
