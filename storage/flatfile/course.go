package flatfile

import (
	"context"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/course"
	"github.com/trezcool/sims/core/grade"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) Insert(_ context.Context, c course.Course) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	t := repo.db.courses
	if t.index(c.ID) >= 0 {
		return core.ErrDuplicateKey
	}
	return t.commit(t.inserted(c))
}

func (repo *courseRepository) Update(_ context.Context, c course.Course) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	t := repo.db.courses
	i := t.index(c.ID)
	if i < 0 {
		return core.ErrNotFound
	}
	return t.commit(t.replaced(i, c))
}

func (repo *courseRepository) Delete(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	t := repo.db.courses
	i := t.index(id)
	if i < 0 {
		return core.ErrNotFound
	}
	if !repo.db.opts.EnforceIntegrity {
		return t.commit(t.deleted(i))
	}
	return repo.db.cascade(
		func(gr grade.Grade) bool { return gr.CourseID != id },
		func() error { return t.commit(t.deleted(i)) },
	)
}

func (repo *courseRepository) Get(_ context.Context, id string) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	t := repo.db.courses
	if i := t.index(id); i >= 0 {
		return t.rows[i], nil
	}
	return course.Course{}, core.ErrNotFound
}

func (repo *courseRepository) List(context.Context) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.courses.all(), nil
}
