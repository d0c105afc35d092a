package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/course"
)

const courseTable = "Courses"

var courseColumns = []string{"courseID AS course_id", "courseName AS course_name", "credit"}

type courseRow struct {
	ID     string       `db:"course_id"`
	Name   string       `db:"course_name"`
	Credit null.Float64 `db:"credit"`
}

func (row courseRow) unboil() course.Course {
	return course.Course{
		ID:     row.ID,
		Name:   row.Name,
		Credit: row.Credit.Float64,
	}
}

type courseRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db, sb: statementBuilder(db)}
}

func (repo courseRepository) Insert(ctx context.Context, c course.Course) error {
	query, args, err := repo.sb.Insert(courseTable).
		Columns("courseID", "courseName", "credit").
		Values(c.ID, c.Name, null.Float64From(c.Credit)).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building insert course query")
	}
	_, err = repo.db.ExecContext(ctx, query, args...)
	return trapErr(err, "inserting course")
}

func (repo courseRepository) Update(ctx context.Context, c course.Course) error {
	query, args, err := repo.sb.Update(courseTable).
		Set("courseName", c.Name).
		Set("credit", null.Float64From(c.Credit)).
		Where(sq.Eq{"courseID": c.ID}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building update course query")
	}
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return trapErr(err, "updating course")
	}
	return checkAffected(res, "updating course")
}

// Delete removes the course; its grades go with it (ON DELETE CASCADE).
func (repo courseRepository) Delete(ctx context.Context, id string) error {
	query, args, err := repo.sb.Delete(courseTable).Where(sq.Eq{"courseID": id}).ToSql()
	if err != nil {
		return errors.Wrap(err, "building delete course query")
	}
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return trapErr(err, "deleting course")
	}
	return checkAffected(res, "deleting course")
}

func (repo courseRepository) Get(ctx context.Context, id string) (course.Course, error) {
	query, args, err := repo.sb.Select(courseColumns...).From(courseTable).Where(sq.Eq{"courseID": id}).ToSql()
	if err != nil {
		return course.Course{}, errors.Wrap(err, "building get course query")
	}
	var row courseRow
	if err = repo.db.GetContext(ctx, &row, query, args...); err != nil {
		return course.Course{}, trapErr(err, "finding course by ID")
	}
	return row.unboil(), nil
}

func (repo courseRepository) List(ctx context.Context) ([]course.Course, error) {
	query, args, err := repo.sb.Select(courseColumns...).
		From(courseTable).
		OrderBy(core.OrderBy(core.DBOrdering{Field: "courseID", Ascending: true})...).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building list courses query")
	}
	var rows []courseRow
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	courses := make([]course.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, row.unboil())
	}
	return courses, nil
}
