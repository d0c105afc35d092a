package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/student"
)

const studentTable = "Students"

var studentColumns = []string{"stuID AS stu_id", "name", "gender", "major", "year"}

type studentRow struct {
	ID     string      `db:"stu_id"`
	Name   string      `db:"name"`
	Gender null.String `db:"gender"`
	Major  null.String `db:"major"`
	Year   null.String `db:"year"`
}

func (row studentRow) unboil() student.Student {
	return student.Student{
		ID:     row.ID,
		Name:   row.Name,
		Gender: row.Gender.String,
		Major:  row.Major.String,
		Year:   row.Year.String,
	}
}

type studentRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db, sb: statementBuilder(db)}
}

func (repo studentRepository) Insert(ctx context.Context, s student.Student) error {
	query, args, err := repo.sb.Insert(studentTable).
		Columns("stuID", "name", "gender", "major", "year").
		Values(s.ID, s.Name, nullString(s.Gender), nullString(s.Major), nullString(s.Year)).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building insert student query")
	}
	_, err = repo.db.ExecContext(ctx, query, args...)
	return trapErr(err, "inserting student")
}

func (repo studentRepository) Update(ctx context.Context, s student.Student) error {
	query, args, err := repo.sb.Update(studentTable).
		Set("name", s.Name).
		Set("gender", nullString(s.Gender)).
		Set("major", nullString(s.Major)).
		Set("year", nullString(s.Year)).
		Where(sq.Eq{"stuID": s.ID}).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building update student query")
	}
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return trapErr(err, "updating student")
	}
	return checkAffected(res, "updating student")
}

// Delete removes the student; its grades go with it (ON DELETE CASCADE).
func (repo studentRepository) Delete(ctx context.Context, id string) error {
	query, args, err := repo.sb.Delete(studentTable).Where(sq.Eq{"stuID": id}).ToSql()
	if err != nil {
		return errors.Wrap(err, "building delete student query")
	}
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return trapErr(err, "deleting student")
	}
	return checkAffected(res, "deleting student")
}

func (repo studentRepository) Get(ctx context.Context, id string) (student.Student, error) {
	query, args, err := repo.sb.Select(studentColumns...).From(studentTable).Where(sq.Eq{"stuID": id}).ToSql()
	if err != nil {
		return student.Student{}, errors.Wrap(err, "building get student query")
	}
	var row studentRow
	if err = repo.db.GetContext(ctx, &row, query, args...); err != nil {
		return student.Student{}, trapErr(err, "finding student by ID")
	}
	return row.unboil(), nil
}

func (repo studentRepository) List(ctx context.Context) ([]student.Student, error) {
	query, args, err := repo.sb.Select(studentColumns...).
		From(studentTable).
		OrderBy(core.OrderBy(core.DBOrdering{Field: "stuID", Ascending: true})...).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building list students query")
	}
	var rows []studentRow
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.unboil())
	}
	return students, nil
}

func nullString(s string) null.String {
	return null.NewString(s, s != "")
}
