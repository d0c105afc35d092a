package sqlxrepos

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/grade"
)

const gradeTable = "Grades"

var (
	gradeColumns = []string{"stuID AS stu_id", "courseID AS course_id", "score"}

	byStudentID = core.DBOrdering{Field: "stuID", Ascending: true}
	byCourseID  = core.DBOrdering{Field: "courseID", Ascending: true}
)

type gradeRow struct {
	StudentID string       `db:"stu_id"`
	CourseID  string       `db:"course_id"`
	Score     null.Float64 `db:"score"`
}

func (row gradeRow) unboil() grade.Grade {
	return grade.Grade{
		StudentID: row.StudentID,
		CourseID:  row.CourseID,
		Score:     row.Score.Float64,
	}
}

type gradeRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *sqlx.DB) *gradeRepository {
	return &gradeRepository{db: db, sb: statementBuilder(db)}
}

func keyEq(key grade.Key) sq.Eq {
	return sq.Eq{"stuID": key.StudentID, "courseID": key.CourseID}
}

// Insert fails with core.ErrMissingReference when the student or the course does not exist.
func (repo gradeRepository) Insert(ctx context.Context, g grade.Grade) error {
	query, args, err := repo.sb.Insert(gradeTable).
		Columns("stuID", "courseID", "score").
		Values(g.StudentID, g.CourseID, null.Float64From(g.Score)).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building insert grade query")
	}
	_, err = repo.db.ExecContext(ctx, query, args...)
	return trapErr(err, "inserting grade")
}

func (repo gradeRepository) Update(ctx context.Context, g grade.Grade) error {
	query, args, err := repo.sb.Update(gradeTable).
		Set("score", null.Float64From(g.Score)).
		Where(keyEq(g.Key())).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building update grade query")
	}
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return trapErr(err, "updating grade")
	}
	return checkAffected(res, "updating grade")
}

func (repo gradeRepository) Delete(ctx context.Context, key grade.Key) error {
	query, args, err := repo.sb.Delete(gradeTable).Where(keyEq(key)).ToSql()
	if err != nil {
		return errors.Wrap(err, "building delete grade query")
	}
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return trapErr(err, "deleting grade")
	}
	return checkAffected(res, "deleting grade")
}

func (repo gradeRepository) Get(ctx context.Context, key grade.Key) (grade.Grade, error) {
	query, args, err := repo.sb.Select(gradeColumns...).From(gradeTable).Where(keyEq(key)).ToSql()
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "building get grade query")
	}
	var row gradeRow
	if err = repo.db.GetContext(ctx, &row, query, args...); err != nil {
		return grade.Grade{}, trapErr(err, "finding grade by key")
	}
	return row.unboil(), nil
}

func (repo gradeRepository) List(ctx context.Context) ([]grade.Grade, error) {
	return repo.query(ctx, nil, "listing grades", byStudentID, byCourseID)
}

func (repo gradeRepository) QueryByStudent(ctx context.Context, studentID string) ([]grade.Grade, error) {
	return repo.query(ctx, sq.Eq{"stuID": studentID}, "querying grades by student", byCourseID)
}

func (repo gradeRepository) QueryByCourse(ctx context.Context, courseID string) ([]grade.Grade, error) {
	return repo.query(ctx, sq.Eq{"courseID": courseID}, "querying grades by course", byStudentID)
}

func (repo gradeRepository) query(ctx context.Context, where sq.Sqlizer, msg string, ordering ...core.DBOrdering) ([]grade.Grade, error) {
	builder := repo.sb.Select(gradeColumns...).From(gradeTable)
	if where != nil {
		builder = builder.Where(where)
	}
	query, args, err := builder.OrderBy(core.OrderBy(ordering...)...).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building grades query")
	}
	var rows []gradeRow
	if err = repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, msg)
	}
	grades := make([]grade.Grade, 0, len(rows))
	for _, row := range rows {
		grades = append(grades, row.unboil())
	}
	return grades, nil
}
