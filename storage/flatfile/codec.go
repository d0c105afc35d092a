package flatfile

import (
	"github.com/pkg/errors"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/course"
	"github.com/trezcool/sims/core/grade"
	"github.com/trezcool/sims/core/student"
)

func decodeStudent(fields []string) (student.Student, error) {
	return student.Student{
		ID:     fields[0],
		Name:   fields[1],
		Gender: fields[2],
		Major:  fields[3],
		Year:   fields[4],
	}, nil
}

func decodeCourse(fields []string) (course.Course, error) {
	credit, err := core.ParseDecimal(fields[2])
	if err != nil {
		return course.Course{}, errors.Wrap(err, "parsing credit")
	}
	return course.Course{ID: fields[0], Name: fields[1], Credit: credit}, nil
}

func decodeGrade(fields []string) (grade.Grade, error) {
	score, err := core.ParseDecimal(fields[2])
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "parsing score")
	}
	return grade.Grade{StudentID: fields[0], CourseID: fields[1], Score: score}, nil
}
