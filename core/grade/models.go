package grade

import (
	"github.com/trezcool/sims/core"
)

// Grade is the score of a Student in a Course, identified by the (StudentID, CourseID) pair.
type Grade struct {
	StudentID string  `json:"stu_id" validate:"required,recordkey,max=20"`
	CourseID  string  `json:"course_id" validate:"required,recordkey,max=20"`
	Score     float64 `json:"score" validate:"finite"`
}

func (g Grade) Key() Key { return Key{StudentID: g.StudentID, CourseID: g.CourseID} }

func (g Grade) Clean() Grade {
	g.StudentID = core.CleanString(g.StudentID)
	g.CourseID = core.CleanString(g.CourseID)
	return g
}

// Fields returns the grade's fields in declaration order.
func (g Grade) Fields() []string {
	return []string{g.StudentID, g.CourseID, core.FormatDecimal(g.Score)}
}

// String renders the grade as `stuID,courseID,score`.
func (g Grade) String() string {
	return g.StudentID + "," + g.CourseID + "," + core.FormatDecimal(g.Score)
}

// Header names the columns of Fields.
var Header = []string{"StudentID", "CourseID", "Score"}
