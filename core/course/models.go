package course

import (
	"github.com/trezcool/sims/core"
)

// Course is identified by ID.
type Course struct {
	ID     string  `json:"course_id" validate:"required,recordkey,max=20"`
	Name   string  `json:"course_name" validate:"required,max=100"`
	Credit float64 `json:"credit" validate:"finite,gt=0"`
}

func (c Course) Key() string { return c.ID }

func (c Course) Clean() Course {
	c.ID = core.CleanString(c.ID)
	c.Name = core.CleanString(c.Name)
	return c
}

// Fields returns the course's fields in declaration order.
func (c Course) Fields() []string {
	return []string{c.ID, c.Name, core.FormatDecimal(c.Credit)}
}

// String renders the course as `courseID,courseName,credit`.
func (c Course) String() string {
	return c.ID + "," + c.Name + "," + core.FormatDecimal(c.Credit)
}

// Header names the columns of Fields.
var Header = []string{"CourseID", "CourseName", "Credit"}
