package student

import (
	"strings"

	"github.com/trezcool/sims/core"
)

// Student is identified by ID. Gender, Major and Year are free text.
type Student struct {
	ID     string `json:"stu_id" validate:"required,recordkey,max=20"`
	Name   string `json:"name" validate:"required,max=50"`
	Gender string `json:"gender" validate:"max=10"`
	Major  string `json:"major" validate:"max=50"`
	Year   string `json:"year" validate:"max=10"`
}

func (s Student) Key() string { return s.ID }

func (s Student) Clean() Student {
	s.ID = core.CleanString(s.ID)
	s.Name = core.CleanString(s.Name)
	s.Gender = core.CleanString(s.Gender)
	s.Major = core.CleanString(s.Major)
	s.Year = core.CleanString(s.Year)
	return s
}

// Fields returns the student's fields in declaration order.
func (s Student) Fields() []string {
	return []string{s.ID, s.Name, s.Gender, s.Major, s.Year}
}

// String renders the student as `stuID,name,gender,major,year`.
func (s Student) String() string {
	return strings.Join(s.Fields(), ",")
}

// Header names the columns of Fields.
var Header = []string{"StudentID", "Name", "Gender", "Major", "Year"}
