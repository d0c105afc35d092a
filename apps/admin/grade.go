package main

import (
	"context"
	"fmt"

	"github.com/trezcool/sims/core/grade"
)

func (cli *commandLine) runGrade(args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	cmd := cli.newFlagSet("grade " + args[0])
	studentID := cmd.String("student", "", "The student ID.")
	courseID := cmd.String("course", "", "The course ID.")
	score := cmd.Float64("score", 0, "The score.")
	key := cmd.String("key", "", "The grade key: STUDENTID-COURSEID. Escape '-' and '\\' inside IDs with '\\'.")
	id := cmd.String("id", "", "The student ID (by-student) or course ID (by-course).")
	yes := cmd.Bool("yes", false, "Do not ask for confirmation.")
	if err := parseFlags(cmd, args[1:]); err != nil {
		return err
	}
	g := grade.Grade{StudentID: *studentID, CourseID: *courseID, Score: *score}

	switch args[0] {
	case "add":
		g, err := cli.grades.Add(ctx, g)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Grade added successfully: "+g.String())
	case "update":
		g, err := cli.grades.Update(ctx, g)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Updated successfully: "+g.String())
	case "delete":
		if *key == "" {
			cmd.Usage()
			return errHelp
		}
		if err := cli.confirm(fmt.Sprintf("Delete grade %s?", *key), *yes); err != nil {
			return err
		}
		if err := cli.grades.DeleteText(ctx, *key); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Deleted successfully! Grade: "+*key)
	case "search":
		if *key == "" {
			cmd.Usage()
			return errHelp
		}
		g, err := cli.grades.SearchText(ctx, *key)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, g.String())
	case "list":
		grades, err := cli.grades.List(ctx)
		if err != nil {
			return err
		}
		printRecords(cli.out, "Grade", grade.Header, grades)
	case "by-student", "by-course":
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		query := cli.grades.ByStudent
		if args[0] == "by-course" {
			query = cli.grades.ByCourse
		}
		grades, err := query(ctx, *id)
		if err != nil {
			return err
		}
		printRecords(cli.out, "Grade", grade.Header, grades)
	default:
		cli.printUsage()
		return errHelp
	}
	return nil
}
