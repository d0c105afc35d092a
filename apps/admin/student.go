package main

import (
	"context"
	"fmt"

	"github.com/trezcool/sims/core/student"
)

func (cli *commandLine) runStudent(args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	cmd := cli.newFlagSet("student " + args[0])
	id := cmd.String("id", "", "The student ID.")
	name := cmd.String("name", "", "The student's name.")
	gender := cmd.String("gender", "", "The student's gender.")
	major := cmd.String("major", "", "The student's major.")
	year := cmd.String("year", "", "The student's year.")
	yes := cmd.Bool("yes", false, "Do not ask for confirmation.")
	if err := parseFlags(cmd, args[1:]); err != nil {
		return err
	}
	s := student.Student{ID: *id, Name: *name, Gender: *gender, Major: *major, Year: *year}

	switch args[0] {
	case "add":
		s, err := cli.students.Add(ctx, s)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Student added successfully: "+s.String())
	case "update":
		s, err := cli.students.Update(ctx, s)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Updated successfully: "+s.String())
	case "delete":
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		prompt := fmt.Sprintf("Delete student %s? Their grades are kept.", *id)
		if cli.cascades() {
			prompt = fmt.Sprintf("Delete student %s and all of their grades?", *id)
		}
		if err := cli.confirm(prompt, *yes); err != nil {
			return err
		}
		if err := cli.students.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Deleted successfully! StudentID: "+*id)
	case "search":
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		s, err := cli.students.Search(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, s.String())
	case "list":
		students, err := cli.students.List(ctx)
		if err != nil {
			return err
		}
		printRecords(cli.out, "Student", student.Header, students)
	default:
		cli.printUsage()
		return errHelp
	}
	return nil
}
