package main

import (
	"context"
	"fmt"

	"github.com/trezcool/sims/core/course"
)

func (cli *commandLine) runCourse(args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	cmd := cli.newFlagSet("course " + args[0])
	id := cmd.String("id", "", "The course ID.")
	name := cmd.String("name", "", "The course name.")
	credit := cmd.Float64("credit", 0, "The course credit, greater than 0.")
	yes := cmd.Bool("yes", false, "Do not ask for confirmation.")
	if err := parseFlags(cmd, args[1:]); err != nil {
		return err
	}
	c := course.Course{ID: *id, Name: *name, Credit: *credit}

	switch args[0] {
	case "add":
		c, err := cli.courses.Add(ctx, c)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Course added successfully: "+c.String())
	case "update":
		c, err := cli.courses.Update(ctx, c)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Updated successfully: "+c.String())
	case "delete":
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		prompt := fmt.Sprintf("Delete course %s? Its grades are kept.", *id)
		if cli.cascades() {
			prompt = fmt.Sprintf("Delete course %s and all of its grades?", *id)
		}
		if err := cli.confirm(prompt, *yes); err != nil {
			return err
		}
		if err := cli.courses.Delete(ctx, *id); err != nil {
			return err
		}
		fmt.Fprintln(cli.out, "Deleted successfully! CourseID: "+*id)
	case "search":
		if *id == "" {
			cmd.Usage()
			return errHelp
		}
		c, err := cli.courses.Search(ctx, *id)
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, c.String())
	case "list":
		courses, err := cli.courses.List(ctx)
		if err != nil {
			return err
		}
		printRecords(cli.out, "Course", course.Header, courses)
	default:
		cli.printUsage()
		return errHelp
	}
	return nil
}
