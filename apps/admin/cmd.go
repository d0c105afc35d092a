package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/course"
	"github.com/trezcool/sims/core/grade"
	"github.com/trezcool/sims/core/student"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp      = errors.New("help provided")
	errCancelled = errors.New("cancelled")
)

type commandLine struct {
	conf     *core.Config
	db       *sqlx.DB // nil with the file backend
	in       io.Reader
	out      io.Writer
	logger   core.Logger
	students *student.Service
	courses  *course.Service
	grades   *grade.Service
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                               - run a goose command (up, down, status, version, ...)")
	fmt.Fprintln(cli.out, "  student add|update -id ID -name NAME [-gender G] [-major M] [-year Y]")
	fmt.Fprintln(cli.out, "  student delete -id ID [-yes] | search -id ID | list")
	fmt.Fprintln(cli.out, "  course add|update -id ID -name NAME -credit CREDIT")
	fmt.Fprintln(cli.out, "  course delete -id ID [-yes] | search -id ID | list")
	fmt.Fprintln(cli.out, "  grade add|update -student ID -course ID -score SCORE")
	fmt.Fprintln(cli.out, "  grade delete -key STUDENTID-COURSEID [-yes] | search -key STUDENTID-COURSEID | list")
	fmt.Fprintln(cli.out, "  grade by-student -id ID | by-course -id ID")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "student":
		return cli.runStudent(args[2:])
	case "course":
		return cli.runCourse(args[2:])
	case "grade":
		return cli.runGrade(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// newFlagSet returns a flag set reporting parse errors to cli.out instead of exiting.
func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

// confirm asks the user to confirm a destructive action. Nothing is asked when assumeYes is set
// or when stdin is not a terminal.
func (cli *commandLine) confirm(prompt string, assumeYes bool) error {
	if assumeYes || !isTerminalFunc(int(os.Stdin.Fd())) {
		return nil
	}
	fmt.Fprintf(cli.out, "%s [y/N]: ", prompt)
	answer, err := bufio.NewReader(cli.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	}
	return errCancelled
}

// cascades reports whether deleting a student or course also deletes its grades.
func (cli *commandLine) cascades() bool {
	return cli.conf.Storage.Backend == core.BackendDatabase || cli.conf.Storage.EnforceIntegrity
}

type record interface {
	String() string
}

// printRecords prints records under a title & header line, or a notice when there is none.
func printRecords[T record](w io.Writer, entity string, header []string, records []T) {
	if len(records) == 0 {
		fmt.Fprintf(w, "No %s records found!\n", strings.ToLower(entity))
		return
	}
	fmt.Fprintf(w, "===== %s List =====\n", entity)
	fmt.Fprintln(w, strings.Join(header, ","))
	for _, r := range records {
		fmt.Fprintln(w, r.String())
	}
}
