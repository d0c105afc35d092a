package main

import (
	"context"
	"fmt"
	"os"

	"github.com/trezcool/sims/core"
	"github.com/trezcool/sims/core/course"
	"github.com/trezcool/sims/core/grade"
	"github.com/trezcool/sims/core/student"
	logsvc "github.com/trezcool/sims/services/logger"
	"github.com/trezcool/sims/storage"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(logsvc.NewLogger(os.Stderr, conf), conf)

	stores, err := storage.Open(context.Background(), conf, logger)
	if err != nil {
		logger.Fatal("opening storage failed", err)
	}

	cli := newCommandLine(conf, stores, logger)
	err = cli.run(os.Args)

	if cErr := stores.Close(); cErr != nil {
		logger.Error("closing storage failed", cErr)
	}
	logger.Close()

	if err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func newCommandLine(conf *core.Config, stores *storage.Stores, logger core.Logger) *commandLine {
	validate, _ := core.NewValidator()
	return &commandLine{
		conf:     conf,
		db:       stores.DB,
		in:       os.Stdin,
		out:      os.Stdout,
		logger:   logger,
		students: student.NewService(stores.Students, validate, logger),
		courses:  course.NewService(stores.Courses, validate, logger),
		grades:   grade.NewService(stores.Grades, validate, logger),
	}
}
