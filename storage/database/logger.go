package database

import (
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/trezcool/sims/core"
)

// gooseLogger routes goose output through the app logger.
type gooseLogger struct {
	logger core.Logger
}

var _ goose.Logger = gooseLogger{}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
