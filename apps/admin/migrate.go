package main

import (
	"github.com/pkg/errors"

	"github.com/trezcool/sims/storage/database"
)

var gooseRunFunc = database.RunMigrations // mockable

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errors.Errorf("migrate: storage backend %q has no schema", cli.conf.Storage.Backend)
	}
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.db, cli.conf.Database.Engine, cli.logger, arguments...)
}
