package main

import (
	"context"
	"fmt"
	"log"

	dig_container "github.com/trezcool/sims/apps/api/di/dig"
	echoapi "github.com/trezcool/sims/apps/api/echo"
	"github.com/trezcool/sims/core"
	logsvc "github.com/trezcool/sims/services/logger"
	"github.com/trezcool/sims/storage"
)

func main() {
	c := dig_container.New(core.NewConfig)
	if err := c.Invoke(run); err != nil {
		log.Fatal(err)
	}
}

func run(
	conf *core.Config,
	rollbarLogger *logsvc.RollbarLogger,
	logger core.Logger,
	stores *storage.Stores,
	server *echoapi.Server,
) {
	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q (%s)", conf.Build, conf))

	defer rollbarLogger.Close()
	defer func() {
		if err := stores.Close(); err != nil {
			logger.Error("failed to close storage", err)
		}
	}()
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start API Service

	go server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shut down and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}
