package main

import (
	"context"
	"os"

	"github.com/desertthunder/campus/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	runner := NewRunner(RunnerOpts{
		Config: shared.DefaultConfig(),
		Logger: logger,
	})
	defer runner.close()

	app := &cli.Command{
		Name:     "campus",
		Usage:    "Manage the campus events database",
		Version:  "0.1.0",
		Flags:    []cli.Flag{configFlag()},
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		runner.close()
		logger.Fatalf("application error: %v", err)
	}
}
