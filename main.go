// Package main implements the main entry point for a SID tune header inspection tool
package main

import (
	"errors"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/sidfile/internal/cli"
	"github.com/retroenv/sidfile/internal/config"
	"github.com/retroenv/sidfile/internal/fileprocessor"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	failed := false
	for _, file := range opts.Inputs {
		// Handle context cancellation (Ctrl+C) gracefully
		if ctx.Err() != nil {
			logger.Info("Operation cancelled")
			return
		}

		if err := fileprocessor.ProcessFile(logger, opts, file); err != nil {
			logger.Error("Inspection failed", log.String("file", file), log.Err(err))
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
