// Package main is the entry point for the codewatch CLI.
package main

import (
	"os"

	"github.com/yaklabco/codewatch/internal/cli"
	"github.com/yaklabco/codewatch/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		code := cli.ExitCode(err)
		// Violation-driven exit codes are a signal, not a failure to log.
		if code == cli.ExitInternalError || code == cli.ExitConfigError {
			logger := logging.Default()
			logger.Error("command failed", logging.FieldError, err)
		}
		return code
	}

	return cli.ExitSuccess
}
