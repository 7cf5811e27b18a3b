package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/codewatch/internal/logging"
	"github.com/yaklabco/codewatch/internal/telemetry"
	"github.com/yaklabco/codewatch/internal/ui/pretty"
	"github.com/yaklabco/codewatch/pkg/config"
	"github.com/yaklabco/codewatch/pkg/diag"
	"github.com/yaklabco/codewatch/pkg/remote"
	"github.com/yaklabco/codewatch/pkg/scan"
)

type scanFlags struct {
	report  string
	remote  bool
	strict  bool
	context bool
}

func newScanCommand() *cobra.Command {
	flags := &scanFlags{}

	cmd := &cobra.Command{
		Use:   "scan [files...]",
		Short: "Load engine violations and print the resulting diagnostics",
		Long: `Scan converts engine violation reports into diagnostics and prints them.

Violations come either from a JSON report written by a scanning engine
(--report) or from the remote analysis service (--remote), which submits
each file and polls the job until it settles.

Examples:
  codewatch scan --report pmd.json src/Foo.cls
  codewatch scan --remote src/Foo.cls
  codewatch scan --report pmd.json --strict`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.report, "report", "", "JSON violation report to load")
	cmd.Flags().BoolVar(&flags.remote, "remote", false, "analyze files via the remote service")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as failures")
	cmd.Flags().BoolVar(&flags.context, "context", false, "show source context for each diagnostic")

	return cmd
}

func runScan(cmd *cobra.Command, targets []string, flags *scanFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logging.Default())

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	engines, err := buildEngines(cfg, flags)
	if err != nil {
		return err
	}
	registry, err := scan.NewRegistry(engines...)
	if err != nil {
		return err
	}

	store := diag.NewStore()
	factory := diag.NewFactory(diag.ThresholdPolicy{
		ErrorMax:   cfg.Severity.ErrorMax,
		WarningMax: cfg.Severity.WarningMax,
	})
	orchestrator := scan.NewOrchestrator(registry, factory, store)

	summary, err := orchestrator.ScanAndStore(ctx, targets)
	if err != nil {
		return err
	}

	colorMode, _ := cmd.Flags().GetString("color")
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, os.Stdout))

	printDiagnostics(store, styles, flags.context)
	fmt.Fprint(os.Stdout, styles.FormatScanSummary(summary, store))

	if code := ExitCodeFromStore(store, flags.strict); code != ExitSuccess {
		return &exitError{code: code}
	}
	return nil
}

func buildEngines(cfg *config.Config, flags *scanFlags) ([]scan.Engine, error) {
	var engines []scan.Engine

	if flags.report != "" {
		e := &scan.JSONFileEngine{ReportPath: flags.report}
		if cfg.EngineEnabled(e.Name()) {
			engines = append(engines, e)
		}
	}
	if flags.remote {
		if cfg.Remote.Endpoint == "" {
			return nil, fmt.Errorf("--remote requires remote.endpoint in the config")
		}
		client := remote.NewClient(remote.Options{
			BaseURL:       cfg.Remote.Endpoint,
			MaxWait:       cfg.Remote.MaxWait,
			RetryInterval: cfg.Remote.RetryInterval,
		}, telemetry.NewLogSink(logging.Default()))
		engines = append(engines, remote.NewEngine(client))
	}

	if len(engines) == 0 {
		return nil, fmt.Errorf("no engines selected: pass --report or --remote")
	}
	return engines, nil
}

func printDiagnostics(store *diag.Store, styles *pretty.Styles, showContext bool) {
	for _, file := range store.Files() {
		diags := store.ForFile(file)
		fmt.Fprintln(os.Stdout, styles.FormatFileHeader(file, len(diags)))

		var lines []string
		if showContext {
			if data, err := os.ReadFile(file); err == nil {
				lines = splitLines(string(data))
			}
		}
		for _, d := range diags {
			var sourceLine string
			if d.Range.Start.Line < len(lines) {
				sourceLine = lines[d.Range.Start.Line]
			}
			fmt.Fprint(os.Stdout, styles.FormatDiagnostic(d, sourceLine))
		}
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, &exitError{code: ExitConfigError, err: err}
	}
	logging.SetLevel(cfg.LogLevel)
	return cfg, nil
}

// exitError carries a specific exit code up to main.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit code %d", e.code)
}

func (e *exitError) Unwrap() error { return e.err }

// ExitCode extracts the intended process exit code from a command error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitInternalError
}
