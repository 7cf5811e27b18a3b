package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/codewatch/internal/logging"
	"github.com/yaklabco/codewatch/internal/telemetry"
	"github.com/yaklabco/codewatch/internal/ui/pretty"
	"github.com/yaklabco/codewatch/pkg/diag"
	"github.com/yaklabco/codewatch/pkg/editor"
	"github.com/yaklabco/codewatch/pkg/fixflow"
	"github.com/yaklabco/codewatch/pkg/fsutil"
	"github.com/yaklabco/codewatch/pkg/langdetect"
	"github.com/yaklabco/codewatch/pkg/scan"
)

type fixFlags struct {
	report   string
	suppress bool
	yes      bool
	dryRun   bool
}

func newFixCommand() *cobra.Command {
	flags := &fixFlags{}

	cmd := &cobra.Command{
		Use:   "fix <file>",
		Short: "Offer and apply fixes for a file's diagnostics",
		Long: `Fix walks the diagnostics of one file and offers each available fix as a
diff to accept or reject.

By default the engine-proposed replacement code is offered; --suppress
offers an in-source suppression annotation on the enclosing declaration
instead. Accepted fixes are written back to the file.

Examples:
  codewatch fix --report pmd.json src/Foo.cls
  codewatch fix --report pmd.json --suppress src/Foo.cls
  codewatch fix --report pmd.json --yes --dry-run src/Foo.cls`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.report, "report", "", "JSON violation report to load")
	cmd.Flags().BoolVar(&flags.suppress, "suppress", false,
		"offer suppression annotations instead of engine fixes")
	cmd.Flags().BoolVar(&flags.yes, "yes", false, "accept every offered fix without prompting")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show fixes without writing the file")
	_ = cmd.MarkFlagRequired("report")

	return cmd
}

func runFix(cmd *cobra.Command, file string, flags *fixFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	content, snapshot, err := fsutil.ReadFile(file)
	if err != nil {
		return err
	}
	doc := editor.NewTextDocument(file, langdetect.DetectFile(file, content), string(content))

	registry, err := scan.NewRegistry(&scan.JSONFileEngine{ReportPath: flags.report})
	if err != nil {
		return err
	}
	store := diag.NewStore()
	factory := diag.NewFactory(diag.ThresholdPolicy{
		ErrorMax:   cfg.Severity.ErrorMax,
		WarningMax: cfg.Severity.WarningMax,
	})
	if _, err := scan.NewOrchestrator(registry, factory, store).
		ScanAndStore(ctx, []string{file}); err != nil {
		return err
	}

	colorMode, _ := cmd.Flags().GetString("color")
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, os.Stdout))
	notifier := &terminalNotifier{out: os.Stderr, styles: styles}

	workflow := fixflow.NewWorkflow(
		store,
		newTerminalDiffTool(styles, flags.yes),
		notifier,
		telemetry.NewLogSink(logger),
		nil,
	)

	var gen fixflow.Generator = fixflow.EngineFixGenerator{}
	if flags.suppress {
		gen = fixflow.SuppressionGenerator{}
	}

	accepted := 0
	for _, d := range store.ForFile(file) {
		outcome := workflow.Run(ctx, d, doc, gen)
		logger.Debug("fix workflow finished",
			logging.FieldRule, d.Rule(),
			"outcome", string(outcome))
		if outcome == fixflow.OutcomeAccepted {
			accepted++
		}
	}

	if accepted == 0 {
		notifier.Info("No fixes applied")
		return nil
	}
	if flags.dryRun {
		notifier.Info(fmt.Sprintf("%d fixes accepted (dry run, file not written)", accepted))
		return nil
	}
	modified, err := snapshot.Modified()
	if err != nil {
		return err
	}
	if modified {
		return fmt.Errorf("%s changed on disk during the fix session, not writing", file)
	}
	if err := fsutil.WriteAtomic(file, []byte(doc.Text()), snapshot.Mode); err != nil {
		return err
	}
	notifier.Info(fmt.Sprintf("%d fixes applied to %s", accepted, file))
	return nil
}
