package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/codewatch/internal/ui/pretty"
	"github.com/yaklabco/codewatch/pkg/editor"
)

// terminalDiffTool renders a proposed change in the terminal and asks
// for confirmation. With assumeYes set it accepts without prompting, for
// scripted use.
type terminalDiffTool struct {
	out       io.Writer
	in        io.Reader
	styles    *pretty.Styles
	assumeYes bool
}

func newTerminalDiffTool(styles *pretty.Styles, assumeYes bool) *terminalDiffTool {
	return &terminalDiffTool{
		out:       os.Stdout,
		in:        os.Stdin,
		styles:    styles,
		assumeYes: assumeYes,
	}
}

// Present implements editor.DiffTool.
func (t *terminalDiffTool) Present(_ context.Context, req editor.DiffRequest) (editor.Decision, error) {
	divider := strings.Repeat("-", t.dividerWidth())

	fmt.Fprintln(t.out, t.styles.Bold.Render("Proposed fix: "+req.Title))
	fmt.Fprintln(t.out, t.styles.Dim.Render(divider))
	for _, line := range splitLines(req.Document.TextInRange(req.Range)) {
		fmt.Fprintln(t.out, t.styles.Failure.Render("- "+line))
	}
	for _, line := range splitLines(req.Replacement) {
		fmt.Fprintln(t.out, t.styles.Success.Render("+ "+line))
	}
	fmt.Fprintln(t.out, t.styles.Dim.Render(divider))

	if t.assumeYes {
		return editor.DecisionAccepted, nil
	}

	fmt.Fprint(t.out, "Apply this fix? [y/N] ")
	answer, err := bufio.NewReader(t.in).ReadString('\n')
	if err != nil {
		return editor.DecisionRejected, fmt.Errorf("read confirmation: %w", err)
	}
	if strings.EqualFold(strings.TrimSpace(answer), "y") {
		return editor.DecisionAccepted, nil
	}
	return editor.DecisionRejected, nil
}

func (t *terminalDiffTool) dividerWidth() int {
	const fallback = 60
	if f, ok := t.out.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 && width < fallback {
			return width
		}
	}
	return fallback
}

// terminalNotifier prints user-facing messages to the terminal.
type terminalNotifier struct {
	out    io.Writer
	styles *pretty.Styles
}

// Info implements editor.Notifier.
func (n *terminalNotifier) Info(message string) {
	fmt.Fprintln(n.out, message)
}

// Error implements editor.Notifier.
func (n *terminalNotifier) Error(message string) {
	fmt.Fprintln(n.out, n.styles.Failure.Render(message))
}

func splitLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
