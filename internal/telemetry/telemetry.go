// Package telemetry defines the fire-and-forget event sink the core
// reports to. Sends are never awaited and never allowed to propagate
// failures back into callers.
package telemetry

// Event and exception names emitted by the fix workflow and remote
// analysis. Kept as constants so dashboards and tests agree on spelling.
const (
	EventFixSuggested    = "fix_suggested"
	EventFixAccepted     = "fix_accepted"
	EventFixRejected     = "fix_rejected"
	EventFixNone         = "fix_none_available"
	EventFixStale        = "fix_stale"
	EventRemoteCompleted = "remote_analysis_completed"

	ExceptionFixGenerator  = "fix_generator_error"
	ExceptionDiffTool      = "diff_tool_error"
	ExceptionEditApply     = "edit_apply_error"
	ExceptionRemoteTimeout = "remote_analysis_timeout"
)

// Property keys attached to events.
const (
	PropReason    = "reason"
	PropRuleName  = "ruleName"
	PropEngine    = "engine"
	PropLanguage  = "languageType"
	PropLineCount = "lineCount"
	PropJobID     = "jobId"
)

// Reasons attached under PropReason for EventFixNone.
const (
	ReasonEmpty    = "empty"
	ReasonSameCode = "same_code"
)

// Sink receives telemetry. Implementations must swallow their own
// failures: a broken sink never breaks the host.
type Sink interface {
	Event(name string, properties map[string]string)
	Exception(name, message string, properties map[string]string)
}

// Nop is a Sink that discards everything.
type Nop struct{}

// Event implements Sink.
func (Nop) Event(string, map[string]string) {}

// Exception implements Sink.
func (Nop) Exception(string, string, map[string]string) {}
