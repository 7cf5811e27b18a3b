// Package remote talks to the job-based remote analysis HTTP API:
// submit a document, poll until the job settles, and decode the report
// into violations.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yaklabco/codewatch/internal/logging"
	"github.com/yaklabco/codewatch/internal/telemetry"
	"github.com/yaklabco/codewatch/pkg/poll"
	"github.com/yaklabco/codewatch/pkg/violation"
)

// Job states reported by the analysis API.
const (
	StatePending = "pending"
	StateSuccess = "success"
	StateError   = "error"
)

// JobStatus is one status response for a submitted job.
type JobStatus struct {
	JobID string `json:"jobId"`
	State string `json:"state"`

	// Report is a base64-encoded JSON array of finding records, present
	// once State is "success".
	Report string `json:"report,omitempty"`

	// Message carries the failure description when State is "error".
	Message string `json:"message,omitempty"`
}

// Settled reports whether the job finished, successfully or not.
func (s JobStatus) Settled() bool {
	return s.State == StateSuccess || s.State == StateError
}

// Options configures a Client.
type Options struct {
	// BaseURL is the analysis API root, e.g. "https://api.example.com/v1".
	BaseURL string

	// MaxWait bounds how long Analyze polls for a job to settle.
	MaxWait time.Duration

	// RetryInterval is the fixed delay between status polls.
	RetryInterval time.Duration

	// HTTPClient overrides the default HTTP client when set.
	HTTPClient *http.Client
}

// Client is the remote analysis API client.
type Client struct {
	baseURL  string
	http     *http.Client
	pollOpts poll.Options
	sink     telemetry.Sink
}

// NewClient creates a Client. A nil sink discards telemetry.
func NewClient(opts Options, sink telemetry.Sink) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if sink == nil {
		sink = telemetry.Nop{}
	}
	return &Client{
		baseURL: opts.BaseURL,
		http:    httpClient,
		pollOpts: poll.Options{
			MaxWait:       opts.MaxWait,
			RetryInterval: opts.RetryInterval,
		},
		sink: sink,
	}
}

// Submit uploads document content for analysis and returns the job id.
func (c *Client) Submit(ctx context.Context, fileName string, content []byte) (string, error) {
	body, err := json.Marshal(map[string]any{
		"fileName": fileName,
		"content":  string(content),
	})
	if err != nil {
		return "", err
	}

	var resp struct {
		JobID string `json:"jobId"`
	}
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/jobs", body, &resp); err != nil {
		return "", fmt.Errorf("submit analysis job: %w", err)
	}
	if resp.JobID == "" {
		return "", &MalformedExternalResponseError{Reason: "submit response missing jobId"}
	}
	logging.FromContext(ctx).Debug("analysis job submitted",
		logging.FieldJobID, resp.JobID,
		logging.FieldEndpoint, c.baseURL,
		logging.FieldFile, fileName)
	return resp.JobID, nil
}

// Status fetches the current status of a job.
func (c *Client) Status(ctx context.Context, jobID string) (JobStatus, error) {
	var status JobStatus
	if err := c.do(ctx, http.MethodGet, c.baseURL+"/jobs/"+jobID, nil, &status); err != nil {
		return JobStatus{}, fmt.Errorf("fetch job status: %w", err)
	}
	return status, nil
}

// Await polls the job at a fixed interval until it settles or the
// configured deadline passes. Transient fetch errors are retried; only a
// final timeout surfaces.
func (c *Client) Await(ctx context.Context, jobID string) (JobStatus, error) {
	status, err := poll.Until(ctx,
		func(ctx context.Context) (JobStatus, error) { return c.Status(ctx, jobID) },
		JobStatus.Settled,
		c.pollOpts,
	)
	if err != nil {
		c.sink.Exception(telemetry.ExceptionRemoteTimeout, err.Error(),
			map[string]string{telemetry.PropJobID: jobID})
		return JobStatus{}, err
	}
	return status, nil
}

// Analyze submits content, awaits the job, and decodes the report into
// violations. A job that settles in the error state, or a report that
// fails to decode, yields no violations at all — never a partial batch.
func (c *Client) Analyze(ctx context.Context, fileName string, content []byte) ([]violation.Violation, error) {
	jobID, err := c.Submit(ctx, fileName, content)
	if err != nil {
		return nil, err
	}

	status, err := c.Await(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if status.State == StateError {
		return nil, fmt.Errorf("remote analysis job %s failed: %s", jobID, status.Message)
	}

	violations, err := DecodeReport(status.Report, fileName)
	if err != nil {
		return nil, err
	}

	c.sink.Event(telemetry.EventRemoteCompleted, map[string]string{
		telemetry.PropJobID: jobID,
	})
	logging.FromContext(ctx).Debug("remote analysis completed",
		logging.FieldJobID, jobID,
		logging.FieldViolations, len(violations))
	return violations, nil
}

func (c *Client) do(ctx context.Context, method, url string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &MalformedExternalResponseError{
			Reason: fmt.Sprintf("invalid JSON from %s: %v", url, err),
		}
	}
	return nil
}
