package remote

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/codewatch/pkg/violation"
)

// Engine adapts the remote analysis client to the scanning-engine
// contract: each target file is submitted as its own job and awaited.
type Engine struct {
	client *Client
}

// NewEngine wraps a client as a scan engine.
func NewEngine(client *Client) *Engine {
	return &Engine{client: client}
}

// Name implements the engine contract.
func (e *Engine) Name() string { return remoteEngineName }

// Scan submits every target and gathers the decoded violations. A
// failed target fails the whole scan; partial results are never
// returned.
func (e *Engine) Scan(ctx context.Context, targets []string) ([]violation.Violation, error) {
	var all []violation.Violation
	for _, target := range targets {
		content, err := os.ReadFile(target)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", target, err)
		}
		violations, err := e.client.Analyze(ctx, target, content)
		if err != nil {
			return nil, err
		}
		all = append(all, violations...)
	}
	return all, nil
}
