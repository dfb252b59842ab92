// Package scorer invokes the external scoring program that turns a
// scoresheet into per-turn results.
package scorer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBinary is the scorer path used when none is configured.
const DefaultBinary = "build/RiichiMahjongScoring"

// SourceUnavailableError reports that scorer output could not be obtained
// for a scoresheet.
type SourceUnavailableError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SourceUnavailableError) Error() string {
	msg := fmt.Sprintf("score %s: %s", e.Path, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SourceUnavailableError) Unwrap() error { return e.Err }

// Scorer produces scorer text for a scoresheet path.
type Scorer interface {
	Score(ctx context.Context, path string) (string, error)
}

// Exec runs Binary with "-a <path>" and returns its stdout.
type Exec struct {
	Binary string
}

// Score runs the scorer synchronously. Any failure is a
// *SourceUnavailableError.
func (e Exec) Score(ctx context.Context, path string) (string, error) {
	bin := e.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-a", path)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		reason := "scorer failed"
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			reason = fmt.Sprintf("scorer failed (%s)", msg)
		}
		return "", &SourceUnavailableError{Path: path, Reason: reason, Err: err}
	}
	if strings.TrimSpace(string(out)) == "" {
		return "", &SourceUnavailableError{Path: path, Reason: "scorer produced no output"}
	}
	return string(out), nil
}
