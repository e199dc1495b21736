package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/maxvaer/paramfuzz/internal/scanner"
)

// findingJSON is the payload sent to the hook command via stdin.
type findingJSON struct {
	Parameter    string `json:"parameter"`
	Kind         string `json:"kind"`
	URL          string `json:"url"`
	StatusCode   int    `json:"status"`
	Size         int64  `json:"size"`
	BaselineSize int64  `json:"baseline_size"`
}

// Runner executes a shell command for each finding.
type Runner struct {
	cmd     string
	quiet   bool
	timeout time.Duration
	stderr  io.Writer
}

// NewRunner creates a hook runner. cmd is the shell command to execute.
func NewRunner(cmd string, quiet bool) *Runner {
	return &Runner{cmd: cmd, quiet: quiet, timeout: 30 * time.Second, stderr: os.Stderr}
}

// Expand replaces the {param}, {kind}, {url}, {status} and {size}
// placeholders in the command template.
func (r *Runner) Expand(o scanner.Outcome) string {
	return strings.NewReplacer(
		"{param}", o.Parameter,
		"{kind}", o.Kind.String(),
		"{url}", o.URL,
		"{status}", strconv.Itoa(o.StatusCode),
		"{size}", strconv.FormatInt(o.NewSize, 10),
	).Replace(r.cmd)
}

// Run executes the hook command with the finding as JSON on stdin.
// Errors are logged but do not halt the scan.
func (r *Runner) Run(o scanner.Outcome, base scanner.Baseline) {
	data, err := json.Marshal(findingJSON{
		Parameter:    o.Parameter,
		Kind:         o.Kind.String(),
		URL:          o.URL,
		StatusCode:   o.StatusCode,
		Size:         o.NewSize,
		BaselineSize: base.Size,
	})
	if err != nil {
		fmt.Fprintf(r.stderr, "[hook] marshal error: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	shell, args := shellCommand()
	cmd := exec.CommandContext(ctx, shell, append(args, r.Expand(o))...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stderr = r.stderr

	output, err := cmd.Output()
	if err != nil {
		if !r.quiet {
			fmt.Fprintf(r.stderr, "[hook] error: %v\n", err)
		}
		return
	}

	if len(output) > 0 && !r.quiet {
		fmt.Fprintf(r.stderr, "[hook] %s", output)
	}
}

func shellCommand() (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}
	}
	return "sh", []string{"-c"}
}
