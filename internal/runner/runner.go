package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/maxvaer/paramfuzz/internal/config"
	"github.com/maxvaer/paramfuzz/internal/hook"
	"github.com/maxvaer/paramfuzz/internal/output"
	"github.com/maxvaer/paramfuzz/internal/scanner"
	"github.com/maxvaer/paramfuzz/internal/wordlist"
	"github.com/maxvaer/paramfuzz/pkg/version"
	"golang.org/x/term"
)

// State is the coordinator's position in a scan.
type State int

const (
	Idle State = iota
	BaselineAcquired
	Scanning
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case BaselineAcquired:
		return "baseline-acquired"
	case Scanning:
		return "scanning"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// Report is the aggregated result of a scan. Findings are kept in
// completion order.
type Report struct {
	State    State
	Baseline scanner.Baseline
	Findings []scanner.Outcome
	Stats    output.Stats
}

// Run executes the full scan against opts.URL and prints to stdout.
func Run(ctx context.Context, opts *config.Options) error {
	pauser, cleanup := startStdinToggle(opts.Quiet)
	defer cleanup()

	_, err := Scan(ctx, opts, os.Stdout, pauser)
	return err
}

// Scan loads the wordlist, acquires the baseline and probes every
// candidate. Only fatal conditions are returned as errors; per-candidate
// transport failures are counted in the report.
func Scan(ctx context.Context, opts *config.Options, w io.Writer, pauser *scanner.Pauser) (*Report, error) {
	report := &Report{State: Idle}

	// 1. Load wordlist.
	params, err := wordlist.Load(opts.WordlistPath)
	if err != nil {
		return nil, fmt.Errorf("loading wordlist: %w", err)
	}

	// 2. Create HTTP requester.
	req, err := scanner.NewRequester(opts)
	if err != nil {
		return nil, fmt.Errorf("creating requester: %w", err)
	}

	out := output.NewTextWriter(w, opts.NoColor, opts.Quiet)
	out.WriteHeader(output.Header{
		Version:   version.Version,
		Target:    req.TargetURL(),
		Wordlist:  opts.WordlistPath,
		Params:    len(params),
		Threads:   opts.Threads,
		Sentinel:  opts.Sentinel,
		Threshold: opts.SizeThreshold,
	})

	// 3. Baseline. Nothing is probed if this fails.
	out.WriteBaselineStart()
	baseline, err := scanner.AcquireBaseline(ctx, req)
	if err != nil {
		return nil, err
	}
	out.WriteBaseline(baseline)
	report.State = BaselineAcquired
	report.Baseline = baseline

	var hookRunner *hook.Runner
	if opts.OnResultCmd != "" {
		hookRunner = hook.NewRunner(opts.OnResultCmd, opts.Quiet)
	}

	// 4. Fan out probes.
	prober := scanner.NewProber(req, baseline, opts.Sentinel, opts.SizeThreshold)
	workerCfg := scanner.WorkerConfig{
		Threads: opts.Threads,
		Pauser:  pauser,
	}

	progress := output.NewProgress(w, len(params), isTerminal(w), opts.Quiet)
	startTime := time.Now()
	report.State = Scanning
	report.Stats.Total = len(params)

	results := scanner.RunWorkerPool(ctx, prober, params, workerCfg)

	// 5. Collect. This loop is the only writer of report.
	for outcome := range results {
		report.Stats.Tested++

		switch {
		case outcome.Kind == scanner.Failed:
			report.Stats.Failed++
		case outcome.IsFinding():
			report.Stats.Found++
			report.Findings = append(report.Findings, outcome)

			progress.ClearLine()
			out.WriteFinding(outcome)
			if hookRunner != nil {
				hookRunner.Run(outcome, baseline)
			}
		}

		progress.Update(report.Stats.Found, report.Stats.Tested)
	}
	progress.Stop()

	if ctx.Err() != nil {
		return report, fmt.Errorf("scan interrupted after %d/%d candidates: %w",
			report.Stats.Tested, report.Stats.Total, ctx.Err())
	}

	// 6. Summary.
	report.State = Finished
	report.Stats.Duration = time.Since(startTime) - pauser.PausedDuration()
	out.WriteFooter(report.Findings, report.Stats)

	return report, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
