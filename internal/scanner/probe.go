package scanner

import (
	"context"
	"strings"
)

// ParamProber probes a single candidate parameter.
type ParamProber interface {
	Probe(ctx context.Context, param string) Outcome
}

// Prober sends one request per candidate and classifies the response
// against a shared Baseline.
type Prober struct {
	req       *Requester
	baseline  Baseline
	sentinel  string
	threshold float64
}

// NewProber creates a Prober. threshold is the relative size change above
// which a response counts as different (0.10 = 10%).
func NewProber(req *Requester, baseline Baseline, sentinel string, threshold float64) *Prober {
	return &Prober{
		req:       req,
		baseline:  baseline,
		sentinel:  sentinel,
		threshold: threshold,
	}
}

// Probe requests the target with param=sentinel and classifies the result.
// Transport errors are returned as a Failed outcome, never as an error.
func (p *Prober) Probe(ctx context.Context, param string) Outcome {
	probeURL := p.req.ProbeURL(param, p.sentinel)
	resp, err := p.req.Get(ctx, probeURL)
	if err != nil {
		return Outcome{Kind: Failed, Parameter: param, URL: probeURL, Err: err}
	}
	return Classify(param, resp, p.sentinel, p.baseline, p.threshold)
}

// Classify decides the outcome for a response. Reflection is matched
// against the decoded text and takes precedence over the size check, which
// uses the raw byte count.
//
// An empty baseline cannot be used as a divisor: any non-empty response is
// then treated as a 100% change, and an empty one as no change.
func Classify(param string, resp *Response, sentinel string, base Baseline, threshold float64) Outcome {
	out := Outcome{
		Kind:       NoSignal,
		Parameter:  param,
		URL:        resp.URL,
		StatusCode: resp.StatusCode,
		NewSize:    resp.Size,
	}

	if sentinel != "" && strings.Contains(resp.Text, sentinel) {
		out.Kind = Reflected
		return out
	}

	if base.Size == 0 {
		if resp.Size > 0 {
			out.Kind = SizeChanged
		}
		return out
	}

	if SizeRatio(resp.Size, base.Size) > threshold {
		out.Kind = SizeChanged
	}
	return out
}

// SizeRatio returns |current-baseline| / baseline. baseline must be non-zero.
func SizeRatio(current, baseline int64) float64 {
	diff := current - baseline
	if diff < 0 {
		diff = -diff
	}
	return float64(diff) / float64(baseline)
}
