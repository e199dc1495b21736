package scanner

import (
	"context"
	"fmt"
)

// Baseline is the reference response of the unmodified target. It is
// computed once and passed by value to every probe.
type Baseline struct {
	StatusCode int
	Size       int64
}

// AcquireBaseline requests the target URL once. There is no retry: a
// transport failure here makes every later size comparison meaningless.
func AcquireBaseline(ctx context.Context, req *Requester) (Baseline, error) {
	resp, err := req.Get(ctx, req.TargetURL())
	if err != nil {
		return Baseline{}, fmt.Errorf("could not get baseline response from %s: %w", req.TargetURL(), err)
	}
	return Baseline{
		StatusCode: resp.StatusCode,
		Size:       resp.Size,
	}, nil
}
