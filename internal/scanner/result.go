package scanner

// Kind tags the classification of a single parameter probe. Reflected
// means the sentinel was echoed in the body, SizeChanged that the body size
// moved past the threshold. Failed is a transport error and never a finding.
type Kind int

const (
	NoSignal Kind = iota
	Reflected
	SizeChanged
	Failed
)

func (k Kind) String() string {
	switch k {
	case NoSignal:
		return "none"
	case Reflected:
		return "reflected"
	case SizeChanged:
		return "size-changed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the result of probing one candidate parameter.
type Outcome struct {
	Kind       Kind
	Parameter  string
	URL        string
	StatusCode int
	NewSize    int64 // response size, set for every non-failed probe
	Err        error // only for Failed
}

// IsFinding reports whether the outcome should be shown to the user.
func (o Outcome) IsFinding() bool {
	return o.Kind == Reflected || o.Kind == SizeChanged
}
