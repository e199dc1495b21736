package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/maxvaer/paramfuzz/internal/scanner"
)

// Header describes the scan for the banner.
type Header struct {
	Version   string
	Target    string
	Wordlist  string
	Params    int
	Threads   int
	Sentinel  string
	Threshold float64
}

// TextWriter writes human-readable scan output.
type TextWriter struct {
	w     io.Writer
	quiet bool

	cyan   *color.Color
	green  *color.Color
	yellow *color.Color
	red    *color.Color
	dim    *color.Color
}

// NewTextWriter creates a text writer. noColor disables ANSI escape codes.
func NewTextWriter(w io.Writer, noColor, quiet bool) *TextWriter {
	t := &TextWriter{
		w:      w,
		quiet:  quiet,
		cyan:   color.New(color.FgCyan),
		green:  color.New(color.FgGreen, color.Bold),
		yellow: color.New(color.FgYellow),
		red:    color.New(color.FgRed),
		dim:    color.New(color.Faint),
	}
	if noColor {
		for _, c := range []*color.Color{t.cyan, t.green, t.yellow, t.red, t.dim} {
			c.DisableColor()
		}
	}
	return t
}

// Describe formats a finding for display.
func Describe(o scanner.Outcome) string {
	switch o.Kind {
	case scanner.Reflected:
		return fmt.Sprintf("Reflection Found: %s", o.Parameter)
	case scanner.SizeChanged:
		return fmt.Sprintf("Size Change: %s (New Size: %d)", o.Parameter, o.NewSize)
	default:
		return ""
	}
}

func (t *TextWriter) WriteHeader(h Header) {
	if t.quiet {
		return
	}
	ver := h.Version
	if ver != "dev" && ver != "" && !strings.HasPrefix(ver, "v") {
		ver = "v" + ver
	}
	t.cyan.Fprintf(t.w, "\n  paramfuzz %s\n", ver)
	t.dim.Fprintln(t.w, "  Hidden query parameter discovery")
	t.dim.Fprintln(t.w, "  ──────────────────────────────────────")
	fmt.Fprintf(t.w, "  Target:       %s\n", h.Target)
	fmt.Fprintf(t.w, "  Wordlist:     %s (%d params)\n", h.Wordlist, h.Params)
	fmt.Fprintf(t.w, "  Threads:      %d\n", h.Threads)
	fmt.Fprintf(t.w, "  Sentinel:     %s\n", h.Sentinel)
	fmt.Fprintf(t.w, "  Size change:  >%.0f%%\n", h.Threshold*100)
	t.dim.Fprintln(t.w, "  ──────────────────────────────────────")
	fmt.Fprintln(t.w)
}

func (t *TextWriter) WriteBaselineStart() {
	if t.quiet {
		return
	}
	fmt.Fprintln(t.w, "[*] Calculating Baseline Response Size...")
}

func (t *TextWriter) WriteBaseline(b scanner.Baseline) {
	if t.quiet {
		return
	}
	fmt.Fprintf(t.w, "[+] Baseline: Status=%d, Size=%d bytes.\n", b.StatusCode, b.Size)
}

// WriteFinding announces a finding as soon as it is detected.
func (t *TextWriter) WriteFinding(o scanner.Outcome) {
	t.green.Fprintf(t.w, "[!!!] FOUND PARAMETER: %s\n", Describe(o))
}

// WriteFooter prints the final summary. findings are listed in the order
// they were detected.
func (t *TextWriter) WriteFooter(findings []scanner.Outcome, stats Stats) {
	fmt.Fprintln(t.w, "\n[+] Scan finished.")
	if len(findings) > 0 {
		t.cyan.Fprintln(t.w, "\n[--- Found Potential Parameters ---]")
		for _, f := range findings {
			fmt.Fprintf(t.w, "- %s\n", Describe(f))
		}
	} else {
		t.red.Fprintln(t.w, "[-] No potential parameters found.")
	}
	if stats.Failed > 0 {
		t.yellow.Fprintf(t.w, "[!] %d candidates failed to probe\n", stats.Failed)
	}
	if !t.quiet {
		t.dim.Fprintf(t.w, "\nTested: %d/%d | Found: %d | Errors: %d | Duration: %s\n",
			stats.Tested, stats.Total, stats.Found, stats.Failed,
			stats.Duration.Round(time.Millisecond))
	}
}
