package output

import (
	"fmt"
	"io"
)

// Progress renders the "found / tested / total" line. In-place mode rewrites
// the line with an ANSI clear; otherwise a carriage return is used so that
// the output stays readable when piped.
type Progress struct {
	w       io.Writer
	total   int
	inPlace bool
	quiet   bool
	drawn   bool
}

// NewProgress creates a progress line for total candidates.
func NewProgress(w io.Writer, total int, inPlace, quiet bool) *Progress {
	return &Progress{w: w, total: total, inPlace: inPlace, quiet: quiet}
}

// Update redraws the progress line.
func (p *Progress) Update(found, tested int) {
	if p.quiet {
		return
	}
	erase := ""
	if p.inPlace {
		erase = "\033[K"
	}
	fmt.Fprintf(p.w, "\r%s[*] Fuzzing progress: %d found, %d/%d tested...", erase, found, tested, p.total)
	p.drawn = true
}

// ClearLine removes the progress line so another line can be printed.
func (p *Progress) ClearLine() {
	if !p.drawn {
		return
	}
	if p.inPlace {
		fmt.Fprint(p.w, "\r\033[K")
	} else {
		fmt.Fprint(p.w, "\n")
	}
	p.drawn = false
}

// Stop terminates the progress line.
func (p *Progress) Stop() {
	if p.drawn {
		fmt.Fprint(p.w, "\n")
		p.drawn = false
	}
}
