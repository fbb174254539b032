package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// Printer writes coloured status lines. Colours are dropped when the
// environment asks for it (NO_COLOR, dumb terminals).
type Printer struct {
	out     io.Writer
	profile termenv.Profile
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, profile: termenv.EnvColorProfile()}
}

// Success prints a green check line.
func (p *Printer) Success(format string, args ...any) {
	p.line("✔ ", "#22c55e", format, args...)
}

// Warn prints a yellow warning line.
func (p *Printer) Warn(format string, args ...any) {
	p.line("! ", "#eab308", format, args...)
}

// Error prints a red failure line.
func (p *Printer) Error(format string, args ...any) {
	p.line("✘ ", "#ef4444", format, args...)
}

func (p *Printer) line(icon, color, format string, args ...any) {
	msg := icon + fmt.Sprintf(format, args...)
	fmt.Fprintln(p.out, p.profile.String(msg).Foreground(p.profile.Color(color)))
}
