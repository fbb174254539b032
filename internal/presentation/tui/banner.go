package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the wireframe banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	// Using a subtle gradient-like color scheme (Indigo/Violet)
	lines := []struct {
		text, color string
	}{
		{`          _          __                          `, "#818cf8"},
		{` __ __ __(_)_ _ ___ / _|_ _ __ _ _ __  ___ `, "#a78bfa"},
		{` \ V  V /| | '_/ -_)  _| '_/ _' | '  \/ -_)`, "#c084fc"},
		{`  \_/\_/ |_|_| \___|_| |_| \__,_|_|_|_\___|`, "#e879f9"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, p.String("  version "+version).Faint())
	fmt.Fprintln(w)
}
